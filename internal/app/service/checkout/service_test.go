package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name         string
		amount       int64
		baseDiscount int64
		deliveryFee  int64
		taxBps       int64
		wantTax      int64
		wantTotal    int64
	}{
		{
			name:   "no_discount_no_tax",
			amount: 1000, deliveryFee: 50,
			wantTax: 0, wantTotal: 1050,
		},
		{
			name:   "percent_discount_with_tax",
			amount: 1000, baseDiscount: 100, deliveryFee: 0, taxBps: 500,
			wantTax: 45, wantTotal: 945,
		},
		{
			name:   "discount_exceeds_amount_clamps",
			amount: 150, baseDiscount: 200, deliveryFee: 60, taxBps: 500,
			wantTax: 0, wantTotal: 60,
		},
		{
			name:   "fee_is_untaxed",
			amount: 1000, deliveryFee: 100, taxBps: 1800,
			wantTax: 180, wantTotal: 1280,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tax, total := computeTotals(tc.amount, tc.baseDiscount, tc.deliveryFee, tc.taxBps)
			require.Equal(t, tc.wantTax, tax)
			require.Equal(t, tc.wantTotal, total)
		})
	}
}
