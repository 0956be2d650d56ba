package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuplicateOutcome(t *testing.T) {
	dup, err := duplicateOutcome(nil)
	require.NoError(t, err)
	require.False(t, dup)

	// a duplicate abort becomes the stored success outcome
	dup, err = duplicateOutcome(fmt.Errorf("%w: gateway order ord_1", ErrDuplicateSubmission))
	require.NoError(t, err)
	require.True(t, dup)

	// anything else still fails the confirmation
	fault := errors.New("connection reset")
	dup, err = duplicateOutcome(fault)
	require.ErrorIs(t, err, fault)
	require.False(t, dup)
}
