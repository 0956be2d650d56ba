package types

type DiscountType string

const (
	DiscountTypePercent      DiscountType = "percent"
	DiscountTypeFixed        DiscountType = "fixed"
	DiscountTypeFreeShipping DiscountType = "free_shipping"
)
