package types

// MealPlan is a catalog entry loaded from configuration. Prices are in
// minor currency units (paise).
type MealPlan struct {
	ID           string `json:"id" mapstructure:"id"`
	Name         string `json:"name" mapstructure:"name"`
	Vegetarian   bool   `json:"vegetarian" mapstructure:"vegetarian"`
	MealsPerWeek int    `json:"meals_per_week" mapstructure:"meals_per_week"`
	// WeeklyPrice / MonthlyPrice are the base prices per billing period.
	WeeklyPrice  int64 `json:"weekly_price" mapstructure:"weekly_price"`
	MonthlyPrice int64 `json:"monthly_price" mapstructure:"monthly_price"`
	// Breakfast add-on per billing period.
	BreakfastWeeklyPrice  int64 `json:"breakfast_weekly_price" mapstructure:"breakfast_weekly_price"`
	BreakfastMonthlyPrice int64 `json:"breakfast_monthly_price" mapstructure:"breakfast_monthly_price"`
}

// PriceFor returns the tax-exclusive base price for the given frequency,
// including the breakfast add-on when selected.
func (p *MealPlan) PriceFor(freq Frequency, withBreakfast bool) int64 {
	if p == nil {
		return 0
	}
	price := p.WeeklyPrice
	addon := p.BreakfastWeeklyPrice
	if freq == FrequencyMonthly {
		price = p.MonthlyPrice
		addon = p.BreakfastMonthlyPrice
	}
	if withBreakfast {
		price += addon
	}
	return price
}
