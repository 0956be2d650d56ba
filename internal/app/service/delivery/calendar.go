package delivery

import (
	"time"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/types"
)

type MealKind string

const (
	MealKindVeg    MealKind = "veg"
	MealKindNonVeg MealKind = "non_veg"
)

// Delivery is one entitled delivery date.
type Delivery struct {
	Date          time.Time `json:"date"`
	Kind          MealKind  `json:"kind"`
	WithBreakfast bool      `json:"with_breakfast"`
}

// WeekdayIndex maps time.Weekday to the Monday=0 convention used across
// the delivery pattern and veg-day selection.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DeliversOn reports whether a plan with mealsPerWeek delivers on the
// given weekday index. 5/week means Mon-Fri, 3/week means Mon/Wed/Fri,
// anything else fills weekdays from Monday.
func DeliversOn(weekday, mealsPerWeek int) bool {
	switch mealsPerWeek {
	case 5:
		return weekday <= 4
	case 3:
		return weekday == 0 || weekday == 2 || weekday == 4
	default:
		return weekday < mealsPerWeek
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Schedule computes the ordered delivery dates for sub in [from, to]
// inclusive, excluding skipped dates and anything outside the
// subscription lifetime. Pure: identical inputs yield identical output.
func Schedule(sub *models.Subscription, from, to time.Time) []Delivery {
	plan := sub.PlanSnapshot()
	if plan == nil {
		return nil
	}

	from = dateOnly(from)
	to = dateOnly(to)
	start := dateOnly(sub.StartDate)
	if from.Before(start) {
		from = start
	}
	var end *time.Time
	if sub.EndDate != nil {
		e := dateOnly(*sub.EndDate)
		end = &e
	}

	vegDays := sub.VegDaySet()

	var out []Delivery
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if end != nil && d.After(*end) {
			break
		}
		wd := WeekdayIndex(d)
		if !DeliversOn(wd, plan.MealsPerWeek) {
			continue
		}
		if sub.IsSkipped(d) {
			continue
		}
		kind := MealKindNonVeg
		if plan.Vegetarian || vegDays[wd] {
			kind = MealKindVeg
		}
		out = append(out, Delivery{Date: d, Kind: kind, WithBreakfast: sub.WithBreakfast})
	}
	return out
}

// WouldDeliver reports whether the calendar would produce date for sub if
// it were not skipped. Used to validate skip requests.
func WouldDeliver(sub *models.Subscription, date time.Time) bool {
	plan := sub.PlanSnapshot()
	if plan == nil {
		return false
	}
	d := dateOnly(date)
	if d.Before(dateOnly(sub.StartDate)) {
		return false
	}
	if sub.EndDate != nil && d.After(dateOnly(*sub.EndDate)) {
		return false
	}
	return DeliversOn(WeekdayIndex(d), plan.MealsPerWeek)
}

// PromisedMeals counts the pattern dates in the half-open billing period
// [periodStart, periodEnd), clipped to the subscription lifetime and
// ignoring skips. Computed once per period; immutable mid-period.
func PromisedMeals(plan *types.MealPlan, periodStart, periodEnd, startDate time.Time, endDate *time.Time) int {
	if plan == nil || !periodEnd.After(periodStart) {
		return 0
	}
	from := dateOnly(periodStart)
	if s := dateOnly(startDate); from.Before(s) {
		from = s
	}
	to := dateOnly(periodEnd)

	count := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if endDate != nil && d.After(dateOnly(*endDate)) {
			break
		}
		if DeliversOn(WeekdayIndex(d), plan.MealsPerWeek) {
			count++
		}
	}
	return count
}
