package domain

import "math"

// PriceSegment is one tier block inside a rental cost breakdown.
type PriceSegment struct {
	Tier     PricingTier `json:"tier"`
	Units    int         `json:"units"`
	UnitCost float64     `json:"unit_cost"`
	Subtotal float64     `json:"subtotal"`
}

// RentalCost prices a rental of the given length in days using the cheapest
// applicable tier: whole months first when a monthly price exists and the
// length covers at least 30 days, then whole weeks, with the remainder always
// billed at the daily rate.
func RentalCost(days int, daily float64, weekly, monthly *float64) (float64, []PriceSegment) {
	if days <= 0 {
		return 0, nil
	}

	var segments []PriceSegment

	switch {
	case days >= 30 && monthly != nil:
		months := days / 30
		rest := days % 30
		segments = append(segments, PriceSegment{
			Tier:     TierMonthly,
			Units:    months,
			UnitCost: *monthly,
			Subtotal: round2(float64(months) * *monthly),
		})
		if rest > 0 {
			segments = append(segments, PriceSegment{
				Tier:     TierDaily,
				Units:    rest,
				UnitCost: daily,
				Subtotal: round2(float64(rest) * daily),
			})
		}

	case days >= 7 && weekly != nil:
		weeks := days / 7
		rest := days % 7
		segments = append(segments, PriceSegment{
			Tier:     TierWeekly,
			Units:    weeks,
			UnitCost: *weekly,
			Subtotal: round2(float64(weeks) * *weekly),
		})
		if rest > 0 {
			segments = append(segments, PriceSegment{
				Tier:     TierDaily,
				Units:    rest,
				UnitCost: daily,
				Subtotal: round2(float64(rest) * daily),
			})
		}

	default:
		segments = append(segments, PriceSegment{
			Tier:     TierDaily,
			Units:    days,
			UnitCost: daily,
			Subtotal: round2(float64(days) * daily),
		})
	}

	var total float64
	for _, s := range segments {
		total += s.Subtotal
	}
	return round2(total), segments
}

// LineTotal computes a quote or reservation line total from its snapshot.
func LineTotal(unitPrice float64, period, quantity int) float64 {
	return round2(unitPrice * float64(period) * float64(quantity))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
