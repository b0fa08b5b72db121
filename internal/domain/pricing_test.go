package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestRentalCost_DailyOnly(t *testing.T) {
	total, segments := RentalCost(29, 10, nil, nil)

	assert.Equal(t, 290.0, total)
	assert.Len(t, segments, 1)
	assert.Equal(t, TierDaily, segments[0].Tier)
	assert.Equal(t, 29, segments[0].Units)
}

func TestRentalCost_WeeklyPlusRemainder(t *testing.T) {
	// 10 days with a weekly price: 1 week + 3 days
	total, segments := RentalCost(10, 10, fptr(60), nil)

	assert.Equal(t, 90.0, total)
	assert.Len(t, segments, 2)
	assert.Equal(t, TierWeekly, segments[0].Tier)
	assert.Equal(t, 1, segments[0].Units)
	assert.Equal(t, 60.0, segments[0].Subtotal)
	assert.Equal(t, TierDaily, segments[1].Tier)
	assert.Equal(t, 3, segments[1].Units)
	assert.Equal(t, 30.0, segments[1].Subtotal)
}

func TestRentalCost_MonthlyPlusRemainder(t *testing.T) {
	// 35 days with a monthly price: 1 month + 5 days
	total, segments := RentalCost(35, 10, nil, fptr(250))

	assert.Equal(t, 300.0, total)
	assert.Len(t, segments, 2)
	assert.Equal(t, TierMonthly, segments[0].Tier)
	assert.Equal(t, 250.0, segments[0].Subtotal)
	assert.Equal(t, 50.0, segments[1].Subtotal)
}

func TestRentalCost_TierBoundaries(t *testing.T) {
	// exactly one week, no remainder segment
	total, segments := RentalCost(7, 10, fptr(60), nil)
	assert.Equal(t, 60.0, total)
	assert.Len(t, segments, 1)

	// exactly one month
	total, segments = RentalCost(30, 10, fptr(60), fptr(250))
	assert.Equal(t, 250.0, total)
	assert.Len(t, segments, 1)

	// 29 days with weekly: 4 weeks + 1 day, monthly not applicable yet
	total, _ = RentalCost(29, 10, fptr(60), fptr(250))
	assert.Equal(t, 250.0, total)

	// 6 days never reaches the weekly tier
	total, segments = RentalCost(6, 10, fptr(60), nil)
	assert.Equal(t, 60.0, total)
	assert.Equal(t, TierDaily, segments[0].Tier)
}

func TestRentalCost_NonPositiveLength(t *testing.T) {
	total, segments := RentalCost(0, 10, nil, nil)
	assert.Zero(t, total)
	assert.Nil(t, segments)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 450.0, LineTotal(75, 3, 2))
	assert.Equal(t, 20.01, LineTotal(6.67, 1, 3))
}
