package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/footbook/FB-GroundBookingService/pkg/types"
)

func testGround() *Ground {
	return &Ground{
		ID:          1,
		OwnerID:     10,
		Name:        "Arena One",
		DayPrice:    500,
		NightPrice:  800,
		OpeningTime: types.MustTimeString("06:00"),
		ClosingTime: types.MustTimeString("01:00"),
		IsActive:    true,
	}
}

func TestPriceForHour(t *testing.T) {
	g := testGround()

	// границы дневного тарифа [6, 18)
	assert.Equal(t, int64(800), g.PriceForHour(5))
	assert.Equal(t, int64(500), g.PriceForHour(6))
	assert.Equal(t, int64(500), g.PriceForHour(17))
	assert.Equal(t, int64(800), g.PriceForHour(18))
	assert.Equal(t, int64(800), g.PriceForHour(0))
}

func TestSlotRangesFallsBackToOperatingWindow(t *testing.T) {
	g := testGround()

	ranges := g.SlotRanges()
	assert.Len(t, ranges, 1)
	assert.Equal(t, g.OpeningTime, ranges[0].Start)
	assert.Equal(t, g.ClosingTime, ranges[0].End)
}

func TestSlotRangesExplicit(t *testing.T) {
	g := testGround()
	s1 := types.MustTimeString("06:00")
	e1 := types.MustTimeString("12:00")
	s2 := types.MustTimeString("16:00")
	e2 := types.MustTimeString("23:00")
	g.Slot1Start, g.Slot1End = &s1, &e1
	g.Slot2Start, g.Slot2End = &s2, &e2

	ranges := g.SlotRanges()
	assert.Len(t, ranges, 2)
	assert.Equal(t, s1, ranges[0].Start)
	assert.Equal(t, e2, ranges[1].End)
}

func TestIsWithinOperatingHoursOvernight(t *testing.T) {
	g := testGround() // 06:00 - 01:00, через полночь

	assert.True(t, g.IsOvernight())
	assert.True(t, g.IsWithinOperatingHours(types.MustTimeString("06:00")))
	assert.True(t, g.IsWithinOperatingHours(types.MustTimeString("23:00")))
	assert.True(t, g.IsWithinOperatingHours(types.MustTimeString("00:30")))
	assert.False(t, g.IsWithinOperatingHours(types.MustTimeString("01:00")))
	assert.False(t, g.IsWithinOperatingHours(types.MustTimeString("03:00")))
}

func TestBookingAmountsConsistent(t *testing.T) {
	b := &Booking{TotalAmount: 500, PaidAmount: 99, DueAmount: 401}
	assert.True(t, b.AmountsConsistent())

	b.DueAmount = 400
	assert.False(t, b.AmountsConsistent())
}
