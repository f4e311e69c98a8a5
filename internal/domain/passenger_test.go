package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeAt_Anniversary(t *testing.T) {
	today := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	for _, k := range []int{1, 18, 35, 90} {
		birth := today.AddDate(-k, 0, 0)
		assert.Equal(t, k, AgeAt(birth, today), "exact anniversary, k=%d", k)

		dayAfterBirth := birth.AddDate(0, 0, 1)
		assert.Equal(t, k-1, AgeAt(dayAfterBirth, today), "one day before anniversary, k=%d", k)
	}
}

func TestAgeAt_LeapDay(t *testing.T) {
	birth := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, AgeAt(birth, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, AgeAt(birth, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFullName_SkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "Abel T", FullName("Abel", "", "T"))
	assert.Equal(t, "Abel Kebede T", FullName(" Abel ", "Kebede", "T"))
	assert.Equal(t, "T", FullName("", " ", "T"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("1990-05-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.May, d.Month())

	_, err = ParseDate("01/05/1990")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSeatAvailability(t *testing.T) {
	a := SeatAvailability{TotalSeats: 45, AvailableSeats: 5}

	assert.True(t, a.IsSelectable(1))
	assert.True(t, a.IsSelectable(5))
	assert.False(t, a.IsSelectable(6))
	assert.False(t, a.IsSelectable(0))
	assert.False(t, a.IsSoldOut())
	assert.InDelta(t, 88.88, a.OccupancyRate(), 0.01)

	soldOut := SeatAvailability{TotalSeats: 45, AvailableSeats: 0}
	assert.True(t, soldOut.IsSoldOut())
	assert.False(t, soldOut.IsSelectable(1))
}

func TestBookingStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending Payment", StatusPending.Label())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, BookingStatus("refunded").IsValid())
}
