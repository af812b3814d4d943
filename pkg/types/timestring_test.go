package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)
	assert.Equal(t, "18:00", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("18-00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("")
	assert.Error(t, err)
}

func TestTimeStringHourAndMinutes(t *testing.T) {
	ts := MustTimeString("06:30")
	assert.Equal(t, 6, ts.Hour())
	assert.Equal(t, 390, ts.Minutes())

	midnight := MustTimeString("00:00")
	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, 0, midnight.Minutes())
}

func TestTimeStringComparisons(t *testing.T) {
	a := MustTimeString("06:00")
	b := MustTimeString("18:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := MustTimeString("23:30")

	next, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "00:30", next.String())
}

func TestTimeStringOn(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	date := time.Date(2026, 2, 19, 0, 0, 0, 0, loc)
	instant := MustTimeString("18:00").On(date, loc)

	assert.Equal(t, 2026, instant.Year())
	assert.Equal(t, time.February, instant.Month())
	assert.Equal(t, 19, instant.Day())
	assert.Equal(t, 18, instant.Hour())
	assert.Equal(t, 0, instant.Minute())
}

func TestNewTimeString(t *testing.T) {
	instant := time.Date(2026, 2, 19, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, "07:05", NewTimeString(instant).String())
}
