package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeValidate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, Scope{From: from, To: to}.Validate())
	assert.NoError(t, Scope{From: from, To: from}.Validate())
	assert.ErrorIs(t, Scope{From: to, To: from}.Validate(), ErrInvalidScope)
	assert.ErrorIs(t, Scope{To: to}.Validate(), ErrInvalidScope)
}

func TestParseScope(t *testing.T) {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		scope, err := ParseScope("", "", false, now, 30)
		require.NoError(t, err)
		endOfDay := time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		assert.Equal(t, endOfDay, scope.To)
		assert.Equal(t, endOfDay.AddDate(0, 0, -30), scope.From)
	})

	t.Run("defaults are stable within a day", func(t *testing.T) {
		morning, err := ParseScope("", "", false, time.Date(2024, 10, 15, 0, 0, 1, 0, time.UTC), 30)
		require.NoError(t, err)
		evening, err := ParseScope("", "", false, time.Date(2024, 10, 15, 23, 59, 59, 0, time.UTC), 30)
		require.NoError(t, err)
		assert.Equal(t, morning, evening)

		tomorrow, err := ParseScope("", "", false, time.Date(2024, 10, 16, 0, 0, 0, 0, time.UTC), 30)
		require.NoError(t, err)
		assert.NotEqual(t, morning, tomorrow)
	})

	t.Run("dates cover the whole last day", func(t *testing.T) {
		scope, err := ParseScope("2024-01-01", "2024-01-31", true, now, 30)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), scope.From)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), scope.To)
		assert.True(t, scope.ActivePlayersOnly)
	})

	t.Run("rfc3339", func(t *testing.T) {
		scope, err := ParseScope("2024-01-01T10:00:00Z", "2024-01-01T12:00:00Z", false, now, 30)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, scope.To.Sub(scope.From))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseScope("yesterday", "", false, now, 30)
		assert.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("reversed", func(t *testing.T) {
		_, err := ParseScope("2024-02-01", "2024-01-01", false, now, 30)
		assert.ErrorIs(t, err, ErrInvalidScope)
	})
}

func TestEndOfDay(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	got := EndOfDay(time.Date(2024, 10, 15, 0, 30, 0, 0, berlin))
	assert.Equal(t, time.Date(2024, 10, 15, 23, 59, 59, int(time.Second-time.Nanosecond), berlin), got)
	assert.Equal(t, DefaultScope(got, 7), DefaultScope(time.Date(2024, 10, 15, 9, 0, 0, 0, berlin), 7))
}

func TestSumFor(t *testing.T) {
	sums := []PenaltySum{{Unit: PenaltyUnitEuro, Sum: 2.5}, {Unit: PenaltyUnitBeerCrate, Sum: 1}}
	assert.Equal(t, 2.5, SumFor(sums, PenaltyUnitEuro))
	assert.Equal(t, 0.0, SumFor(nil, PenaltyUnitEuro))
}

func TestEventOccurrences(t *testing.T) {
	assert.Equal(t, 1, (&Event{}).Occurrences())
	assert.Equal(t, 3, (&Event{Multiplier: 3}).Occurrences())
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrEventTypeNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidScope))
}
