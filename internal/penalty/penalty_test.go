package penalty

import (
	"testing"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveAt(t *testing.T) {
	typeID := uuid.New()
	revisions := []domain.EventTypeRevision{
		{EventTypeID: typeID, Type: domain.RevisionUpdate, CreatedAt: day(2020, 1, 5), PenaltyValue: ptr(1.0), PenaltyUnit: ptr(domain.PenaltyUnitEuro)},
		{EventTypeID: typeID, Type: domain.RevisionInsert, CreatedAt: day(2020, 1, 1), PenaltyValue: ptr(0.5), PenaltyUnit: ptr(domain.PenaltyUnitEuro)},
	}

	t.Run("picks the revision in force", func(t *testing.T) {
		rev, err := ResolveAt(revisions, day(2020, 1, 4))
		require.NoError(t, err)
		assert.Equal(t, domain.RevisionInsert, rev.Type)
		assert.Equal(t, 0.5, *rev.PenaltyValue)
	})

	t.Run("revision date is inclusive", func(t *testing.T) {
		rev, err := ResolveAt(revisions, day(2020, 1, 5))
		require.NoError(t, err)
		assert.Equal(t, 1.0, *rev.PenaltyValue)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := []domain.EventTypeRevision{revisions[1], revisions[0]}
		rev, err := ResolveAt(reversed, day(2021, 6, 1))
		require.NoError(t, err)
		assert.Equal(t, 1.0, *rev.PenaltyValue)
	})

	t.Run("before the first revision fails", func(t *testing.T) {
		_, err := ResolveAt(revisions, day(2019, 12, 31))
		assert.ErrorIs(t, err, domain.ErrNoValidHistory)
	})

	t.Run("empty history fails", func(t *testing.T) {
		_, err := ResolveAt(nil, day(2020, 1, 1))
		assert.ErrorIs(t, err, domain.ErrNoValidHistory)
	})
}

func TestHistoryEventPrice(t *testing.T) {
	eventType := domain.EventType{ID: uuid.New(), Description: "Lost round", PenaltyValue: ptr(2.0), PenaltyUnit: ptr(domain.PenaltyUnitEuro)}
	history := NewHistory([]domain.EventTypeRevision{
		{EventTypeID: eventType.ID, CreatedAt: day(2020, 1, 1), PenaltyValue: ptr(0.5), PenaltyUnit: ptr(domain.PenaltyUnitEuro)},
		{EventTypeID: eventType.ID, CreatedAt: day(2022, 1, 1), PenaltyValue: ptr(2.0), PenaltyUnit: ptr(domain.PenaltyUnitEuro)},
	})

	snapshot := domain.Event{PenaltyValue: ptr(0.3), PenaltyUnit: ptr(domain.PenaltyUnitBeerCrate)}
	value, unit, err := history.EventPrice(snapshot, eventType, day(2023, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.3, *value)
	assert.Equal(t, domain.PenaltyUnitBeerCrate, *unit)

	legacy := domain.Event{}
	value, unit, err = history.EventPrice(legacy, eventType, day(2021, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.5, *value, "priced at the game date, not today")
	assert.Equal(t, domain.PenaltyUnitEuro, *unit)

	_, _, err = history.EventPrice(legacy, eventType, day(2019, 3, 1))
	assert.ErrorIs(t, err, domain.ErrNoValidHistory)
}

func TestSummarize(t *testing.T) {
	euro := ptr(domain.PenaltyUnitEuro)
	crate := ptr(domain.PenaltyUnitBeerCrate)

	assert.Empty(t, Summarize(nil))

	assert.Equal(t,
		[]domain.PenaltySum{{Unit: domain.PenaltyUnitEuro, Sum: 0.5}},
		Summarize([]Item{{Multiplier: 1, Value: ptr(0.5), Unit: euro}}),
	)

	sums := Summarize([]Item{
		{Multiplier: 0, Value: ptr(0.1), Unit: euro},
		{Multiplier: 3, Value: ptr(0.2), Unit: euro},
		{Multiplier: 1, Value: ptr(1.0), Unit: crate},
		{Multiplier: 1, Value: nil, Unit: nil},
	})
	assert.Equal(t, []domain.PenaltySum{
		{Unit: domain.PenaltyUnitEuro, Sum: 0.7},
		{Unit: domain.PenaltyUnitBeerCrate, Sum: 1},
	}, sums)

	zero := Summarize([]Item{
		{Multiplier: 1, Value: ptr(0.0), Unit: euro},
		{Multiplier: 1, Value: ptr(1.0), Unit: crate},
	})
	assert.Equal(t, []domain.PenaltySum{{Unit: domain.PenaltyUnitBeerCrate, Sum: 1}}, zero)
}

func TestCombine(t *testing.T) {
	game := []domain.PenaltySum{{Unit: domain.PenaltyUnitEuro, Sum: 1.5}}
	round := []domain.PenaltySum{
		{Unit: domain.PenaltyUnitEuro, Sum: 2.25},
		{Unit: domain.PenaltyUnitBeerCrate, Sum: 1},
	}

	assert.Equal(t, []domain.PenaltySum{
		{Unit: domain.PenaltyUnitEuro, Sum: 3.75},
		{Unit: domain.PenaltyUnitBeerCrate, Sum: 1},
	}, Combine(game, round))

	assert.Equal(t, game, Combine(game, nil))
	assert.Empty(t, Combine(nil, nil))
}
