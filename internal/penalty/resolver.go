// Package penalty prices events against the rules in force at the time and
// sums penalties per unit.
package penalty

import (
	"fmt"
	"slices"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
)

// ResolveAt returns the revision in force at the reference date: the latest
// revision created at or before it. Revisions may be passed in any order.
func ResolveAt(revisions []domain.EventTypeRevision, at time.Time) (domain.EventTypeRevision, error) {
	sorted := slices.Clone(revisions)
	slices.SortStableFunc(sorted, func(a, b domain.EventTypeRevision) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	for _, rev := range sorted {
		if !rev.CreatedAt.After(at) {
			return rev, nil
		}
	}

	return domain.EventTypeRevision{}, fmt.Errorf("%w: %s", domain.ErrNoValidHistory, at.Format(time.RFC3339))
}

// History indexes revisions by event type
type History map[uuid.UUID][]domain.EventTypeRevision

// NewHistory groups revisions by their event type
func NewHistory(revisions []domain.EventTypeRevision) History {
	h := make(History)
	for _, rev := range revisions {
		h[rev.EventTypeID] = append(h[rev.EventTypeID], rev)
	}
	return h
}

// PriceAt resolves the penalty of an event type at the reference date
func (h History) PriceAt(eventType domain.EventType, at time.Time) (*float64, *domain.PenaltyUnit, error) {
	rev, err := ResolveAt(h[eventType.ID], at)
	if err != nil {
		return nil, nil, fmt.Errorf("event type %s (%s): %w", eventType.ID, eventType.Description, err)
	}
	return rev.PenaltyValue, rev.PenaltyUnit, nil
}

// EventPrice returns the penalty of an event. The snapshot taken when the
// event was written wins; events without one are priced by the revision in
// force at the date of their game.
func (h History) EventPrice(event domain.Event, eventType domain.EventType, gameDate time.Time) (*float64, *domain.PenaltyUnit, error) {
	if event.PenaltyValue != nil && event.PenaltyUnit != nil {
		return event.PenaltyValue, event.PenaltyUnit, nil
	}
	return h.PriceAt(eventType, gameDate)
}
