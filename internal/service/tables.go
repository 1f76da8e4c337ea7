package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
)

// TableParams carries the per-table arguments beyond the scope
type TableParams struct {
	EventTypeID      uuid.UUID
	ActiveEventTypes bool
}

type tableFunc func(s *StatisticsService, ctx context.Context, scope domain.Scope, p TableParams) (any, error)

func needsEventType(p TableParams) error {
	if p.EventTypeID == uuid.Nil {
		return fmt.Errorf("%w: event_type_id is required", domain.ErrInvalidRequest)
	}
	return nil
}

var tables = map[string]tableFunc{
	"round-attendance": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.RoundAttendance(ctx, scope)
	},
	"game-attendance": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.GameAttendance(ctx, scope)
	},
	"finals": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.Finals(ctx, scope)
	},
	"hosts": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.Hosts(ctx, scope)
	},
	"event-types": func(s *StatisticsService, ctx context.Context, scope domain.Scope, p TableParams) (any, error) {
		return s.EventTypeCounts(ctx, scope, p.ActiveEventTypes)
	},
	"event-type-players": func(s *StatisticsService, ctx context.Context, scope domain.Scope, p TableParams) (any, error) {
		if err := needsEventType(p); err != nil {
			return nil, err
		}
		return s.EventTypeCountsPerPlayer(ctx, scope, p.EventTypeID)
	},
	"penalties": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.PenaltiesByPlayer(ctx, scope)
	},
	"game-penalties": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.GamePenalties(ctx, scope)
	},
	"most-expensive": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.MostExpensive(ctx, scope)
	},
	"records": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.Records(ctx, scope)
	},
	"special-roll-effectivity": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.SpecialRollEffectivity(ctx, scope)
	},
	"game-points": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.GamePoints(ctx, scope)
	},
	"accumulated-points": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.AccumulatedPoints(ctx, scope)
	},
	"attendance-streaks": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.AttendanceStreaks(ctx, scope)
	},
	"event-type-streaks": func(s *StatisticsService, ctx context.Context, scope domain.Scope, p TableParams) (any, error) {
		if err := needsEventType(p); err != nil {
			return nil, err
		}
		return s.EventTypeStreaks(ctx, scope, p.EventTypeID)
	},
	"penalty-streaks": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.PenaltyStreaks(ctx, scope)
	},
	"summary": func(s *StatisticsService, ctx context.Context, scope domain.Scope, _ TableParams) (any, error) {
		return s.Summary(ctx, scope)
	},
}

// TableNames lists the tables Table can compute, sorted
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Table computes the named table. Unknown names and missing parameters are
// reported as domain.ErrInvalidRequest.
func (s *StatisticsService) Table(ctx context.Context, name string, scope domain.Scope, params TableParams) (any, error) {
	fn, ok := tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown table %q", domain.ErrInvalidRequest, name)
	}
	return fn(s, ctx, scope, params)
}
