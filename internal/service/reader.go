package service

import (
	"context"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
)

// EventLogReader is the read side of the game log
//
//go:generate mockgen -package=mocks -destination=mocks/mock_reader.go github.com/dice-stats/internal/service EventLogReader
type EventLogReader interface {
	GamesInRange(ctx context.Context, from, to time.Time) ([]domain.GameRef, error)
	Games(ctx context.Context, gameIDs, playerIDs []uuid.UUID) ([]domain.Game, error)
	Players(ctx context.Context, activeOnly bool) ([]domain.Player, error)
	EventTypes(ctx context.Context) ([]domain.EventType, error)
	EventType(ctx context.Context, id uuid.UUID) (*domain.EventType, error)
	EventTypeRevisions(ctx context.Context, eventTypeIDs []uuid.UUID) ([]domain.EventTypeRevision, error)
	Rounds(ctx context.Context, gameIDs []uuid.UUID) ([]domain.RoundRef, error)
	Attendances(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error)
	Finalists(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error)
}
