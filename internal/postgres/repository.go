package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the game log from PostgreSQL
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(cfg *config.PostgresConfig, logger *slog.Logger) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Repository{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// GamesInRange returns the games between from and to that count for
// statistics, oldest first
func (r *Repository) GamesInRange(ctx context.Context, from, to time.Time) ([]domain.GameRef, error) {
	query := `
		SELECT id, datetime
		FROM games
		WHERE datetime BETWEEN $1 AND $2
		  AND NOT exclude_from_statistics
		ORDER BY datetime, id
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing games in range: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRef{}
	for rows.Next() {
		var game domain.GameRef
		if err := rows.Scan(&game.ID, &game.Datetime); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing games in range: %w", err)
	}
	return games, nil
}

// Players returns every player, soft-deleted ones included unless activeOnly
func (r *Repository) Players(ctx context.Context, activeOnly bool) ([]domain.Player, error) {
	query := `
		SELECT id, name, active, deleted_at
		FROM players
		WHERE NOT $1 OR (active AND deleted_at IS NULL)
		ORDER BY name, id
	`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var player domain.Player
		if err := rows.Scan(&player.ID, &player.Name, &player.Active, &player.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// EventTypes returns all event types including retired ones
func (r *Repository) EventTypes(ctx context.Context) ([]domain.EventType, error) {
	query := `
		SELECT id, description, context, trigger, penalty_value, penalty_unit, deleted_at
		FROM event_types
		ORDER BY description, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing event types: %w", err)
	}
	defer rows.Close()

	eventTypes := []domain.EventType{}
	for rows.Next() {
		var (
			eventType domain.EventType
			ctxName   string
			trigger   *string
			unit      *string
		)
		err := rows.Scan(
			&eventType.ID,
			&eventType.Description,
			&ctxName,
			&trigger,
			&eventType.PenaltyValue,
			&unit,
			&eventType.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event type: %w", err)
		}
		eventType.Context = domain.Context(ctxName)
		eventType.Trigger = toTrigger(trigger)
		eventType.PenaltyUnit = toUnit(unit)
		eventTypes = append(eventTypes, eventType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing event types: %w", err)
	}
	return eventTypes, nil
}

// EventType returns a single event type
func (r *Repository) EventType(ctx context.Context, id uuid.UUID) (*domain.EventType, error) {
	query := `
		SELECT id, description, context, trigger, penalty_value, penalty_unit, deleted_at
		FROM event_types
		WHERE id = $1
	`
	var (
		eventType domain.EventType
		ctxName   string
		trigger   *string
		unit      *string
	)
	err := r.pool.QueryRow(ctx, query, id.String()).Scan(
		&eventType.ID,
		&eventType.Description,
		&ctxName,
		&trigger,
		&eventType.PenaltyValue,
		&unit,
		&eventType.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventTypeNotFound
		}
		return nil, fmt.Errorf("getting event type: %w", err)
	}
	eventType.Context = domain.Context(ctxName)
	eventType.Trigger = toTrigger(trigger)
	eventType.PenaltyUnit = toUnit(unit)
	return &eventType, nil
}

// EventTypeRevisions returns the revision history of the given event types
func (r *Repository) EventTypeRevisions(ctx context.Context, eventTypeIDs []uuid.UUID) ([]domain.EventTypeRevision, error) {
	if len(eventTypeIDs) == 0 {
		return []domain.EventTypeRevision{}, nil
	}

	query := `
		SELECT id, event_type_id, revision_type, created_at, description, context, trigger, penalty_value, penalty_unit
		FROM event_type_revisions
		WHERE event_type_id = ANY($1::uuid[])
		ORDER BY event_type_id, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, idStrings(eventTypeIDs))
	if err != nil {
		return nil, fmt.Errorf("listing event type revisions: %w", err)
	}
	defer rows.Close()

	revisions := []domain.EventTypeRevision{}
	for rows.Next() {
		var (
			revision     domain.EventTypeRevision
			revisionType string
			ctxName      string
			trigger      *string
			unit         *string
		)
		err := rows.Scan(
			&revision.ID,
			&revision.EventTypeID,
			&revisionType,
			&revision.CreatedAt,
			&revision.Description,
			&ctxName,
			&trigger,
			&revision.PenaltyValue,
			&unit,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event type revision: %w", err)
		}
		revision.Type = domain.RevisionType(revisionType)
		revision.Context = domain.Context(ctxName)
		revision.Trigger = toTrigger(trigger)
		revision.PenaltyUnit = toUnit(unit)
		revisions = append(revisions, revision)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing event type revisions: %w", err)
	}
	return revisions, nil
}

// Rounds returns the rounds of the given games in play order
func (r *Repository) Rounds(ctx context.Context, gameIDs []uuid.UUID) ([]domain.RoundRef, error) {
	if len(gameIDs) == 0 {
		return []domain.RoundRef{}, nil
	}

	rows, err := r.pool.Query(ctx, roundsQuery, idStrings(gameIDs))
	if err != nil {
		return nil, fmt.Errorf("listing rounds: %w", err)
	}
	return scanRounds(rows)
}

// Attendances returns who attended the given rounds
func (r *Repository) Attendances(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error) {
	return r.roundPlayers(ctx, attendeesQuery, roundIDs, "listing attendances")
}

// Finalists returns who reached the final of the given rounds
func (r *Repository) Finalists(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error) {
	return r.roundPlayers(ctx, finalistsQuery, roundIDs, "listing finalists")
}

func (r *Repository) roundPlayers(ctx context.Context, query string, roundIDs []uuid.UUID, op string) ([]domain.RoundPlayer, error) {
	if len(roundIDs) == 0 {
		return []domain.RoundPlayer{}, nil
	}

	rows, err := r.pool.Query(ctx, query, idStrings(roundIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pairs, err := scanRoundPlayers(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pairs, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toTrigger(s *string) *domain.Trigger {
	if s == nil {
		return nil
	}
	t := domain.Trigger(*s)
	return &t
}

func toUnit(s *string) *domain.PenaltyUnit {
	if s == nil {
		return nil
	}
	u := domain.PenaltyUnit(*s)
	return &u
}
