package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dice-stats/internal/cache"
	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/penalty"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// StatisticsService derives leaderboards, ledgers, records and streaks from
// the game log. It never writes and is safe for concurrent use.
type StatisticsService struct {
	reader EventLogReader
	cache  *cache.Cache
	logger *slog.Logger
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(reader EventLogReader, c *cache.Cache, logger *slog.Logger) *StatisticsService {
	return &StatisticsService{
		reader: reader,
		cache:  c,
		logger: logger,
	}
}

// scopeBase is the resolved game and player set of a scope
type scopeBase struct {
	games   []domain.GameRef
	players []domain.Player
}

func (b *scopeBase) gameIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.games))
	for i, g := range b.games {
		ids[i] = g.ID
	}
	return ids
}

func (s *StatisticsService) base(ctx context.Context, scope domain.Scope) (*scopeBase, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var b scopeBase
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := s.gamesInRange(gctx, scope.From, scope.To)
		b.games = games
		return err
	})
	g.Go(func() error {
		players, err := s.players(gctx, scope.ActivePlayersOnly)
		b.players = players
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(b.games, func(a, c domain.GameRef) int {
		if n := a.Datetime.Compare(c.Datetime); n != 0 {
			return n
		}
		return cmp.Compare(a.ID.String(), c.ID.String())
	})
	slices.SortStableFunc(b.players, func(a, c domain.Player) int {
		if n := cmp.Compare(a.Name, c.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID.String(), c.ID.String())
	})
	return &b, nil
}

// dataset is everything a full statistic needs: complete games, the scope's
// players, event types and their revision history
type dataset struct {
	games      []domain.Game
	players    []domain.Player
	inScope    map[uuid.UUID]bool
	eventTypes []domain.EventType
	typeByID   map[uuid.UUID]domain.EventType
	history    penalty.History
}

func (s *StatisticsService) load(ctx context.Context, scope domain.Scope) (*dataset, error) {
	b, err := s.base(ctx, scope)
	if err != nil {
		return nil, err
	}

	var (
		games      []domain.Game
		eventTypes []domain.EventType
		revisions  []domain.EventTypeRevision
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.games(gctx, b.gameIDs())
		games = loaded
		return err
	})
	g.Go(func() error {
		types, err := s.eventTypes(gctx)
		if err != nil {
			return err
		}
		eventTypes = types
		ids := make([]uuid.UUID, len(types))
		for i, t := range types {
			ids[i] = t.ID
		}
		revisions, err = s.revisions(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(games, func(a, c domain.Game) int {
		return a.Datetime.Compare(c.Datetime)
	})

	d := &dataset{
		games:      games,
		players:    b.players,
		inScope:    make(map[uuid.UUID]bool, len(b.players)),
		eventTypes: eventTypes,
		typeByID:   make(map[uuid.UUID]domain.EventType, len(eventTypes)),
		history:    penalty.NewHistory(revisions),
	}
	for _, p := range b.players {
		d.inScope[p.ID] = true
	}
	for _, t := range eventTypes {
		d.typeByID[t.ID] = t
	}
	return d, nil
}

// eachEvent calls fn for every event of an in-scope player, game events of a
// game before its rounds' events. round is nil for game events.
func (d *dataset) eachEvent(fn func(game *domain.Game, round *domain.Round, event domain.Event) error) error {
	for gi := range d.games {
		game := &d.games[gi]
		for _, event := range game.Events {
			if !d.inScope[event.PlayerID] {
				continue
			}
			if err := fn(game, nil, event); err != nil {
				return err
			}
		}
		for ri := range game.Rounds {
			round := &game.Rounds[ri]
			for _, event := range round.Events {
				if !d.inScope[event.PlayerID] {
					continue
				}
				if err := fn(game, round, event); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// price returns the priced occurrence of an event. Round events are priced
// at the date of their game.
func (d *dataset) price(event domain.Event, gameDate time.Time) (penalty.Item, error) {
	eventType, err := d.eventTypeOf(event)
	if err != nil {
		return penalty.Item{}, err
	}
	value, unit, err := d.history.EventPrice(event, eventType, gameDate)
	if err != nil {
		return penalty.Item{}, fmt.Errorf("pricing event %s: %w", event.ID, err)
	}
	return penalty.Item{Multiplier: event.Multiplier, Value: value, Unit: unit}, nil
}

// eventTypeOf returns the type an event was logged with
func (d *dataset) eventTypeOf(event domain.Event) (domain.EventType, error) {
	eventType, ok := d.typeByID[event.EventTypeID]
	if !ok {
		return domain.EventType{}, fmt.Errorf("%w: %s", domain.ErrEventTypeNotFound, event.EventTypeID)
	}
	return eventType, nil
}

func (d *dataset) trigger(event domain.Event) (domain.Trigger, bool) {
	eventType, ok := d.typeByID[event.EventTypeID]
	if !ok || eventType.Trigger == nil {
		return "", false
	}
	return *eventType.Trigger, true
}

// roundFacts are the trigger counts of one round
type roundFacts struct {
	specialRolls int
	special      map[uuid.UUID]int
	lost         map[uuid.UUID]bool
	combos       map[uuid.UUID]int
	badRolls     map[uuid.UUID]int
}

// facts counts triggers over every event of the round, players outside the
// scope included
func (d *dataset) facts(round *domain.Round) roundFacts {
	f := roundFacts{
		special:  make(map[uuid.UUID]int),
		lost:     make(map[uuid.UUID]bool),
		combos:   make(map[uuid.UUID]int),
		badRolls: make(map[uuid.UUID]int),
	}
	for _, event := range round.Events {
		trigger, ok := d.trigger(event)
		if !ok {
			continue
		}
		n := event.Occurrences()
		switch trigger {
		case domain.TriggerSpecialRoll:
			f.specialRolls += n
			f.special[event.PlayerID] += n
		case domain.TriggerRoundLost:
			f.lost[event.PlayerID] = true
		case domain.TriggerSpecialCombo:
			f.combos[event.PlayerID] += n
		case domain.TriggerBadRoll:
			f.badRolls[event.PlayerID] += n
		}
	}
	return f
}

func (s *StatisticsService) gamesInRange(ctx context.Context, from, to time.Time) ([]domain.GameRef, error) {
	key := cache.Key("games-in-range", from.UTC().Format(time.RFC3339Nano), to.UTC().Format(time.RFC3339Nano))
	games, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.GameRef, error) {
		return s.reader.GamesInRange(ctx, from, to)
	})
	if err != nil {
		return nil, fmt.Errorf("loading games in range: %w", err)
	}
	return games, nil
}

func (s *StatisticsService) players(ctx context.Context, activeOnly bool) ([]domain.Player, error) {
	key := cache.Key("players", fmt.Sprintf("active=%t", activeOnly))
	players, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.Player, error) {
		return s.reader.Players(ctx, activeOnly)
	})
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	return players, nil
}

func (s *StatisticsService) eventTypes(ctx context.Context) ([]domain.EventType, error) {
	types, err := cache.Remember(ctx, s.cache, "event-types", s.reader.EventTypes)
	if err != nil {
		return nil, fmt.Errorf("loading event types: %w", err)
	}
	return types, nil
}

func (s *StatisticsService) revisions(ctx context.Context, eventTypeIDs []uuid.UUID) ([]domain.EventTypeRevision, error) {
	key := cache.Key("revisions", cache.HashIDs(eventTypeIDs))
	revisions, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.EventTypeRevision, error) {
		return s.reader.EventTypeRevisions(ctx, eventTypeIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("loading event type revisions: %w", err)
	}
	return revisions, nil
}

func (s *StatisticsService) games(ctx context.Context, gameIDs []uuid.UUID) ([]domain.Game, error) {
	key := cache.Key("games", cache.HashIDs(gameIDs))
	games, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.Game, error) {
		return s.reader.Games(ctx, gameIDs, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}
	return games, nil
}

func (s *StatisticsService) rounds(ctx context.Context, gameIDs []uuid.UUID) ([]domain.RoundRef, error) {
	key := cache.Key("rounds", cache.HashIDs(gameIDs))
	rounds, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.RoundRef, error) {
		return s.reader.Rounds(ctx, gameIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("loading rounds: %w", err)
	}
	return rounds, nil
}

func (s *StatisticsService) attendances(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error) {
	key := cache.Key("attendances", cache.HashIDs(roundIDs))
	pairs, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.RoundPlayer, error) {
		return s.reader.Attendances(ctx, roundIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("loading attendances: %w", err)
	}
	return pairs, nil
}

func (s *StatisticsService) finalists(ctx context.Context, roundIDs []uuid.UUID) ([]domain.RoundPlayer, error) {
	key := cache.Key("finalists", cache.HashIDs(roundIDs))
	pairs, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.RoundPlayer, error) {
		return s.reader.Finalists(ctx, roundIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("loading finalists: %w", err)
	}
	return pairs, nil
}

// quote divides count by total, nil when there is nothing to divide by
func quote(count, total int) *float64 {
	if total == 0 {
		return nil
	}
	q := float64(count) / float64(total)
	return &q
}
