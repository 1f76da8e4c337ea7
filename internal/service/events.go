package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/penalty"
	"github.com/dice-stats/internal/ranking"
	"github.com/google/uuid"
)

// EventTypeCounts counts every event type's occurrences in the scope with
// the penalties they produced. activeOnly leaves retired event types out.
func (s *StatisticsService) EventTypeCounts(ctx context.Context, scope domain.Scope, activeOnly bool) ([]domain.EventTypeCountRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int)
	items := make(map[uuid.UUID][]penalty.Item)
	err = d.eachEvent(func(game *domain.Game, _ *domain.Round, event domain.Event) error {
		item, err := d.price(event, game.Datetime)
		if err != nil {
			return err
		}
		counts[event.EventTypeID] += event.Occurrences()
		items[event.EventTypeID] = append(items[event.EventTypeID], item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.EventTypeCountRow, 0, len(d.eventTypes))
	for _, t := range d.eventTypes {
		if activeOnly && t.Deleted() {
			continue
		}
		rows = append(rows, domain.EventTypeCountRow{
			EventTypeID: t.ID,
			Description: t.Description,
			Context:     t.Context,
			Trigger:     t.Trigger,
			Deleted:     t.Deleted(),
			Count:       counts[t.ID],
			Penalties:   penalty.Summarize(items[t.ID]),
		})
	}

	ranking.Dense(rows, func(r *domain.EventTypeCountRow, rank int) { r.Rank = rank },
		ranking.Int(func(r domain.EventTypeCountRow) int { return r.Count }, ranking.Desc),
	)
	return rows, nil
}

// EventTypeCountsPerPlayer counts one event type per player. The quote is
// per attended round for round event types and per attended game for game
// event types.
func (s *StatisticsService) EventTypeCountsPerPlayer(ctx context.Context, scope domain.Scope, eventTypeID uuid.UUID) ([]domain.PlayerCountRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	eventType, ok := d.typeByID[eventTypeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventTypeNotFound, eventTypeID)
	}

	counts := make(map[uuid.UUID]int)
	err = d.eachEvent(func(_ *domain.Game, _ *domain.Round, event domain.Event) error {
		if _, err := d.eventTypeOf(event); err != nil {
			return err
		}
		if event.EventTypeID == eventTypeID {
			counts[event.PlayerID] += event.Occurrences()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attendedRounds := make(map[uuid.UUID]int)
	attendedGames := make(map[uuid.UUID]int)
	for _, game := range d.games {
		seen := make(map[uuid.UUID]bool)
		for _, round := range game.Rounds {
			for _, id := range round.Attendees {
				attendedRounds[id]++
				if !seen[id] {
					seen[id] = true
					attendedGames[id]++
				}
			}
		}
	}

	rows := make([]domain.PlayerCountRow, 0, len(d.players))
	for _, p := range d.players {
		total := attendedRounds[p.ID]
		if eventType.Context == domain.ContextGame {
			total = attendedGames[p.ID]
		}
		rows = append(rows, domain.PlayerCountRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Count:    counts[p.ID],
			Quote:    quote(counts[p.ID], total),
		})
	}

	ranking.Dense(rows, func(r *domain.PlayerCountRow, rank int) { r.Rank = rank },
		ranking.Int(func(r domain.PlayerCountRow) int { return r.Count }, ranking.Desc),
		ranking.OptionalFloat(func(r domain.PlayerCountRow) *float64 { return r.Quote }, ranking.Desc),
	)
	return rows, nil
}

// Records finds, for every trigger-tagged event type, the most occurrences a
// player reached within a single game. All tied holders are listed, oldest
// game first.
func (s *StatisticsService) Records(ctx context.Context, scope domain.Scope) ([]domain.RecordRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	type holding struct {
		player uuid.UUID
		game   int
	}
	perType := make(map[uuid.UUID]map[holding]int)
	gameIndex := make(map[uuid.UUID]int, len(d.games))
	for i, g := range d.games {
		gameIndex[g.ID] = i
	}
	err = d.eachEvent(func(game *domain.Game, _ *domain.Round, event domain.Event) error {
		eventType, err := d.eventTypeOf(event)
		if err != nil {
			return err
		}
		if eventType.Trigger == nil {
			return nil
		}
		if perType[event.EventTypeID] == nil {
			perType[event.EventTypeID] = make(map[holding]int)
		}
		perType[event.EventTypeID][holding{player: event.PlayerID, game: gameIndex[game.ID]}] += event.Occurrences()
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := playerNames(d.players)
	rows := []domain.RecordRow{}
	for _, t := range d.eventTypes {
		counts := perType[t.ID]
		if t.Trigger == nil || len(counts) == 0 {
			continue
		}

		best := 0
		for _, n := range counts {
			best = max(best, n)
		}

		var holders []holding
		for h, n := range counts {
			if n == best {
				holders = append(holders, h)
			}
		}
		slices.SortFunc(holders, func(a, b holding) int {
			if c := cmp.Compare(a.game, b.game); c != 0 {
				return c
			}
			return cmp.Compare(names[a.player], names[b.player])
		})

		row := domain.RecordRow{
			EventTypeID: t.ID,
			Description: t.Description,
			Trigger:     *t.Trigger,
			Count:       best,
			Holders:     make([]domain.RecordHolder, 0, len(holders)),
		}
		for _, h := range holders {
			game := d.games[h.game]
			row.Holders = append(row.Holders, domain.RecordHolder{
				PlayerID: h.player,
				Name:     names[h.player],
				GameID:   game.ID,
				Datetime: game.Datetime,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SpecialRollEffectivity relates the attended rounds in which a player had a
// special roll to those of them the player did not lose
func (s *StatisticsService) SpecialRollEffectivity(ctx context.Context, scope domain.Scope) ([]domain.EffectivityRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	specialRounds := make(map[uuid.UUID]int)
	converted := make(map[uuid.UUID]int)
	for gi := range d.games {
		for ri := range d.games[gi].Rounds {
			round := &d.games[gi].Rounds[ri]
			facts := d.facts(round)
			for _, id := range round.Attendees {
				if facts.special[id] == 0 {
					continue
				}
				specialRounds[id]++
				if !facts.lost[id] {
					converted[id]++
				}
			}
		}
	}

	rows := make([]domain.EffectivityRow, 0, len(d.players))
	for _, p := range d.players {
		rows = append(rows, domain.EffectivityRow{
			PlayerID:     p.ID,
			Name:         p.Name,
			SpecialRolls: specialRounds[p.ID],
			Converted:    converted[p.ID],
			Quote:        quote(converted[p.ID], specialRounds[p.ID]),
		})
	}

	ranking.Dense(rows, func(r *domain.EffectivityRow, rank int) { r.Rank = rank },
		ranking.OptionalFloat(func(r domain.EffectivityRow) *float64 { return r.Quote }, ranking.Desc),
		ranking.Int(func(r domain.EffectivityRow) int { return r.SpecialRolls }, ranking.Desc),
	)
	return rows, nil
}

func playerNames(players []domain.Player) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names
}
