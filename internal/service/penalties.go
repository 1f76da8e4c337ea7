package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/penalty"
	"github.com/dice-stats/internal/ranking"
	"github.com/google/uuid"
)

// PenaltiesByPlayer is the penalty ledger per player, ranked by the euro
// total
func (s *StatisticsService) PenaltiesByPlayer(ctx context.Context, scope domain.Scope) ([]domain.PlayerPenaltyRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	gameItems := make(map[uuid.UUID][]penalty.Item)
	roundItems := make(map[uuid.UUID][]penalty.Item)
	err = d.eachEvent(func(game *domain.Game, round *domain.Round, event domain.Event) error {
		item, err := d.price(event, game.Datetime)
		if err != nil {
			return err
		}
		if round == nil {
			gameItems[event.PlayerID] = append(gameItems[event.PlayerID], item)
		} else {
			roundItems[event.PlayerID] = append(roundItems[event.PlayerID], item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PlayerPenaltyRow, 0, len(d.players))
	for _, p := range d.players {
		gameSums := penalty.Summarize(gameItems[p.ID])
		roundSums := penalty.Summarize(roundItems[p.ID])
		combined := penalty.Combine(gameSums, roundSums)
		rows = append(rows, domain.PlayerPenaltyRow{
			PlayerID:       p.ID,
			Name:           p.Name,
			GamePenalties:  gameSums,
			RoundPenalties: roundSums,
			Penalties:      combined,
			EuroSum:        domain.SumFor(combined, domain.PenaltyUnitEuro),
		})
	}

	ranking.Dense(rows, func(r *domain.PlayerPenaltyRow, rank int) { r.Rank = rank },
		ranking.Float(func(r domain.PlayerPenaltyRow) float64 { return r.EuroSum }, ranking.Desc),
	)
	return rows, nil
}

// gameLedger holds the priced items of one game
type gameLedger struct {
	game       *domain.Game
	gameItems  []penalty.Item
	roundItems map[uuid.UUID][]penalty.Item
}

func (d *dataset) ledgers() ([]gameLedger, error) {
	ledgers := make([]gameLedger, len(d.games))
	index := make(map[uuid.UUID]int, len(d.games))
	for i := range d.games {
		ledgers[i] = gameLedger{game: &d.games[i], roundItems: make(map[uuid.UUID][]penalty.Item)}
		index[d.games[i].ID] = i
	}

	err := d.eachEvent(func(game *domain.Game, round *domain.Round, event domain.Event) error {
		item, err := d.price(event, game.Datetime)
		if err != nil {
			return err
		}
		ledger := &ledgers[index[game.ID]]
		if round == nil {
			ledger.gameItems = append(ledger.gameItems, item)
		} else {
			ledger.roundItems[round.ID] = append(ledger.roundItems[round.ID], item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ledgers, nil
}

func (l gameLedger) allRoundItems() []penalty.Item {
	var items []penalty.Item
	for _, round := range l.game.Rounds {
		items = append(items, l.roundItems[round.ID]...)
	}
	return items
}

// GamePenalties is the penalty ledger per game in chronological order
func (s *StatisticsService) GamePenalties(ctx context.Context, scope domain.Scope) ([]domain.GamePenaltyRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	ledgers, err := d.ledgers()
	if err != nil {
		return nil, err
	}

	rows := make([]domain.GamePenaltyRow, 0, len(ledgers))
	for _, l := range ledgers {
		gameSums := penalty.Summarize(l.gameItems)
		roundSums := penalty.Summarize(l.allRoundItems())
		rows = append(rows, domain.GamePenaltyRow{
			GameID:         l.game.ID,
			Datetime:       l.game.Datetime,
			RoundCount:     len(l.game.Rounds),
			GamePenalties:  gameSums,
			RoundPenalties: roundSums,
			Penalties:      penalty.Combine(gameSums, roundSums),
		})
	}
	return rows, nil
}

// MostExpensive finds the game, the round and the game average per round
// with the highest euro total. On ties the earliest wins.
func (s *StatisticsService) MostExpensive(ctx context.Context, scope domain.Scope) (*domain.MostExpensive, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	ledgers, err := d.ledgers()
	if err != nil {
		return nil, err
	}

	result := &domain.MostExpensive{}
	for _, l := range ledgers {
		roundSums := penalty.Summarize(l.allRoundItems())
		combined := penalty.Combine(penalty.Summarize(l.gameItems), roundSums)
		euro := domain.SumFor(combined, domain.PenaltyUnitEuro)

		if result.Game == nil || euro > result.Game.EuroSum {
			result.Game = &domain.ExpensiveGame{
				GameID:     l.game.ID,
				Datetime:   l.game.Datetime,
				RoundCount: len(l.game.Rounds),
				EuroSum:    euro,
			}
		}

		if n := len(l.game.Rounds); n > 0 {
			average := math.Round(euro/float64(n)*100) / 100
			if result.RoundAverage == nil || average > result.RoundAverage.Average {
				result.RoundAverage = &domain.ExpensiveAverage{
					GameID:     l.game.ID,
					Datetime:   l.game.Datetime,
					RoundCount: n,
					Average:    average,
				}
			}
		}

		for _, round := range l.game.Rounds {
			roundEuro := domain.SumFor(penalty.Summarize(l.roundItems[round.ID]), domain.PenaltyUnitEuro)
			if result.Round == nil || roundEuro > result.Round.EuroSum {
				result.Round = &domain.ExpensiveRound{
					RoundID:  round.ID,
					GameID:   l.game.ID,
					Datetime: round.Datetime,
					EuroSum:  roundEuro,
				}
			}
		}
	}
	return result, nil
}

// Summary returns the headline numbers of the scope
func (s *StatisticsService) Summary(ctx context.Context, scope domain.Scope) (*domain.Summary, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Games:   len(d.games),
		Players: len(d.players),
	}
	var gameItems, roundItems []penalty.Item
	err = d.eachEvent(func(game *domain.Game, round *domain.Round, event domain.Event) error {
		item, err := d.price(event, game.Datetime)
		if err != nil {
			return err
		}
		summary.Events += event.Occurrences()
		if round == nil {
			gameItems = append(gameItems, item)
		} else {
			roundItems = append(roundItems, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, game := range d.games {
		summary.Rounds += len(game.Rounds)
	}
	summary.Penalties = penalty.Combine(penalty.Summarize(gameItems), penalty.Summarize(roundItems))
	return summary, nil
}

// ResolvePenalty returns the revision of an event type in force at the given
// date
func (s *StatisticsService) ResolvePenalty(ctx context.Context, eventTypeID uuid.UUID, at time.Time) (domain.EventTypeRevision, error) {
	revisions, err := s.revisions(ctx, []uuid.UUID{eventTypeID})
	if err != nil {
		return domain.EventTypeRevision{}, err
	}
	if len(revisions) == 0 {
		if _, err := s.reader.EventType(ctx, eventTypeID); err != nil {
			return domain.EventTypeRevision{}, fmt.Errorf("resolving penalty: %w", err)
		}
	}

	rev, err := penalty.ResolveAt(revisions, at)
	if err != nil {
		return domain.EventTypeRevision{}, fmt.Errorf("event type %s: %w", eventTypeID, err)
	}
	return rev, nil
}
