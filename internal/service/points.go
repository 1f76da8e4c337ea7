package service

import (
	"context"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/points"
)

// GamePoints scores every game of the scope and ranks its players
func (s *StatisticsService) GamePoints(ctx context.Context, scope domain.Scope) ([]domain.GamePointsTable, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	return s.gamePoints(d), nil
}

func (s *StatisticsService) gamePoints(d *dataset) []domain.GamePointsTable {
	tables := make([]domain.GamePointsTable, 0, len(d.games))
	for gi := range d.games {
		game := &d.games[gi]

		rounds := make(map[int][]points.RoundOutcome, len(d.players))
		for ri := range game.Rounds {
			round := &game.Rounds[ri]
			facts := d.facts(round)
			for pi, p := range d.players {
				if !round.Attended(p.ID) {
					continue
				}
				rounds[pi] = append(rounds[pi], points.RoundOutcome{
					RoundHasFinal:      round.HasFinal(),
					RoundSpecialRolls:  facts.specialRolls,
					IsFinalist:         round.IsFinalist(p.ID),
					Lost:               facts.lost[p.ID],
					PlayerSpecialRolls: facts.special[p.ID],
					SpecialCombos:      facts.combos[p.ID],
					BadRolls:           facts.badRolls[p.ID],
				})
			}
		}

		in := points.GameInput{
			GameID:   game.ID,
			Datetime: game.Datetime,
			Players:  make([]points.PlayerGame, len(d.players)),
		}
		for pi, p := range d.players {
			in.Players[pi] = points.PlayerGame{PlayerID: p.ID, Name: p.Name, Rounds: rounds[pi]}
		}

		table, invalid := points.ScoreGame(in)
		for _, err := range invalid {
			s.logger.Warn("skipping round with invalid outcome", "game_id", game.ID, "error", err)
		}
		tables = append(tables, table)
	}
	return tables
}

// AccumulatedPoints sums the game tables over the scope and records the
// standing with its tendency after every game
func (s *StatisticsService) AccumulatedPoints(ctx context.Context, scope domain.Scope) (*domain.AccumulatedPoints, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	accumulated := points.Accumulate(s.gamePoints(d))
	return &accumulated, nil
}
