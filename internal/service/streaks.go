package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/ranking"
	"github.com/dice-stats/internal/streak"
	"github.com/google/uuid"
)

func sortRounds(rounds []domain.RoundRef, gameOrder map[uuid.UUID]int) {
	slices.SortStableFunc(rounds, func(a, b domain.RoundRef) int {
		if c := cmp.Compare(gameOrder[a.GameID], gameOrder[b.GameID]); c != 0 {
			return c
		}
		if c := a.Datetime.Compare(b.Datetime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
}

// streakRow computes the longest and the current run of subset within full
func streakRow(player domain.Player, full, subset []uuid.UUID, roundTime map[uuid.UUID]time.Time) (domain.StreakRow, error) {
	run, err := streak.Max(full, subset)
	if err != nil {
		return domain.StreakRow{}, fmt.Errorf("streak for player %s: %w", player.ID, err)
	}

	row := domain.StreakRow{
		PlayerID: player.ID,
		Name:     player.Name,
		Max:      len(run),
		Current:  streak.Current(full, subset),
	}
	if len(run) > 0 {
		from, to := roundTime[run[0]], roundTime[run[len(run)-1]]
		row.MaxFrom, row.MaxTo = &from, &to
	}
	return row, nil
}

func rankStreaks(rows []domain.StreakRow) {
	ranking.Dense(rows, func(r *domain.StreakRow, rank int) { r.Rank = rank },
		ranking.Int(func(r domain.StreakRow) int { return r.Max }, ranking.Desc),
		ranking.Int(func(r domain.StreakRow) int { return r.Current }, ranking.Desc),
	)
}

// AttendanceStreaks finds each player's longest and current run of attended
// rounds among all rounds of the scope
func (s *StatisticsService) AttendanceStreaks(ctx context.Context, scope domain.Scope) ([]domain.StreakRow, error) {
	a, err := s.loadAttendance(ctx, scope)
	if err != nil {
		return nil, err
	}

	full := make([]uuid.UUID, len(a.rounds))
	roundTime := make(map[uuid.UUID]time.Time, len(a.rounds))
	for i, r := range a.rounds {
		full[i] = r.ID
		roundTime[r.ID] = r.Datetime
	}

	rows := make([]domain.StreakRow, 0, len(a.players))
	for _, p := range a.players {
		var subset []uuid.UUID
		for _, id := range full {
			if a.attended[id][p.ID] {
				subset = append(subset, id)
			}
		}
		row, err := streakRow(p, full, subset, roundTime)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	rankStreaks(rows)
	return rows, nil
}

// conditionStreaks runs over each player's attended rounds and counts the
// rounds for which hit reports true
func (d *dataset) conditionStreaks(hit func(game *domain.Game, round *domain.Round, player uuid.UUID) (bool, error)) ([]domain.StreakRow, error) {
	rows := make([]domain.StreakRow, 0, len(d.players))
	for _, p := range d.players {
		var full, subset []uuid.UUID
		roundTime := make(map[uuid.UUID]time.Time)
		for gi := range d.games {
			for ri := range d.games[gi].Rounds {
				round := &d.games[gi].Rounds[ri]
				if !round.Attended(p.ID) {
					continue
				}
				full = append(full, round.ID)
				roundTime[round.ID] = round.Datetime
				ok, err := hit(&d.games[gi], round, p.ID)
				if err != nil {
					return nil, err
				}
				if ok {
					subset = append(subset, round.ID)
				}
			}
		}
		row, err := streakRow(p, full, subset, roundTime)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	rankStreaks(rows)
	return rows, nil
}

// EventTypeStreaks finds runs of attended rounds in which the player had at
// least one event of the given type
func (s *StatisticsService) EventTypeStreaks(ctx context.Context, scope domain.Scope, eventTypeID uuid.UUID) ([]domain.StreakRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	if _, ok := d.typeByID[eventTypeID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventTypeNotFound, eventTypeID)
	}

	return d.conditionStreaks(func(_ *domain.Game, round *domain.Round, player uuid.UUID) (bool, error) {
		for _, event := range round.Events {
			if event.PlayerID == player && event.EventTypeID == eventTypeID {
				return true, nil
			}
		}
		return false, nil
	})
}

// PenaltyStreaks finds runs of attended rounds in which the player had at
// least one event with a positive penalty
func (s *StatisticsService) PenaltyStreaks(ctx context.Context, scope domain.Scope) ([]domain.StreakRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	return d.conditionStreaks(func(game *domain.Game, round *domain.Round, player uuid.UUID) (bool, error) {
		for _, event := range round.Events {
			if event.PlayerID != player {
				continue
			}
			item, err := d.price(event, game.Datetime)
			if err != nil {
				return false, err
			}
			if item.Value != nil && item.Unit != nil && *item.Value > 0 {
				return true, nil
			}
		}
		return false, nil
	})
}
