package points

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/ranking"
	"github.com/google/uuid"
)

// PlayerGame is a player's attended rounds of one game
type PlayerGame struct {
	PlayerID uuid.UUID
	Name     string
	Rounds   []RoundOutcome
}

// GameInput lists every player of the scope for one game, attendees or not
type GameInput struct {
	GameID   uuid.UUID
	Datetime time.Time
	Players  []PlayerGame
}

// ScoreGame sums each player's rounds, ranks the players by game points and
// awards placement points. Rounds with an invalid outcome are skipped and
// reported; the rest of the table is still computed.
func ScoreGame(in GameInput) (domain.GamePointsTable, []error) {
	var invalid []error
	rows := make([]domain.PlayerPoints, 0, len(in.Players))

	for _, p := range in.Players {
		row := domain.PlayerPoints{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Attended: len(p.Rounds) > 0,
		}
		for i, outcome := range p.Rounds {
			score, err := ScoreRound(outcome)
			if err != nil {
				invalid = append(invalid, fmt.Errorf("game %s player %s round %d: %w", in.GameID, p.PlayerID, i+1, err))
				continue
			}
			row.RoundPoints += score.RoundPoints
			row.BonusPoints += score.BonusPoints
			row.PenaltyPoints += score.PenaltyPoints
		}
		row.GamePoints = row.RoundPoints + row.BonusPoints + row.PenaltyPoints
		rows = append(rows, row)
	}

	sortByName(rows, func(r domain.PlayerPoints) (string, uuid.UUID) { return r.Name, r.PlayerID })
	ranking.Dense(rows, func(r *domain.PlayerPoints, rank int) { r.Rank = rank },
		ranking.Int(func(r domain.PlayerPoints) int { return boolInt(r.Attended) }, ranking.Desc),
		ranking.Int(func(r domain.PlayerPoints) int { return r.GamePoints }, ranking.Desc),
	)
	for i := range rows {
		rows[i].PlacementPoints = Placement(rows[i].Rank, rows[i].Attended)
	}

	return domain.GamePointsTable{
		GameID:   in.GameID,
		Datetime: in.Datetime,
		Players:  rows,
	}, invalid
}

// Accumulate keeps running totals per player over the games in order and
// re-ranks after every game. Tendency is the previous rank minus the current
// one, so a positive value means the player moved up.
func Accumulate(tables []domain.GamePointsTable) domain.AccumulatedPoints {
	totals := make(map[uuid.UUID]*domain.AccumulatedRow)
	previousRank := make(map[uuid.UUID]int)
	result := domain.AccumulatedPoints{
		Standings: []domain.AccumulatedRow{},
		History:   make([]domain.AccumulatedGame, 0, len(tables)),
	}

	for _, table := range tables {
		for _, p := range table.Players {
			acc, ok := totals[p.PlayerID]
			if !ok {
				acc = &domain.AccumulatedRow{PlayerID: p.PlayerID, Name: p.Name}
				totals[p.PlayerID] = acc
			}
			if p.Attended {
				acc.Games++
			}
			acc.RoundPoints += p.RoundPoints
			acc.BonusPoints += p.BonusPoints
			acc.PenaltyPoints += p.PenaltyPoints
			acc.GamePoints += p.GamePoints
			acc.PlacementPoints += p.PlacementPoints
		}

		standings := make([]domain.AccumulatedRow, 0, len(totals))
		for _, acc := range totals {
			row := *acc
			row.Tendency = nil
			standings = append(standings, row)
		}
		sortByName(standings, func(r domain.AccumulatedRow) (string, uuid.UUID) { return r.Name, r.PlayerID })
		ranking.Dense(standings, func(r *domain.AccumulatedRow, rank int) { r.Rank = rank },
			ranking.Int(func(r domain.AccumulatedRow) int { return r.PlacementPoints }, ranking.Desc),
			ranking.Int(func(r domain.AccumulatedRow) int { return r.GamePoints }, ranking.Desc),
		)

		for i := range standings {
			if prev, ok := previousRank[standings[i].PlayerID]; ok {
				tendency := prev - standings[i].Rank
				standings[i].Tendency = &tendency
			}
		}
		for _, row := range standings {
			previousRank[row.PlayerID] = row.Rank
		}

		result.History = append(result.History, domain.AccumulatedGame{
			GameID:    table.GameID,
			Datetime:  table.Datetime,
			Standings: standings,
		})
		result.Standings = standings
	}

	return result
}

func sortByName[T any](rows []T, key func(T) (string, uuid.UUID)) {
	slices.SortFunc(rows, func(a, b T) int {
		an, aid := key(a)
		bn, bid := key(b)
		if c := cmp.Compare(an, bn); c != 0 {
			return c
		}
		return cmp.Compare(aid.String(), bid.String())
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
