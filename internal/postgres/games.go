package postgres

import (
	"context"
	"fmt"

	"github.com/dice-stats/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	gamesQuery = `
		SELECT id, datetime, completed, exclude_from_statistics, place_type, host_id
		FROM games
		WHERE id = ANY($1::uuid[])
		ORDER BY datetime, id
	`
	roundsQuery = `
		SELECT id, game_id, datetime
		FROM rounds
		WHERE game_id = ANY($1::uuid[])
		ORDER BY datetime, id
	`
	attendeesQuery = `
		SELECT round_id, player_id
		FROM round_attendees
		WHERE round_id = ANY($1::uuid[])
		ORDER BY round_id, player_id
	`
	finalistsQuery = `
		SELECT round_id, player_id
		FROM round_finalists
		WHERE round_id = ANY($1::uuid[])
		ORDER BY round_id, player_id
	`
	gameAttendeesQuery = `
		SELECT ra.round_id, ra.player_id
		FROM round_attendees ra
		JOIN rounds r ON r.id = ra.round_id
		WHERE r.game_id = ANY($1::uuid[])
		ORDER BY ra.round_id, ra.player_id
	`
	gameFinalistsQuery = `
		SELECT rf.round_id, rf.player_id
		FROM round_finalists rf
		JOIN rounds r ON r.id = rf.round_id
		WHERE r.game_id = ANY($1::uuid[])
		ORDER BY rf.round_id, rf.player_id
	`
	eventsQuery = `
		SELECT e.id, e.datetime, e.context, e.multiplier, e.penalty_value, e.penalty_unit,
		       COALESCE(e.comment, ''), e.player_id, e.event_type_id, e.game_id, e.round_id
		FROM events e
		LEFT JOIN rounds r ON r.id = e.round_id
		WHERE (e.game_id = ANY($1::uuid[]) OR r.game_id = ANY($1::uuid[]))
		  AND (cardinality($2::uuid[]) = 0 OR e.player_id = ANY($2::uuid[]))
		ORDER BY e.datetime, e.id
	`
)

// eventRow is an event together with the parent it hangs off
type eventRow struct {
	event   domain.Event
	gameID  *uuid.UUID
	roundID *uuid.UUID
}

// Games loads complete games with rounds, attendance, finalists and events.
// When playerIDs is non-empty only those players' events are returned.
func (r *Repository) Games(ctx context.Context, gameIDs, playerIDs []uuid.UUID) ([]domain.Game, error) {
	if len(gameIDs) == 0 {
		return []domain.Game{}, nil
	}

	ids := idStrings(gameIDs)
	batch := &pgx.Batch{}
	batch.Queue(gamesQuery, ids)
	batch.Queue(roundsQuery, ids)
	batch.Queue(gameAttendeesQuery, ids)
	batch.Queue(gameFinalistsQuery, ids)
	batch.Queue(eventsQuery, ids, idStrings(playerIDs))

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}
	games, err := scanGames(rows)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("loading rounds: %w", err)
	}
	rounds, err := scanRounds(rows)
	if err != nil {
		return nil, fmt.Errorf("loading rounds: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("loading attendances: %w", err)
	}
	attendees, err := scanRoundPlayers(rows)
	if err != nil {
		return nil, fmt.Errorf("loading attendances: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("loading finalists: %w", err)
	}
	finalists, err := scanRoundPlayers(rows)
	if err != nil {
		return nil, fmt.Errorf("loading finalists: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	assembled, orphans := assembleGames(games, rounds, attendees, finalists, events)
	if orphans > 0 {
		r.logger.Warn("events without a loaded parent were skipped", "count", orphans)
	}
	return assembled, nil
}

func scanGames(rows pgx.Rows) ([]domain.Game, error) {
	defer rows.Close()

	games := []domain.Game{}
	for rows.Next() {
		var (
			game      domain.Game
			placeType *string
		)
		err := rows.Scan(
			&game.ID,
			&game.Datetime,
			&game.Completed,
			&game.ExcludeFromStatistics,
			&placeType,
			&game.HostID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		if placeType != nil {
			game.PlaceType = domain.PlaceType(*placeType)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanRounds(rows pgx.Rows) ([]domain.RoundRef, error) {
	defer rows.Close()

	rounds := []domain.RoundRef{}
	for rows.Next() {
		var round domain.RoundRef
		if err := rows.Scan(&round.ID, &round.GameID, &round.Datetime); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

func scanRoundPlayers(rows pgx.Rows) ([]domain.RoundPlayer, error) {
	defer rows.Close()

	pairs := []domain.RoundPlayer{}
	for rows.Next() {
		var pair domain.RoundPlayer
		if err := rows.Scan(&pair.RoundID, &pair.PlayerID); err != nil {
			return nil, fmt.Errorf("scanning round player: %w", err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}

func scanEvents(rows pgx.Rows) ([]eventRow, error) {
	defer rows.Close()

	events := []eventRow{}
	for rows.Next() {
		var (
			row        eventRow
			ctxName    string
			multiplier *int32
			unit       *string
		)
		err := rows.Scan(
			&row.event.ID,
			&row.event.Datetime,
			&ctxName,
			&multiplier,
			&row.event.PenaltyValue,
			&unit,
			&row.event.Comment,
			&row.event.PlayerID,
			&row.event.EventTypeID,
			&row.gameID,
			&row.roundID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		row.event.Context = domain.Context(ctxName)
		if multiplier != nil {
			row.event.Multiplier = int(*multiplier)
		}
		row.event.PenaltyUnit = toUnit(unit)
		events = append(events, row)
	}
	return events, rows.Err()
}

// assembleGames hangs rounds, attendance, finalists and events off their
// games. Events whose parent is not among the loaded games or rounds are
// counted and dropped.
func assembleGames(games []domain.Game, rounds []domain.RoundRef, attendees, finalists []domain.RoundPlayer, events []eventRow) ([]domain.Game, int) {
	gameIndex := make(map[uuid.UUID]int, len(games))
	for i := range games {
		games[i].Rounds = []domain.Round{}
		games[i].Events = []domain.Event{}
		gameIndex[games[i].ID] = i
	}

	type roundPos struct{ game, round int }
	roundIndex := make(map[uuid.UUID]roundPos, len(rounds))
	for _, ref := range rounds {
		gi, ok := gameIndex[ref.GameID]
		if !ok {
			continue
		}
		games[gi].Rounds = append(games[gi].Rounds, domain.Round{
			ID:        ref.ID,
			GameID:    ref.GameID,
			Datetime:  ref.Datetime,
			Attendees: []uuid.UUID{},
			Finalists: []uuid.UUID{},
			Events:    []domain.Event{},
		})
		roundIndex[ref.ID] = roundPos{game: gi, round: len(games[gi].Rounds) - 1}
	}

	for _, pair := range attendees {
		if pos, ok := roundIndex[pair.RoundID]; ok {
			round := &games[pos.game].Rounds[pos.round]
			round.Attendees = append(round.Attendees, pair.PlayerID)
		}
	}
	for _, pair := range finalists {
		if pos, ok := roundIndex[pair.RoundID]; ok {
			round := &games[pos.game].Rounds[pos.round]
			round.Finalists = append(round.Finalists, pair.PlayerID)
		}
	}

	orphans := 0
	for _, row := range events {
		switch {
		case row.roundID != nil:
			pos, ok := roundIndex[*row.roundID]
			if !ok {
				orphans++
				continue
			}
			round := &games[pos.game].Rounds[pos.round]
			round.Events = append(round.Events, row.event)
		case row.gameID != nil:
			gi, ok := gameIndex[*row.gameID]
			if !ok {
				orphans++
				continue
			}
			games[gi].Events = append(games[gi].Events, row.event)
		default:
			orphans++
		}
	}

	return games, orphans
}
