package service

import (
	"context"

	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/ranking"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// attendance is the light view of a scope: rounds with who attended and who
// reached the final, without events
type attendance struct {
	games     []domain.GameRef
	players   []domain.Player
	rounds    []domain.RoundRef
	attended  map[uuid.UUID]map[uuid.UUID]bool
	finalists map[uuid.UUID]map[uuid.UUID]bool
}

func (a *attendance) hasFinal(roundID uuid.UUID) bool {
	return len(a.finalists[roundID]) > 0
}

func (s *StatisticsService) loadAttendance(ctx context.Context, scope domain.Scope) (*attendance, error) {
	b, err := s.base(ctx, scope)
	if err != nil {
		return nil, err
	}

	rounds, err := s.rounds(ctx, b.gameIDs())
	if err != nil {
		return nil, err
	}
	order := make(map[uuid.UUID]int, len(b.games))
	for i, g := range b.games {
		order[g.ID] = i
	}
	ordered := make([]domain.RoundRef, 0, len(rounds))
	for _, r := range rounds {
		if _, ok := order[r.GameID]; ok {
			ordered = append(ordered, r)
		}
	}
	sortRounds(ordered, order)

	roundIDs := make([]uuid.UUID, len(ordered))
	for i, r := range ordered {
		roundIDs[i] = r.ID
	}

	var attendees, finalists []domain.RoundPlayer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pairs, err := s.attendances(gctx, roundIDs)
		attendees = pairs
		return err
	})
	g.Go(func() error {
		pairs, err := s.finalists(gctx, roundIDs)
		finalists = pairs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &attendance{
		games:     b.games,
		players:   b.players,
		rounds:    ordered,
		attended:  pairSet(attendees),
		finalists: pairSet(finalists),
	}, nil
}

func pairSet(pairs []domain.RoundPlayer) map[uuid.UUID]map[uuid.UUID]bool {
	set := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, p := range pairs {
		if set[p.RoundID] == nil {
			set[p.RoundID] = make(map[uuid.UUID]bool)
		}
		set[p.RoundID][p.PlayerID] = true
	}
	return set
}

func rankQuotes(rows []domain.QuoteRow) {
	ranking.Dense(rows, func(r *domain.QuoteRow, rank int) { r.Rank = rank },
		ranking.OptionalFloat(func(r domain.QuoteRow) *float64 { return r.Quote }, ranking.Desc),
		ranking.Int(func(r domain.QuoteRow) int { return r.Count }, ranking.Desc),
	)
}

// RoundAttendance counts the rounds each player attended relative to all
// rounds of the scope
func (s *StatisticsService) RoundAttendance(ctx context.Context, scope domain.Scope) ([]domain.QuoteRow, error) {
	a, err := s.loadAttendance(ctx, scope)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.QuoteRow, 0, len(a.players))
	for _, p := range a.players {
		count := 0
		for _, r := range a.rounds {
			if a.attended[r.ID][p.ID] {
				count++
			}
		}
		rows = append(rows, domain.QuoteRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Count:    count,
			Total:    len(a.rounds),
			Quote:    quote(count, len(a.rounds)),
		})
	}

	rankQuotes(rows)
	return rows, nil
}

// GameAttendance counts the games in which each player attended at least
// one round relative to all games of the scope
func (s *StatisticsService) GameAttendance(ctx context.Context, scope domain.Scope) ([]domain.QuoteRow, error) {
	a, err := s.loadAttendance(ctx, scope)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.QuoteRow, 0, len(a.players))
	for _, p := range a.players {
		games := make(map[uuid.UUID]bool)
		for _, r := range a.rounds {
			if a.attended[r.ID][p.ID] {
				games[r.GameID] = true
			}
		}
		rows = append(rows, domain.QuoteRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Count:    len(games),
			Total:    len(a.games),
			Quote:    quote(len(games), len(a.games)),
		})
	}

	rankQuotes(rows)
	return rows, nil
}

// Finals relates the finals a player reached to the attended rounds that
// were decided in a final
func (s *StatisticsService) Finals(ctx context.Context, scope domain.Scope) ([]domain.QuoteRow, error) {
	a, err := s.loadAttendance(ctx, scope)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.QuoteRow, 0, len(a.players))
	for _, p := range a.players {
		var count, total int
		for _, r := range a.rounds {
			if !a.attended[r.ID][p.ID] || !a.hasFinal(r.ID) {
				continue
			}
			total++
			if a.finalists[r.ID][p.ID] {
				count++
			}
		}
		rows = append(rows, domain.QuoteRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Count:    count,
			Total:    total,
			Quote:    quote(count, total),
		})
	}

	rankQuotes(rows)
	return rows, nil
}

// Hosts counts the games each player hosted, split by place type. Players
// who hosted nothing are left out.
func (s *StatisticsService) Hosts(ctx context.Context, scope domain.Scope) ([]domain.HostRow, error) {
	d, err := s.load(ctx, scope)
	if err != nil {
		return nil, err
	}

	byHost := make(map[uuid.UUID]*domain.HostRow)
	for _, game := range d.games {
		if game.HostID == nil || !d.inScope[*game.HostID] {
			continue
		}
		row, ok := byHost[*game.HostID]
		if !ok {
			row = &domain.HostRow{PlayerID: *game.HostID}
			byHost[*game.HostID] = row
		}
		switch game.PlaceType {
		case domain.PlaceTypeHome:
			row.Home++
		case domain.PlaceTypeAway:
			row.Away++
		case domain.PlaceTypeRemote:
			row.Remote++
		}
		row.Total++
	}

	rows := []domain.HostRow{}
	for _, p := range d.players {
		if row, ok := byHost[p.ID]; ok {
			row.Name = p.Name
			rows = append(rows, *row)
		}
	}

	ranking.Dense(rows, func(r *domain.HostRow, rank int) { r.Rank = rank },
		ranking.Int(func(r domain.HostRow) int { return r.Total }, ranking.Desc),
	)
	return rows, nil
}
