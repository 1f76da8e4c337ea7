package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scope selects the games and players a statistic is computed over
type Scope struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	ActivePlayersOnly bool      `json:"active_players_only"`
}

// Validate checks that the scope describes a usable date range
func (s Scope) Validate() error {
	if s.From.IsZero() || s.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidScope)
	}
	if s.From.After(s.To) {
		return fmt.Errorf("%w: from is after to", ErrInvalidScope)
	}
	return nil
}

// dateLayout is accepted alongside RFC 3339 for scope bounds
const dateLayout = "2006-01-02"

// EndOfDay returns the last instant of the day containing t
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DefaultScope covers the given number of days up to the end of the day
// containing now
func DefaultScope(now time.Time, days int) Scope {
	to := EndOfDay(now)
	return Scope{From: to.AddDate(0, 0, -days), To: to}
}

// ParseScope builds a scope from textual bounds. A bare date as upper bound
// covers the whole day. Missing bounds fall back to DefaultScope.
func ParseScope(from, to string, activeOnly bool, now time.Time, defaultDays int) (Scope, error) {
	scope := DefaultScope(now, defaultDays)
	scope.ActivePlayersOnly = activeOnly

	if to != "" {
		t, dateOnly, err := parseBound(to)
		if err != nil {
			return Scope{}, fmt.Errorf("%w: to: %v", ErrInvalidScope, err)
		}
		if dateOnly {
			t = EndOfDay(t)
		}
		scope.To = t
	}

	scope.From = scope.To.AddDate(0, 0, -defaultDays)
	if from != "" {
		t, _, err := parseBound(from)
		if err != nil {
			return Scope{}, fmt.Errorf("%w: from: %v", ErrInvalidScope, err)
		}
		scope.From = t
	}

	return scope, scope.Validate()
}

func parseBound(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC 3339 or %s, got %q", dateLayout, value)
	}
	return t, true, nil
}

// PenaltySum is the total penalty for one unit
type PenaltySum struct {
	Unit PenaltyUnit `json:"unit"`
	Sum  float64     `json:"sum"`
}

// SumFor returns the sum for a unit, zero when absent
func SumFor(sums []PenaltySum, unit PenaltyUnit) float64 {
	for _, s := range sums {
		if s.Unit == unit {
			return s.Sum
		}
	}
	return 0
}

// QuoteRow is a count relative to a denominator, used for attendance and
// finals tables. Quote is nil when the denominator is zero.
type QuoteRow struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Total    int       `json:"total"`
	Quote    *float64  `json:"quote,omitempty"`
	Rank     int       `json:"rank"`
}

// HostRow counts the games a player hosted per place type
type HostRow struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Home     int       `json:"home"`
	Away     int       `json:"away"`
	Remote   int       `json:"remote"`
	Total    int       `json:"total"`
	Rank     int       `json:"rank"`
}

// EventTypeCountRow counts the occurrences of one event type
type EventTypeCountRow struct {
	EventTypeID uuid.UUID    `json:"event_type_id"`
	Description string       `json:"description"`
	Context     Context      `json:"context"`
	Trigger     *Trigger     `json:"trigger,omitempty"`
	Deleted     bool         `json:"deleted"`
	Count       int          `json:"count"`
	Penalties   []PenaltySum `json:"penalties"`
	Rank        int          `json:"rank"`
}

// PlayerCountRow counts the occurrences of one event type for a player
type PlayerCountRow struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Quote    *float64  `json:"quote,omitempty"`
	Rank     int       `json:"rank"`
}

// PlayerPenaltyRow is one line of the penalty ledger per player
type PlayerPenaltyRow struct {
	PlayerID       uuid.UUID    `json:"player_id"`
	Name           string       `json:"name"`
	GamePenalties  []PenaltySum `json:"game_penalties"`
	RoundPenalties []PenaltySum `json:"round_penalties"`
	Penalties      []PenaltySum `json:"penalties"`
	EuroSum        float64      `json:"euro_sum"`
	Rank           int          `json:"rank"`
}

// GamePenaltyRow is one line of the penalty ledger per game
type GamePenaltyRow struct {
	GameID         uuid.UUID    `json:"game_id"`
	Datetime       time.Time    `json:"datetime"`
	RoundCount     int          `json:"round_count"`
	GamePenalties  []PenaltySum `json:"game_penalties"`
	RoundPenalties []PenaltySum `json:"round_penalties"`
	Penalties      []PenaltySum `json:"penalties"`
}

// RecordHolder is a player who achieved a record in a specific game
type RecordHolder struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	GameID   uuid.UUID `json:"game_id"`
	Datetime time.Time `json:"datetime"`
}

// RecordRow holds the highest per-game count of a trigger-tagged event type
// together with every player that reached it
type RecordRow struct {
	EventTypeID uuid.UUID      `json:"event_type_id"`
	Description string         `json:"description"`
	Trigger     Trigger        `json:"trigger"`
	Count       int            `json:"count"`
	Holders     []RecordHolder `json:"holders"`
}

// EffectivityRow relates a player's special rolls to the rounds they won
// with them
type EffectivityRow struct {
	PlayerID     uuid.UUID `json:"player_id"`
	Name         string    `json:"name"`
	SpecialRolls int       `json:"special_rolls"`
	Converted    int       `json:"converted"`
	Quote        *float64  `json:"quote,omitempty"`
	Rank         int       `json:"rank"`
}

// ExpensiveGame is a game with its penalty total in euro
type ExpensiveGame struct {
	GameID     uuid.UUID `json:"game_id"`
	Datetime   time.Time `json:"datetime"`
	RoundCount int       `json:"round_count"`
	EuroSum    float64   `json:"euro_sum"`
}

// ExpensiveRound is a round with its penalty total in euro
type ExpensiveRound struct {
	RoundID  uuid.UUID `json:"round_id"`
	GameID   uuid.UUID `json:"game_id"`
	Datetime time.Time `json:"datetime"`
	EuroSum  float64   `json:"euro_sum"`
}

// ExpensiveAverage is the game with the highest euro sum per round
type ExpensiveAverage struct {
	GameID     uuid.UUID `json:"game_id"`
	Datetime   time.Time `json:"datetime"`
	RoundCount int       `json:"round_count"`
	Average    float64   `json:"average"`
}

// MostExpensive collects the most expensive game, round and per-round
// average. Each field is nil when the scope has nothing to compare.
type MostExpensive struct {
	Game         *ExpensiveGame    `json:"game,omitempty"`
	Round        *ExpensiveRound   `json:"round,omitempty"`
	RoundAverage *ExpensiveAverage `json:"round_average,omitempty"`
}

// PlayerPoints is a player's score in one game
type PlayerPoints struct {
	PlayerID        uuid.UUID `json:"player_id"`
	Name            string    `json:"name"`
	Attended        bool      `json:"attended"`
	RoundPoints     int       `json:"round_points"`
	BonusPoints     int       `json:"bonus_points"`
	PenaltyPoints   int       `json:"penalty_points"`
	GamePoints      int       `json:"game_points"`
	PlacementPoints int       `json:"placement_points"`
	Rank            int       `json:"rank"`
}

// GamePointsTable is the ranked points table of one game
type GamePointsTable struct {
	GameID   uuid.UUID      `json:"game_id"`
	Datetime time.Time      `json:"datetime"`
	Players  []PlayerPoints `json:"players"`
}

// AccumulatedRow is a player's running standing after a game
type AccumulatedRow struct {
	PlayerID        uuid.UUID `json:"player_id"`
	Name            string    `json:"name"`
	Games           int       `json:"games"`
	RoundPoints     int       `json:"round_points"`
	BonusPoints     int       `json:"bonus_points"`
	PenaltyPoints   int       `json:"penalty_points"`
	GamePoints      int       `json:"game_points"`
	PlacementPoints int       `json:"placement_points"`
	Rank            int       `json:"rank"`
	Tendency        *int      `json:"tendency,omitempty"`
}

// AccumulatedGame is the standing after a single game
type AccumulatedGame struct {
	GameID    uuid.UUID        `json:"game_id"`
	Datetime  time.Time        `json:"datetime"`
	Standings []AccumulatedRow `json:"standings"`
}

// AccumulatedPoints is the final standing plus its history
type AccumulatedPoints struct {
	Standings []AccumulatedRow  `json:"standings"`
	History   []AccumulatedGame `json:"history"`
}

// StreakRow describes a player's longest and current run
type StreakRow struct {
	PlayerID uuid.UUID  `json:"player_id"`
	Name     string     `json:"name"`
	Max      int        `json:"max"`
	MaxFrom  *time.Time `json:"max_from,omitempty"`
	MaxTo    *time.Time `json:"max_to,omitempty"`
	Current  int        `json:"current"`
	Rank     int        `json:"rank"`
}

// Summary gives the headline numbers of a scope
type Summary struct {
	Games     int          `json:"games"`
	Rounds    int          `json:"rounds"`
	Events    int          `json:"events"`
	Players   int          `json:"players"`
	Penalties []PenaltySum `json:"penalties"`
}
