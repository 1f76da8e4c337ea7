package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PlaceType describes where a game took place
type PlaceType string

const (
	PlaceTypeHome   PlaceType = "HOME"
	PlaceTypeAway   PlaceType = "AWAY"
	PlaceTypeRemote PlaceType = "REMOTE"
)

// Player represents a member of the game group
type Player struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// GameRef is the lightweight game identity used for scope resolution
type GameRef struct {
	ID       uuid.UUID `json:"id"`
	Datetime time.Time `json:"datetime"`
}

// Game is one evening of play with its rounds and game-scoped events
type Game struct {
	ID                    uuid.UUID  `json:"id"`
	Datetime              time.Time  `json:"datetime"`
	Completed             bool       `json:"completed"`
	ExcludeFromStatistics bool       `json:"exclude_from_statistics"`
	PlaceType             PlaceType  `json:"place_type"`
	HostID                *uuid.UUID `json:"host_id,omitempty"`
	Rounds                []Round    `json:"rounds"`
	Events                []Event    `json:"events"`
}

// Round is a single round of a game
type Round struct {
	ID        uuid.UUID   `json:"id"`
	GameID    uuid.UUID   `json:"game_id"`
	Datetime  time.Time   `json:"datetime"`
	Attendees []uuid.UUID `json:"attendees"`
	Finalists []uuid.UUID `json:"finalists"`
	Events    []Event     `json:"events"`
}

// HasFinal reports whether the round was decided in a final
func (r *Round) HasFinal() bool {
	return len(r.Finalists) > 0
}

// Attended reports whether the player took part in the round
func (r *Round) Attended(playerID uuid.UUID) bool {
	return slices.Contains(r.Attendees, playerID)
}

// IsFinalist reports whether the player reached the round's final
func (r *Round) IsFinalist(playerID uuid.UUID) bool {
	return slices.Contains(r.Finalists, playerID)
}

// RoundRef identifies a round within its game
type RoundRef struct {
	ID       uuid.UUID `json:"id"`
	GameID   uuid.UUID `json:"game_id"`
	Datetime time.Time `json:"datetime"`
}

// RoundPlayer is an attendance or finalist pair
type RoundPlayer struct {
	RoundID  uuid.UUID `json:"round_id"`
	PlayerID uuid.UUID `json:"player_id"`
}
