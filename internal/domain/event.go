package domain

import (
	"time"

	"github.com/google/uuid"
)

// Context tells whether an event belongs to a game or to a round
type Context string

const (
	ContextGame  Context = "GAME"
	ContextRound Context = "ROUND"
)

// PenaltyUnit is the unit a penalty is paid in
type PenaltyUnit string

const (
	PenaltyUnitEuro      PenaltyUnit = "EURO"
	PenaltyUnitBeerCrate PenaltyUnit = "BEER_CRATE"
)

// PenaltyUnits lists every known unit in reporting order
var PenaltyUnits = []PenaltyUnit{PenaltyUnitEuro, PenaltyUnitBeerCrate}

// Trigger tags event types whose occurrence has a scoring meaning
type Trigger string

const (
	TriggerRoundLost          Trigger = "ROUND_LOST"
	TriggerSpecialRoll        Trigger = "SPECIAL_ROLL"
	TriggerSpecialRollPenalty Trigger = "SPECIAL_ROLL_PENALTY"
	TriggerHostingSpecialRoll Trigger = "HOSTING_SPECIAL_ROLL"
	TriggerSpecialCombo       Trigger = "SPECIAL_COMBO"
	TriggerBadRoll            Trigger = "BAD_ROLL"
)

// RevisionType records which change produced an event type revision
type RevisionType string

const (
	RevisionInsert RevisionType = "INSERT"
	RevisionUpdate RevisionType = "UPDATE"
	RevisionRemove RevisionType = "REMOVE"
)

// Event is a scored occurrence for a player in a game or round.
// PenaltyValue and PenaltyUnit are snapshotted when the event is written and
// never change afterwards; nil means the event predates snapshotting.
type Event struct {
	ID           uuid.UUID    `json:"id"`
	Datetime     time.Time    `json:"datetime"`
	Context      Context      `json:"context"`
	Multiplier   int          `json:"multiplier"`
	PenaltyValue *float64     `json:"penalty_value,omitempty"`
	PenaltyUnit  *PenaltyUnit `json:"penalty_unit,omitempty"`
	Comment      string       `json:"comment,omitempty"`
	PlayerID     uuid.UUID    `json:"player_id"`
	EventTypeID  uuid.UUID    `json:"event_type_id"`
}

// Occurrences returns how often the event counts, treating an unset
// multiplier as one
func (e *Event) Occurrences() int {
	if e.Multiplier < 1 {
		return 1
	}
	return e.Multiplier
}

// EventType is the current definition of a kind of event
type EventType struct {
	ID           uuid.UUID    `json:"id"`
	Description  string       `json:"description"`
	Context      Context      `json:"context"`
	Trigger      *Trigger     `json:"trigger,omitempty"`
	PenaltyValue *float64     `json:"penalty_value,omitempty"`
	PenaltyUnit  *PenaltyUnit `json:"penalty_unit,omitempty"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
}

// HasTrigger reports whether the event type carries the given trigger
func (t *EventType) HasTrigger(trigger Trigger) bool {
	return t.Trigger != nil && *t.Trigger == trigger
}

// Deleted reports whether the event type has been retired
func (t *EventType) Deleted() bool {
	return t.DeletedAt != nil
}

// EventTypeRevision is an append-only snapshot of an event type, written on
// every insert, update and removal of its owner
type EventTypeRevision struct {
	ID           uuid.UUID    `json:"id"`
	EventTypeID  uuid.UUID    `json:"event_type_id"`
	Type         RevisionType `json:"type"`
	CreatedAt    time.Time    `json:"created_at"`
	Description  string       `json:"description"`
	Context      Context      `json:"context"`
	Trigger      *Trigger     `json:"trigger,omitempty"`
	PenaltyValue *float64     `json:"penalty_value,omitempty"`
	PenaltyUnit  *PenaltyUnit `json:"penalty_unit,omitempty"`
}
