// Package points turns round outcomes into game points and placement points
// and accumulates them across games.
package points

import (
	"errors"
	"fmt"
)

// ErrInvalidOutcome is returned for outcome combinations that have no
// scoring rule
var ErrInvalidOutcome = errors.New("invalid round outcome")

// Round point values
const (
	PointsLost      = 0
	PointsFinalist  = 1
	PointsSurvived  = 3
	BonusPerSpecial = 1
	PenaltyLost     = -1
	PenaltyCombo    = -1
	PenaltyBadRoll  = -3
)

// placementTable holds the placement points for ranks 1 to 5
var placementTable = []int{7, 5, 4, 3, 2}

// PlacementBeyondTable is awarded for every rank past the table
const PlacementBeyondTable = 1

// RoundOutcome describes one attended round from a player's perspective
type RoundOutcome struct {
	RoundHasFinal      bool
	RoundSpecialRolls  int
	IsFinalist         bool
	Lost               bool
	PlayerSpecialRolls int
	SpecialCombos      int
	BadRolls           int
}

// RoundScore is what a player earned in one round
type RoundScore struct {
	RoundPoints   int
	BonusPoints   int
	PenaltyPoints int
}

// Total returns the sum of all point kinds
func (s RoundScore) Total() int {
	return s.RoundPoints + s.BonusPoints + s.PenaltyPoints
}

// ScoreRound applies the scoring rules to one round outcome
func ScoreRound(o RoundOutcome) (RoundScore, error) {
	if err := o.validate(); err != nil {
		return RoundScore{}, err
	}

	var roundPoints int
	switch {
	case o.Lost:
		roundPoints = PointsLost
	case o.RoundHasFinal && o.IsFinalist:
		roundPoints = PointsFinalist
	case o.RoundHasFinal:
		roundPoints = PointsSurvived
	case o.RoundSpecialRolls == 1 && o.PlayerSpecialRolls == 0:
		roundPoints = PointsFinalist
	default:
		roundPoints = PointsSurvived
	}

	penalty := PenaltyCombo*o.SpecialCombos + PenaltyBadRoll*o.BadRolls
	if o.Lost {
		penalty += PenaltyLost
	}

	return RoundScore{
		RoundPoints:   roundPoints,
		BonusPoints:   BonusPerSpecial * o.PlayerSpecialRolls,
		PenaltyPoints: penalty,
	}, nil
}

func (o RoundOutcome) validate() error {
	switch {
	case o.IsFinalist && !o.RoundHasFinal:
		return fmt.Errorf("%w: finalist in a round without final", ErrInvalidOutcome)
	case o.RoundSpecialRolls < 0, o.PlayerSpecialRolls < 0, o.SpecialCombos < 0, o.BadRolls < 0:
		return fmt.Errorf("%w: negative count", ErrInvalidOutcome)
	case o.PlayerSpecialRolls > o.RoundSpecialRolls:
		return fmt.Errorf("%w: player has more special rolls than the round", ErrInvalidOutcome)
	}
	return nil
}

// Placement maps a dense game rank to placement points. Players who did not
// attend the game get nothing.
func Placement(rank int, attended bool) int {
	if !attended || rank < 1 {
		return 0
	}
	if rank <= len(placementTable) {
		return placementTable[rank-1]
	}
	return PlacementBeyondTable
}
