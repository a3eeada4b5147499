package models

import (
	"errors"
	"fmt"
	"time"
)

type FixtureStatus string

const (
	FixtureScheduled FixtureStatus = "scheduled"
	FixturePlayed    FixtureStatus = "played"
	FixtureCancelled FixtureStatus = "cancelled"
)

// RefKind tags which subdivision a fixture belongs to.
type RefKind string

const (
	RefLeague   RefKind = "league"
	RefCupRound RefKind = "cup_round"
	RefPhase    RefKind = "phase"
)

// FixtureRef links a fixture to exactly one of: the league itself, a
// domestic cup round, or a continental cup phase. Constructed only
// through LeagueRef/CupRoundRef/PhaseRef so the exactly-one invariant
// holds by construction.
type FixtureRef struct {
	Kind RefKind `json:"kind"`
	ID   int     `json:"id"`
}

func LeagueRef(competitionID int) FixtureRef {
	return FixtureRef{Kind: RefLeague, ID: competitionID}
}

func CupRoundRef(cupRoundID int) FixtureRef {
	return FixtureRef{Kind: RefCupRound, ID: cupRoundID}
}

func PhaseRef(phaseID int) FixtureRef {
	return FixtureRef{Kind: RefPhase, ID: phaseID}
}

var (
	ErrFixtureRefMismatch = errors.New("fixture reference kind does not match competition type")
	ErrFixtureSameTeam    = errors.New("fixture cannot pair a team against itself")
)

// Fixture is a scheduled pairing. Score and winner stay nil until the
// fixture is played; a nil winner on a played fixture is a draw.
type Fixture struct {
	ID            int             `json:"id" db:"id"`
	CompetitionID int             `json:"competition_id" db:"competition_id"`
	Type          CompetitionType `json:"type" db:"competition_type"`
	Ref           FixtureRef      `json:"ref" db:"-"`
	Round         int             `json:"round" db:"round"`
	HomeTeamID    int             `json:"home_team_id" db:"home_team_id"`
	AwayTeamID    int             `json:"away_team_id" db:"away_team_id"`
	Date          time.Time       `json:"date" db:"date"`
	Status        FixtureStatus   `json:"status" db:"status"`
	HomeGoals     *int            `json:"home_goals,omitempty" db:"home_goals"`
	AwayGoals     *int            `json:"away_goals,omitempty" db:"away_goals"`
	WinnerID      *int            `json:"winner_id,omitempty" db:"winner_id"`
}

// NewFixture builds a scheduled fixture, rejecting reference kinds that
// contradict the competition type tag.
func NewFixture(competitionID int, compType CompetitionType, ref FixtureRef, round, homeID, awayID int, date time.Time) (*Fixture, error) {
	if homeID == awayID {
		return nil, fmt.Errorf("%w: team %d", ErrFixtureSameTeam, homeID)
	}
	if !refMatchesType(compType, ref.Kind) {
		return nil, fmt.Errorf("%w: type %s with ref %s", ErrFixtureRefMismatch, compType, ref.Kind)
	}
	return &Fixture{
		CompetitionID: competitionID,
		Type:          compType,
		Ref:           ref,
		Round:         round,
		HomeTeamID:    homeID,
		AwayTeamID:    awayID,
		Date:          date,
		Status:        FixtureScheduled,
	}, nil
}

func refMatchesType(t CompetitionType, k RefKind) bool {
	switch t {
	case CompetitionLeague:
		return k == RefLeague
	case CompetitionDomesticCup:
		return k == RefCupRound
	case CompetitionContinentalCup:
		return k == RefPhase
	}
	return false
}

// HasScore reports whether a final score has been recorded.
func (f *Fixture) HasScore() bool {
	return f.HomeGoals != nil && f.AwayGoals != nil
}

// Involves reports whether the given team plays in this fixture.
func (f *Fixture) Involves(teamID int) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}
