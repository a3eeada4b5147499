package schedule

import (
	"errors"
	"time"

	"github.com/openleague/footsim/models"
)

// Contract violations shared by the fixture generators. Callers are
// expected to fail loudly on these rather than skip.
var (
	ErrNotEnoughTeams       = errors.New("not enough teams to generate fixtures (minimum 2 required)")
	ErrOddTeamCount         = errors.New("odd team count: cannot pair every team")
	ErrRoundNotFinished     = errors.New("current round is not finished: every fixture needs a final score")
	ErrFixtureWithoutWinner = errors.New("cup fixture has no decisive winner")
	ErrImpossiblePairing    = errors.New("could not satisfy pairing constraints")
)

// GenerateParams carries everything a generator needs to lay out the
// fixture calendar of one competition instance.
type GenerateParams struct {
	Competition *models.Competition
	Teams       []*models.Team
	StartDate   time.Time
	// Cadence is the gap between consecutive rounds, one round per unit.
	Cadence time.Duration
}

// FixtureGenerator produces the complete fixture set for a competition
// instance in one shot. Round-by-round formats (domestic cup,
// continental knockout) are driven through their dedicated schedulers
// instead.
type FixtureGenerator interface {
	Generate(params GenerateParams) ([]*models.Fixture, error)
	Name() string
}

func teamIDs(teams []*models.Team) []int {
	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids
}
