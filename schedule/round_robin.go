package schedule

import (
	"fmt"
	"time"

	"github.com/openleague/footsim/models"
)

// byeTeamID is the synthetic opponent inserted for odd team counts.
// Pairings against it are dropped from the output.
const byeTeamID = -1

// RoundRobinGenerator lays out a double round-robin league calendar
// with the circle method: one team stays fixed, the rest rotate each
// round, producing N-1 rounds that cover every unordered pair once.
// The second half mirrors the first with home and away swapped.
type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) Generate(params GenerateParams) ([]*models.Fixture, error) {
	comp := params.Competition
	if len(params.Teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: %w (found %d)", ErrNotEnoughTeams, len(params.Teams))
	}

	ids := teamIDs(params.Teams)
	if len(ids)%2 != 0 {
		ids = append(ids, byeTeamID)
	}

	n := len(ids)
	roundsPerHalf := n - 1

	// ids[0] is the fixed pivot, the rest rotate one slot per round.
	rotating := make([]int, n)
	copy(rotating, ids)

	fixtures := make([]*models.Fixture, 0, n*(n-1))
	for round := 1; round <= roundsPerHalf; round++ {
		date := params.StartDate.Add(time.Duration(round-1) * params.Cadence)
		for i := 0; i < n/2; i++ {
			home, away := rotating[i], rotating[n-1-i]
			if home == byeTeamID || away == byeTeamID {
				continue
			}
			// Alternate the pivot's venue so its home games spread
			// across the half instead of stacking up.
			if i == 0 && round%2 == 0 {
				home, away = away, home
			}
			fx, err := models.NewFixture(comp.ID, models.CompetitionLeague, models.LeagueRef(comp.ID), round, home, away, date)
			if err != nil {
				return nil, fmt.Errorf("RoundRobinGenerator: round %d: %w", round, err)
			}
			fixtures = append(fixtures, fx)
		}
		rotate(rotating)
	}

	// Mirror for the return half.
	firstHalf := len(fixtures)
	for i := 0; i < firstHalf; i++ {
		src := fixtures[i]
		round := src.Round + roundsPerHalf
		date := params.StartDate.Add(time.Duration(round-1) * params.Cadence)
		fx, err := models.NewFixture(comp.ID, models.CompetitionLeague, models.LeagueRef(comp.ID), round, src.AwayTeamID, src.HomeTeamID, date)
		if err != nil {
			return nil, fmt.Errorf("RoundRobinGenerator: mirror round %d: %w", round, err)
		}
		fixtures = append(fixtures, fx)
	}

	return fixtures, nil
}

// rotate keeps slot 0 fixed and shifts the remaining slots clockwise.
func rotate(ids []int) {
	n := len(ids)
	last := ids[n-1]
	copy(ids[2:], ids[1:n-1])
	ids[1] = last
}
