package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/openleague/footsim/models"
)

// CupScheduler generates single-elimination rounds one at a time:
// the next round can only exist once every fixture of the current one
// has a decisive winner, so the bracket is never pre-computed.
type CupScheduler struct {
	rng *rand.Rand
}

func NewCupScheduler(rng *rand.Rand) *CupScheduler {
	return &CupScheduler{rng: rng}
}

// GenerateInitialFixtures randomly pairs all entrants into the first
// round. An odd entrant count is a caller-level contract violation.
func (s *CupScheduler) GenerateInitialFixtures(comp *models.Competition, round *models.CupRound, teams []*models.Team, date time.Time) ([]*models.Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("CupScheduler: %w (found %d)", ErrNotEnoughTeams, len(teams))
	}
	if len(teams)%2 != 0 {
		return nil, fmt.Errorf("CupScheduler: %w (found %d entrants)", ErrOddTeamCount, len(teams))
	}
	return s.pair(comp, round, teamIDs(teams), date)
}

// IsRoundFinished holds when every fixture in the round carries a final
// score. Cancelled fixtures never finish a round.
func IsRoundFinished(fixtures []*models.Fixture) bool {
	if len(fixtures) == 0 {
		return false
	}
	for _, f := range fixtures {
		if f.Status != models.FixturePlayed || !f.HasScore() {
			return false
		}
	}
	return true
}

// Winners collects the winning team of every fixture. Draws are
// disallowed in cup legs, so a played fixture without a winner is a
// contract violation.
func Winners(fixtures []*models.Fixture) ([]int, error) {
	winners := make([]int, 0, len(fixtures))
	for _, f := range fixtures {
		if f.WinnerID == nil {
			return nil, fmt.Errorf("%w: fixture %d (%d vs %d)", ErrFixtureWithoutWinner, f.ID, f.HomeTeamID, f.AwayTeamID)
		}
		winners = append(winners, *f.WinnerID)
	}
	return winners, nil
}

// GenerateNextRound re-pairs the winners of a finished round. A single
// remaining winner signals tournament completion and yields no
// fixtures. Calling this before the round is finished fails.
func (s *CupScheduler) GenerateNextRound(comp *models.Competition, prev []*models.Fixture, next *models.CupRound, date time.Time) ([]*models.Fixture, error) {
	if !IsRoundFinished(prev) {
		return nil, fmt.Errorf("CupScheduler: competition %d: %w", comp.ID, ErrRoundNotFinished)
	}
	winners, err := Winners(prev)
	if err != nil {
		return nil, fmt.Errorf("CupScheduler: competition %d: %w", comp.ID, err)
	}
	if len(winners) == 1 {
		return nil, nil
	}
	if len(winners)%2 != 0 {
		return nil, fmt.Errorf("CupScheduler: %w (%d winners)", ErrOddTeamCount, len(winners))
	}
	return s.pair(comp, next, winners, date)
}

func (s *CupScheduler) pair(comp *models.Competition, round *models.CupRound, ids []int, date time.Time) ([]*models.Fixture, error) {
	shuffled := make([]int, len(ids))
	copy(shuffled, ids)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	fixtures := make([]*models.Fixture, 0, len(shuffled)/2)
	for i := 0; i < len(shuffled); i += 2 {
		fx, err := models.NewFixture(comp.ID, models.CompetitionDomesticCup, models.CupRoundRef(round.ID), round.Number, shuffled[i], shuffled[i+1], date)
		if err != nil {
			return nil, fmt.Errorf("CupScheduler: round %d: %w", round.Number, err)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}
