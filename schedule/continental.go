package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/openleague/footsim/models"
)

// LeaguePhaseMatchesPerTeam is the fixed number of league-phase
// fixtures every continental entrant plays.
const LeaguePhaseMatchesPerTeam = 8

// pairingAttempts bounds the randomized retries before the constraint
// set is declared unsatisfiable.
const pairingAttempts = 200

// ContinentalScheduler builds the league-style opening phase of a
// continental cup: randomized pairings where every team plays exactly
// MatchesPerTeam fixtures and never meets the same opponent twice.
// Knockout phases are grown round-by-round by the knockout service.
type ContinentalScheduler struct {
	rng            *rand.Rand
	MatchesPerTeam int
}

func NewContinentalScheduler(rng *rand.Rand) *ContinentalScheduler {
	return &ContinentalScheduler{rng: rng, MatchesPerTeam: LeaguePhaseMatchesPerTeam}
}

// GenerateLeaguePhase produces the full league-phase fixture set for
// the given phase. Fixtures are bucketed into matchdays so no team
// plays twice on one date.
func (s *ContinentalScheduler) GenerateLeaguePhase(comp *models.Competition, phase *models.Phase, teams []*models.Team, start time.Time, cadence time.Duration) ([]*models.Fixture, error) {
	k := s.MatchesPerTeam
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("ContinentalScheduler: %w (found %d)", ErrNotEnoughTeams, n)
	}
	if k >= n {
		return nil, fmt.Errorf("ContinentalScheduler: %w: %d matches per team with only %d teams", ErrImpossiblePairing, k, n)
	}
	if n*k%2 != 0 {
		return nil, fmt.Errorf("ContinentalScheduler: %w: %d teams with %d matches each", ErrImpossiblePairing, n, k)
	}

	ids := teamIDs(teams)
	var pairs [][2]int
	var err error
	for attempt := 0; attempt < pairingAttempts; attempt++ {
		pairs, err = s.tryPairings(ids, k)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("ContinentalScheduler: %w after %d attempts", ErrImpossiblePairing, pairingAttempts)
	}

	return s.schedulePairs(comp, phase, pairs, start, cadence)
}

// tryPairings attempts one randomized construction of a k-regular
// pairing. Greedy with a most-constrained-first pick; dead ends are
// reported so the caller can retry with fresh randomness.
func (s *ContinentalScheduler) tryPairings(ids []int, k int) ([][2]int, error) {
	remaining := make(map[int]int, len(ids))
	played := make(map[[2]int]bool)
	for _, id := range ids {
		remaining[id] = k
	}

	order := make([]int, len(ids))
	copy(order, ids)

	pairs := make([][2]int, 0, len(ids)*k/2)
	for len(pairs) < cap(pairs) {
		s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		// Most constrained team first: most matches still needed.
		a := -1
		for _, id := range order {
			if remaining[id] > 0 && (a == -1 || remaining[id] > remaining[a]) {
				a = id
			}
		}
		if a == -1 {
			break
		}

		candidates := make([]int, 0, len(order))
		for _, b := range order {
			if b == a || remaining[b] == 0 || played[pairKey(a, b)] {
				continue
			}
			candidates = append(candidates, b)
		}
		if len(candidates) == 0 {
			return nil, ErrImpossiblePairing
		}
		b := candidates[s.rng.Intn(len(candidates))]

		remaining[a]--
		remaining[b]--
		played[pairKey(a, b)] = true
		pairs = append(pairs, [2]int{a, b})
	}

	if len(pairs) != cap(pairs) {
		return nil, ErrImpossiblePairing
	}
	return pairs, nil
}

// schedulePairs buckets pairs into matchdays (no team twice per day)
// and balances home venues by giving the home slot to whichever side
// has hosted less so far.
func (s *ContinentalScheduler) schedulePairs(comp *models.Competition, phase *models.Phase, pairs [][2]int, start time.Time, cadence time.Duration) ([]*models.Fixture, error) {
	type matchday struct {
		busy map[int]bool
	}
	days := make([]*matchday, 0)
	homeCount := make(map[int]int)

	fixtures := make([]*models.Fixture, 0, len(pairs))
	for _, p := range pairs {
		dayIdx := -1
		for i, d := range days {
			if !d.busy[p[0]] && !d.busy[p[1]] {
				dayIdx = i
				break
			}
		}
		if dayIdx == -1 {
			days = append(days, &matchday{busy: make(map[int]bool)})
			dayIdx = len(days) - 1
		}
		days[dayIdx].busy[p[0]] = true
		days[dayIdx].busy[p[1]] = true

		home, away := p[0], p[1]
		if homeCount[home] > homeCount[away] {
			home, away = away, home
		}
		homeCount[home]++

		fx, err := models.NewFixture(comp.ID, models.CompetitionContinentalCup, models.PhaseRef(phase.ID), dayIdx+1, home, away, start.Add(time.Duration(dayIdx)*cadence))
		if err != nil {
			return nil, fmt.Errorf("ContinentalScheduler: matchday %d: %w", dayIdx+1, err)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
