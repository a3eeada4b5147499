package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinentalLeaguePhasePairing(t *testing.T) {
	s := NewContinentalScheduler(rand.New(rand.NewSource(42)))
	comp := &models.Competition{ID: 30, Type: models.CompetitionContinentalCup}
	phase := &models.Phase{ID: 9, CompetitionID: 30, Order: 1, Name: "League Phase"}
	start := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)

	fixtures, err := s.GenerateLeaguePhase(comp, phase, makeTeams(36), start, 14*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, fixtures, 36*LeaguePhaseMatchesPerTeam/2)

	games := make(map[int]int)
	met := make(map[[2]int]bool)
	for _, f := range fixtures {
		assert.Equal(t, models.RefPhase, f.Ref.Kind)
		assert.Equal(t, 9, f.Ref.ID)
		games[f.HomeTeamID]++
		games[f.AwayTeamID]++

		key := pairKey(f.HomeTeamID, f.AwayTeamID)
		require.Falsef(t, met[key], "pair %v meets twice", key)
		met[key] = true
	}
	for teamID, count := range games {
		assert.Equalf(t, LeaguePhaseMatchesPerTeam, count, "team %d plays %d fixtures", teamID, count)
	}
}

func TestContinentalNoTeamTwicePerMatchday(t *testing.T) {
	s := NewContinentalScheduler(rand.New(rand.NewSource(3)))
	comp := &models.Competition{ID: 30, Type: models.CompetitionContinentalCup}
	phase := &models.Phase{ID: 9, CompetitionID: 30, Order: 1}

	fixtures, err := s.GenerateLeaguePhase(comp, phase, makeTeams(20), time.Now(), 24*time.Hour)
	require.NoError(t, err)

	byDay := make(map[int]map[int]bool)
	for _, f := range fixtures {
		if byDay[f.Round] == nil {
			byDay[f.Round] = make(map[int]bool)
		}
		require.Falsef(t, byDay[f.Round][f.HomeTeamID], "team %d twice on matchday %d", f.HomeTeamID, f.Round)
		require.Falsef(t, byDay[f.Round][f.AwayTeamID], "team %d twice on matchday %d", f.AwayTeamID, f.Round)
		byDay[f.Round][f.HomeTeamID] = true
		byDay[f.Round][f.AwayTeamID] = true
	}
}

func TestContinentalRejectsImpossibleSetups(t *testing.T) {
	s := NewContinentalScheduler(rand.New(rand.NewSource(1)))
	comp := &models.Competition{ID: 30, Type: models.CompetitionContinentalCup}
	phase := &models.Phase{ID: 9, CompetitionID: 30, Order: 1}

	// Fewer teams than matches per team.
	_, err := s.GenerateLeaguePhase(comp, phase, makeTeams(6), time.Now(), 24*time.Hour)
	require.ErrorIs(t, err, ErrImpossiblePairing)

	// Odd handshake total: 9 teams x 5 matches.
	s.MatchesPerTeam = 5
	_, err = s.GenerateLeaguePhase(comp, phase, makeTeams(9), time.Now(), 24*time.Hour)
	require.ErrorIs(t, err, ErrImpossiblePairing)

	_, err = s.GenerateLeaguePhase(comp, phase, makeTeams(1), time.Now(), 24*time.Hour)
	require.ErrorIs(t, err, ErrNotEnoughTeams)
}
