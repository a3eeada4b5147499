package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{ID: i + 1, Name: fmt.Sprintf("Team %d", i+1)}
	}
	return teams
}

func leagueParams(n int) GenerateParams {
	return GenerateParams{
		Competition: &models.Competition{ID: 10, Type: models.CompetitionLeague},
		Teams:       makeTeams(n),
		StartDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Cadence:     7 * 24 * time.Hour,
	}
}

func TestRoundRobinDoubleCoverage(t *testing.T) {
	gen := NewRoundRobinGenerator()
	fixtures, err := gen.Generate(leagueParams(6))
	require.NoError(t, err)

	// n*(n-1) fixtures in total: every ordered pair exactly once.
	require.Len(t, fixtures, 30)

	seen := make(map[[2]int]int)
	games := make(map[int]int)
	for _, f := range fixtures {
		seen[[2]int{f.HomeTeamID, f.AwayTeamID}]++
		games[f.HomeTeamID]++
		games[f.AwayTeamID]++
		assert.Equal(t, models.RefLeague, f.Ref.Kind)
		assert.NotEqual(t, f.HomeTeamID, f.AwayTeamID)
	}
	for pair, count := range seen {
		assert.Equalf(t, 1, count, "ordered pair %v appeared %d times", pair, count)
	}
	for teamID, count := range games {
		assert.Equalf(t, 10, count, "team %d plays %d games", teamID, count)
	}
}

func TestRoundRobinMirroredSecondHalf(t *testing.T) {
	gen := NewRoundRobinGenerator()
	fixtures, err := gen.Generate(leagueParams(4))
	require.NoError(t, err)
	require.Len(t, fixtures, 12)

	half := len(fixtures) / 2
	for i := 0; i < half; i++ {
		first, mirror := fixtures[i], fixtures[half+i]
		assert.Equal(t, first.HomeTeamID, mirror.AwayTeamID)
		assert.Equal(t, first.AwayTeamID, mirror.HomeTeamID)
		assert.Equal(t, first.Round+3, mirror.Round)
	}
}

func TestRoundRobinNoTeamTwicePerRound(t *testing.T) {
	gen := NewRoundRobinGenerator()
	fixtures, err := gen.Generate(leagueParams(8))
	require.NoError(t, err)

	byRound := make(map[int]map[int]bool)
	for _, f := range fixtures {
		if byRound[f.Round] == nil {
			byRound[f.Round] = make(map[int]bool)
		}
		require.Falsef(t, byRound[f.Round][f.HomeTeamID], "team %d twice in round %d", f.HomeTeamID, f.Round)
		require.Falsef(t, byRound[f.Round][f.AwayTeamID], "team %d twice in round %d", f.AwayTeamID, f.Round)
		byRound[f.Round][f.HomeTeamID] = true
		byRound[f.Round][f.AwayTeamID] = true
	}
}

func TestRoundRobinOddTeamCountUsesBye(t *testing.T) {
	gen := NewRoundRobinGenerator()
	fixtures, err := gen.Generate(leagueParams(5))
	require.NoError(t, err)

	// Still every ordered pair once; one team idles per round.
	require.Len(t, fixtures, 20)
	games := make(map[int]int)
	for _, f := range fixtures {
		assert.Greater(t, f.HomeTeamID, 0)
		assert.Greater(t, f.AwayTeamID, 0)
		games[f.HomeTeamID]++
		games[f.AwayTeamID]++
	}
	for teamID, count := range games {
		assert.Equalf(t, 8, count, "team %d plays %d games", teamID, count)
	}
}

func TestRoundRobinDatesFollowCadence(t *testing.T) {
	params := leagueParams(4)
	gen := NewRoundRobinGenerator()
	fixtures, err := gen.Generate(params)
	require.NoError(t, err)

	for _, f := range fixtures {
		want := params.StartDate.Add(time.Duration(f.Round-1) * params.Cadence)
		assert.Equal(t, want, f.Date)
	}
}

func TestRoundRobinRejectsTooFewTeams(t *testing.T) {
	gen := NewRoundRobinGenerator()
	_, err := gen.Generate(leagueParams(1))
	require.ErrorIs(t, err, ErrNotEnoughTeams)
}
