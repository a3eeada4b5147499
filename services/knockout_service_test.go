package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/openleague/footsim/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupStageFixtures(t *testing.T, phaseID int, played bool) []*models.Fixture {
	t.Helper()
	f, err := models.NewFixture(30, models.CompetitionContinentalCup, models.PhaseRef(phaseID), 1, 1, 2, time.Now())
	require.NoError(t, err)
	if played {
		hg, ag := 1, 0
		f.Status = models.FixturePlayed
		f.HomeGoals = &hg
		f.AwayGoals = &ag
		f.WinnerID = &f.HomeTeamID
	}
	return []*models.Fixture{f}
}

func TestAdvanceFromGroupStageSplitsTheTable(t *testing.T) {
	const groupPhaseID = 5
	table := make([]*models.Standing, 0, 30)
	for i := 1; i <= 30; i++ {
		table = append(table, &models.Standing{CompetitionID: 30, TeamID: i, Ranking: i})
	}

	memberships := make(map[int]*models.CupTeam)
	phases := &fakePhaseRepo{
		ListByCompetitionFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Phase, error) {
			return []*models.Phase{{ID: groupPhaseID, CompetitionID: 30, Order: 1, Name: "League Phase"}}, nil
		},
	}
	fixtures := &fakeFixtureRepo{
		ListByRefFunc: func(ctx context.Context, exec repositories.SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error) {
			return groupStageFixtures(t, groupPhaseID, true), nil
		},
	}
	standings := &fakeStandingRepo{
		ListTableFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID int, phaseID *int) ([]*models.Standing, error) {
			require.NotNil(t, phaseID)
			assert.Equal(t, groupPhaseID, *phaseID)
			return table, nil
		},
	}
	cupTeams := &fakeCupTeamRepo{
		GetByTeamFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID, teamID int) (*models.CupTeam, error) {
			return &models.CupTeam{CompetitionID: competitionID, TeamID: teamID}, nil
		},
		UpdateFunc: func(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error {
			memberships[ct.TeamID] = ct
			return nil
		},
	}

	svc := NewKnockoutService(&fakeCompetitionRepo{}, phases, fixtures, standings, cupTeams,
		schedule.NewCupScheduler(rand.New(rand.NewSource(1))), discardLogger())

	require.NoError(t, svc.AdvanceFromGroupStage(context.Background(), 30))
	require.Len(t, memberships, 30)

	for teamID, ct := range memberships {
		switch {
		case teamID <= DirectQualifierCount:
			assert.False(t, ct.Eliminated)
			assert.False(t, ct.PlayoffParticipant)
			require.NotNil(t, ct.CurrentPhaseOrder)
			assert.Equal(t, 3, *ct.CurrentPhaseOrder)
		case teamID <= DirectQualifierCount+PlayoffZoneSize:
			assert.False(t, ct.Eliminated)
			assert.True(t, ct.PlayoffParticipant)
			require.NotNil(t, ct.CurrentPhaseOrder)
			assert.Equal(t, 2, *ct.CurrentPhaseOrder)
		default:
			assert.True(t, ct.Eliminated)
		}
	}
}

func TestAdvanceFromGroupStageRequiresFinishedGroup(t *testing.T) {
	phases := &fakePhaseRepo{
		ListByCompetitionFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Phase, error) {
			return []*models.Phase{{ID: 5, Order: 1}}, nil
		},
	}
	fixtures := &fakeFixtureRepo{
		ListByRefFunc: func(ctx context.Context, exec repositories.SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error) {
			return groupStageFixtures(t, 5, false), nil
		},
	}

	svc := NewKnockoutService(&fakeCompetitionRepo{}, phases, fixtures, &fakeStandingRepo{}, &fakeCupTeamRepo{},
		schedule.NewCupScheduler(rand.New(rand.NewSource(1))), discardLogger())

	err := svc.AdvanceFromGroupStage(context.Background(), 30)
	require.ErrorIs(t, err, ErrPhaseNotFinished)
}

func TestAdvanceFromGroupStageNeedsAGroupPhase(t *testing.T) {
	phases := &fakePhaseRepo{
		ListByCompetitionFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Phase, error) {
			return []*models.Phase{{ID: 6, Order: 2, Knockout: true}}, nil
		},
	}
	svc := NewKnockoutService(&fakeCompetitionRepo{}, phases, &fakeFixtureRepo{}, &fakeStandingRepo{}, &fakeCupTeamRepo{},
		schedule.NewCupScheduler(rand.New(rand.NewSource(1))), discardLogger())

	err := svc.AdvanceFromGroupStage(context.Background(), 30)
	require.ErrorIs(t, err, ErrNoGroupPhase)
}

func TestGenerateNextKnockoutPhaseDeclaresChampion(t *testing.T) {
	finished := false
	eliminated := make(map[int]bool)

	comps := &fakeCompetitionRepo{
		GetByIDFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Competition, error) {
			return &models.Competition{ID: id, Type: models.CompetitionContinentalCup}, nil
		},
		SetFinishedFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int, f bool) error {
			finished = f
			return nil
		},
	}
	phases := &fakePhaseRepo{
		LatestFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (*models.Phase, error) {
			return &models.Phase{ID: 9, Order: 4, Name: "Final", Knockout: true}, nil
		},
	}
	fixtures := &fakeFixtureRepo{
		ListByRefFunc: func(ctx context.Context, exec repositories.SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error) {
			return groupStageFixtures(t, 9, true), nil
		},
	}
	cupTeams := &fakeCupTeamRepo{
		GetByTeamFunc: func(ctx context.Context, exec repositories.SQLExecutor, competitionID, teamID int) (*models.CupTeam, error) {
			return &models.CupTeam{CompetitionID: competitionID, TeamID: teamID}, nil
		},
		UpdateFunc: func(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error {
			if ct.Eliminated {
				eliminated[ct.TeamID] = true
			}
			return nil
		},
	}

	svc := NewKnockoutService(comps, phases, fixtures, &fakeStandingRepo{}, cupTeams,
		schedule.NewCupScheduler(rand.New(rand.NewSource(1))), discardLogger())

	out, err := svc.GenerateNextKnockoutPhase(context.Background(), 30, time.Now())
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.True(t, finished)
	// The final's loser (team 2) is eliminated, the champion is not.
	assert.True(t, eliminated[2])
	assert.False(t, eliminated[1])
}

func TestGenerateNextKnockoutPhaseOnFinishedCompetition(t *testing.T) {
	comps := &fakeCompetitionRepo{
		GetByIDFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Competition, error) {
			return &models.Competition{ID: id, Type: models.CompetitionContinentalCup, Finished: true}, nil
		},
	}
	svc := NewKnockoutService(comps, &fakePhaseRepo{}, &fakeFixtureRepo{}, &fakeStandingRepo{}, &fakeCupTeamRepo{},
		schedule.NewCupScheduler(rand.New(rand.NewSource(1))), discardLogger())

	_, err := svc.GenerateNextKnockoutPhase(context.Background(), 30, time.Now())
	require.ErrorIs(t, err, ErrKnockoutComplete)
}
