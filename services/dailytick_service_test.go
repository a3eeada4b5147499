package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAction struct {
	name string
	run  func(ctx context.Context, action ActionContext) error
}

func (a scriptedAction) Name() string { return a.name }

func (a scriptedAction) Run(ctx context.Context, action ActionContext) error {
	return a.run(ctx, action)
}

func tickFixtures(events []*models.SeasonEvent, teams []*models.Team) (*fakeSeasonEventRepo, *fakeTeamRepo) {
	eventRepo := &fakeSeasonEventRepo{
		ListByDateFunc: func(ctx context.Context, exec repositories.SQLExecutor, seasonID int, date time.Time) ([]*models.SeasonEvent, error) {
			return events, nil
		},
	}
	teamRepo := &fakeTeamRepo{
		ListCPUByGameSaveFunc: func(ctx context.Context, exec repositories.SQLExecutor, gameSaveID int) ([]*models.Team, error) {
			return teams, nil
		},
	}
	return eventRepo, teamRepo
}

func TestTickFailingTeamDoesNotAbortOthers(t *testing.T) {
	date := time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)
	events := []*models.SeasonEvent{{SeasonID: 1, Date: date, Type: models.EventMatchDay}}
	teams := []*models.Team{{ID: 1}, {ID: 2}, {ID: 3}}
	eventRepo, teamRepo := tickFixtures(events, teams)

	var ran []int
	action := scriptedAction{
		name: "pick_tactic",
		run: func(ctx context.Context, action ActionContext) error {
			ran = append(ran, action.TeamID)
			if action.TeamID == 2 {
				return errors.New("no formation data")
			}
			return nil
		},
	}
	svc := NewDailyTickService(eventRepo, teamRepo,
		map[models.SeasonEventType][]TeamAction{models.EventMatchDay: {action}}, discardLogger())

	report, err := svc.Run(context.Background(), 1, 1, date)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, ran)
	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, 1, report.Failed())
	assert.Error(t, report.Outcomes[1].Err)
	assert.NoError(t, report.Outcomes[0].Err)
	assert.NoError(t, report.Outcomes[2].Err)
}

func TestTickPanickingActionBecomesError(t *testing.T) {
	date := time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)
	events := []*models.SeasonEvent{{SeasonID: 1, Date: date, Type: models.EventTrainingDay}}
	teams := []*models.Team{{ID: 1}, {ID: 2}}
	eventRepo, teamRepo := tickFixtures(events, teams)

	action := scriptedAction{
		name: "training",
		run: func(ctx context.Context, action ActionContext) error {
			if action.TeamID == 1 {
				panic("corrupt squad data")
			}
			return nil
		},
	}
	svc := NewDailyTickService(eventRepo, teamRepo,
		map[models.SeasonEventType][]TeamAction{models.EventTrainingDay: {action}}, discardLogger())

	report, err := svc.Run(context.Background(), 1, 1, date)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)
	require.Error(t, report.Outcomes[0].Err)
	assert.Contains(t, report.Outcomes[0].Err.Error(), "panicked")
	assert.NoError(t, report.Outcomes[1].Err)
}

func TestTickEmptyCalendarFallsBackToTraining(t *testing.T) {
	date := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	eventRepo, teamRepo := tickFixtures(nil, []*models.Team{{ID: 1}})

	var seenEvent string
	action := scriptedAction{
		name: "training",
		run: func(ctx context.Context, action ActionContext) error {
			seenEvent = action.Event
			return nil
		},
	}
	svc := NewDailyTickService(eventRepo, teamRepo,
		map[models.SeasonEventType][]TeamAction{models.EventTrainingDay: {action}}, discardLogger())

	report, err := svc.Run(context.Background(), 1, 1, date)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, string(models.EventTrainingDay), seenEvent)
}

func TestTickActionsReceiveTheTickDate(t *testing.T) {
	date := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	events := []*models.SeasonEvent{{SeasonID: 3, Date: date, Type: models.EventMatchDay}}
	eventRepo, teamRepo := tickFixtures(events, []*models.Team{{ID: 5}})

	var got ActionContext
	action := scriptedAction{
		name: "pick_tactic",
		run: func(ctx context.Context, action ActionContext) error {
			got = action
			return nil
		},
	}
	svc := NewDailyTickService(eventRepo, teamRepo,
		map[models.SeasonEventType][]TeamAction{models.EventMatchDay: {action}}, discardLogger())

	_, err := svc.Run(context.Background(), 2, 3, date)
	require.NoError(t, err)

	assert.Equal(t, 2, got.GameSaveID)
	assert.Equal(t, 3, got.SeasonID)
	assert.Equal(t, 5, got.TeamID)
	assert.True(t, got.Date.Equal(date), "action must see the day it is acting for")
}

func TestTickEventWithoutActionsIsSkipped(t *testing.T) {
	date := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	events := []*models.SeasonEvent{{SeasonID: 1, Date: date, Type: models.EventTransferWindow}}
	eventRepo, teamRepo := tickFixtures(events, []*models.Team{{ID: 1}, {ID: 2}})

	svc := NewDailyTickService(eventRepo, teamRepo,
		map[models.SeasonEventType][]TeamAction{}, discardLogger())

	report, err := svc.Run(context.Background(), 1, 1, date)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
}
