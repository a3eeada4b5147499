package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func playedFixture(t *testing.T, compType models.CompetitionType, ref models.FixtureRef) *models.Fixture {
	t.Helper()
	f, err := models.NewFixture(1, compType, ref, 1, 10, 20, time.Now())
	require.NoError(t, err)
	hg, ag := 2, 1
	f.Status = models.FixturePlayed
	f.HomeGoals = &hg
	f.AwayGoals = &ag
	return f
}

func TestDispatchLeagueFixtureUpdatesTable(t *testing.T) {
	applied := 0
	standings := &fakeStandingsService{
		ApplyFixtureResultFunc: func(ctx context.Context, fixture *models.Fixture) error {
			applied++
			return nil
		},
	}
	d := NewStandingsDispatcher(standings, &fakePhaseRepo{}, discardLogger())

	fixture := playedFixture(t, models.CompetitionLeague, models.LeagueRef(1))
	require.NoError(t, d.Dispatch(context.Background(), fixture))
	assert.Equal(t, 1, applied)
}

func TestDispatchDomesticCupFixtureIsIgnored(t *testing.T) {
	standings := &fakeStandingsService{
		ApplyFixtureResultFunc: func(ctx context.Context, fixture *models.Fixture) error {
			t.Fatal("cup fixture must not touch standings")
			return nil
		},
	}
	d := NewStandingsDispatcher(standings, &fakePhaseRepo{}, discardLogger())

	fixture := playedFixture(t, models.CompetitionDomesticCup, models.CupRoundRef(3))
	require.NoError(t, d.Dispatch(context.Background(), fixture))
}

func TestDispatchContinentalGroupFixtureUpdatesGroupTable(t *testing.T) {
	applied := 0
	standings := &fakeStandingsService{
		ApplyFixtureResultFunc: func(ctx context.Context, fixture *models.Fixture) error {
			applied++
			return nil
		},
	}
	phases := &fakePhaseRepo{
		GetByIDFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Phase, error) {
			return &models.Phase{ID: id, Order: 1, Knockout: false}, nil
		},
	}
	d := NewStandingsDispatcher(standings, phases, discardLogger())

	fixture := playedFixture(t, models.CompetitionContinentalCup, models.PhaseRef(7))
	require.NoError(t, d.Dispatch(context.Background(), fixture))
	assert.Equal(t, 1, applied)
}

func TestDispatchContinentalKnockoutFixtureIsIgnored(t *testing.T) {
	standings := &fakeStandingsService{
		ApplyFixtureResultFunc: func(ctx context.Context, fixture *models.Fixture) error {
			t.Fatal("knockout fixture must not touch standings")
			return nil
		},
	}
	phases := &fakePhaseRepo{
		GetByIDFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Phase, error) {
			return &models.Phase{ID: id, Order: 3, Knockout: true}, nil
		},
	}
	d := NewStandingsDispatcher(standings, phases, discardLogger())

	fixture := playedFixture(t, models.CompetitionContinentalCup, models.PhaseRef(7))
	require.NoError(t, d.Dispatch(context.Background(), fixture))
}
