package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
)

// StandingsDispatcher routes a completed fixture to the standings
// engine, or to nowhere: knockout and domestic cup fixtures never
// update a table.
type StandingsDispatcher interface {
	Dispatch(ctx context.Context, fixture *models.Fixture) error
}

type standingsDispatcher struct {
	standings StandingsService
	phaseRepo repositories.PhaseRepository
	logger    *slog.Logger
}

func NewStandingsDispatcher(standings StandingsService, phaseRepo repositories.PhaseRepository, logger *slog.Logger) StandingsDispatcher {
	return &standingsDispatcher{standings: standings, phaseRepo: phaseRepo, logger: logger}
}

func (d *standingsDispatcher) Dispatch(ctx context.Context, fixture *models.Fixture) error {
	switch fixture.Type {
	case models.CompetitionLeague:
		if fixture.Ref.Kind == models.RefLeague {
			return d.standings.ApplyFixtureResult(ctx, fixture)
		}

	case models.CompetitionContinentalCup:
		if fixture.Ref.Kind != models.RefPhase {
			break
		}
		phase, err := d.phaseRepo.GetByID(ctx, nil, fixture.Ref.ID)
		if err != nil {
			return fmt.Errorf("dispatch fixture %d: load phase %d: %w", fixture.ID, fixture.Ref.ID, err)
		}
		if phase.Knockout {
			d.logger.Debug("knockout fixture, no standings update",
				slog.Int("fixture_id", fixture.ID), slog.Int("phase_id", phase.ID))
			return nil
		}
		return d.standings.ApplyFixtureResult(ctx, fixture)

	case models.CompetitionDomesticCup:
		// Single elimination has no table.
		d.logger.Debug("domestic cup fixture, no standings update", slog.Int("fixture_id", fixture.ID))
		return nil
	}

	d.logger.Warn("fixture matched no standings path",
		slog.Int("fixture_id", fixture.ID),
		slog.String("type", string(fixture.Type)),
		slog.String("ref_kind", string(fixture.Ref.Kind)))
	return nil
}
