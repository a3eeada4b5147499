package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/openleague/footsim/schedule"
)

// Continental advancement zones: the top of the final group table goes
// straight to the knockout stage, the next band plays a playoff, the
// rest are eliminated.
const (
	DirectQualifierCount = 8
	PlayoffZoneSize      = 16
)

// KnockoutService grows the post-group half of a continental cup:
// advancement off the final group table, a playoff round for the
// qualification zone, and knockout phases from previous-phase winners
// until one team remains.
type KnockoutService interface {
	AdvanceFromGroupStage(ctx context.Context, competitionID int) error
	GeneratePlayoffRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error)
	// GenerateNextKnockoutPhase pairs the previous phase's winners. A
	// nil fixture slice with no error means the champion is decided
	// and the competition has been closed out.
	GenerateNextKnockoutPhase(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error)
}

type knockoutService struct {
	competitionRepo repositories.CompetitionRepository
	phaseRepo       repositories.PhaseRepository
	fixtureRepo     repositories.FixtureRepository
	standingRepo    repositories.StandingRepository
	cupTeamRepo     repositories.CupTeamRepository
	cup             *schedule.CupScheduler
	logger          *slog.Logger
}

func NewKnockoutService(
	competitionRepo repositories.CompetitionRepository,
	phaseRepo repositories.PhaseRepository,
	fixtureRepo repositories.FixtureRepository,
	standingRepo repositories.StandingRepository,
	cupTeamRepo repositories.CupTeamRepository,
	cup *schedule.CupScheduler,
	logger *slog.Logger,
) KnockoutService {
	return &knockoutService{
		competitionRepo: competitionRepo,
		phaseRepo:       phaseRepo,
		fixtureRepo:     fixtureRepo,
		standingRepo:    standingRepo,
		cupTeamRepo:     cupTeamRepo,
		cup:             cup,
		logger:          logger,
	}
}

// AdvanceFromGroupStage reads the final group table and writes each
// team's fate onto its membership record. The group phase must be
// fully played.
func (s *knockoutService) AdvanceFromGroupStage(ctx context.Context, competitionID int) error {
	group, err := s.groupPhase(ctx, competitionID)
	if err != nil {
		return err
	}

	fixtures, err := s.fixtureRepo.ListByRef(ctx, nil, models.PhaseRef(group.ID))
	if err != nil {
		return fmt.Errorf("list group fixtures: %w", err)
	}
	if !schedule.IsRoundFinished(fixtures) {
		return fmt.Errorf("competition %d: %w", competitionID, ErrPhaseNotFinished)
	}

	table, err := s.standingRepo.ListTable(ctx, nil, competitionID, &group.ID)
	if err != nil {
		return fmt.Errorf("list group table: %w", err)
	}
	if len(table) == 0 {
		return fmt.Errorf("competition %d: %w", competitionID, ErrGroupStageNotRanked)
	}

	for _, row := range table {
		ct, err := s.cupTeamRepo.GetByTeam(ctx, nil, competitionID, row.TeamID)
		if err != nil {
			return fmt.Errorf("load membership of team %d: %w", row.TeamID, err)
		}
		switch {
		case row.Ranking <= DirectQualifierCount:
			order := group.Order + 2 // skips the playoff phase
			ct.CurrentPhaseOrder = &order
			ct.PlayoffParticipant = false
		case row.Ranking <= DirectQualifierCount+PlayoffZoneSize:
			order := group.Order + 1
			ct.CurrentPhaseOrder = &order
			ct.PlayoffParticipant = true
		default:
			ct.Eliminated = true
		}
		if err := s.cupTeamRepo.Update(ctx, nil, ct); err != nil {
			return fmt.Errorf("update membership of team %d: %w", row.TeamID, err)
		}
	}

	s.logger.Info("group stage advancement applied",
		slog.Int("competition_id", competitionID),
		slog.Int("direct", DirectQualifierCount),
		slog.Int("playoff", PlayoffZoneSize))
	return nil
}

func (s *knockoutService) GeneratePlayoffRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error) {
	comp, err := s.competitionRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("load competition %d: %w", competitionID, err)
	}
	group, err := s.groupPhase(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.cupTeamRepo.ListActive(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}
	participants := make([]int, 0, PlayoffZoneSize)
	for _, ct := range memberships {
		if ct.PlayoffParticipant {
			participants = append(participants, ct.TeamID)
		}
	}
	if len(participants)%2 != 0 {
		return nil, fmt.Errorf("playoff round: %w (%d participants)", schedule.ErrOddTeamCount, len(participants))
	}

	phase := &models.Phase{
		CompetitionID: competitionID,
		Order:         group.Order + 1,
		Name:          "Knockout Playoff",
		Knockout:      true,
		Qualification: true,
	}
	if err := s.phaseRepo.Create(ctx, nil, phase); err != nil {
		return nil, fmt.Errorf("create playoff phase: %w", err)
	}

	return s.pairIntoPhase(ctx, comp, phase, participants, date)
}

func (s *knockoutService) GenerateNextKnockoutPhase(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error) {
	comp, err := s.competitionRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("load competition %d: %w", competitionID, err)
	}
	if comp.Finished {
		return nil, fmt.Errorf("competition %d: %w", competitionID, ErrKnockoutComplete)
	}

	prev, err := s.phaseRepo.Latest(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("load latest phase: %w", err)
	}
	prevFixtures, err := s.fixtureRepo.ListByRef(ctx, nil, models.PhaseRef(prev.ID))
	if err != nil {
		return nil, fmt.Errorf("list fixtures of phase %d: %w", prev.Order, err)
	}
	if !schedule.IsRoundFinished(prevFixtures) {
		return nil, fmt.Errorf("phase %d: %w", prev.Order, ErrPhaseNotFinished)
	}
	winners, err := schedule.Winners(prevFixtures)
	if err != nil {
		return nil, fmt.Errorf("phase %d: %w", prev.Order, err)
	}

	// Playoff winners are joined by the direct qualifiers waiting out
	// the qualification round.
	if prev.Qualification {
		direct, err := s.teamsAtPhaseOrder(ctx, competitionID, prev.Order+1)
		if err != nil {
			return nil, err
		}
		winners = append(winners, direct...)
	}

	if err := s.eliminateRoundLosers(ctx, competitionID, prevFixtures); err != nil {
		return nil, err
	}

	if len(winners) == 1 {
		if err := s.competitionRepo.SetFinished(ctx, nil, competitionID, true); err != nil {
			return nil, fmt.Errorf("finish competition %d: %w", competitionID, err)
		}
		s.logger.Info("continental cup decided",
			slog.Int("competition_id", competitionID),
			slog.Int("champion_team_id", winners[0]))
		return nil, nil
	}
	if len(winners)%2 != 0 {
		return nil, fmt.Errorf("knockout phase: %w (%d teams)", schedule.ErrOddTeamCount, len(winners))
	}

	phase := &models.Phase{
		CompetitionID: competitionID,
		Order:         prev.Order + 1,
		Name:          knockoutPhaseName(len(winners)),
		Knockout:      true,
	}
	if err := s.phaseRepo.Create(ctx, nil, phase); err != nil {
		return nil, fmt.Errorf("create phase %d: %w", phase.Order, err)
	}

	fixtures, err := s.pairIntoPhase(ctx, comp, phase, winners, date)
	if err != nil {
		return nil, err
	}
	if err := s.moveTeamsToPhase(ctx, competitionID, winners, phase.Order); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// pairIntoPhase random-pairs team ids into single-leg fixtures of the
// given knockout phase, reusing the cup scheduler's pairing.
func (s *knockoutService) pairIntoPhase(ctx context.Context, comp *models.Competition, phase *models.Phase, teamIDs []int, date time.Time) ([]*models.Fixture, error) {
	teams := make([]*models.Team, len(teamIDs))
	for i, id := range teamIDs {
		teams[i] = &models.Team{ID: id}
	}
	round := &models.CupRound{ID: phase.ID, Number: phase.Order}
	paired, err := s.cup.GenerateInitialFixtures(comp, round, teams, date)
	if err != nil {
		return nil, fmt.Errorf("pair phase %d: %w", phase.Order, err)
	}

	// Re-tag: the pairing helper emits domestic-cup fixtures.
	fixtures := make([]*models.Fixture, 0, len(paired))
	for _, p := range paired {
		fx, err := models.NewFixture(comp.ID, models.CompetitionContinentalCup, models.PhaseRef(phase.ID), phase.Order, p.HomeTeamID, p.AwayTeamID, date)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", phase.Order, err)
		}
		fixtures = append(fixtures, fx)
	}
	if err := s.fixtureRepo.BatchCreate(ctx, nil, fixtures); err != nil {
		return nil, fmt.Errorf("persist phase %d fixtures: %w", phase.Order, err)
	}
	return fixtures, nil
}

func (s *knockoutService) groupPhase(ctx context.Context, competitionID int) (*models.Phase, error) {
	phases, err := s.phaseRepo.ListByCompetition(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list phases of competition %d: %w", competitionID, err)
	}
	for _, p := range phases {
		if !p.Knockout {
			return p, nil
		}
	}
	return nil, fmt.Errorf("competition %d: %w", competitionID, ErrNoGroupPhase)
}

func (s *knockoutService) teamsAtPhaseOrder(ctx context.Context, competitionID, order int) ([]int, error) {
	memberships, err := s.cupTeamRepo.ListActive(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}
	ids := make([]int, 0)
	for _, ct := range memberships {
		if !ct.PlayoffParticipant && ct.CurrentPhaseOrder != nil && *ct.CurrentPhaseOrder == order {
			ids = append(ids, ct.TeamID)
		}
	}
	return ids, nil
}

func (s *knockoutService) moveTeamsToPhase(ctx context.Context, competitionID int, teamIDs []int, order int) error {
	for _, id := range teamIDs {
		ct, err := s.cupTeamRepo.GetByTeam(ctx, nil, competitionID, id)
		if err != nil {
			if errors.Is(err, repositories.ErrCupTeamNotFound) {
				continue
			}
			return fmt.Errorf("load membership of team %d: %w", id, err)
		}
		ct.CurrentPhaseOrder = &order
		ct.PlayoffParticipant = false
		if err := s.cupTeamRepo.Update(ctx, nil, ct); err != nil {
			return fmt.Errorf("move team %d to phase %d: %w", id, order, err)
		}
	}
	return nil
}

func (s *knockoutService) eliminateRoundLosers(ctx context.Context, competitionID int, fixtures []*models.Fixture) error {
	for _, f := range fixtures {
		if f.WinnerID == nil {
			continue
		}
		loserID := f.HomeTeamID
		if loserID == *f.WinnerID {
			loserID = f.AwayTeamID
		}
		ct, err := s.cupTeamRepo.GetByTeam(ctx, nil, competitionID, loserID)
		if err != nil {
			if errors.Is(err, repositories.ErrCupTeamNotFound) {
				continue
			}
			return fmt.Errorf("load membership of team %d: %w", loserID, err)
		}
		ct.Eliminated = true
		if err := s.cupTeamRepo.Update(ctx, nil, ct); err != nil {
			return fmt.Errorf("eliminate team %d: %w", loserID, err)
		}
	}
	return nil
}

func knockoutPhaseName(teams int) string {
	switch teams {
	case 2:
		return "Final"
	case 4:
		return "Semi-final"
	case 8:
		return "Quarter-final"
	default:
		return fmt.Sprintf("Round of %d", teams)
	}
}
