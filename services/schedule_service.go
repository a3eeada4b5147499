package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/openleague/footsim/schedule"
)

// ScheduleService turns a competition instance and its member teams
// into a persisted fixture calendar, with standings tables initialized
// up front so every fixture is playable.
type ScheduleService interface {
	GenerateLeagueCalendar(ctx context.Context, competitionID int, start time.Time, cadence time.Duration) ([]*models.Fixture, error)
	GenerateCupFirstRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error)
	// GenerateCupNextRound advances a domestic cup by one round. A nil
	// fixture slice with no error means the cup produced its champion.
	GenerateCupNextRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error)
	GenerateContinentalLeaguePhase(ctx context.Context, competitionID int, start time.Time, cadence time.Duration) ([]*models.Fixture, error)
}

type scheduleService struct {
	db              *sql.DB
	competitionRepo repositories.CompetitionRepository
	fixtureRepo     repositories.FixtureRepository
	cupRoundRepo    repositories.CupRoundRepository
	phaseRepo       repositories.PhaseRepository
	cupTeamRepo     repositories.CupTeamRepository
	standings       StandingsService

	roundRobin  schedule.FixtureGenerator
	cup         *schedule.CupScheduler
	continental *schedule.ContinentalScheduler
}

func NewScheduleService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	fixtureRepo repositories.FixtureRepository,
	cupRoundRepo repositories.CupRoundRepository,
	phaseRepo repositories.PhaseRepository,
	cupTeamRepo repositories.CupTeamRepository,
	standings StandingsService,
	cup *schedule.CupScheduler,
	continental *schedule.ContinentalScheduler,
) ScheduleService {
	return &scheduleService{
		db:              db,
		competitionRepo: competitionRepo,
		fixtureRepo:     fixtureRepo,
		cupRoundRepo:    cupRoundRepo,
		phaseRepo:       phaseRepo,
		cupTeamRepo:     cupTeamRepo,
		standings:       standings,
		roundRobin:      schedule.NewRoundRobinGenerator(),
		cup:             cup,
		continental:     continental,
	}
}

func (s *scheduleService) GenerateLeagueCalendar(ctx context.Context, competitionID int, start time.Time, cadence time.Duration) ([]*models.Fixture, error) {
	comp, teams, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.roundRobin.Generate(schedule.GenerateParams{
		Competition: comp,
		Teams:       teams,
		StartDate:   start,
		Cadence:     cadence,
	})
	if err != nil {
		return nil, fmt.Errorf("league calendar for competition %d: %w", competitionID, err)
	}

	if err := s.fixtureRepo.BatchCreate(ctx, nil, fixtures); err != nil {
		return nil, fmt.Errorf("persist league calendar for competition %d: %w", competitionID, err)
	}
	scope := TableScope{CompetitionID: competitionID}
	if err := s.standings.InitTable(ctx, scope, teamIDList(teams)); err != nil {
		return nil, fmt.Errorf("init league table for competition %d: %w", competitionID, err)
	}
	return fixtures, nil
}

func (s *scheduleService) GenerateCupFirstRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error) {
	comp, teams, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	round := &models.CupRound{CompetitionID: competitionID, Number: 1, Name: roundName(len(teams))}
	if err := s.cupRoundRepo.Create(ctx, nil, round); err != nil {
		return nil, fmt.Errorf("create cup round for competition %d: %w", competitionID, err)
	}

	fixtures, err := s.cup.GenerateInitialFixtures(comp, round, teams, date)
	if err != nil {
		return nil, fmt.Errorf("cup first round for competition %d: %w", competitionID, err)
	}
	if err := s.fixtureRepo.BatchCreate(ctx, nil, fixtures); err != nil {
		return nil, fmt.Errorf("persist cup round %d: %w", round.Number, err)
	}
	return fixtures, nil
}

func (s *scheduleService) GenerateCupNextRound(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error) {
	comp, err := s.competitionRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, fmt.Errorf("load competition %d: %w", competitionID, err)
	}
	current, err := s.cupRoundRepo.Latest(ctx, nil, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCupRoundNotFound) {
			return nil, fmt.Errorf("competition %d: %w", competitionID, ErrCupNotStarted)
		}
		return nil, err
	}
	prev, err := s.fixtureRepo.ListByRef(ctx, nil, models.CupRoundRef(current.ID))
	if err != nil {
		return nil, fmt.Errorf("list fixtures of round %d: %w", current.Number, err)
	}

	winners, err := schedule.Winners(prev)
	if schedule.IsRoundFinished(prev) && err == nil && len(winners) == 1 {
		// Champion decided: mark eliminations and close the cup.
		if err := s.eliminateLosers(ctx, competitionID, winners[0]); err != nil {
			return nil, err
		}
		if err := s.competitionRepo.SetFinished(ctx, nil, competitionID, true); err != nil {
			return nil, fmt.Errorf("finish competition %d: %w", competitionID, err)
		}
		return nil, nil
	}

	next := &models.CupRound{CompetitionID: competitionID, Number: current.Number + 1, Name: roundName(len(prev))}
	fixtures, err := s.cup.GenerateNextRound(comp, prev, next, date)
	if err != nil {
		return nil, fmt.Errorf("cup round %d for competition %d: %w", next.Number, competitionID, err)
	}
	if fixtures == nil {
		return nil, nil
	}

	if err := s.cupRoundRepo.Create(ctx, nil, next); err != nil {
		return nil, fmt.Errorf("create cup round %d: %w", next.Number, err)
	}
	// The round row did not exist when pairing ran, so stamp its id in.
	for _, f := range fixtures {
		f.Ref = models.CupRoundRef(next.ID)
	}
	if err := s.fixtureRepo.BatchCreate(ctx, nil, fixtures); err != nil {
		return nil, fmt.Errorf("persist cup round %d: %w", next.Number, err)
	}
	if err := s.markEliminated(ctx, competitionID, prev); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (s *scheduleService) GenerateContinentalLeaguePhase(ctx context.Context, competitionID int, start time.Time, cadence time.Duration) ([]*models.Fixture, error) {
	comp, teams, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	phase := &models.Phase{CompetitionID: competitionID, Order: 1, Name: "League Phase"}
	if err := s.phaseRepo.Create(ctx, nil, phase); err != nil {
		return nil, fmt.Errorf("create league phase for competition %d: %w", competitionID, err)
	}

	fixtures, err := s.continental.GenerateLeaguePhase(comp, phase, teams, start, cadence)
	if err != nil {
		return nil, fmt.Errorf("continental league phase for competition %d: %w", competitionID, err)
	}
	if err := s.fixtureRepo.BatchCreate(ctx, nil, fixtures); err != nil {
		return nil, fmt.Errorf("persist continental league phase: %w", err)
	}

	scope := TableScope{CompetitionID: competitionID, PhaseID: &phase.ID}
	if err := s.standings.InitTable(ctx, scope, teamIDList(teams)); err != nil {
		return nil, fmt.Errorf("init group table for competition %d: %w", competitionID, err)
	}
	return fixtures, nil
}

// markEliminated flags the losers of a finished round.
func (s *scheduleService) markEliminated(ctx context.Context, competitionID int, fixtures []*models.Fixture) error {
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
			return fmt.Errorf("load cup team %d: %w", loserID, err)
		}
		ct.Eliminated = true
		if err := s.cupTeamRepo.Update(ctx, nil, ct); err != nil {
			return fmt.Errorf("eliminate team %d: %w", loserID, err)
		}
	}
	return nil
}

func (s *scheduleService) eliminateLosers(ctx context.Context, competitionID, championID int) error {
	memberships, err := s.cupTeamRepo.ListActive(ctx, nil, competitionID)
	if err != nil {
		return fmt.Errorf("list active cup teams: %w", err)
	}
	for _, ct := range memberships {
		if ct.TeamID == championID {
			continue
		}
		ct.Eliminated = true
		if err := s.cupTeamRepo.Update(ctx, nil, ct); err != nil {
			return fmt.Errorf("eliminate team %d: %w", ct.TeamID, err)
		}
	}
	return nil
}

func (s *scheduleService) loadCompetition(ctx context.Context, competitionID int) (*models.Competition, []*models.Team, error) {
	comp, err := s.competitionRepo.GetByID(ctx, nil, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load competition %d: %w", competitionID, err)
	}
	teams, err := s.competitionRepo.ListTeams(ctx, nil, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams of competition %d: %w", competitionID, err)
	}
	return comp, teams, nil
}

func teamIDList(teams []*models.Team) []int {
	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids
}

// roundName labels a cup round by the number of teams still in it.
func roundName(fixturesOrTeams int) string {
	switch fixturesOrTeams {
	case 2:
		return "Final"
	case 4:
		return "Semi-final"
	case 8:
		return "Quarter-final"
	default:
		return fmt.Sprintf("Round of %d", fixturesOrTeams)
	}
}
