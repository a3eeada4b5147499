package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"github.com/openleague/footsim/schedule"
)

// SeasonService closes out a season: it decides when every competition
// has run its course and condenses each one into a result record.
type SeasonService interface {
	AreAllCompetitionsFinished(ctx context.Context, seasonID int) (bool, error)
	// GenerateSeasonResult writes one result row per competition. The
	// season must be fully played first.
	GenerateSeasonResult(ctx context.Context, seasonID int) ([]*models.CompetitionResult, error)
}

type seasonService struct {
	competitionRepo repositories.CompetitionRepository
	fixtureRepo     repositories.FixtureRepository
	cupRoundRepo    repositories.CupRoundRepository
	phaseRepo       repositories.PhaseRepository
	standingRepo    repositories.StandingRepository
	matchRepo       repositories.MatchRepository
	resultRepo      repositories.ResultRepository
	logger          *slog.Logger
}

func NewSeasonService(
	competitionRepo repositories.CompetitionRepository,
	fixtureRepo repositories.FixtureRepository,
	cupRoundRepo repositories.CupRoundRepository,
	phaseRepo repositories.PhaseRepository,
	standingRepo repositories.StandingRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	logger *slog.Logger,
) SeasonService {
	return &seasonService{
		competitionRepo: competitionRepo,
		fixtureRepo:     fixtureRepo,
		cupRoundRepo:    cupRoundRepo,
		phaseRepo:       phaseRepo,
		standingRepo:    standingRepo,
		matchRepo:       matchRepo,
		resultRepo:      resultRepo,
		logger:          logger,
	}
}

func (s *seasonService) AreAllCompetitionsFinished(ctx context.Context, seasonID int) (bool, error) {
	comps, err := s.competitionRepo.ListBySeason(ctx, nil, seasonID)
	if err != nil {
		return false, fmt.Errorf("list competitions of season %d: %w", seasonID, err)
	}
	for _, comp := range comps {
		done, err := s.isFinished(ctx, comp)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}
	}
	return true, nil
}

// isFinished checks the competition-kind-specific completion signal: a
// league is done when no fixture is left unplayed, a cup when its
// latest round is a played final.
func (s *seasonService) isFinished(ctx context.Context, comp *models.Competition) (bool, error) {
	if comp.Finished {
		return true, nil
	}
	switch comp.Type {
	case models.CompetitionLeague:
		unplayed, err := s.fixtureRepo.CountUnplayed(ctx, nil, comp.ID)
		if err != nil {
			return false, fmt.Errorf("count unplayed fixtures of competition %d: %w", comp.ID, err)
		}
		return unplayed == 0, nil

	case models.CompetitionDomesticCup:
		round, err := s.cupRoundRepo.Latest(ctx, nil, comp.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrCupRoundNotFound) {
				return false, nil
			}
			return false, err
		}
		fixtures, err := s.fixtureRepo.ListByRef(ctx, nil, models.CupRoundRef(round.ID))
		if err != nil {
			return false, fmt.Errorf("list fixtures of round %d: %w", round.Number, err)
		}
		return len(fixtures) == 1 && schedule.IsRoundFinished(fixtures), nil

	case models.CompetitionContinentalCup:
		phase, err := s.phaseRepo.Latest(ctx, nil, comp.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrPhaseNotFound) {
				return false, nil
			}
			return false, err
		}
		if !phase.Knockout {
			return false, nil
		}
		fixtures, err := s.fixtureRepo.ListByRef(ctx, nil, models.PhaseRef(phase.ID))
		if err != nil {
			return false, fmt.Errorf("list fixtures of phase %d: %w", phase.Order, err)
		}
		return len(fixtures) == 1 && schedule.IsRoundFinished(fixtures), nil
	}
	return false, fmt.Errorf("competition %d: unknown type %q", comp.ID, comp.Type)
}

func (s *seasonService) GenerateSeasonResult(ctx context.Context, seasonID int) ([]*models.CompetitionResult, error) {
	done, err := s.AreAllCompetitionsFinished(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, fmt.Errorf("season %d: %w", seasonID, ErrSeasonNotFinished)
	}

	comps, err := s.competitionRepo.ListBySeason(ctx, nil, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list competitions of season %d: %w", seasonID, err)
	}

	results := make([]*models.CompetitionResult, 0, len(comps))
	for _, comp := range comps {
		var result *models.CompetitionResult
		switch comp.Type {
		case models.CompetitionLeague:
			result, err = s.leagueResult(ctx, seasonID, comp)
		case models.CompetitionDomesticCup:
			result, err = s.cupResult(ctx, seasonID, comp)
		case models.CompetitionContinentalCup:
			result, err = s.continentalResult(ctx, seasonID, comp)
		default:
			err = fmt.Errorf("competition %d: unknown type %q", comp.ID, comp.Type)
		}
		if err != nil {
			return nil, err
		}

		s.attachTopScorer(ctx, result)
		if err := s.resultRepo.Create(ctx, nil, result); err != nil {
			return nil, fmt.Errorf("persist result for competition %d: %w", comp.ID, err)
		}
		if !comp.Finished {
			if err := s.competitionRepo.SetFinished(ctx, nil, comp.ID, true); err != nil {
				return nil, fmt.Errorf("finish competition %d: %w", comp.ID, err)
			}
		}
		results = append(results, result)
		s.logger.Info("competition result recorded",
			slog.Int("competition_id", comp.ID),
			slog.String("type", string(comp.Type)),
			slog.Int("champion_team_id", result.ChampionID))
	}
	return results, nil
}

// leagueResult reads the final table: first place is champion, second
// runner-up, and the promotion/relegation/qualification bands follow
// the competition's configured spot counts.
func (s *seasonService) leagueResult(ctx context.Context, seasonID int, comp *models.Competition) (*models.CompetitionResult, error) {
	table, err := s.standingRepo.ListTable(ctx, nil, comp.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("list final table of competition %d: %w", comp.ID, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("competition %d: %w", comp.ID, ErrStandingMissing)
	}

	result := &models.CompetitionResult{
		SeasonID:      seasonID,
		CompetitionID: comp.ID,
		Type:          comp.Type,
		ChampionID:    table[0].TeamID,
	}
	if len(table) > 1 {
		result.RunnerUpID = &table[1].TeamID
	}
	for i, row := range table {
		if i < comp.PromotionSpots {
			result.Promoted = append(result.Promoted, row.TeamID)
		}
		if i < comp.QualificationSpots {
			result.Qualified = append(result.Qualified, row.TeamID)
		}
		if i >= len(table)-comp.RelegationSpots {
			result.Relegated = append(result.Relegated, row.TeamID)
		}
	}
	return result, nil
}

func (s *seasonService) cupResult(ctx context.Context, seasonID int, comp *models.Competition) (*models.CompetitionResult, error) {
	round, err := s.cupRoundRepo.Latest(ctx, nil, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("load final round of competition %d: %w", comp.ID, err)
	}
	return s.finalResult(ctx, seasonID, comp, models.CupRoundRef(round.ID))
}

func (s *seasonService) continentalResult(ctx context.Context, seasonID int, comp *models.Competition) (*models.CompetitionResult, error) {
	phase, err := s.phaseRepo.Latest(ctx, nil, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("load final phase of competition %d: %w", comp.ID, err)
	}
	return s.finalResult(ctx, seasonID, comp, models.PhaseRef(phase.ID))
}

// finalResult reads the single final fixture: its winner is champion,
// the other side runner-up.
func (s *seasonService) finalResult(ctx context.Context, seasonID int, comp *models.Competition, ref models.FixtureRef) (*models.CompetitionResult, error) {
	fixtures, err := s.fixtureRepo.ListByRef(ctx, nil, ref)
	if err != nil {
		return nil, fmt.Errorf("list final fixtures of competition %d: %w", comp.ID, err)
	}
	if len(fixtures) != 1 {
		return nil, fmt.Errorf("competition %d: expected a single final, found %d fixtures", comp.ID, len(fixtures))
	}
	final := fixtures[0]
	if final.WinnerID == nil {
		return nil, fmt.Errorf("competition %d: %w", comp.ID, schedule.ErrFixtureWithoutWinner)
	}

	runnerUp := final.HomeTeamID
	if runnerUp == *final.WinnerID {
		runnerUp = final.AwayTeamID
	}
	return &models.CompetitionResult{
		SeasonID:      seasonID,
		CompetitionID: comp.ID,
		Type:          comp.Type,
		ChampionID:    *final.WinnerID,
		RunnerUpID:    &runnerUp,
	}, nil
}

// attachTopScorer is best effort: a competition without a single goal
// simply has no award.
func (s *seasonService) attachTopScorer(ctx context.Context, result *models.CompetitionResult) {
	playerID, goals, err := s.matchRepo.TopScorer(ctx, nil, result.CompetitionID)
	if err != nil {
		if !errors.Is(err, repositories.ErrMatchNotFound) {
			s.logger.Warn("top scorer lookup failed",
				slog.Int("competition_id", result.CompetitionID),
				slog.String("error", err.Error()))
		}
		return
	}
	result.TopScorerID = &playerID
	s.logger.Debug("top scorer",
		slog.Int("competition_id", result.CompetitionID),
		slog.Int("player_id", playerID),
		slog.Int("goals", goals))
}
