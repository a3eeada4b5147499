package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/openleague/footsim/engine"
	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	"golang.org/x/sync/errgroup"
)

// maxParallelMatches caps the errgroup fan-out across one matchday.
const maxParallelMatches = 8

// MatchNotifier is the fire-and-forget messaging boundary: failures
// there must never roll back match persistence, so the interface has
// no error to return.
type MatchNotifier interface {
	MatchFinished(fixture *models.Fixture, match *models.Match)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) MatchFinished(*models.Fixture, *models.Match) {}

type MatchService interface {
	// SimulateFixture plays one due fixture to full time, persists the
	// match and score, and routes the result to the standings engine.
	SimulateFixture(ctx context.Context, fixtureID int) (*models.Match, error)
	// SimulateDay plays every fixture due on the given date. Fixtures
	// are independent, so they run in parallel; standings writes are
	// serialized per competition by the standings engine.
	SimulateDay(ctx context.Context, seasonID int, date time.Time) ([]*models.Match, error)
}

type matchService struct {
	txr         repositories.TxRunner
	fixtureRepo repositories.FixtureRepository
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	playerRepo  repositories.PlayerRepository
	phaseRepo   repositories.PhaseRepository
	dispatcher  StandingsDispatcher
	notifier    MatchNotifier
	logger      *slog.Logger

	simCfg     engine.Config
	eventTypes []engine.EventType
	commentary engine.CommentaryPool
	// seed anchors the per-fixture generators, keeping a whole season
	// reproducible from one number.
	seed int64
}

func NewMatchService(
	txr repositories.TxRunner,
	fixtureRepo repositories.FixtureRepository,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	phaseRepo repositories.PhaseRepository,
	dispatcher StandingsDispatcher,
	notifier MatchNotifier,
	logger *slog.Logger,
	simCfg engine.Config,
	seed int64,
) MatchService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &matchService{
		txr:         txr,
		fixtureRepo: fixtureRepo,
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		phaseRepo:   phaseRepo,
		dispatcher:  dispatcher,
		notifier:    notifier,
		logger:      logger,
		simCfg:      simCfg,
		eventTypes:  engine.DefaultEventTypes(),
		commentary:  engine.DefaultCommentary(),
		seed:        seed,
	}
}

func (s *matchService) SimulateFixture(ctx context.Context, fixtureID int) (*models.Match, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, nil, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("load fixture %d: %w", fixtureID, err)
	}
	return s.simulate(ctx, fixture)
}

func (s *matchService) SimulateDay(ctx context.Context, seasonID int, date time.Time) ([]*models.Match, error) {
	due, err := s.fixtureRepo.ListDue(ctx, nil, seasonID, date)
	if err != nil {
		return nil, fmt.Errorf("list due fixtures for %s: %w", date.Format("2006-01-02"), err)
	}
	if len(due) == 0 {
		return []*models.Match{}, nil
	}

	matches := make([]*models.Match, len(due))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelMatches)
	for i, fixture := range due {
		i, fixture := i, fixture
		g.Go(func() error {
			m, err := s.simulate(gCtx, fixture)
			if err != nil {
				return fmt.Errorf("fixture %d: %w", fixture.ID, err)
			}
			matches[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *matchService) simulate(ctx context.Context, fixture *models.Fixture) (*models.Match, error) {
	home, err := s.loadSheet(ctx, fixture.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := s.loadSheet(ctx, fixture.AwayTeamID)
	if err != nil {
		return nil, err
	}

	needsWinner, err := s.needsWinner(ctx, fixture)
	if err != nil {
		return nil, err
	}

	// Own generator per fixture: deterministic under a fixed season
	// seed, and race-free when the matchday fans out.
	rng := rand.New(rand.NewSource(s.seed ^ int64(fixture.ID)<<17))
	sim, err := engine.NewSimulator(rng, s.simCfg, s.eventTypes, s.commentary)
	if err != nil {
		return nil, err
	}
	match, err := sim.Play(fixture, home, away, needsWinner)
	if err != nil {
		return nil, err
	}

	err = s.txr.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.fixtureRepo.RecordResult(ctx, exec, fixture); err != nil {
			return fmt.Errorf("record result: %w", err)
		}
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			return fmt.Errorf("persist match: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, fixture); err != nil {
		return nil, fmt.Errorf("standings dispatch: %w", err)
	}

	s.notifier.MatchFinished(fixture, match)
	s.logger.Info("match finished",
		slog.Int("fixture_id", fixture.ID),
		slog.Int("home_goals", match.HomeGoals),
		slog.Int("away_goals", match.AwayGoals))
	return match, nil
}

func (s *matchService) loadSheet(ctx context.Context, teamID int) (engine.TeamSheet, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return engine.TeamSheet{}, fmt.Errorf("load team %d: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, nil, teamID)
	if err != nil {
		return engine.TeamSheet{}, fmt.Errorf("load players of team %d: %w", teamID, err)
	}
	return engine.TeamSheet{Team: team, Players: players}, nil
}

// needsWinner holds for every domestic cup leg and for continental
// knockout fixtures; league and group fixtures may end drawn.
func (s *matchService) needsWinner(ctx context.Context, fixture *models.Fixture) (bool, error) {
	switch fixture.Type {
	case models.CompetitionDomesticCup:
		return true, nil
	case models.CompetitionContinentalCup:
		phase, err := s.phaseRepo.GetByID(ctx, nil, fixture.Ref.ID)
		if err != nil {
			return false, fmt.Errorf("load phase %d: %w", fixture.Ref.ID, err)
		}
		return phase.Knockout, nil
	default:
		return false, nil
	}
}
