package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
)

// TableScope identifies one ranked table: a league table (phase nil)
// or a continental group table (phase set). Both competition kinds
// share the same engine.
type TableScope struct {
	CompetitionID int
	PhaseID       *int
}

// ScopeFor derives the table scope a fixture's result belongs to.
func ScopeFor(fixture *models.Fixture) TableScope {
	scope := TableScope{CompetitionID: fixture.CompetitionID}
	if fixture.Ref.Kind == models.RefPhase {
		id := fixture.Ref.ID
		scope.PhaseID = &id
	}
	return scope
}

type StandingsService interface {
	// ApplyFixtureResult folds one completed fixture into the two
	// involved rows and re-ranks the whole table.
	ApplyFixtureResult(ctx context.Context, fixture *models.Fixture) error
	// InitTable creates zeroed rows for every team in the scope.
	InitTable(ctx context.Context, scope TableScope, teamIDs []int) error
	Table(ctx context.Context, scope TableScope) ([]*models.Standing, error)
}

type standingsService struct {
	txr          repositories.TxRunner
	standingRepo repositories.StandingRepository

	// Ranking recomputation reads and rewrites every row of a table,
	// so results landing concurrently in one competition must take
	// turns. One mutex per competition instance.
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewStandingsService(txr repositories.TxRunner, standingRepo repositories.StandingRepository) StandingsService {
	return &standingsService{
		txr:          txr,
		standingRepo: standingRepo,
		locks:        make(map[int]*sync.Mutex),
	}
}

func (s *standingsService) lockFor(competitionID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[competitionID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[competitionID] = l
	return l
}

func (s *standingsService) ApplyFixtureResult(ctx context.Context, fixture *models.Fixture) error {
	if !fixture.HasScore() {
		return fmt.Errorf("fixture %d: %w", fixture.ID, ErrFixtureNotScored)
	}
	scope := ScopeFor(fixture)

	lock := s.lockFor(scope.CompetitionID)
	lock.Lock()
	defer lock.Unlock()

	return s.txr.InTx(ctx, func(exec repositories.SQLExecutor) error {
		home, err := s.standingRepo.GetByTeam(ctx, exec, scope.CompetitionID, scope.PhaseID, fixture.HomeTeamID)
		if err != nil {
			return wrapStandingErr(err, fixture.HomeTeamID, scope)
		}
		away, err := s.standingRepo.GetByTeam(ctx, exec, scope.CompetitionID, scope.PhaseID, fixture.AwayTeamID)
		if err != nil {
			return wrapStandingErr(err, fixture.AwayTeamID, scope)
		}

		ApplyScore(home, away, *fixture.HomeGoals, *fixture.AwayGoals)
		if err := s.standingRepo.Update(ctx, exec, home); err != nil {
			return fmt.Errorf("update standing for team %d: %w", home.TeamID, err)
		}
		if err := s.standingRepo.Update(ctx, exec, away); err != nil {
			return fmt.Errorf("update standing for team %d: %w", away.TeamID, err)
		}

		table, err := s.standingRepo.ListTable(ctx, exec, scope.CompetitionID, scope.PhaseID)
		if err != nil {
			return fmt.Errorf("list table for competition %d: %w", scope.CompetitionID, err)
		}
		Rerank(table)
		for _, row := range table {
			if err := s.standingRepo.Update(ctx, exec, row); err != nil {
				return fmt.Errorf("update ranking for team %d: %w", row.TeamID, err)
			}
		}
		return nil
	})
}

func wrapStandingErr(err error, teamID int, scope TableScope) error {
	if errors.Is(err, repositories.ErrStandingNotFound) {
		return fmt.Errorf("%w: team %d in competition %d", ErrStandingMissing, teamID, scope.CompetitionID)
	}
	return fmt.Errorf("load standing for team %d: %w", teamID, err)
}

func (s *standingsService) InitTable(ctx context.Context, scope TableScope, teamIDs []int) error {
	rows := make([]*models.Standing, 0, len(teamIDs))
	for i, teamID := range teamIDs {
		rows = append(rows, &models.Standing{
			CompetitionID: scope.CompetitionID,
			PhaseID:       scope.PhaseID,
			TeamID:        teamID,
			Ranking:       i + 1,
		})
	}
	return s.standingRepo.BatchCreate(ctx, nil, rows)
}

func (s *standingsService) Table(ctx context.Context, scope TableScope) ([]*models.Standing, error) {
	return s.standingRepo.ListTable(ctx, nil, scope.CompetitionID, scope.PhaseID)
}

// ApplyScore folds one final score into both rows: matches, goals,
// derived goal difference, 3/1/0 points and the W/D/L tallies.
func ApplyScore(home, away *models.Standing, homeGoals, awayGoals int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals
	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst

	switch {
	case homeGoals > awayGoals:
		home.Wins++
		home.Points += 3
		away.Losses++
	case awayGoals > homeGoals:
		away.Wins++
		away.Points += 3
		home.Losses++
	default:
		home.Draws++
		away.Draws++
		home.Points++
		away.Points++
	}
}

// Rerank orders rows by points desc, goal difference desc, goals for
// desc and assigns a dense 1..N ranking. The sort is stable so deeper
// ties keep their incoming order, which keeps ranking deterministic.
func Rerank(rows []*models.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i, row := range rows {
		row.Ranking = i + 1
	}
}
