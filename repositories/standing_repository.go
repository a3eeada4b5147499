package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openleague/footsim/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository persists ranked table rows. A table is keyed by
// competition, plus phase for continental group tables.
type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	BatchCreate(ctx context.Context, exec SQLExecutor, standings []*models.Standing) error
	GetByTeam(ctx context.Context, exec SQLExecutor, competitionID int, phaseID *int, teamID int) (*models.Standing, error)
	Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	// ListTable returns every row of one table, ranked order first.
	ListTable(ctx context.Context, exec SQLExecutor, competitionID int, phaseID *int) ([]*models.Standing, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const standingColumns = `id, competition_id, phase_id, team_id, played, wins, draws, losses,
	goals_for, goals_against, goal_difference, points, ranking, updated_at`

func scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := rowScanner.Scan(
		&s.ID, &s.CompetitionID, &s.PhaseID, &s.TeamID, &s.Played, &s.Wins, &s.Draws, &s.Losses,
		&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference, &s.Points, &s.Ranking, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO standings
		    (competition_id, phase_id, team_id, played, wins, draws, losses,
		     goals_for, goals_against, goal_difference, points, ranking, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		standing.CompetitionID, standing.PhaseID, standing.TeamID, standing.Played,
		standing.Wins, standing.Draws, standing.Losses, standing.GoalsFor, standing.GoalsAgainst,
		standing.GoalDifference, standing.Points, standing.Ranking, standing.UpdatedAt,
	).Scan(&standing.ID)
}

func (r *postgresStandingRepository) BatchCreate(ctx context.Context, exec SQLExecutor, standings []*models.Standing) error {
	for _, s := range standings {
		if err := r.Create(ctx, exec, s); err != nil {
			return fmt.Errorf("batch create standing for team %d: %w", s.TeamID, err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) GetByTeam(ctx context.Context, exec SQLExecutor, competitionID int, phaseID *int, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT ` + standingColumns + ` FROM standings
		WHERE competition_id = $1 AND phase_id IS NOT DISTINCT FROM $2 AND team_id = $3`
	return scanStanding(executor.QueryRowContext(ctx, query, competitionID, phaseID, teamID))
}

func (r *postgresStandingRepository) Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings SET
			played = $1, wins = $2, draws = $3, losses = $4,
			goals_for = $5, goals_against = $6, goal_difference = $7,
			points = $8, ranking = $9, updated_at = NOW()
		WHERE id = $10`
	result, err := executor.ExecContext(ctx, query,
		standing.Played, standing.Wins, standing.Draws, standing.Losses,
		standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference,
		standing.Points, standing.Ranking, standing.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) ListTable(ctx context.Context, exec SQLExecutor, competitionID int, phaseID *int) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	// team_id keeps deep ties stable across reads.
	query := `
		SELECT ` + standingColumns + ` FROM standings
		WHERE competition_id = $1 AND phase_id IS NOT DISTINCT FROM $2
		ORDER BY points DESC, goal_difference DESC, goals_for DESC, team_id ASC`
	rows, err := executor.QueryContext(ctx, query, competitionID, phaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, errScan := scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
