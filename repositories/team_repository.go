package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openleague/footsim/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	ListByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) ([]*models.Team, error)
	// ListCPUByGameSave returns every team not under human control.
	ListCPUByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) ([]*models.Team, error)
	UpdateFormation(ctx context.Context, exec SQLExecutor, teamID int, formation string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, game_save_id, human_controlled, formation, created_at`

func scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(&t.ID, &t.Name, &t.GameSaveID, &t.HumanControlled, &t.Formation, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return scanTeam(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) ListByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) ([]*models.Team, error) {
	return r.list(ctx, exec, `SELECT `+teamColumns+` FROM teams WHERE game_save_id = $1 ORDER BY id`, gameSaveID)
}

func (r *postgresTeamRepository) ListCPUByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) ([]*models.Team, error) {
	return r.list(ctx, exec, `SELECT `+teamColumns+` FROM teams WHERE game_save_id = $1 AND human_controlled = FALSE ORDER BY id`, gameSaveID)
}

func (r *postgresTeamRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, errScan := scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateFormation(ctx context.Context, exec SQLExecutor, teamID int, formation string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE teams SET formation = $1 WHERE id = $2`, formation, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
