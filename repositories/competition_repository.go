package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openleague/footsim/models"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Competition, error)
	ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Competition, error)
	SetFinished(ctx context.Context, exec SQLExecutor, id int, finished bool) error
	// ListTeams returns the member teams of a competition instance.
	ListTeams(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Team, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const competitionColumns = `id, season_id, name, competition_type, finished, promotion_spots, relegation_spots, qualification_spots`

func scanCompetition(rowScanner interface{ Scan(...interface{}) error }) (*models.Competition, error) {
	var c models.Competition
	err := rowScanner.Scan(&c.ID, &c.SeasonID, &c.Name, &c.Type, &c.Finished,
		&c.PromotionSpots, &c.RelegationSpots, &c.QualificationSpots)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Competition, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`
	return scanCompetition(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitionRepository) ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.Competition, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE season_id = $1 ORDER BY id`
	rows, err := executor.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := make([]*models.Competition, 0)
	for rows.Next() {
		c, errScan := scanCompetition(rows)
		if errScan != nil {
			return nil, errScan
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

func (r *postgresCompetitionRepository) SetFinished(ctx context.Context, exec SQLExecutor, id int, finished bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE competitions SET finished = $1 WHERE id = $2`, finished, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) ListTeams(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT t.id, t.name, t.game_save_id, t.human_controlled, t.formation, t.created_at
		FROM teams t
		JOIN competition_teams ct ON ct.team_id = t.id
		WHERE ct.competition_id = $1
		ORDER BY t.id`
	rows, err := executor.QueryContext(ctx, query, competitionID)
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
