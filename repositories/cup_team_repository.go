package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openleague/footsim/models"
)

var ErrCupTeamNotFound = errors.New("cup team membership not found")

// CupTeamRepository manages per-competition team membership records
// (the competition_teams table), including the elimination state used
// by cup competitions.
type CupTeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, ct *models.CupTeam) error
	GetByTeam(ctx context.Context, exec SQLExecutor, competitionID, teamID int) (*models.CupTeam, error)
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupTeam, error)
	ListActive(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupTeam, error)
	Update(ctx context.Context, exec SQLExecutor, ct *models.CupTeam) error
}

type postgresCupTeamRepository struct {
	db *sql.DB
}

func NewPostgresCupTeamRepository(db *sql.DB) CupTeamRepository {
	return &postgresCupTeamRepository{db: db}
}

func (r *postgresCupTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const cupTeamColumns = `id, competition_id, team_id, eliminated, current_phase_order, playoff_participant`

func scanCupTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.CupTeam, error) {
	var ct models.CupTeam
	err := rowScanner.Scan(&ct.ID, &ct.CompetitionID, &ct.TeamID, &ct.Eliminated, &ct.CurrentPhaseOrder, &ct.PlayoffParticipant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCupTeamNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (r *postgresCupTeamRepository) Create(ctx context.Context, exec SQLExecutor, ct *models.CupTeam) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO competition_teams (competition_id, team_id, eliminated, current_phase_order, playoff_participant)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return executor.QueryRowContext(ctx, query,
		ct.CompetitionID, ct.TeamID, ct.Eliminated, ct.CurrentPhaseOrder, ct.PlayoffParticipant,
	).Scan(&ct.ID)
}

func (r *postgresCupTeamRepository) GetByTeam(ctx context.Context, exec SQLExecutor, competitionID, teamID int) (*models.CupTeam, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + cupTeamColumns + ` FROM competition_teams WHERE competition_id = $1 AND team_id = $2`
	return scanCupTeam(executor.QueryRowContext(ctx, query, competitionID, teamID))
}

func (r *postgresCupTeamRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupTeam, error) {
	query := `SELECT ` + cupTeamColumns + ` FROM competition_teams WHERE competition_id = $1 ORDER BY team_id`
	return r.list(ctx, exec, query, competitionID)
}

func (r *postgresCupTeamRepository) ListActive(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupTeam, error) {
	query := `SELECT ` + cupTeamColumns + ` FROM competition_teams WHERE competition_id = $1 AND eliminated = FALSE ORDER BY team_id`
	return r.list(ctx, exec, query, competitionID)
}

func (r *postgresCupTeamRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.CupTeam, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]*models.CupTeam, 0)
	for rows.Next() {
		ct, errScan := scanCupTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		memberships = append(memberships, ct)
	}
	return memberships, rows.Err()
}

func (r *postgresCupTeamRepository) Update(ctx context.Context, exec SQLExecutor, ct *models.CupTeam) error {
	executor := r.getExecutor(exec)
	query := `UPDATE competition_teams SET eliminated = $1, current_phase_order = $2, playoff_participant = $3 WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, ct.Eliminated, ct.CurrentPhaseOrder, ct.PlayoffParticipant, ct.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCupTeamNotFound)
}
