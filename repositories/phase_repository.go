package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openleague/footsim/models"
)

var ErrPhaseNotFound = errors.New("phase not found")

type PhaseRepository interface {
	Create(ctx context.Context, exec SQLExecutor, phase *models.Phase) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Phase, error)
	Latest(ctx context.Context, exec SQLExecutor, competitionID int) (*models.Phase, error)
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Phase, error)
}

type postgresPhaseRepository struct {
	db *sql.DB
}

func NewPostgresPhaseRepository(db *sql.DB) PhaseRepository {
	return &postgresPhaseRepository{db: db}
}

func (r *postgresPhaseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const phaseColumns = `id, competition_id, phase_order, name, knockout, qualification`

func scanPhase(rowScanner interface{ Scan(...interface{}) error }) (*models.Phase, error) {
	var p models.Phase
	err := rowScanner.Scan(&p.ID, &p.CompetitionID, &p.Order, &p.Name, &p.Knockout, &p.Qualification)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhaseNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPhaseRepository) Create(ctx context.Context, exec SQLExecutor, phase *models.Phase) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO phases (competition_id, phase_order, name, knockout, qualification)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return executor.QueryRowContext(ctx, query,
		phase.CompetitionID, phase.Order, phase.Name, phase.Knockout, phase.Qualification,
	).Scan(&phase.ID)
}

func (r *postgresPhaseRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Phase, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = $1`
	return scanPhase(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresPhaseRepository) Latest(ctx context.Context, exec SQLExecutor, competitionID int) (*models.Phase, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE competition_id = $1 ORDER BY phase_order DESC LIMIT 1`
	return scanPhase(executor.QueryRowContext(ctx, query, competitionID))
}

func (r *postgresPhaseRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Phase, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE competition_id = $1 ORDER BY phase_order`
	rows, err := executor.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phases := make([]*models.Phase, 0)
	for rows.Next() {
		p, errScan := scanPhase(rows)
		if errScan != nil {
			return nil, errScan
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}
