package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openleague/footsim/models"
)

var ErrCupRoundNotFound = errors.New("cup round not found")

type CupRoundRepository interface {
	Create(ctx context.Context, exec SQLExecutor, round *models.CupRound) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.CupRound, error)
	// Latest returns the highest-numbered round of a competition, or
	// ErrCupRoundNotFound when none exists yet.
	Latest(ctx context.Context, exec SQLExecutor, competitionID int) (*models.CupRound, error)
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupRound, error)
}

type postgresCupRoundRepository struct {
	db *sql.DB
}

func NewPostgresCupRoundRepository(db *sql.DB) CupRoundRepository {
	return &postgresCupRoundRepository{db: db}
}

func (r *postgresCupRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func scanCupRound(rowScanner interface{ Scan(...interface{}) error }) (*models.CupRound, error) {
	var cr models.CupRound
	err := rowScanner.Scan(&cr.ID, &cr.CompetitionID, &cr.Number, &cr.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCupRoundNotFound
		}
		return nil, err
	}
	return &cr, nil
}

func (r *postgresCupRoundRepository) Create(ctx context.Context, exec SQLExecutor, round *models.CupRound) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO cup_rounds (competition_id, number, name) VALUES ($1, $2, $3) RETURNING id`
	return executor.QueryRowContext(ctx, query, round.CompetitionID, round.Number, round.Name).Scan(&round.ID)
}

func (r *postgresCupRoundRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.CupRound, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, competition_id, number, name FROM cup_rounds WHERE id = $1`
	return scanCupRound(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresCupRoundRepository) Latest(ctx context.Context, exec SQLExecutor, competitionID int) (*models.CupRound, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, competition_id, number, name FROM cup_rounds WHERE competition_id = $1 ORDER BY number DESC LIMIT 1`
	return scanCupRound(executor.QueryRowContext(ctx, query, competitionID))
}

func (r *postgresCupRoundRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.CupRound, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, competition_id, number, name FROM cup_rounds WHERE competition_id = $1 ORDER BY number`
	rows, err := executor.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]*models.CupRound, 0)
	for rows.Next() {
		cr, errScan := scanCupRound(rows)
		if errScan != nil {
			return nil, errScan
		}
		rounds = append(rounds, cr)
	}
	return rounds, rows.Err()
}
