package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/openleague/footsim/models"
)

var ErrResultNotFound = errors.New("competition result not found")

type ResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.CompetitionResult) error
	ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.CompetitionResult, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.CompetitionResult) error {
	executor := r.getExecutor(exec)
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO competition_results
		    (season_id, competition_id, competition_type, champion_id, runner_up_id,
		     promoted, relegated, qualified, top_scorer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		result.SeasonID, result.CompetitionID, result.Type, result.ChampionID, result.RunnerUpID,
		pq.Array(result.Promoted), pq.Array(result.Relegated), pq.Array(result.Qualified),
		result.TopScorerID, result.CreatedAt,
	).Scan(&result.ID)
}

func (r *postgresResultRepository) ListBySeason(ctx context.Context, exec SQLExecutor, seasonID int) ([]*models.CompetitionResult, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, season_id, competition_id, competition_type, champion_id, runner_up_id,
		       promoted, relegated, qualified, top_scorer_id, created_at
		FROM competition_results WHERE season_id = $1 ORDER BY competition_id`
	rows, err := executor.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*models.CompetitionResult, 0)
	for rows.Next() {
		var res models.CompetitionResult
		var promoted, relegated, qualified pq.Int64Array
		err := rows.Scan(&res.ID, &res.SeasonID, &res.CompetitionID, &res.Type, &res.ChampionID,
			&res.RunnerUpID, &promoted, &relegated, &qualified, &res.TopScorerID, &res.CreatedAt)
		if err != nil {
			return nil, err
		}
		res.Promoted = toIntSlice(promoted)
		res.Relegated = toIntSlice(relegated)
		res.Qualified = toIntSlice(qualified)
		results = append(results, &res)
	}
	return results, rows.Err()
}

func toIntSlice(arr pq.Int64Array) []int {
	if len(arr) == 0 {
		return nil
	}
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
