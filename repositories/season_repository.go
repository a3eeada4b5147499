package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/openleague/footsim/models"
)

var (
	ErrSeasonNotFound = errors.New("season not found")
)

type SeasonRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Season, error)
	GetCurrentByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) (*models.Season, error)
}

type SeasonEventRepository interface {
	Create(ctx context.Context, exec SQLExecutor, event *models.SeasonEvent) error
	// ListByDate returns the season events scheduled on a calendar day.
	ListByDate(ctx context.Context, exec SQLExecutor, seasonID int, date time.Time) ([]*models.SeasonEvent, error)
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func scanSeason(rowScanner interface{ Scan(...interface{}) error }) (*models.Season, error) {
	var s models.Season
	err := rowScanner.Scan(&s.ID, &s.GameSaveID, &s.Year, &s.Current, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Season, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, game_save_id, year, current, created_at FROM seasons WHERE id = $1`
	return scanSeason(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) GetCurrentByGameSave(ctx context.Context, exec SQLExecutor, gameSaveID int) (*models.Season, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, game_save_id, year, current, created_at FROM seasons WHERE game_save_id = $1 AND current = TRUE`
	return scanSeason(executor.QueryRowContext(ctx, query, gameSaveID))
}

type postgresSeasonEventRepository struct {
	db *sql.DB
}

func NewPostgresSeasonEventRepository(db *sql.DB) SeasonEventRepository {
	return &postgresSeasonEventRepository{db: db}
}

func (r *postgresSeasonEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSeasonEventRepository) Create(ctx context.Context, exec SQLExecutor, event *models.SeasonEvent) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO season_events (season_id, date, event_type) VALUES ($1, $2, $3) RETURNING id`
	return executor.QueryRowContext(ctx, query, event.SeasonID, event.Date, event.Type).Scan(&event.ID)
}

func (r *postgresSeasonEventRepository) ListByDate(ctx context.Context, exec SQLExecutor, seasonID int, date time.Time) ([]*models.SeasonEvent, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, season_id, date, event_type FROM season_events
	          WHERE season_id = $1 AND date::date = $2::date ORDER BY id`
	rows, err := executor.QueryContext(ctx, query, seasonID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.SeasonEvent, 0)
	for rows.Next() {
		var e models.SeasonEvent
		if err := rows.Scan(&e.ID, &e.SeasonID, &e.Date, &e.Type); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
