package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openleague/footsim/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// attributes are stored as a jsonb column.
func scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	var attrsRaw []byte
	err := rowScanner.Scan(&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &p.Position, &attrsRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if len(attrsRaw) > 0 {
		if err := json.Unmarshal(attrsRaw, &p.Attributes); err != nil {
			return nil, fmt.Errorf("player %d: invalid attributes json: %w", p.ID, err)
		}
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, team_id, first_name, last_name, position, attributes FROM players WHERE id = $1`
	return scanPlayer(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, team_id, first_name, last_name, position, attributes FROM players WHERE team_id = $1 ORDER BY id`
	rows, err := executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, errScan := scanPlayer(rows)
		if errScan != nil {
			return nil, errScan
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
