package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openleague/footsim/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// Create persists the match with its events and penalties.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByFixture(ctx context.Context, exec SQLExecutor, fixtureID int) (*models.Match, error)
	ListEvents(ctx context.Context, exec SQLExecutor, matchID int) ([]models.MatchEvent, error)
	// TopScorer returns the player with the most goal events across a
	// competition, or ErrMatchNotFound when no goals were scored.
	TopScorer(ctx context.Context, exec SQLExecutor, competitionID int) (playerID int, goals int, err error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO matches (fixture_id, minute, status, home_goals, away_goals, winner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := executor.QueryRowContext(ctx, query,
		match.FixtureID, match.Minute, match.Status, match.HomeGoals, match.AwayGoals, match.WinnerID, match.CreatedAt,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("create match for fixture %d: %w", match.FixtureID, err)
	}

	for i := range match.Events {
		e := &match.Events[i]
		e.MatchID = match.ID
		err := executor.QueryRowContext(ctx, `
			INSERT INTO match_events (match_id, minute, team_id, player_id, event_type, outcome, commentary)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			e.MatchID, e.Minute, e.TeamID, e.PlayerID, e.EventType, e.Outcome, e.Commentary,
		).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("create event at minute %d for match %d: %w", e.Minute, match.ID, err)
		}
	}

	for i := range match.Penalties {
		p := &match.Penalties[i]
		p.MatchID = match.ID
		err := executor.QueryRowContext(ctx, `
			INSERT INTO penalties (match_id, kick_order, team_id, player_id, scored)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			p.MatchID, p.Order, p.TeamID, p.PlayerID, p.Scored,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("create penalty %d for match %d: %w", p.Order, match.ID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByFixture(ctx context.Context, exec SQLExecutor, fixtureID int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	var m models.Match
	query := `SELECT id, fixture_id, minute, status, home_goals, away_goals, winner_id, created_at
	          FROM matches WHERE fixture_id = $1`
	err := executor.QueryRowContext(ctx, query, fixtureID).Scan(
		&m.ID, &m.FixtureID, &m.Minute, &m.Status, &m.HomeGoals, &m.AwayGoals, &m.WinnerID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	events, err := r.ListEvents(ctx, executor, m.ID)
	if err != nil {
		return nil, err
	}
	m.Events = events
	return &m, nil
}

func (r *postgresMatchRepository) ListEvents(ctx context.Context, exec SQLExecutor, matchID int) ([]models.MatchEvent, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, match_id, minute, team_id, player_id, event_type, outcome, commentary
	          FROM match_events WHERE match_id = $1 ORDER BY minute, id`
	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.MatchEvent, 0)
	for rows.Next() {
		var e models.MatchEvent
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Minute, &e.TeamID, &e.PlayerID, &e.EventType, &e.Outcome, &e.Commentary); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresMatchRepository) TopScorer(ctx context.Context, exec SQLExecutor, competitionID int) (int, int, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT me.player_id, COUNT(*) AS goals
		FROM match_events me
		JOIN matches m ON m.id = me.match_id
		JOIN fixtures f ON f.id = m.fixture_id
		WHERE f.competition_id = $1 AND me.outcome = 'goal'
		GROUP BY me.player_id
		ORDER BY goals DESC, me.player_id ASC
		LIMIT 1`
	var playerID, goals int
	err := executor.QueryRowContext(ctx, query, competitionID).Scan(&playerID, &goals)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrMatchNotFound
		}
		return 0, 0, err
	}
	return playerID, goals, nil
}
