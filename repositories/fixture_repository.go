package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openleague/footsim/models"
)

var (
	ErrFixtureNotFound   = errors.New("fixture not found")
	ErrFixtureRefInvalid = errors.New("fixture references no league/round/phase, or more than one")
)

type FixtureRepository interface {
	Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error
	BatchCreate(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error)
	// RecordResult persists status, score and winner after a match.
	RecordResult(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error
	ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Fixture, error)
	ListByRef(ctx context.Context, exec SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error)
	// ListDue returns scheduled fixtures dated on the given calendar day.
	ListDue(ctx context.Context, exec SQLExecutor, seasonID int, date time.Time) ([]*models.Fixture, error)
	CountUnplayed(ctx context.Context, exec SQLExecutor, competitionID int) (int, error)
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

func (r *postgresFixtureRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const fixtureColumns = `id, competition_id, competition_type, league_id, cup_round_id, phase_id, round,
	home_team_id, away_team_id, date, status, home_goals, away_goals, winner_id`

// refColumns splits the tagged reference back into the three nullable
// columns the table stores.
func refColumns(f *models.Fixture) (leagueID, cupRoundID, phaseID *int) {
	id := f.Ref.ID
	switch f.Ref.Kind {
	case models.RefLeague:
		leagueID = &id
	case models.RefCupRound:
		cupRoundID = &id
	case models.RefPhase:
		phaseID = &id
	}
	return leagueID, cupRoundID, phaseID
}

func scanFixture(rowScanner interface{ Scan(...interface{}) error }) (*models.Fixture, error) {
	var f models.Fixture
	var leagueID, cupRoundID, phaseID *int
	err := rowScanner.Scan(
		&f.ID, &f.CompetitionID, &f.Type, &leagueID, &cupRoundID, &phaseID, &f.Round,
		&f.HomeTeamID, &f.AwayTeamID, &f.Date, &f.Status, &f.HomeGoals, &f.AwayGoals, &f.WinnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}

	// Exactly one reference column must be set; anything else is data
	// corruption and fails loudly here rather than downstream.
	set := 0
	switch {
	case leagueID != nil:
		f.Ref = models.LeagueRef(*leagueID)
	case cupRoundID != nil:
		f.Ref = models.CupRoundRef(*cupRoundID)
	case phaseID != nil:
		f.Ref = models.PhaseRef(*phaseID)
	}
	for _, p := range []*int{leagueID, cupRoundID, phaseID} {
		if p != nil {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("fixture %d: %w (%d set)", f.ID, ErrFixtureRefInvalid, set)
	}
	return &f, nil
}

func (r *postgresFixtureRepository) Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error {
	executor := r.getExecutor(exec)
	leagueID, cupRoundID, phaseID := refColumns(fixture)
	query := `
		INSERT INTO fixtures
		    (competition_id, competition_type, league_id, cup_round_id, phase_id, round,
		     home_team_id, away_team_id, date, status, home_goals, away_goals, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		fixture.CompetitionID, fixture.Type, leagueID, cupRoundID, phaseID, fixture.Round,
		fixture.HomeTeamID, fixture.AwayTeamID, fixture.Date, fixture.Status,
		fixture.HomeGoals, fixture.AwayGoals, fixture.WinnerID,
	).Scan(&fixture.ID)
}

func (r *postgresFixtureRepository) BatchCreate(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error {
	for _, f := range fixtures {
		if err := r.Create(ctx, exec, f); err != nil {
			return fmt.Errorf("batch create fixture %d vs %d: %w", f.HomeTeamID, f.AwayTeamID, err)
		}
	}
	return nil
}

func (r *postgresFixtureRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`
	return scanFixture(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresFixtureRepository) RecordResult(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error {
	executor := r.getExecutor(exec)
	query := `UPDATE fixtures SET status = $1, home_goals = $2, away_goals = $3, winner_id = $4 WHERE id = $5`
	result, err := executor.ExecContext(ctx, query,
		fixture.Status, fixture.HomeGoals, fixture.AwayGoals, fixture.WinnerID, fixture.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) ListByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) ([]*models.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE competition_id = $1 ORDER BY round, id`
	return r.list(ctx, exec, query, competitionID)
}

func (r *postgresFixtureRepository) ListByRef(ctx context.Context, exec SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error) {
	var column string
	switch ref.Kind {
	case models.RefLeague:
		column = "league_id"
	case models.RefCupRound:
		column = "cup_round_id"
	case models.RefPhase:
		column = "phase_id"
	default:
		return nil, fmt.Errorf("%w: unknown ref kind %q", ErrFixtureRefInvalid, ref.Kind)
	}
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE ` + column + ` = $1 ORDER BY round, id`
	return r.list(ctx, exec, query, ref.ID)
}

func (r *postgresFixtureRepository) ListDue(ctx context.Context, exec SQLExecutor, seasonID int, date time.Time) ([]*models.Fixture, error) {
	query := `
		SELECT ` + fixtureColumns + ` FROM fixtures f
		WHERE f.status = 'scheduled'
		  AND f.date::date = $2::date
		  AND f.competition_id IN (SELECT id FROM competitions WHERE season_id = $1)
		ORDER BY f.id`
	return r.list(ctx, exec, query, seasonID, date)
}

func (r *postgresFixtureRepository) CountUnplayed(ctx context.Context, exec SQLExecutor, competitionID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	query := `SELECT COUNT(*) FROM fixtures WHERE competition_id = $1 AND status = 'scheduled'`
	err := executor.QueryRowContext(ctx, query, competitionID).Scan(&count)
	return count, err
}

func (r *postgresFixtureRepository) list(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Fixture, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		f, errScan := scanFixture(rows)
		if errScan != nil {
			return nil, errScan
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}
