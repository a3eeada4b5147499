package services

import (
	"context"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
)

// Func-field fakes: each test wires only the methods it expects to be
// called; anything else panics with a nil dereference and fails loudly.

// fakeTxRunner hands the function a nil executor, so repositories fall
// back to their default connection (also faked in tests).
type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeDispatcher struct {
	DispatchFunc func(ctx context.Context, fixture *models.Fixture) error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, fixture *models.Fixture) error {
	return f.DispatchFunc(ctx, fixture)
}

type fakePlayerRepo struct {
	GetByIDFunc    func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error)
	ListByTeamFunc func(ctx context.Context, exec repositories.SQLExecutor, teamID int) ([]*models.Player, error)
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakePlayerRepo) ListByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) ([]*models.Player, error) {
	return f.ListByTeamFunc(ctx, exec, teamID)
}

type fakeStandingsService struct {
	ApplyFixtureResultFunc func(ctx context.Context, fixture *models.Fixture) error
	InitTableFunc          func(ctx context.Context, scope TableScope, teamIDs []int) error
	TableFunc              func(ctx context.Context, scope TableScope) ([]*models.Standing, error)
}

func (f *fakeStandingsService) ApplyFixtureResult(ctx context.Context, fixture *models.Fixture) error {
	return f.ApplyFixtureResultFunc(ctx, fixture)
}

func (f *fakeStandingsService) InitTable(ctx context.Context, scope TableScope, teamIDs []int) error {
	return f.InitTableFunc(ctx, scope, teamIDs)
}

func (f *fakeStandingsService) Table(ctx context.Context, scope TableScope) ([]*models.Standing, error) {
	return f.TableFunc(ctx, scope)
}

type fakePhaseRepo struct {
	CreateFunc            func(ctx context.Context, exec repositories.SQLExecutor, phase *models.Phase) error
	GetByIDFunc           func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Phase, error)
	LatestFunc            func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (*models.Phase, error)
	ListByCompetitionFunc func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Phase, error)
}

func (f *fakePhaseRepo) Create(ctx context.Context, exec repositories.SQLExecutor, phase *models.Phase) error {
	return f.CreateFunc(ctx, exec, phase)
}

func (f *fakePhaseRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Phase, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakePhaseRepo) Latest(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (*models.Phase, error) {
	return f.LatestFunc(ctx, exec, competitionID)
}

func (f *fakePhaseRepo) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Phase, error) {
	return f.ListByCompetitionFunc(ctx, exec, competitionID)
}

type fakeTeamRepo struct {
	GetByIDFunc           func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error)
	ListByGameSaveFunc    func(ctx context.Context, exec repositories.SQLExecutor, gameSaveID int) ([]*models.Team, error)
	ListCPUByGameSaveFunc func(ctx context.Context, exec repositories.SQLExecutor, gameSaveID int) ([]*models.Team, error)
	UpdateFormationFunc   func(ctx context.Context, exec repositories.SQLExecutor, teamID int, formation string) error
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakeTeamRepo) ListByGameSave(ctx context.Context, exec repositories.SQLExecutor, gameSaveID int) ([]*models.Team, error) {
	return f.ListByGameSaveFunc(ctx, exec, gameSaveID)
}

func (f *fakeTeamRepo) ListCPUByGameSave(ctx context.Context, exec repositories.SQLExecutor, gameSaveID int) ([]*models.Team, error) {
	return f.ListCPUByGameSaveFunc(ctx, exec, gameSaveID)
}

func (f *fakeTeamRepo) UpdateFormation(ctx context.Context, exec repositories.SQLExecutor, teamID int, formation string) error {
	return f.UpdateFormationFunc(ctx, exec, teamID, formation)
}

type fakeSeasonEventRepo struct {
	CreateFunc     func(ctx context.Context, exec repositories.SQLExecutor, event *models.SeasonEvent) error
	ListByDateFunc func(ctx context.Context, exec repositories.SQLExecutor, seasonID int, date time.Time) ([]*models.SeasonEvent, error)
}

func (f *fakeSeasonEventRepo) Create(ctx context.Context, exec repositories.SQLExecutor, event *models.SeasonEvent) error {
	return f.CreateFunc(ctx, exec, event)
}

func (f *fakeSeasonEventRepo) ListByDate(ctx context.Context, exec repositories.SQLExecutor, seasonID int, date time.Time) ([]*models.SeasonEvent, error) {
	return f.ListByDateFunc(ctx, exec, seasonID, date)
}

type fakeCompetitionRepo struct {
	GetByIDFunc      func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Competition, error)
	ListBySeasonFunc func(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.Competition, error)
	SetFinishedFunc  func(ctx context.Context, exec repositories.SQLExecutor, id int, finished bool) error
	ListTeamsFunc    func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Team, error)
}

func (f *fakeCompetitionRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Competition, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakeCompetitionRepo) ListBySeason(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.Competition, error) {
	return f.ListBySeasonFunc(ctx, exec, seasonID)
}

func (f *fakeCompetitionRepo) SetFinished(ctx context.Context, exec repositories.SQLExecutor, id int, finished bool) error {
	return f.SetFinishedFunc(ctx, exec, id, finished)
}

func (f *fakeCompetitionRepo) ListTeams(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Team, error) {
	return f.ListTeamsFunc(ctx, exec, competitionID)
}

type fakeFixtureRepo struct {
	CreateFunc            func(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error
	BatchCreateFunc       func(ctx context.Context, exec repositories.SQLExecutor, fixtures []*models.Fixture) error
	GetByIDFunc           func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Fixture, error)
	RecordResultFunc      func(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error
	ListByCompetitionFunc func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Fixture, error)
	ListByRefFunc         func(ctx context.Context, exec repositories.SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error)
	ListDueFunc           func(ctx context.Context, exec repositories.SQLExecutor, seasonID int, date time.Time) ([]*models.Fixture, error)
	CountUnplayedFunc     func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (int, error)
}

func (f *fakeFixtureRepo) Create(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error {
	return f.CreateFunc(ctx, exec, fixture)
}

func (f *fakeFixtureRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, fixtures []*models.Fixture) error {
	return f.BatchCreateFunc(ctx, exec, fixtures)
}

func (f *fakeFixtureRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Fixture, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakeFixtureRepo) RecordResult(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) error {
	return f.RecordResultFunc(ctx, exec, fixture)
}

func (f *fakeFixtureRepo) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.Fixture, error) {
	return f.ListByCompetitionFunc(ctx, exec, competitionID)
}

func (f *fakeFixtureRepo) ListByRef(ctx context.Context, exec repositories.SQLExecutor, ref models.FixtureRef) ([]*models.Fixture, error) {
	return f.ListByRefFunc(ctx, exec, ref)
}

func (f *fakeFixtureRepo) ListDue(ctx context.Context, exec repositories.SQLExecutor, seasonID int, date time.Time) ([]*models.Fixture, error) {
	return f.ListDueFunc(ctx, exec, seasonID, date)
}

func (f *fakeFixtureRepo) CountUnplayed(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (int, error) {
	return f.CountUnplayedFunc(ctx, exec, competitionID)
}

type fakeStandingRepo struct {
	CreateFunc      func(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error
	BatchCreateFunc func(ctx context.Context, exec repositories.SQLExecutor, standings []*models.Standing) error
	GetByTeamFunc   func(ctx context.Context, exec repositories.SQLExecutor, competitionID int, phaseID *int, teamID int) (*models.Standing, error)
	UpdateFunc      func(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error
	ListTableFunc   func(ctx context.Context, exec repositories.SQLExecutor, competitionID int, phaseID *int) ([]*models.Standing, error)
}

func (f *fakeStandingRepo) Create(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	return f.CreateFunc(ctx, exec, standing)
}

func (f *fakeStandingRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, standings []*models.Standing) error {
	return f.BatchCreateFunc(ctx, exec, standings)
}

func (f *fakeStandingRepo) GetByTeam(ctx context.Context, exec repositories.SQLExecutor, competitionID int, phaseID *int, teamID int) (*models.Standing, error) {
	return f.GetByTeamFunc(ctx, exec, competitionID, phaseID, teamID)
}

func (f *fakeStandingRepo) Update(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	return f.UpdateFunc(ctx, exec, standing)
}

func (f *fakeStandingRepo) ListTable(ctx context.Context, exec repositories.SQLExecutor, competitionID int, phaseID *int) ([]*models.Standing, error) {
	return f.ListTableFunc(ctx, exec, competitionID, phaseID)
}

type fakeCupTeamRepo struct {
	CreateFunc            func(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error
	GetByTeamFunc         func(ctx context.Context, exec repositories.SQLExecutor, competitionID, teamID int) (*models.CupTeam, error)
	ListByCompetitionFunc func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupTeam, error)
	ListActiveFunc        func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupTeam, error)
	UpdateFunc            func(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error
}

func (f *fakeCupTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error {
	return f.CreateFunc(ctx, exec, ct)
}

func (f *fakeCupTeamRepo) GetByTeam(ctx context.Context, exec repositories.SQLExecutor, competitionID, teamID int) (*models.CupTeam, error) {
	return f.GetByTeamFunc(ctx, exec, competitionID, teamID)
}

func (f *fakeCupTeamRepo) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupTeam, error) {
	return f.ListByCompetitionFunc(ctx, exec, competitionID)
}

func (f *fakeCupTeamRepo) ListActive(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupTeam, error) {
	return f.ListActiveFunc(ctx, exec, competitionID)
}

func (f *fakeCupTeamRepo) Update(ctx context.Context, exec repositories.SQLExecutor, ct *models.CupTeam) error {
	return f.UpdateFunc(ctx, exec, ct)
}

type fakeCupRoundRepo struct {
	CreateFunc            func(ctx context.Context, exec repositories.SQLExecutor, round *models.CupRound) error
	GetByIDFunc           func(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.CupRound, error)
	LatestFunc            func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (*models.CupRound, error)
	ListByCompetitionFunc func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupRound, error)
}

func (f *fakeCupRoundRepo) Create(ctx context.Context, exec repositories.SQLExecutor, round *models.CupRound) error {
	return f.CreateFunc(ctx, exec, round)
}

func (f *fakeCupRoundRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.CupRound, error) {
	return f.GetByIDFunc(ctx, exec, id)
}

func (f *fakeCupRoundRepo) Latest(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (*models.CupRound, error) {
	return f.LatestFunc(ctx, exec, competitionID)
}

func (f *fakeCupRoundRepo) ListByCompetition(ctx context.Context, exec repositories.SQLExecutor, competitionID int) ([]*models.CupRound, error) {
	return f.ListByCompetitionFunc(ctx, exec, competitionID)
}

type fakeMatchRepo struct {
	CreateFunc       func(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error
	GetByFixtureFunc func(ctx context.Context, exec repositories.SQLExecutor, fixtureID int) (*models.Match, error)
	ListEventsFunc   func(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]models.MatchEvent, error)
	TopScorerFunc    func(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (int, int, error)
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	return f.CreateFunc(ctx, exec, match)
}

func (f *fakeMatchRepo) GetByFixture(ctx context.Context, exec repositories.SQLExecutor, fixtureID int) (*models.Match, error) {
	return f.GetByFixtureFunc(ctx, exec, fixtureID)
}

func (f *fakeMatchRepo) ListEvents(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]models.MatchEvent, error) {
	return f.ListEventsFunc(ctx, exec, matchID)
}

func (f *fakeMatchRepo) TopScorer(ctx context.Context, exec repositories.SQLExecutor, competitionID int) (int, int, error) {
	return f.TopScorerFunc(ctx, exec, competitionID)
}

type fakeResultRepo struct {
	CreateFunc       func(ctx context.Context, exec repositories.SQLExecutor, result *models.CompetitionResult) error
	ListBySeasonFunc func(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.CompetitionResult, error)
}

func (f *fakeResultRepo) Create(ctx context.Context, exec repositories.SQLExecutor, result *models.CompetitionResult) error {
	return f.CreateFunc(ctx, exec, result)
}

func (f *fakeResultRepo) ListBySeason(ctx context.Context, exec repositories.SQLExecutor, seasonID int) ([]*models.CompetitionResult, error) {
	return f.ListBySeasonFunc(ctx, exec, seasonID)
}
