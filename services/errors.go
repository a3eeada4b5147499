package services

import "errors"

// Общие ошибки, используемые в разных сервисах.
var (
	// Contract violations: fail fast, never proceed with corrupted state.
	ErrStandingMissing     = errors.New("standing row missing: standings must be initialized before any fixture is playable")
	ErrFixtureNotScored    = errors.New("fixture has no final score")
	ErrPhaseNotFinished    = errors.New("phase is not finished: every fixture needs a final score")
	ErrSeasonNotFinished   = errors.New("season has unfinished competitions")
	ErrNoGroupPhase        = errors.New("continental cup has no league phase")
	ErrGroupStageNotRanked = errors.New("group stage standings are empty")
	ErrKnockoutComplete    = errors.New("knockout stage already produced a champion")
	ErrCupNotStarted       = errors.New("cup has no rounds yet")
)
