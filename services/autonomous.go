package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/openleague/footsim/engine"
	"github.com/openleague/footsim/repositories"
)

// ActionContext carries everything a CPU team action needs about the
// day it runs on. Date is the calendar day of the tick, so an action
// can make per-day decisions and stay safe to retry within one day.
type ActionContext struct {
	GameSaveID int
	SeasonID   int
	Date       time.Time
	TeamID     int
	Event      string
}

// TeamAction is one autonomous decision a CPU team takes during the
// daily tick. Implementations must be safe to run concurrently for
// different teams.
type TeamAction interface {
	Name() string
	Run(ctx context.Context, action ActionContext) error
}

// formationChoice weights mirror how often real squads line up in each
// shape; the balanced ones dominate.
var formationChoices = []struct {
	Formation string
	Weight    float64
}{
	{"4-4-2", 3},
	{"4-3-3", 3},
	{"4-2-3-1", 2.5},
	{"3-5-2", 1.5},
	{"5-3-2", 1},
	{"4-5-1", 1},
}

// TacticAutoPicker rolls a weighted formation for a CPU team ahead of a
// matchday and stores it on the team record.
type TacticAutoPicker struct {
	teamRepo repositories.TeamRepository
	rng      *rand.Rand
}

func NewTacticAutoPicker(teamRepo repositories.TeamRepository, rng *rand.Rand) *TacticAutoPicker {
	return &TacticAutoPicker{teamRepo: teamRepo, rng: rng}
}

func (p *TacticAutoPicker) Name() string { return "tactic_auto_pick" }

func (p *TacticAutoPicker) Run(ctx context.Context, action ActionContext) error {
	weights := make([]float64, len(formationChoices))
	for i, c := range formationChoices {
		weights[i] = c.Weight
	}
	idx, err := engine.PickIndex(p.rng, weights)
	if err != nil {
		return fmt.Errorf("pick formation: %w", err)
	}
	formation := formationChoices[idx].Formation
	if err := p.teamRepo.UpdateFormation(ctx, nil, action.TeamID, formation); err != nil {
		return fmt.Errorf("set formation %s for team %d: %w", formation, action.TeamID, err)
	}
	return nil
}

// NoopAction stands in for decisions that are scheduled but not yet
// modeled, keeping the tick loop shape uniform.
type NoopAction struct {
	name string
}

func NewNoopAction(name string) *NoopAction { return &NoopAction{name: name} }

func (a *NoopAction) Name() string { return a.name }

func (a *NoopAction) Run(context.Context, ActionContext) error { return nil }
