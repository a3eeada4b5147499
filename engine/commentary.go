package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// CommentaryTemplate is one weighted line of commentary. Placeholders
// {player}, {team} and {minute} are substituted at pick time.
type CommentaryTemplate struct {
	Text   string
	Weight float64
}

// CommentaryPool maps "eventType/outcome" keys to weighted template
// sets. Picking reuses the shared roulette.
type CommentaryPool map[string][]CommentaryTemplate

func commentaryKey(eventType, outcome string) string {
	return eventType + "/" + outcome
}

// Pick selects and renders one template for the (event type, outcome)
// pair. An unconfigured pair falls back to a plain generated line so a
// sparse pool never breaks a simulation.
func (p CommentaryPool) Pick(rng *rand.Rand, eventType, outcome, player, team string, minute int) string {
	templates := p[commentaryKey(eventType, outcome)]
	if len(templates) == 0 {
		return fmt.Sprintf("%d' %s (%s): %s %s", minute, player, team, eventType, strings.ReplaceAll(outcome, "_", " "))
	}

	weights := make([]float64, len(templates))
	for i, t := range templates {
		weights[i] = t.Weight
	}
	idx, err := PickIndex(rng, weights)
	if err != nil {
		idx = 0
	}

	line := templates[idx].Text
	line = strings.ReplaceAll(line, "{player}", player)
	line = strings.ReplaceAll(line, "{team}", team)
	line = strings.ReplaceAll(line, "{minute}", fmt.Sprintf("%d", minute))
	return line
}

// DefaultCommentary covers the default event set.
func DefaultCommentary() CommentaryPool {
	return CommentaryPool{
		"shot/goal": {
			{Text: "{minute}' GOAL! {player} finds the net for {team}!", Weight: 5},
			{Text: "{minute}' {player} scores and {team} erupt!", Weight: 3},
			{Text: "{minute}' A clinical finish from {player}!", Weight: 2},
		},
		"shot/saved": {
			{Text: "{minute}' {player} forces a fine save.", Weight: 5},
			{Text: "{minute}' The keeper denies {player}!", Weight: 5},
		},
		"shot/off_target": {
			{Text: "{minute}' {player} drags the shot wide.", Weight: 5},
			{Text: "{minute}' Over the bar from {player}.", Weight: 5},
		},
		"shot/blocked": {
			{Text: "{minute}' {player}'s effort is blocked in the crowd.", Weight: 5},
		},
		"pass/completed": {
			{Text: "{minute}' {team} work it around through {player}.", Weight: 5},
			{Text: "{minute}' A sharp ball from {player}.", Weight: 3},
		},
		"pass/intercepted": {
			{Text: "{minute}' {player}'s pass is cut out.", Weight: 5},
		},
		"pass/out_of_play": {
			{Text: "{minute}' {player} overhits it, out of play.", Weight: 5},
		},
		"tackle/won_ball": {
			{Text: "{minute}' {player} wins it back for {team}.", Weight: 5},
			{Text: "{minute}' A crunching challenge from {player}.", Weight: 3},
		},
		"tackle/missed": {
			{Text: "{minute}' {player} lunges in and misses.", Weight: 5},
		},
		"tackle/foul": {
			{Text: "{minute}' Free kick given, {player} takes the man.", Weight: 5},
		},
		"dribble/beat_defender": {
			{Text: "{minute}' {player} glides past the challenge.", Weight: 5},
			{Text: "{minute}' Lovely feet from {player}!", Weight: 3},
		},
		"dribble/dispossessed": {
			{Text: "{minute}' {player} runs into traffic and loses it.", Weight: 5},
		},
		"penalty/scored": {
			{Text: "{player} buries the penalty for {team}.", Weight: 5},
		},
		"penalty/missed": {
			{Text: "{player} misses! The keeper guesses right.", Weight: 5},
		},
	}
}
