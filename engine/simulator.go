package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/openleague/footsim/models"
)

var (
	ErrFixtureNotScheduled = errors.New("fixture is not in scheduled status")
	ErrEmptySquad          = errors.New("team sheet has no players")
	ErrNoEventTypes        = errors.New("simulator has no event types configured")
)

// Config holds the tunable knobs of the minute loop. Event type
// selection weighting is configuration, not a fixed law: TypeWeights
// overrides the per-type frequency when set.
type Config struct {
	// Minutes is regulation length; a random stoppage of up to
	// MaxStoppage minutes is appended.
	Minutes     int
	MaxStoppage int
	// EventChance is the per-minute probability that any event is
	// attempted at all.
	EventChance float64
	// TypeWeights overrides EventType.Frequency per type name.
	TypeWeights map[string]float64
}

func DefaultConfig() Config {
	return Config{
		Minutes:     90,
		MaxStoppage: 5,
		EventChance: 0.45,
	}
}

// TeamSheet is one side's lineup for a single match.
type TeamSheet struct {
	Team    *models.Team
	Players []*models.Player
}

// Simulator drives one match from kickoff to full time. It is not safe
// for concurrent use: run one simulator (with its own *rand.Rand) per
// fixture when simulating a matchday in parallel.
type Simulator struct {
	rng        *rand.Rand
	cfg        Config
	types      []EventType
	commentary CommentaryPool
}

func NewSimulator(rng *rand.Rand, cfg Config, types []EventType, commentary CommentaryPool) (*Simulator, error) {
	if len(types) == 0 {
		return nil, ErrNoEventTypes
	}
	if cfg.Minutes <= 0 {
		cfg.Minutes = DefaultConfig().Minutes
	}
	if cfg.EventChance <= 0 || cfg.EventChance > 1 {
		cfg.EventChance = DefaultConfig().EventChance
	}
	return &Simulator{rng: rng, cfg: cfg, types: types, commentary: commentary}, nil
}

// Play runs the fixture to full time, appends events to the returned
// match, freezes the final score onto the fixture and, when needsWinner
// is set and the score is level, settles the tie on penalties without
// touching the drawn scoreline.
func (s *Simulator) Play(fixture *models.Fixture, home, away TeamSheet, needsWinner bool) (*models.Match, error) {
	if fixture.Status != models.FixtureScheduled {
		return nil, fmt.Errorf("fixture %d: %w (status %s)", fixture.ID, ErrFixtureNotScheduled, fixture.Status)
	}
	if len(home.Players) == 0 || len(away.Players) == 0 {
		return nil, fmt.Errorf("fixture %d: %w", fixture.ID, ErrEmptySquad)
	}

	match := &models.Match{
		FixtureID: fixture.ID,
		Status:    models.MatchLive,
	}

	fullTime := s.cfg.Minutes
	if s.cfg.MaxStoppage > 0 {
		fullTime += s.rng.Intn(s.cfg.MaxStoppage + 1)
	}

	attacking := home
	defending := away
	for minute := 0; minute <= fullTime; minute++ {
		match.Minute = minute
		if s.rng.Float64() >= s.cfg.EventChance {
			continue
		}

		event, err := s.generateEvent(match, minute, attacking)
		if err != nil {
			return nil, fmt.Errorf("fixture %d minute %d: %w", fixture.ID, minute, err)
		}
		match.Events = append(match.Events, *event)

		outcome := s.outcomeByName(event.EventType, event.Outcome)
		if outcome.Goal {
			if attacking.Team.ID == home.Team.ID {
				match.HomeGoals++
			} else {
				match.AwayGoals++
			}
		}
		if outcome.ChangesPossession {
			attacking, defending = defending, attacking
		}
	}

	match.Status = models.MatchPlayed

	hg, ag := match.HomeGoals, match.AwayGoals
	fixture.Status = models.FixturePlayed
	fixture.HomeGoals = &hg
	fixture.AwayGoals = &ag
	switch {
	case hg > ag:
		fixture.WinnerID = &home.Team.ID
	case ag > hg:
		fixture.WinnerID = &away.Team.ID
	default:
		fixture.WinnerID = nil
	}

	if needsWinner && fixture.WinnerID == nil {
		winnerID := s.shootout(match, home, away)
		fixture.WinnerID = &winnerID
	}
	match.WinnerID = fixture.WinnerID

	return match, nil
}

// generateEvent picks an event type by weight, an acting player from
// the attacking side, and resolves the outcome via the shared roulette
// using the player's attribute profile.
func (s *Simulator) generateEvent(match *models.Match, minute int, attacking TeamSheet) (*models.MatchEvent, error) {
	typeWeights := make([]float64, len(s.types))
	for i, et := range s.types {
		w := et.Frequency
		if override, ok := s.cfg.TypeWeights[et.Name]; ok {
			w = override
		}
		typeWeights[i] = w
	}
	typeIdx, err := PickIndex(s.rng, typeWeights)
	if err != nil {
		return nil, fmt.Errorf("event type selection: %w", err)
	}
	et := s.types[typeIdx]

	player := attacking.Players[s.rng.Intn(len(attacking.Players))]

	outcomeIdx, err := PickIndex(s.rng, et.EffectiveWeights(player.Attribute))
	if err != nil {
		return nil, fmt.Errorf("outcome selection for %s: %w", et.Name, err)
	}
	outcome := et.Outcomes[outcomeIdx]

	return &models.MatchEvent{
		Minute:     minute,
		TeamID:     attacking.Team.ID,
		PlayerID:   player.ID,
		EventType:  et.Name,
		Outcome:    outcome.Name,
		Commentary: s.commentary.Pick(s.rng, et.Name, outcome.Name, player.FullName(), attacking.Team.Name, minute),
	}, nil
}

func (s *Simulator) outcomeByName(eventType, name string) EventOutcome {
	for _, et := range s.types {
		if et.Name != eventType {
			continue
		}
		for _, o := range et.Outcomes {
			if o.Name == name {
				return o
			}
		}
	}
	return EventOutcome{}
}
