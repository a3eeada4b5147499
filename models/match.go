package models

import "time"

// MatchStatus представляет статусы матча, соответствующие ENUM в БД.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchPlayed    MatchStatus = "played"
	MatchCancelled MatchStatus = "cancelled"
)

// Match is the execution record of one fixture attempt. Exactly one
// match exists per completed fixture.
type Match struct {
	ID        int         `json:"id" db:"id"`
	FixtureID int         `json:"fixture_id" db:"fixture_id"`
	Minute    int         `json:"minute" db:"minute"`
	Status    MatchStatus `json:"status" db:"status"`
	HomeGoals int         `json:"home_goals" db:"home_goals"`
	AwayGoals int         `json:"away_goals" db:"away_goals"`
	WinnerID  *int        `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`

	Events    []MatchEvent `json:"events,omitempty" db:"-"`
	Penalties []Penalty    `json:"penalties,omitempty" db:"-"`
}

// MatchEvent is append-only within a match and immutable once created.
type MatchEvent struct {
	ID         int    `json:"id" db:"id"`
	MatchID    int    `json:"match_id" db:"match_id"`
	Minute     int    `json:"minute" db:"minute"`
	TeamID     int    `json:"team_id" db:"team_id"`
	PlayerID   int    `json:"player_id" db:"player_id"`
	EventType  string `json:"event_type" db:"event_type"`
	Outcome    string `json:"outcome" db:"outcome"`
	Commentary string `json:"commentary" db:"commentary"`
}

// Penalty is a single kick of a shootout. Order runs across both sides
// (1, 2, 3, ...), alternating kickers.
type Penalty struct {
	ID       int  `json:"id" db:"id"`
	MatchID  int  `json:"match_id" db:"match_id"`
	Order    int  `json:"order" db:"kick_order"`
	TeamID   int  `json:"team_id" db:"team_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	Scored   bool `json:"scored" db:"scored"`
}

// ShootoutScore tallies converted penalties per side.
func (m *Match) ShootoutScore(homeTeamID int) (home, away int) {
	for _, p := range m.Penalties {
		if !p.Scored {
			continue
		}
		if p.TeamID == homeTeamID {
			home++
		} else {
			away++
		}
	}
	return home, away
}
