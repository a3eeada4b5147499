package models

import "time"

// Standing is one row of a ranked table. League tables key rows by
// competition only; continental group tables additionally key by phase.
// GoalDifference is derived (for minus against) and recomputed on every
// update, never set independently. Ranking is a dense 1..N ordering.
type Standing struct {
	ID             int       `json:"id" db:"id"`
	CompetitionID  int       `json:"competition_id" db:"competition_id"`
	PhaseID        *int      `json:"phase_id,omitempty" db:"phase_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	Played         int       `json:"played" db:"played"`
	Wins           int       `json:"wins" db:"wins"`
	Draws          int       `json:"draws" db:"draws"`
	Losses         int       `json:"losses" db:"losses"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	GoalDifference int       `json:"goal_difference" db:"goal_difference"`
	Points         int       `json:"points" db:"points"`
	Ranking        int       `json:"ranking" db:"ranking"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
