package models

import "time"

// CompetitionResult captures the outcome of one finished competition:
// champion, runner-up, the promotion/relegation/qualification sets and
// per-competition awards.
type CompetitionResult struct {
	ID            int             `json:"id" db:"id"`
	SeasonID      int             `json:"season_id" db:"season_id"`
	CompetitionID int             `json:"competition_id" db:"competition_id"`
	Type          CompetitionType `json:"type" db:"competition_type"`
	ChampionID    int             `json:"champion_id" db:"champion_id"`
	RunnerUpID    *int            `json:"runner_up_id,omitempty" db:"runner_up_id"`
	Promoted      []int           `json:"promoted,omitempty" db:"promoted"`
	Relegated     []int           `json:"relegated,omitempty" db:"relegated"`
	Qualified     []int           `json:"qualified,omitempty" db:"qualified"`
	TopScorerID   *int            `json:"top_scorer_id,omitempty" db:"top_scorer_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
