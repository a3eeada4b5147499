package models

import "time"

type Season struct {
	ID         int       `json:"id" db:"id"`
	GameSaveID int       `json:"game_save_id" db:"game_save_id"`
	Year       int       `json:"year" db:"year"`
	Current    bool      `json:"current" db:"current"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SeasonEventType представляет типы календарных событий сезона.
type SeasonEventType string

const (
	EventTrainingDay    SeasonEventType = "training_day"
	EventMatchDay       SeasonEventType = "match_day"
	EventTransferWindow SeasonEventType = "transfer_window"
)

type SeasonEvent struct {
	ID       int             `json:"id" db:"id"`
	SeasonID int             `json:"season_id" db:"season_id"`
	Date     time.Time       `json:"date" db:"date"`
	Type     SeasonEventType `json:"type" db:"event_type"`
}
