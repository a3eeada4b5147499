package models

import "time"

type Team struct {
	ID              int       `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	GameSaveID      int       `json:"game_save_id" db:"game_save_id"`
	HumanControlled bool      `json:"human_controlled" db:"human_controlled"`
	Formation       string    `json:"formation" db:"formation"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players []Player `json:"players,omitempty" db:"-"`
}
