package models

// CompetitionType представляет формы соревнований, соответствующие ENUM в БД.
type CompetitionType string

const (
	CompetitionLeague         CompetitionType = "league"
	CompetitionDomesticCup    CompetitionType = "domestic_cup"
	CompetitionContinentalCup CompetitionType = "continental_cup"
)

// Competition is one concrete run of a league, domestic cup or
// continental cup within a single season. It is created at season
// generation and only removed together with the season.
type Competition struct {
	ID       int             `json:"id" db:"id"`
	SeasonID int             `json:"season_id" db:"season_id"`
	Name     string          `json:"name" db:"name"`
	Type     CompetitionType `json:"type" db:"competition_type"`
	Finished bool            `json:"finished" db:"finished"`

	// League-only knobs, zero for cups.
	PromotionSpots     int `json:"promotion_spots" db:"promotion_spots"`
	RelegationSpots    int `json:"relegation_spots" db:"relegation_spots"`
	QualificationSpots int `json:"qualification_spots" db:"qualification_spots"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}

// CupRound is one ordered round of a domestic cup, generated
// round-by-round rather than pre-computed.
type CupRound struct {
	ID            int    `json:"id" db:"id"`
	CompetitionID int    `json:"competition_id" db:"competition_id"`
	Number        int    `json:"number" db:"number"`
	Name          string `json:"name" db:"name"`
}

// Phase is one ordered subdivision of a continental cup. The opening
// phase is the league-style group phase; every later phase is knockout.
// Qualification marks the playoff round between group and knockout.
type Phase struct {
	ID            int    `json:"id" db:"id"`
	CompetitionID int    `json:"competition_id" db:"competition_id"`
	Order         int    `json:"order" db:"phase_order"`
	Name          string `json:"name" db:"name"`
	Knockout      bool   `json:"knockout" db:"knockout"`
	Qualification bool   `json:"qualification" db:"qualification"`
}

// CupTeam is a per-competition membership record carrying elimination
// state. CurrentPhaseOrder and PlayoffParticipant are only meaningful
// for continental cups.
type CupTeam struct {
	ID                 int  `json:"id" db:"id"`
	CompetitionID      int  `json:"competition_id" db:"competition_id"`
	TeamID             int  `json:"team_id" db:"team_id"`
	Eliminated         bool `json:"eliminated" db:"eliminated"`
	CurrentPhaseOrder  *int `json:"current_phase_order,omitempty" db:"current_phase_order"`
	PlayoffParticipant bool `json:"playoff_participant" db:"playoff_participant"`
}
