package models

type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "goalkeeper"
	PositionDefender   PlayerPosition = "defender"
	PositionMidfielder PlayerPosition = "midfielder"
	PositionForward    PlayerPosition = "forward"
)

// Player carries the attribute profile the match engine reads.
// Attribute values are on a 1..100 scale, keyed by attribute name
// (e.g. "shooting", "passing", "tackling", "dribbling", "goalkeeping").
type Player struct {
	ID         int            `json:"id" db:"id"`
	TeamID     int            `json:"team_id" db:"team_id"`
	FirstName  string         `json:"first_name" db:"first_name"`
	LastName   string         `json:"last_name" db:"last_name"`
	Position   PlayerPosition `json:"position" db:"position"`
	Attributes map[string]int `json:"attributes" db:"attributes"`
}

func (p *Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// Attribute returns the named attribute, defaulting to an average
// value so that a missing attribute never zeroes out event weights.
func (p *Player) Attribute(name string) int {
	if v, ok := p.Attributes[name]; ok && v > 0 {
		return v
	}
	return 50
}
