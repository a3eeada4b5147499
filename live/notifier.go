package live

import (
	"github.com/openleague/footsim/models"
)

// matchFinishedPayload is the wire shape for a final whistle event.
type matchFinishedPayload struct {
	FixtureID  int    `json:"fixture_id"`
	HomeTeamID int    `json:"home_team_id"`
	AwayTeamID int    `json:"away_team_id"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
	WinnerID   *int   `json:"winner_id,omitempty"`
	Status     string `json:"status"`
}

// HubNotifier bridges the simulation pipeline to the websocket hub.
// Broadcasting is fire and forget, matching the notifier contract.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) MatchFinished(fixture *models.Fixture, match *models.Match) {
	room := CompetitionRoom(fixture.CompetitionID)
	n.hub.BroadcastToRoom(room, Message{
		Type:   "MATCH_FINISHED",
		RoomID: room,
		Payload: matchFinishedPayload{
			FixtureID:  fixture.ID,
			HomeTeamID: fixture.HomeTeamID,
			AwayTeamID: fixture.AwayTeamID,
			HomeGoals:  match.HomeGoals,
			AwayGoals:  match.AwayGoals,
			WinnerID:   fixture.WinnerID,
			Status:     string(match.Status),
		},
	})
}
