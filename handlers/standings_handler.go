package handlers

import (
	"net/http"

	"github.com/openleague/footsim/services"
)

type StandingsHandler struct {
	standings services.StandingsService
}

func NewStandingsHandler(standings services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standings: standings}
}

// GetTable serves the ranked table of a competition. An optional
// phase_id query selects a continental group table.
func (h *StandingsHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	scope := services.TableScope{CompetitionID: competitionID}
	if raw := r.URL.Query().Get("phase_id"); raw != "" {
		phaseID, err := queryInt(raw, "phase_id")
		if err != nil {
			badRequestResponse(w, err)
			return
		}
		scope.PhaseID = &phaseID
	}

	table, err := h.standings.Table(r.Context(), scope)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
