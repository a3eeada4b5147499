package handlers

import (
	"errors"
	"net/http"

	"github.com/openleague/footsim/repositories"
)

type FixtureHandler struct {
	fixtureRepo repositories.FixtureRepository
	matchRepo   repositories.MatchRepository
}

func NewFixtureHandler(fixtureRepo repositories.FixtureRepository, matchRepo repositories.MatchRepository) *FixtureHandler {
	return &FixtureHandler{fixtureRepo: fixtureRepo, matchRepo: matchRepo}
}

// ListByCompetition serves the full fixture calendar of a competition.
func (h *FixtureHandler) ListByCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	fixtures, err := h.fixtureRepo.ListByCompetition(r.Context(), nil, competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// GetMatch serves the played match of a fixture, with its event log.
func (h *FixtureHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := idParam(r, "fixtureID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	match, err := h.matchRepo.GetByFixture(r.Context(), nil, fixtureID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	events, err := h.matchRepo.ListEvents(r.Context(), nil, match.ID)
	if err != nil && !errors.Is(err, repositories.ErrMatchNotFound) {
		mapServiceErrorToHTTP(w, err)
		return
	}
	match.Events = events
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
