package handlers

import (
	"net/http"
	"time"

	"github.com/openleague/footsim/services"
)

type SimulationHandler struct {
	matchService services.MatchService
	tickService  services.DailyTickService
}

func NewSimulationHandler(matchService services.MatchService, tickService services.DailyTickService) *SimulationHandler {
	return &SimulationHandler{matchService: matchService, tickService: tickService}
}

type simulateDayRequest struct {
	SeasonID int    `json:"season_id"`
	Date     string `json:"date"`
}

// SimulateDay plays every fixture due on the requested calendar day.
func (h *SimulationHandler) SimulateDay(w http.ResponseWriter, r *http.Request) {
	var input simulateDayRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.matchService.SimulateDay(r.Context(), input.SeasonID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

type tickRequest struct {
	GameSaveID int    `json:"game_save_id"`
	SeasonID   int    `json:"season_id"`
	Date       string `json:"date"`
}

// RunTick walks the CPU teams through one day of autonomous decisions.
func (h *SimulationHandler) RunTick(w http.ResponseWriter, r *http.Request) {
	var input tickRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	report, err := h.tickService.Run(r.Context(), input.GameSaveID, input.SeasonID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
