package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/services"
)

// defaultCadence spaces league matchdays a week apart when the request
// does not say otherwise.
const defaultCadence = 7 * 24 * time.Hour

type CompetitionHandler struct {
	scheduleService services.ScheduleService
	knockoutService services.KnockoutService
	seasonService   services.SeasonService
}

func NewCompetitionHandler(
	scheduleService services.ScheduleService,
	knockoutService services.KnockoutService,
	seasonService services.SeasonService,
) *CompetitionHandler {
	return &CompetitionHandler{
		scheduleService: scheduleService,
		knockoutService: knockoutService,
		seasonService:   seasonService,
	}
}

type generateScheduleRequest struct {
	Start       string `json:"start"`
	CadenceDays int    `json:"cadence_days,omitempty"`
}

func (in *generateScheduleRequest) parse() (time.Time, time.Duration, error) {
	start, err := time.Parse("2006-01-02", in.Start)
	if err != nil {
		return time.Time{}, 0, err
	}
	cadence := defaultCadence
	if in.CadenceDays > 0 {
		cadence = time.Duration(in.CadenceDays) * 24 * time.Hour
	}
	return start, cadence, nil
}

func (h *CompetitionHandler) GenerateLeagueCalendar(w http.ResponseWriter, r *http.Request) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	var input generateScheduleRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	start, cadence, err := input.parse()
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	fixtures, err := h.scheduleService.GenerateLeagueCalendar(r.Context(), competitionID, start, cadence)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *CompetitionHandler) GenerateCupFirstRound(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.scheduleService.GenerateCupFirstRound)
}

func (h *CompetitionHandler) GenerateCupNextRound(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.scheduleService.GenerateCupNextRound)
}

func (h *CompetitionHandler) GenerateContinentalLeaguePhase(w http.ResponseWriter, r *http.Request) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	var input generateScheduleRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	start, cadence, err := input.parse()
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	fixtures, err := h.scheduleService.GenerateContinentalLeaguePhase(r.Context(), competitionID, start, cadence)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *CompetitionHandler) AdvanceFromGroupStage(w http.ResponseWriter, r *http.Request) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	if err := h.knockoutService.AdvanceFromGroupStage(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "advanced"}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *CompetitionHandler) GeneratePlayoffRound(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.knockoutService.GeneratePlayoffRound)
}

func (h *CompetitionHandler) GenerateNextKnockoutPhase(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.knockoutService.GenerateNextKnockoutPhase)
}

type generateRoundRequest struct {
	Date string `json:"date"`
}

// generateRound shares the shape of every "pair the next round" call:
// one date in, a fixture list out. A nil fixture list means the bracket
// just completed, which the body states explicitly.
func (h *CompetitionHandler) generateRound(
	w http.ResponseWriter,
	r *http.Request,
	generate func(ctx context.Context, competitionID int, date time.Time) ([]*models.Fixture, error),
) {
	competitionID, err := idParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	var input generateRoundRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	fixtures, err := generate(r.Context(), competitionID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if fixtures == nil {
		if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "completed"}, nil); err != nil {
			serverErrorResponse(w, err)
		}
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// SeasonResults finalizes a season and serves one result record per
// competition.
func (h *CompetitionHandler) SeasonResults(w http.ResponseWriter, r *http.Request) {
	seasonID, err := idParam(r, "seasonID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	results, err := h.seasonService.GenerateSeasonResult(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}
