package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/openleague/footsim/handlers"
)

type Handlers struct {
	Standings   *handlers.StandingsHandler
	Fixtures    *handlers.FixtureHandler
	Competition *handlers.CompetitionHandler
	Simulation  *handlers.SimulationHandler
	WebSocket   *handlers.WebSocketHandler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/competitions/{competitionID}", func(r chi.Router) {
		r.Get("/standings", h.Standings.GetTable)
		r.Get("/fixtures", h.Fixtures.ListByCompetition)

		r.Post("/schedule/league", h.Competition.GenerateLeagueCalendar)
		r.Post("/schedule/cup/first-round", h.Competition.GenerateCupFirstRound)
		r.Post("/schedule/cup/next-round", h.Competition.GenerateCupNextRound)
		r.Post("/schedule/continental/league-phase", h.Competition.GenerateContinentalLeaguePhase)

		r.Post("/knockout/advance", h.Competition.AdvanceFromGroupStage)
		r.Post("/knockout/playoff", h.Competition.GeneratePlayoffRound)
		r.Post("/knockout/next-phase", h.Competition.GenerateNextKnockoutPhase)
	})

	router.Get("/fixtures/{fixtureID}/match", h.Fixtures.GetMatch)

	router.Post("/simulation/day", h.Simulation.SimulateDay)
	router.Post("/simulation/tick", h.Simulation.RunTick)

	router.Post("/seasons/{seasonID}/results", h.Competition.SeasonResults)

	router.Get("/ws/competitions/{competitionID}", h.WebSocket.ServeWs)

	return router
}
