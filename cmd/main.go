package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openleague/footsim/config"
	"github.com/openleague/footsim/db"
	"github.com/openleague/footsim/engine"
	"github.com/openleague/footsim/handlers"
	"github.com/openleague/footsim/live"
	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
	api "github.com/openleague/footsim/routes"
	"github.com/openleague/footsim/schedule"
	"github.com/openleague/footsim/services"
)

// schedulerInterval is how often the daily scheduler checks whether the
// tick hour has been reached.
const schedulerInterval = time.Minute

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	cupRoundRepo := repositories.NewPostgresCupRoundRepository(dbConn)
	phaseRepo := repositories.NewPostgresPhaseRepository(dbConn)
	cupTeamRepo := repositories.NewPostgresCupTeamRepository(dbConn)
	fixtureRepo := repositories.NewPostgresFixtureRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	seasonEventRepo := repositories.NewPostgresSeasonEventRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)

	// Генераторы расписаний делят один источник случайности: они
	// работают только из одного HTTP-обработчика за раз.
	schedRng := rand.New(rand.NewSource(cfg.SimSeed))
	cupScheduler := schedule.NewCupScheduler(schedRng)
	continentalScheduler := schedule.NewContinentalScheduler(schedRng)

	// Инициализация сервисов
	txRunner := repositories.NewSQLTxRunner(dbConn)
	standingsService := services.NewStandingsService(txRunner, standingRepo)
	dispatcher := services.NewStandingsDispatcher(standingsService, phaseRepo, logger)
	notifier := live.NewHubNotifier(wsHub)
	matchService := services.NewMatchService(
		txRunner,
		fixtureRepo,
		matchRepo,
		teamRepo,
		playerRepo,
		phaseRepo,
		dispatcher,
		notifier,
		logger,
		engine.DefaultConfig(),
		cfg.SimSeed,
	)
	scheduleService := services.NewScheduleService(
		dbConn,
		competitionRepo,
		fixtureRepo,
		cupRoundRepo,
		phaseRepo,
		cupTeamRepo,
		standingsService,
		cupScheduler,
		continentalScheduler,
	)
	knockoutService := services.NewKnockoutService(
		competitionRepo,
		phaseRepo,
		fixtureRepo,
		standingRepo,
		cupTeamRepo,
		cupScheduler,
		logger,
	)
	seasonService := services.NewSeasonService(
		competitionRepo,
		fixtureRepo,
		cupRoundRepo,
		phaseRepo,
		standingRepo,
		matchRepo,
		resultRepo,
		logger,
	)

	tactics := services.NewTacticAutoPicker(teamRepo, rand.New(rand.NewSource(cfg.SimSeed+1)))
	tickActions := map[models.SeasonEventType][]services.TeamAction{
		models.EventMatchDay:       {tactics},
		models.EventTrainingDay:    {services.NewNoopAction("training_session")},
		models.EventTransferWindow: {services.NewNoopAction("transfer_review")},
	}
	tickService := services.NewDailyTickService(seasonEventRepo, teamRepo, tickActions, logger)
	logger.Info("services initialized")

	// Планировщик игрового дня: в настроенный час прогоняет CPU-команды
	// и играет все матчи этого дня.
	go runDailyScheduler(logger, cfg, seasonRepo, tickService, matchService)

	// Инициализация обработчиков HTTP
	router := api.InitRoutes(api.Handlers{
		Standings:   handlers.NewStandingsHandler(standingsService),
		Fixtures:    handlers.NewFixtureHandler(fixtureRepo, matchRepo),
		Competition: handlers.NewCompetitionHandler(scheduleService, knockoutService, seasonService),
		Simulation:  handlers.NewSimulationHandler(matchService, tickService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}

// dayOf collapses a moment to its local calendar day. The tick hour is
// checked in local time, so the once-per-day key must use the same
// day boundary.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// runDailyScheduler fires the daily tick and matchday simulation once
// per calendar day, at the configured hour.
func runDailyScheduler(
	logger *slog.Logger,
	cfg *config.Config,
	seasonRepo repositories.SeasonRepository,
	tickService services.DailyTickService,
	matchService services.MatchService,
) {
	ticker := time.NewTicker(schedulerInterval)
	defer ticker.Stop()
	logger.Info("daily scheduler started", slog.Int("tick_hour", cfg.TickHour))

	var lastRun time.Time
	for range ticker.C {
		now := time.Now()
		if now.Hour() != cfg.TickHour {
			continue
		}
		day := dayOf(now)
		if day.Equal(lastRun) {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		season, err := seasonRepo.GetCurrentByGameSave(ctx, nil, cfg.GameSaveID)
		if err != nil {
			logger.Error("scheduler: load current season", slog.Any("error", err))
			cancel()
			continue
		}

		if _, err := tickService.Run(ctx, cfg.GameSaveID, season.ID, now); err != nil {
			logger.Error("scheduler: daily tick failed", slog.Any("error", err))
		}
		matches, err := matchService.SimulateDay(ctx, season.ID, now)
		if err != nil {
			logger.Error("scheduler: matchday simulation failed", slog.Any("error", err))
		} else {
			logger.Info("scheduler: matchday complete", slog.Int("matches", len(matches)))
		}
		cancel()
		lastRun = day
	}
}
