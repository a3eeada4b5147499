package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// GameSaveID selects the save the daily scheduler advances.
	GameSaveID int
	// SimSeed anchors every per-fixture random generator, making a
	// whole season replayable.
	SimSeed int64
	// TickHour is the wall-clock hour the daily scheduler fires at.
	TickHour int
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	gameSaveID, err := intEnv("GAME_SAVE_ID", 1)
	if err != nil {
		return nil, err
	}

	seed, err := intEnv("SIM_SEED", 1)
	if err != nil {
		return nil, err
	}

	tickHour, err := intEnv("TICK_HOUR", 3)
	if err != nil {
		return nil, err
	}
	if tickHour < 0 || tickHour > 23 {
		return nil, fmt.Errorf("TICK_HOUR must be between 0 and 23, got %d", tickHour)
	}

	return &Config{
		DatabaseURL: dbURL,
		ServerPort:  port,
		GameSaveID:  gameSaveID,
		SimSeed:     int64(seed),
		TickHour:    tickHour,
	}, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}
