package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr    string
	SolverURL     string
	SolverTimeout time.Duration
	RedisAddr     string // empty keeps frames in process
	RedisPassword string
	RedisDB       int
	PaintDelay    time.Duration
	PaintVisited  bool
	LogLevel      logrus.Level
}

// Load reads .env files (if any) and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		logrus.Debug("no .env file, using environment variables directly")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		SolverURL:     getenv("SOLVER_URL", "http://127.0.0.1:5000"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.SolverTimeout, err = durationEnv("SOLVER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PaintDelay, err = durationEnv("PAINT_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.PaintVisited, err = boolEnv("PAINT_VISITED", false); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logrus.ParseLevel(getenv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
