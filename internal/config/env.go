package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env style files into the process environment without
// overriding variables that are already set. It must run before the logger
// is built so LOG_LEVEL and APP_ENV from the file take effect.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(key string, unit time.Duration, fallback time.Duration) time.Duration {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * unit
}
