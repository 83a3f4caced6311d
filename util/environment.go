package util

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type clientEnvironment struct {
	APIServerURL       string
	PollIntervalMillis string
	FallbackStepMillis string
	SeatCount          string
	ServerPort         string
}

// Env is a helper object for accessing environment variables.
var Env = &clientEnvironment{
	APIServerURL:       "API_SERVER_URL",
	PollIntervalMillis: "POLL_INTERVAL_MILLIS",
	FallbackStepMillis: "FALLBACK_STEP_MILLIS",
	SeatCount:          "SEAT_COUNT",
	ServerPort:         "SERVER_PORT",
}

func (c *clientEnvironment) GetAPIServerURL() string {
	url := os.Getenv(c.APIServerURL)
	if url == "" {
		return "http://localhost:8080"
	}
	return url
}

func (c *clientEnvironment) GetPollIntervalMillis() int {
	return c.getInt(c.PollIntervalMillis, 2000)
}

func (c *clientEnvironment) GetFallbackStepMillis() int {
	return c.getInt(c.FallbackStepMillis, 1000)
}

func (c *clientEnvironment) GetSeatCount() int {
	return c.getInt(c.SeatCount, 6)
}

func (c *clientEnvironment) GetServerPort() int {
	return c.getInt(c.ServerPort, 8080)
}

func (c *clientEnvironment) getInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		environmentLogger.Warn().Msgf("Invalid integer value [%s] for %s. Using default %d.", s, key, defaultVal)
		return defaultVal
	}
	return v
}
