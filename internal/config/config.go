package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	StartMoney     int
	PassStartBonus int
	EscapeFee      int
	TurnLimit      int
	MaxPlayers     int

	AgentTimeout   time.Duration
	LongPollWindow time.Duration

	SQLitePath string
	RedisURL   string
}

// SpeedDelays maps a match speed to the pause inserted after each event.
var SpeedDelays = map[string]time.Duration{
	"very_slow": 2000 * time.Millisecond,
	"slow":      1000 * time.Millisecond,
	"normal":    500 * time.Millisecond,
	"fast":      250 * time.Millisecond,
	"instant":   0,
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; deployments usually set the environment directly
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:       getenvStr("HTTP_ADDR", ":8080"),
		StartMoney:     getenvInt("START_MONEY", 1500),
		PassStartBonus: getenvInt("PASS_START_BONUS", 200),
		EscapeFee:      getenvInt("ESCAPE_FEE", 50),
		TurnLimit:      getenvInt("TURN_LIMIT", 200),
		MaxPlayers:     getenvInt("MAX_PLAYERS", 4),
		AgentTimeout:   time.Duration(getenvInt("AGENT_TIMEOUT_MS", 30000)) * time.Millisecond,
		LongPollWindow: time.Duration(getenvInt("LONG_POLL_WINDOW_MS", 25000)) * time.Millisecond,
		SQLitePath:     getenvStr("SQLITE_PATH", ""),
		RedisURL:       getenvStr("REDIS_URL", ""),
	}
}
