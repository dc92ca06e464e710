package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	RedisURL      string
	VoteRateLimit float64
	VoteRateBurst int
	TrustProxy    bool
	EnvFile       string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("menu-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for vote storage (optional)")

	// Abuse protection on vote submission
	fs.Float64Var(&cfg.VoteRateLimit, "vote-rps", 0, "Vote submissions per second per client")
	fs.IntVar(&cfg.VoteRateBurst, "vote-burst", 0, "Vote submission burst per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Identify clients by X-Forwarded-For (only behind a proxy)")

	fs.StringVar(&cfg.EnvFile, "env", ".env", "Env file to load before reading the environment")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing env file is fine; the real environment still applies
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = "menuvote.db"
		case "postgres":
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.VoteRateLimit == 0 {
		if s := os.Getenv("VOTE_RATE_LIMIT"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v <= 0 {
				return Config{}, errors.New("invalid VOTE_RATE_LIMIT env variable")
			}
			cfg.VoteRateLimit = v
		} else {
			cfg.VoteRateLimit = 5
		}
	}
	if cfg.VoteRateBurst == 0 {
		if s := os.Getenv("VOTE_RATE_BURST"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				return Config{}, errors.New("invalid VOTE_RATE_BURST env variable")
			}
			cfg.VoteRateBurst = v
		} else {
			cfg.VoteRateBurst = 10
		}
	}
	if !cfg.TrustProxy {
		if s := os.Getenv("TRUST_PROXY"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = v
		}
	}

	if cfg.VoteRateLimit < 0 || cfg.VoteRateBurst < 0 {
		return Config{}, errors.New("vote rate limit and burst must be positive")
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
