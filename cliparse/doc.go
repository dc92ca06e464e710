// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseType: sqlite, postgres or memory (default: sqlite)
  - DatabaseURL: sqlite file or PostgreSQL connection string (default: menuvote.db for sqlite)
  - RedisURL: optional Redis server for vote storage
  - VoteRateLimit / VoteRateBurst: per-client vote submission limit (default: 5/s, burst 10)
  - TrustProxy: identify vote clients by X-Forwarded-For / X-Real-IP (default: false)
  - EnvFile: dotenv file loaded before the environment is read (default: .env)

# CLI Flags

	-p           Server port
	-t           Database type
	-d           Database URL
	-redis       Redis URL
	-vote-rps    Vote submissions per second per client
	-vote-burst  Vote submission burst per client
	-trust-proxy Key the vote limiter on forwarded headers
	-env         Env file path ("" disables)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_TYPE   → -t
	DATABASE_URL    → -d
	REDIS_URL       → -redis
	VOTE_RATE_LIMIT → -vote-rps
	VOTE_RATE_BURST → -vote-burst
	TRUST_PROXY     → -trust-proxy

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the env file.

# Validation

ParseFlags returns an error when:

  - the database type is unknown
  - postgres is selected without a DATABASE_URL
  - a numeric variable does not parse or is not positive
  - TRUST_PROXY is not a boolean
*/
package cliparse
