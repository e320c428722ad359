// Package config loads the process configuration from MINICHAIN_* environment
// variables.
package config

import (
	"github.com/gabapcia/minichain/internal/ledger"
	"github.com/gabapcia/minichain/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Prefix is the environment variable prefix, e.g. MINICHAIN_LOG_LEVEL.
const Prefix = "MINICHAIN"

// Config holds every tunable of the ledger, the puzzle and the miner.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"required,oneof=debug info warn error"`
	LogOutput string `envconfig:"LOG_OUTPUT" default:"stderr" validate:"required,oneof=stdout stderr"`

	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"minichain" validate:"required"`

	PowModulus       uint64 `envconfig:"POW_MODULUS" default:"23" validate:"gte=1"`
	PowMaxIterations uint64 `envconfig:"POW_MAX_ITERATIONS" default:"0"`

	DigestMode string `envconfig:"DIGEST_MODE" default:"timestamp" validate:"required,oneof=timestamp content"`

	MinerAccount       string          `envconfig:"MINER_ACCOUNT" default:"minerA" validate:"required,account"`
	MinerReward        decimal.Decimal `envconfig:"MINER_REWARD" default:"1" validate:"decimal_gte=0"`
	MinerAttempts      uint            `envconfig:"MINER_ATTEMPTS" default:"5" validate:"gte=1"`
	MinerInitialBudget uint64          `envconfig:"MINER_INITIAL_BUDGET" default:"64"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, validator.Validate(cfg)
}

// Digest returns the configured ledger digest mode.
func (c Config) Digest() ledger.DigestMode {
	mode, _ := ledger.ParseDigestMode(c.DigestMode)
	return mode
}
