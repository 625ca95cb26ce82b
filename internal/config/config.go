package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SpikeReference selects which last price the entry spike filter compares against.
type SpikeReference string

const (
	// SpikeReferenceCurrent compares against last_price after it was overwritten by the incoming tick.
	// The spike filter can never fire in this mode and the very first tick may open a position.
	SpikeReferenceCurrent SpikeReference = "current"
	// SpikeReferencePrevious compares against the last price seen before the incoming tick.
	SpikeReferencePrevious SpikeReference = "previous"
)

// Trade store kinds.
const (
	TradeStoreMemory = "memory"
	TradeStoreDuckDB = "duckdb"
)

// AgentConfig is loaded once per process and shared read-only by the strategy, sizer and account.
type AgentConfig struct {
	InitialBalance           float64        `json:"initial_balance" yaml:"initial_balance" jsonschema:"description=Starting cash balance,default=10000" validate:"gt=0"`
	RiskPerTradePct          float64        `json:"risk_per_trade_pct" yaml:"risk_per_trade_pct" jsonschema:"description=Percent of balance risked if the stop loss is hit,default=1" validate:"gte=0,lte=100"`
	TakeProfitPct            float64        `json:"take_profit_pct" yaml:"take_profit_pct" jsonschema:"description=Take profit distance above entry in percent,default=0.7" validate:"gte=0"`
	StopLossPct              float64        `json:"stop_loss_pct" yaml:"stop_loss_pct" jsonschema:"description=Stop loss distance below entry in percent,default=0.5" validate:"gte=0,lt=100"`
	MaxPositionPctOfBalance  float64        `json:"max_position_pct_of_balance" yaml:"max_position_pct_of_balance" jsonschema:"description=Maximum position notional as percent of balance,default=50" validate:"gte=0,lte=100"`
	MinTimeInPositionSeconds int            `json:"min_time_in_position_seconds" yaml:"min_time_in_position_seconds" jsonschema:"description=Grace period before any close,default=5" validate:"gte=0"`
	MaxTimeInPositionSeconds int            `json:"max_time_in_position_seconds" yaml:"max_time_in_position_seconds" jsonschema:"description=Holding time that forces a TIME_EXIT,default=60" validate:"gtefield=MinTimeInPositionSeconds"`
	Strategy                 string         `json:"strategy" yaml:"strategy" jsonschema:"description=Registered strategy name,default=rule_based_long" validate:"required"`
	SpikeReference           SpikeReference `json:"spike_reference" yaml:"spike_reference" jsonschema:"description=Reference price for the entry spike filter,enum=current,enum=previous,default=current" validate:"oneof=current previous"`
	DipPct                   float64        `json:"dip_pct" yaml:"dip_pct" jsonschema:"description=Dip below reference that triggers a mean reversion entry,default=0.3" validate:"gte=0"`
}

// MinTimeInPosition returns the grace period as a duration.
func (c AgentConfig) MinTimeInPosition() time.Duration {
	return time.Duration(c.MinTimeInPositionSeconds) * time.Second
}

// MaxTimeInPosition returns the forced exit holding time as a duration.
func (c AgentConfig) MaxTimeInPosition() time.Duration {
	return time.Duration(c.MaxTimeInPositionSeconds) * time.Second
}

// ServerConfig holds process level settings for the HTTP service.
type ServerConfig struct {
	Addr        string `json:"addr" yaml:"addr" jsonschema:"description=HTTP listen address,default=:8000" validate:"required"`
	LogLevel    string `json:"log_level" yaml:"log_level" jsonschema:"description=Log level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"oneof=debug info warn error"`
	TradeStore  string `json:"trade_store" yaml:"trade_store" jsonschema:"description=Trade sink backend,enum=memory,enum=duckdb,default=memory" validate:"oneof=memory duckdb"`
	DuckDBPath  string `json:"duckdb_path" yaml:"duckdb_path" jsonschema:"description=DuckDB database file used when trade_store is duckdb" validate:"required_if=TradeStore duckdb"`
	StatsOutput string `json:"stats_output" yaml:"stats_output" jsonschema:"description=YAML file the trade statistics are written to on shutdown"`
}

// Config is the full process configuration.
type Config struct {
	Agent  AgentConfig  `json:"agent" yaml:"agent"`
	Server ServerConfig `json:"server" yaml:"server"`

	// Warnings collects environment values that could not be parsed and were ignored.
	Warnings []string `json:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			InitialBalance:           10000,
			RiskPerTradePct:          1.0,
			TakeProfitPct:            0.7,
			StopLossPct:              0.5,
			MaxPositionPctOfBalance:  50.0,
			MinTimeInPositionSeconds: 5,
			MaxTimeInPositionSeconds: 60,
			Strategy:                 "rule_based_long",
			SpikeReference:           SpikeReferenceCurrent,
			DipPct:                   0.3,
		},
		Server: ServerConfig{
			Addr:        ":8000",
			LogLevel:    "info",
			TradeStore:  TradeStoreMemory,
			DuckDBPath:  "",
			StatsOutput: "",
		},
		Warnings: nil,
	}
}

// Load resolves the configuration: defaults, then the optional YAML file, then the environment.
// A .env file in the working directory is merged into the environment first; variables that
// are already set are not overridden.
func Load(path string) (Config, error) {
	cfg := Default()

	// a missing .env file is fine
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("AGENT_CONFIG_FILE")
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Agent.InitialBalance = c.getEnvAsFloat64("AGENT_INITIAL_BALANCE", c.Agent.InitialBalance)
	c.Agent.RiskPerTradePct = c.getEnvAsFloat64("AGENT_RISK_PER_TRADE_PCT", c.Agent.RiskPerTradePct)
	c.Agent.TakeProfitPct = c.getEnvAsFloat64("AGENT_TAKE_PROFIT_PCT", c.Agent.TakeProfitPct)
	c.Agent.StopLossPct = c.getEnvAsFloat64("AGENT_STOP_LOSS_PCT", c.Agent.StopLossPct)
	c.Agent.MaxPositionPctOfBalance = c.getEnvAsFloat64("AGENT_MAX_POSITION_PCT_OF_BALANCE", c.Agent.MaxPositionPctOfBalance)
	c.Agent.MinTimeInPositionSeconds = c.getEnvAsInt("AGENT_MIN_TIME_IN_POSITION_SECONDS", c.Agent.MinTimeInPositionSeconds)
	c.Agent.MaxTimeInPositionSeconds = c.getEnvAsInt("AGENT_MAX_TIME_IN_POSITION_SECONDS", c.Agent.MaxTimeInPositionSeconds)
	c.Agent.Strategy = getEnvAsString("AGENT_STRATEGY", c.Agent.Strategy)
	c.Agent.SpikeReference = SpikeReference(getEnvAsString("AGENT_SPIKE_REFERENCE", string(c.Agent.SpikeReference)))
	c.Agent.DipPct = c.getEnvAsFloat64("AGENT_DIP_PCT", c.Agent.DipPct)

	c.Server.Addr = getEnvAsString("AGENT_HTTP_ADDR", c.Server.Addr)
	c.Server.LogLevel = getEnvAsString("AGENT_LOG_LEVEL", c.Server.LogLevel)
	c.Server.TradeStore = getEnvAsString("AGENT_TRADE_STORE", c.Server.TradeStore)
	c.Server.DuckDBPath = getEnvAsString("AGENT_DUCKDB_PATH", c.Server.DuckDBPath)
	c.Server.StatsOutput = getEnvAsString("AGENT_STATS_OUTPUT", c.Server.StatsOutput)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c.Agent); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid agent configuration", err)
	}

	if err := validate.Struct(c.Server); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid server configuration", err)
	}

	return nil
}

// YAML renders the configuration as YAML.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	return string(data), nil
}
