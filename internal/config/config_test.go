package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	// keep a stray .env in the package directory from leaking into tests
	suite.T().Chdir(suite.T().TempDir())
}

func (suite *ConfigTestSuite) TestDefaults() {
	cfg := Default()

	suite.Equal(10000.0, cfg.Agent.InitialBalance)
	suite.Equal(1.0, cfg.Agent.RiskPerTradePct)
	suite.Equal(0.7, cfg.Agent.TakeProfitPct)
	suite.Equal(0.5, cfg.Agent.StopLossPct)
	suite.Equal(50.0, cfg.Agent.MaxPositionPctOfBalance)
	suite.Equal(5, cfg.Agent.MinTimeInPositionSeconds)
	suite.Equal(60, cfg.Agent.MaxTimeInPositionSeconds)
	suite.Equal("rule_based_long", cfg.Agent.Strategy)
	suite.Equal(SpikeReferenceCurrent, cfg.Agent.SpikeReference)
	suite.Equal(":8000", cfg.Server.Addr)
	suite.Equal(TradeStoreMemory, cfg.Server.TradeStore)
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestLoadFromEnv() {
	suite.T().Setenv("AGENT_INITIAL_BALANCE", "2500")
	suite.T().Setenv("AGENT_STOP_LOSS_PCT", "1.5")
	suite.T().Setenv("AGENT_MIN_TIME_IN_POSITION_SECONDS", "0")
	suite.T().Setenv("AGENT_MAX_TIME_IN_POSITION_SECONDS", "120")
	suite.T().Setenv("AGENT_SPIKE_REFERENCE", "previous")
	suite.T().Setenv("AGENT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	suite.Require().NoError(err)

	suite.Equal(2500.0, cfg.Agent.InitialBalance)
	suite.Equal(1.5, cfg.Agent.StopLossPct)
	suite.Equal(0, cfg.Agent.MinTimeInPositionSeconds)
	suite.Equal(120, cfg.Agent.MaxTimeInPositionSeconds)
	suite.Equal(SpikeReferencePrevious, cfg.Agent.SpikeReference)
	suite.Equal("debug", cfg.Server.LogLevel)
	suite.Empty(cfg.Warnings)
}

func (suite *ConfigTestSuite) TestInvalidEnvFallsBackToDefault() {
	suite.T().Setenv("AGENT_TAKE_PROFIT_PCT", "abc")
	suite.T().Setenv("AGENT_MAX_TIME_IN_POSITION_SECONDS", "1.5")

	cfg, err := Load("")
	suite.Require().NoError(err)

	suite.Equal(0.7, cfg.Agent.TakeProfitPct)
	suite.Equal(60, cfg.Agent.MaxTimeInPositionSeconds)
	suite.Len(cfg.Warnings, 2)
}

func (suite *ConfigTestSuite) TestLoadFromFileThenEnv() {
	path := filepath.Join(suite.T().TempDir(), "agent.yaml")
	content := `
agent:
  initial_balance: 500
  take_profit_pct: 2
server:
  addr: ":9000"
`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	suite.T().Setenv("AGENT_TAKE_PROFIT_PCT", "3")

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal(500.0, cfg.Agent.InitialBalance)
	suite.Equal(3.0, cfg.Agent.TakeProfitPct)
	// untouched keys keep their defaults
	suite.Equal(0.5, cfg.Agent.StopLossPct)
	suite.Equal(":9000", cfg.Server.Addr)
}

func (suite *ConfigTestSuite) TestLoadFromDotEnv() {
	suite.Require().NoError(os.WriteFile(".env", []byte("AGENT_DIP_PCT=0.9\n"), 0o600))
	suite.T().Setenv("AGENT_DIP_PCT", "")
	suite.Require().NoError(os.Unsetenv("AGENT_DIP_PCT"))

	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal(0.9, cfg.Agent.DipPct)
	suite.Require().NoError(os.Unsetenv("AGENT_DIP_PCT"))
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidate() {
	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{
			name:   "non positive balance",
			modify: func(cfg *Config) { cfg.Agent.InitialBalance = 0 },
		},
		{
			name:   "negative take profit",
			modify: func(cfg *Config) { cfg.Agent.TakeProfitPct = -1 },
		},
		{
			name:   "max time below min time",
			modify: func(cfg *Config) { cfg.Agent.MinTimeInPositionSeconds = 30; cfg.Agent.MaxTimeInPositionSeconds = 10 },
		},
		{
			name:   "unknown spike reference",
			modify: func(cfg *Config) { cfg.Agent.SpikeReference = "next" },
		},
		{
			name:   "duckdb without path",
			modify: func(cfg *Config) { cfg.Server.TradeStore = TradeStoreDuckDB },
		},
		{
			name:   "unknown trade store",
			modify: func(cfg *Config) { cfg.Server.TradeStore = "redis" },
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := Default()
			tc.modify(&cfg)

			err := cfg.Validate()
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestDurations() {
	cfg := Default()

	suite.Equal(int64(5), int64(cfg.Agent.MinTimeInPosition().Seconds()))
	suite.Equal(int64(60), int64(cfg.Agent.MaxTimeInPosition().Seconds()))
}

func (suite *ConfigTestSuite) TestYAML() {
	cfg := Default()

	out, err := cfg.YAML()
	suite.Require().NoError(err)
	suite.Contains(out, "initial_balance: 10000")
	suite.Contains(out, "spike_reference: current")
}

func (suite *ConfigTestSuite) TestSchema() {
	schema, err := GetConfigSchema()
	suite.Require().NoError(err)
	suite.Contains(schema, "initial_balance")
	suite.Contains(schema, "Take profit distance above entry in percent")
	suite.NotContains(schema, "Warnings")
}
