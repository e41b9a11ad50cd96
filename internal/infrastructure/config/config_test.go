package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite provides a test suite for configuration loading
type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestLoad() {
	suite.Run("NoConfigFile_ShouldUseDefaults", func() {
		cfg, err := Load("")
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), 8080, cfg.Server.Port)
		assert.Equal(suite.T(), 100, cfg.Planner.EliteSize)
		assert.Equal(suite.T(), 60*time.Second, cfg.Planner.SolverTimeLimit)
		assert.Equal(suite.T(), 2000.0, cfg.Planner.CalMaxDaily)
		assert.Equal(suite.T(), 50.0, cfg.Planner.ProtMinDaily)
		assert.False(suite.T(), cfg.Redis.Enabled)
	})

	suite.Run("ConfigFile_ShouldOverrideDefaults", func() {
		path := filepath.Join(suite.T().TempDir(), "config.yaml")
		require.NoError(suite.T(), os.WriteFile(path, []byte(`
server:
  port: 9090
planner:
  elite_size: 25
  solver_time_limit: 5s
`), 0o644))

		cfg, err := Load(path)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), 9090, cfg.Server.Port)
		assert.Equal(suite.T(), 25, cfg.Planner.EliteSize)
		assert.Equal(suite.T(), 5*time.Second, cfg.Planner.SolverTimeLimit)
		// Untouched keys keep their defaults.
		assert.Equal(suite.T(), 2000.0, cfg.Planner.CalMaxDaily)
	})

	suite.Run("ExplicitMissingFile_ShouldReturnError", func() {
		_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
		assert.Error(suite.T(), err)
	})

	suite.Run("InvalidValues_ShouldFailValidation", func() {
		path := filepath.Join(suite.T().TempDir(), "config.yaml")
		require.NoError(suite.T(), os.WriteFile(path, []byte(`
planner:
  elite_size: 0
`), 0o644))

		_, err := Load(path)
		assert.Error(suite.T(), err)
	})
}

func (suite *ConfigTestSuite) TestValidate() {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(suite.T(), err)
		return cfg
	}

	suite.Run("BadPort_ShouldFail", func() {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(suite.T(), cfg.Validate())
	})

	suite.Run("NonPositiveTimeLimit_ShouldFail", func() {
		cfg := base()
		cfg.Planner.SolverTimeLimit = 0
		assert.Error(suite.T(), cfg.Validate())
	})

	suite.Run("NegativeProteinFloor_ShouldFail", func() {
		cfg := base()
		cfg.Planner.ProtMinDaily = -1
		assert.Error(suite.T(), cfg.Validate())
	})
}

func (suite *ConfigTestSuite) TestServerAddress() {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8088}
	assert.Equal(suite.T(), "127.0.0.1:8088", cfg.Address())
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
