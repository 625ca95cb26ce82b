package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// namedStrategy is a minimal strategy for testing the registry
type namedStrategy struct {
	name string
}

func (s *namedStrategy) Name() string {
	return s.name
}

func (s *namedStrategy) GenerateSignal(_ SignalContext) types.StrategySignal {
	return types.Hold("TEST")
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	registry := NewRegistry()

	strategy := &namedStrategy{name: "custom"}
	suite.Require().NoError(registry.RegisterStrategy(strategy))

	retrieved, err := registry.GetStrategy("custom")
	suite.Require().NoError(err)
	suite.Equal(strategy, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewRegistry()

	suite.Require().NoError(registry.RegisterStrategy(&namedStrategy{name: "custom"}))

	err := registry.RegisterStrategy(&namedStrategy{name: "custom"})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyAlreadyExists))
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetNotFound() {
	registry := NewRegistry()

	_, err := registry.GetStrategy("missing")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestRemove() {
	registry := NewRegistry()
	suite.Require().NoError(registry.RegisterStrategy(&namedStrategy{name: "custom"}))

	suite.Require().NoError(registry.RemoveStrategy("custom"))
	suite.Empty(registry.ListStrategies())

	err := registry.RemoveStrategy("custom")
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestDefaultRegistry() {
	registry := NewDefaultRegistry(config.Default().Agent)

	suite.Equal([]string{MeanReversionLongName, RuleBasedLongName}, registry.ListStrategies())

	strategy, err := registry.GetStrategy(RuleBasedLongName)
	suite.Require().NoError(err)
	suite.Equal(RuleBasedLongName, strategy.Name())
}
