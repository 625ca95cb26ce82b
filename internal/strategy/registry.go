package strategy

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
)

// Registry manages all available strategies.
type Registry interface {
	RegisterStrategy(strategy Strategy) error
	GetStrategy(name string) (Strategy, error)
	ListStrategies() []string
	RemoveStrategy(name string) error
}

// RegistryV1 manages all available strategies.
type RegistryV1 struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() Registry {
	return &RegistryV1{
		strategies: make(map[string]Strategy),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding the built-in strategies configured from cfg.
func NewDefaultRegistry(cfg config.AgentConfig) Registry {
	registry := NewRegistry()
	// names are distinct constants, registration cannot fail
	_ = registry.RegisterStrategy(NewRuleBasedLong())
	_ = registry.RegisterStrategy(NewMeanReversionLong(cfg.DipPct))

	return registry
}

// RegisterStrategy adds a strategy to the registry.
func (r *RegistryV1) RegisterStrategy(strategy Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strategy.Name()
	if _, exists := r.strategies[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy with name %s already registered", name)
	}

	r.strategies[name] = strategy

	return nil
}

// GetStrategy retrieves a strategy by name.
func (r *RegistryV1) GetStrategy(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy with name %s not found", name)
	}

	return strategy, nil
}

// ListStrategies returns the sorted names of all registered strategies.
func (r *RegistryV1) ListStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RemoveStrategy removes a strategy from the registry.
func (r *RegistryV1) RemoveStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; !exists {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy with name %s not found", name)
	}

	delete(r.strategies, name)

	return nil
}
