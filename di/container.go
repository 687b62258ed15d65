package di

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	wkerrors "github.com/skillsenselab/wirekit/errors"
	"github.com/skillsenselab/wirekit/logger"
)

// Container is the resolution engine. It composes the type registry, the
// fallback strategy chain, the singleton cache, and the event hooks.
//
// Registration methods are chainable and safe for concurrent use. Resolve
// may be called from multiple goroutines; the registry and singleton cache
// use get-or-create semantics so a single winning value is stored, but two
// goroutines racing on the first resolution of the same unregistered type
// may each execute the construction path before one result wins. Factories
// with side effects are therefore not guaranteed exactly-once execution
// under concurrent first resolution.
type Container struct {
	id  string
	cfg Config
	log *logger.Logger

	mu             sync.RWMutex
	bindings       map[reflect.Type]Factory
	strategies     []StrategyFunc
	failureHook    FailureHook
	beforeRegister []func(Factory)
	afterResolve   []func(reflect.Type, any)

	singles *singletonCache
}

// New creates a container with default configuration.
func New() *Container {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a container with the given configuration.
func NewWithConfig(cfg Config) *Container {
	cfg.ApplyDefaults()
	c := &Container{
		id:       uuid.NewString(),
		cfg:      cfg,
		bindings: make(map[reflect.Type]Factory),
		singles:  newSingletonCache(),
	}
	c.log = logger.Get("di").WithFields(map[string]interface{}{
		logger.FieldContainerID: c.id,
	})
	c.failureHook = c.defaultFailureHook
	c.strategies = []StrategyFunc{deferredStrategy(c)}
	return c
}

// ID returns the container's instance id.
func (c *Container) ID() string { return c.id }

// ── Registration ──

// Register binds t to f, replacing any prior binding. The before-register
// hook fires with the factory before it is installed. Any cached singleton
// value for t is cleared so the next resolution recomputes.
func (c *Container) Register(t reflect.Type, f Factory) *Container {
	c.fireBeforeRegister(f)
	c.mu.Lock()
	c.bindings[t] = f
	c.mu.Unlock()
	c.singles.invalidate(t)
	c.log.Debug("registered factory", logger.Fields(
		logger.FieldOperation, "register",
		logger.FieldType, t.String(),
	))
	return c
}

// TryRegister binds t to f only if no binding exists; otherwise it is a
// no-op.
func (c *Container) TryRegister(t reflect.Type, f Factory) *Container {
	c.mu.RLock()
	_, exists := c.bindings[t]
	c.mu.RUnlock()
	if exists {
		return c
	}
	c.fireBeforeRegister(f)
	c.mu.Lock()
	if _, exists := c.bindings[t]; !exists {
		c.bindings[t] = f
	}
	c.mu.Unlock()
	return c
}

// RegisterSingle binds t to a memoizing wrapper around f: the first
// invocation calls f and caches the result, keyed by t and aliased by the
// result's concrete runtime type, so later direct requests for the concrete
// type return the same instance. Re-registering clears the previous cached
// value.
func (c *Container) RegisterSingle(t reflect.Type, f Factory) *Container {
	return c.Register(t, c.singles.wrap(t, f))
}

// TryRegisterSingle is RegisterSingle without replacement: a no-op when t is
// already bound.
func (c *Container) TryRegisterSingle(t reflect.Type, f Factory) *Container {
	return c.TryRegister(t, c.singles.wrap(t, f))
}

// ── Strategies and hooks ──

// AddStrategy adds a fallback strategy to the chain. With executeFirst true
// the strategy is consulted before the existing chain; otherwise after it.
// The first strategy returning a factory wins.
func (c *Container) AddStrategy(fn StrategyFunc, executeFirst bool) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	if executeFirst {
		c.strategies = append([]StrategyFunc{fn}, c.strategies...)
	} else {
		c.strategies = append(c.strategies, fn)
	}
	return c
}

// OnFailedResolve replaces the failure hook invoked when constructor
// selection fails. Passing nil restores the default hook, which wraps the
// cause in an unresolvable-dependency error (or yields a default value when
// the container is configured with OnMissingDefault).
func (c *Container) OnFailedResolve(hook FailureHook) *Container {
	if hook == nil {
		hook = c.defaultFailureHook
	}
	c.mu.Lock()
	c.failureHook = hook
	c.mu.Unlock()
	return c
}

// BeforeRegister adds an observer fired with every factory about to be
// installed into the registry, explicit or synthesized.
func (c *Container) BeforeRegister(fn func(Factory)) *Container {
	c.mu.Lock()
	c.beforeRegister = append(c.beforeRegister, fn)
	c.mu.Unlock()
	return c
}

// AfterResolve adds an observer fired after every successful resolution,
// cached or freshly built.
func (c *Container) AfterResolve(fn func(reflect.Type, any)) *Container {
	c.mu.Lock()
	c.afterResolve = append(c.afterResolve, fn)
	c.mu.Unlock()
	return c
}

// ── Resolution ──

// Resolve produces an instance of t. Lookup order: explicit binding,
// singleton alias table, strategy chain, constructor synthesis. A factory
// produced by a strategy or by synthesis is installed into the registry, so
// later resolutions of t skip the fallback path entirely.
func (c *Container) Resolve(t reflect.Type) (any, error) {
	r := &Resolver{c: c}
	return r.Resolve(t)
}

// Bindings returns the current set of (type, factory) bindings.
func (c *Container) Bindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Binding, 0, len(c.bindings))
	for t, f := range c.bindings {
		out = append(out, Binding{Type: t, Factory: f})
	}
	return out
}

// ── internal ──

func (c *Container) binding(t reflect.Type) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.bindings[t]
	return f, ok
}

// fallback walks the strategy chain and falls through to constructor
// synthesis when no strategy has an opinion.
func (c *Container) fallback(t reflect.Type) (Factory, error) {
	c.mu.RLock()
	chain := make([]StrategyFunc, len(c.strategies))
	copy(chain, c.strategies)
	c.mu.RUnlock()

	for i, s := range chain {
		if f, ok := s(t); ok {
			c.log.Debug("strategy produced factory", logger.Fields(
				logger.FieldType, t.String(),
				logger.FieldStrategy, i,
			))
			return f, nil
		}
	}
	return synthesize(t)
}

// install memoizes a fallback-produced factory under t with get-or-create
// semantics: if another resolve call installed one first, that factory wins.
func (c *Container) install(t reflect.Type, f Factory) Factory {
	c.fireBeforeRegister(f)
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.bindings[t]; ok {
		return existing
	}
	c.bindings[t] = f
	return f
}

func (c *Container) failResolve(t reflect.Type, cause error) (any, error) {
	c.mu.RLock()
	hook := c.failureHook
	c.mu.RUnlock()

	if err := hook(t, cause); err != nil {
		c.log.Debug("resolution failed", logger.ErrorFields("resolve", err))
		return nil, err
	}
	v := bareInstance(t)
	c.fireAfterResolve(t, v)
	return v, nil
}

func (c *Container) defaultFailureHook(t reflect.Type, cause error) error {
	if c.cfg.OnMissing == OnMissingDefault {
		return nil
	}
	return wkerrors.Unresolvable(t.String(), cause)
}

func (c *Container) fireBeforeRegister(f Factory) {
	c.mu.RLock()
	hooks := c.beforeRegister
	c.mu.RUnlock()
	for _, h := range hooks {
		h(f)
	}
}

func (c *Container) fireAfterResolve(t reflect.Type, v any) {
	c.mu.RLock()
	hooks := c.afterResolve
	c.mu.RUnlock()
	for _, h := range hooks {
		h(t, v)
	}
	if c.cfg.LogResolutions {
		c.log.Debug("resolved", logger.Fields(
			logger.FieldOperation, "resolve",
			logger.FieldType, t.String(),
		))
	}
}
