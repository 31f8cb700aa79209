/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/reactivestore/future"
)

// ParameterMetadata describes the named parameters a compiled plan expects.
type ParameterMetadata struct {
	Named []string
}

// Validate checks bound parameters against the metadata: every declared
// parameter must be bound and no unknown parameter may be present.
func (m ParameterMetadata) Validate(params map[string]any) error {
	for _, name := range m.Named {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("no value bound for parameter %q", name)
		}
	}
	for name := range params {
		if !m.declares(name) {
			return fmt.Errorf("unknown parameter %q", name)
		}
	}
	return nil
}

func (m ParameterMetadata) declares(name string) bool {
	for _, n := range m.Named {
		if n == name {
			return true
		}
	}
	return false
}

// Executor runs a compiled plan against storage.
type Executor interface {
	// List executes the plan and resolves to the result rows.
	List(ctx context.Context, params map[string]any) *future.Future[[]any]
	// ExecuteUpdate executes the plan and resolves to the affected-row count.
	ExecuteUpdate(ctx context.Context, params map[string]any) *future.Future[int]
}

// Plan is a compiled, executable query plan. Plans are immutable and safe
// to share between queries once compiled.
type Plan struct {
	// Text is the source query text (or SQL for native plans).
	Text string
	// Shallow marks plans compiled without subselect fetching.
	Shallow bool
	// Parameters is the parameter metadata extracted at compile time.
	Parameters ParameterMetadata
	// ReturnedEntity names the entity type the plan produces, if known.
	ReturnedEntity string
	// Exec runs the plan.
	Exec Executor
}

// PlanCompiler compiles query text into executable plans. Compilation
// failures are reported as errors; plans are cacheable by (text, shallow).
type PlanCompiler interface {
	// Compile compiles dialect query text.
	Compile(text string, shallow bool) (*Plan, error)
	// CompileNative wraps a raw SQL specification into a plan.
	CompileNative(spec NativeSpec) (*Plan, error)
}

type planKey struct {
	text    string
	shallow bool
}

// PlanCache memoizes compiled plans by query text.
type PlanCache struct {
	mu       sync.RWMutex
	compiler PlanCompiler
	plans    map[planKey]*Plan
}

// NewPlanCache creates a PlanCache backed by the given compiler.
func NewPlanCache(compiler PlanCompiler) *PlanCache {
	return &PlanCache{
		compiler: compiler,
		plans:    make(map[planKey]*Plan),
	}
}

// Get returns the cached plan for the text, compiling it on first use.
func (c *PlanCache) Get(text string, shallow bool) (*Plan, error) {
	key := planKey{text: text, shallow: shallow}

	c.mu.RLock()
	plan, ok := c.plans[key]
	c.mu.RUnlock()
	if ok {
		return plan, nil
	}

	plan, err := c.compiler.Compile(text, shallow)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.plans[key]; ok {
		return cached, nil
	}
	c.plans[key] = plan
	return plan, nil
}

// Native wraps a raw SQL specification into a plan. Native plans are
// compiled per call; only dialect plans are memoized.
func (c *PlanCache) Native(spec NativeSpec) (*Plan, error) {
	return c.compiler.CompileNative(spec)
}

// Size returns the number of cached plans.
func (c *PlanCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}
