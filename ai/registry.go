// Copyright 2025 Talentsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"sync"
)

// Factory constructs an AIProvider from a configuration.
type Factory func(cfg *Config) (AIProvider, error)

// Registry maps provider names to lazily-constructed, memoized AIProvider
// instances. Construction happens at most once per name (first call wins);
// subsequent calls return the cached provider. The registry is constructed
// once at process start and passed by reference into every component that
// needs a provider, so there is no hidden global mutable state.
type Registry struct {
	mu        sync.Mutex
	cfg       *Config
	factories map[string]Factory
	providers map[string]AIProvider
}

// NewRegistry creates a provider registry sharing the given configuration.
func NewRegistry(cfg *Config) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Registry{
		cfg:       cfg,
		factories: make(map[string]Factory),
		providers: make(map[string]AIProvider),
	}
}

// Register associates a provider name with a construction function.
// Registering an already-known name replaces its factory; a provider already
// constructed under that name is left untouched.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Provider returns the provider for the given name, constructing it on first
// use. Safe for concurrent callers; exactly one construction per name.
func (r *Registry) Provider(name string) (AIProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.providers[name]; ok {
		return p, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	p, err := factory(r.cfg)
	if err != nil {
		return nil, err
	}
	r.providers[name] = p
	return p, nil
}

// Close closes every constructed provider and clears the cache.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, p := range r.providers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing provider %q: %w", name, err))
		}
	}
	r.providers = make(map[string]AIProvider)
	return errors.Join(errs...)
}
