package datev

import (
	"fmt"
	"strconv"
	"sync"
)

// Registry maps format version numbers to their definitions. It is an
// explicitly constructed object passed to codec entry points; build it once
// at startup and treat it as read-only afterwards.
type Registry struct {
	byVersion map[int]*Definition
}

// NewRegistry creates a registry with all built-in format versions
// registered.
func NewRegistry() *Registry {
	r := &Registry{byVersion: make(map[int]*Definition)}
	// Registering built-ins cannot collide.
	_ = r.Register(V700())
	return r
}

// Register adds a format definition. Registering a version twice is an
// error.
func (r *Registry) Register(def *Definition) error {
	if _, exists := r.byVersion[def.Version]; exists {
		return fmt.Errorf("format version %d is already registered", def.Version)
	}
	r.byVersion[def.Version] = def
	return nil
}

// Definition returns the definition for a version number.
func (r *Registry) Definition(version int) (*Definition, bool) {
	def, ok := r.byVersion[version]
	return def, ok
}

// Versions returns the registered version numbers.
func (r *Registry) Versions() []int {
	versions := make([]int, 0, len(r.byVersion))
	for v := range r.byVersion {
		versions = append(versions, v)
	}
	return versions
}

// Detect resolves the definition for a raw meta-header values array. By
// DATEV convention the version number is the second token. It returns false
// when the token is missing, not numeric, or unregistered; callers must
// handle the no-match case explicitly.
func (r *Registry) Detect(values []string) (*Definition, bool) {
	if len(values) < 2 {
		return nil, false
	}
	version, err := strconv.Atoi(values[1])
	if err != nil {
		return nil, false
	}
	return r.Definition(version)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry of built-in format
// versions. It is built exactly once; concurrent callers never observe a
// partially populated table.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
