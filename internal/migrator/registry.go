package migrator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTransformer is returned when no registered transformer matches a
// project type. Resolution happens before any mutation, so an unsupported
// project is rejected with zero side effects.
var ErrNoTransformer = errors.New("no transformer registered")

// Registry maps project-type strings to transformers.
type Registry struct {
	transformers map[string]Transformer
	order        []string // registration order, for deterministic fallback matching
}

// NewRegistry creates an empty transformer registry.
func NewRegistry() *Registry {
	return &Registry{transformers: map[string]Transformer{}}
}

// Register adds a transformer under a project-type key. Registering the
// same key twice replaces the earlier transformer.
func (r *Registry) Register(projectType string, t Transformer) {
	if _, exists := r.transformers[projectType]; !exists {
		r.order = append(r.order, projectType)
	}
	r.transformers[projectType] = t
}

// Keys returns the registered project-type keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Resolve finds the transformer for a project type using three tiers:
// exact key match, substring match in either direction, then the leading
// dashed segment of the project type (the framework prefix) as a key.
func (r *Registry) Resolve(projectType string) (Transformer, error) {
	if t, ok := r.transformers[projectType]; ok {
		return t, nil
	}

	for _, key := range r.order {
		if strings.Contains(projectType, key) || strings.Contains(key, projectType) {
			return r.transformers[key], nil
		}
	}

	prefix, _, found := strings.Cut(projectType, "-")
	if found {
		if t, ok := r.transformers[prefix]; ok {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w for project type %q", ErrNoTransformer, projectType)
}
