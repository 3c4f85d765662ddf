package core

import (
	"slices"

	"github.com/aretw0/introspection"
)

// CollectionState exposes internal state for observability.
type CollectionState struct {
	Size        int            `json:"size"`
	StorageType string         `json:"storage_type"`
	Languages   map[string]int `json:"languages,omitempty"`
}

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Theme        string          `json:"theme"`
	Snippets     CollectionState `json:"snippets"`
	UsedDefaults []string        `json:"used_defaults,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Collection) State() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	langs := make(map[string]int)
	for _, s := range c.snippets {
		langs[s.Language.String()]++
	}

	return CollectionState{
		Size:        len(c.snippets),
		StorageType: componentType(c.storage),
		Languages:   langs,
	}
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "collection"
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var defaulted []string
	for name, o := range s.outcomes {
		if o.UsedDefaults {
			defaulted = append(defaulted, name)
		}
	}
	slices.Sort(defaulted)

	return ServiceState{
		Theme:        s.config.Theme(),
		Snippets:     s.snippets.State().(CollectionState),
		UsedDefaults: defaulted,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

// StorageState returns the state of the snippet storage when it is introspectable.
func (s *Service) StorageState() any {
	if in, ok := s.snippets.storage.(introspection.Introspectable); ok {
		return in.State()
	}
	return nil
}

func componentType(v any) string {
	if v == nil {
		return "unknown"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "storage"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
var _ introspection.Introspectable = (*Collection)(nil)
var _ introspection.Component = (*Collection)(nil)
