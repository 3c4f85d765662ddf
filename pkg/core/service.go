package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Service exposes the snippet operations consumed by the command line.
type Service struct {
	snippets *Collection
	config   *Config
	logger   *slog.Logger
	outcomes map[string]LoadOutcome
	mu       sync.RWMutex
}

// NewService creates a Service over already constructed aggregates.
// Call Load before using it.
func NewService(snippets *Collection, config *Config, logger *slog.Logger) *Service {
	return &Service{
		snippets: snippets,
		config:   config,
		logger:   loggerOrDefault(logger),
		outcomes: make(map[string]LoadOutcome),
	}
}

// Load hydrates both aggregates. It never fails; see Outcomes.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes["config"] = s.config.Load(ctx)
	s.outcomes["snippets"] = s.snippets.Load(ctx)
}

// Outcomes reports, per aggregate ("config", "snippets"), whether defaults were used.
func (s *Service) Outcomes() map[string]LoadOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]LoadOutcome, len(s.outcomes))
	for k, v := range s.outcomes {
		out[k] = v
	}
	return out
}

// Add parses specifier into folder, name and language, stores a new snippet
// with body and returns it.
func (s *Service) Add(ctx context.Context, specifier, body string) (Snippet, error) {
	snip := NewSnippet(specifier, body)
	if err := s.snippets.Add(ctx, snip); err != nil {
		return snip, err
	}
	s.logger.Info("saved snippet", "id", snip.ID, "path", snip.Path(), "language", snip.Language)
	return snip, nil
}

// Find returns every snippet whose name contains query.
func (s *Service) Find(query string) []Snippet {
	return s.snippets.Find(query)
}

// Get returns the first snippet whose name contains query.
func (s *Service) Get(query string) (Snippet, bool) {
	return s.snippets.Get(query)
}

// ListAll returns every snippet in insertion order.
func (s *Service) ListAll() []Snippet {
	return s.snippets.ListAll()
}

// ListByLanguage returns the snippets of the language tag classifies to.
func (s *Service) ListByLanguage(tag string) ([]Snippet, error) {
	return s.snippets.ListByLanguage(tag)
}

// Match returns the snippets whose "folder/name" path matches pattern.
func (s *Service) Match(pattern string) ([]Snippet, error) {
	return s.snippets.Match(pattern)
}

// Theme returns the configured theme.
func (s *Service) Theme() string {
	return s.config.Theme()
}

// SetTheme changes and persists the theme.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if theme == "" {
		return errors.New("theme cannot be empty")
	}
	s.config.SetTheme(theme)
	return s.config.Save(ctx)
}

// Watch observes changes to the snippet storage if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.snippets.storage.(Watchable)
	if !ok {
		return nil, errors.New("storage does not support watching")
	}
	return w.Watch(ctx)
}
