package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// Collection is the ordered, owned aggregate of all snippets.
// Insertion order is significant (newest last). Between a Load and the next
// Save the in-memory sequence is the single source of truth; every Save
// writes the entire sequence.
type Collection struct {
	storage  Storage[CollectionData]
	logger   *slog.Logger
	snippets []Snippet
	// template is the ID of the default snippet inserted by a fallback Load,
	// until it is first persisted.
	template uuid.UUID
	mu       sync.RWMutex
}

// NewCollection creates an empty collection persisted through storage.
func NewCollection(storage Storage[CollectionData], logger *slog.Logger) *Collection {
	return &Collection{
		storage: storage,
		logger:  loggerOrDefault(logger),
	}
}

// Load implements Persist. On failure the collection holds only the
// DefaultSnippet template.
func (c *Collection) Load(ctx context.Context) LoadOutcome {
	data, outcome := loadOrDefault(ctx, c.storage, defaultCollection, c.logger, "snippets")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snippets = data.Snippets
	c.template = uuid.Nil
	if outcome.UsedDefaults {
		c.template = data.Snippets[0].ID
	}
	return outcome
}

func defaultCollection() CollectionData {
	return CollectionData{Snippets: []Snippet{DefaultSnippet()}}
}

// Save implements Persist.
func (c *Collection) Save(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveLocked(ctx)
}

func (c *Collection) saveLocked(ctx context.Context) error {
	_, err := c.storage.Update(ctx, CollectionData{Snippets: slices.Clone(c.snippets)})
	return err
}

// Add appends s and saves the collection immediately.
//
// When the storage is a Modifier, the append is applied to the currently
// persisted sequence under the storage lock and the in-memory sequence is
// replaced with the result, so snippets added concurrently by another
// process are kept. Save failures are returned, never hidden.
func (c *Collection) Add(ctx context.Context, s Snippet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if indexOf(c.snippets, s.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
	}

	m, ok := c.storage.(Modifier[CollectionData])
	if !ok {
		c.snippets = append(c.snippets, s)
		return c.saveLocked(ctx)
	}

	data, err := m.Modify(ctx, func(current CollectionData, exists bool) (CollectionData, error) {
		if !exists {
			current = CollectionData{}
		}
		// No snippet is ever removed, so the union keeps both writers' additions.
		merged := slices.Clone(current.Snippets)
		for _, local := range c.snippets {
			// Another writer already persisted a collection, so our template is stale.
			if exists && local.ID == c.template {
				continue
			}
			if indexOf(merged, local.ID) < 0 {
				merged = append(merged, local)
			}
		}
		if indexOf(merged, s.ID) >= 0 {
			return current, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		return CollectionData{Snippets: append(merged, s)}, nil
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateID) {
			c.snippets = append(c.snippets, s)
		}
		return err
	}

	c.snippets = data.Snippets
	c.template = uuid.Nil
	c.logger.Debug("snippet added", "id", s.ID, "path", s.Path(), "total", len(c.snippets))
	return nil
}

// Find returns every snippet whose name contains substr (case-sensitive),
// in collection order. It returns nil when nothing matches.
func (c *Collection) Find(substr string) []Snippet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var found []Snippet
	for _, s := range c.snippets {
		if strings.Contains(s.Name, substr) {
			found = append(found, s)
		}
	}
	return found
}

// Get returns the first snippet matched by the Find rule.
func (c *Collection) Get(substr string) (Snippet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.snippets {
		if strings.Contains(s.Name, substr) {
			return s, true
		}
	}
	return Snippet{}, false
}

// ListByLanguage returns the snippets whose language equals Classify(tag).
// A tag that classifies as Miscellaneous cannot be scoped and yields ErrUnscopable.
func (c *Collection) ListByLanguage(tag string) ([]Snippet, error) {
	lang := Classify(tag)
	if lang == Miscellaneous {
		return nil, fmt.Errorf("%w: %q", ErrUnscopable, tag)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var found []Snippet
	for _, s := range c.snippets {
		if s.Language == lang {
			found = append(found, s)
		}
	}
	return found, nil
}

// ListAll returns the full sequence in insertion order.
func (c *Collection) ListAll() []Snippet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.snippets)
}

// Match returns the snippets whose path ("folder/name") matches a doublestar
// glob such as "utils/*" or "**/http*".
func (c *Collection) Match(pattern string) ([]Snippet, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var found []Snippet
	for _, s := range c.snippets {
		if ok, _ := doublestar.Match(pattern, s.Path()); ok {
			found = append(found, s)
		}
	}
	return found, nil
}

// Len returns the number of snippets.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snippets)
}

func indexOf(snippets []Snippet, id uuid.UUID) int {
	return slices.IndexFunc(snippets, func(s Snippet) bool { return s.ID == id })
}
