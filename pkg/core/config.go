package core

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultTheme is used when no configuration has been persisted yet.
const DefaultTheme = "default"

// Config holds the user preferences. Its storage is re-derived from the
// environment on every run and is never written into the persisted document.
type Config struct {
	storage Storage[ConfigData]
	logger  *slog.Logger
	theme   string
	mu      sync.RWMutex
}

// NewConfig creates a default configuration persisted through storage.
func NewConfig(storage Storage[ConfigData], logger *slog.Logger) *Config {
	return &Config{
		storage: storage,
		logger:  loggerOrDefault(logger),
		theme:   DefaultTheme,
	}
}

// Load implements Persist.
func (c *Config) Load(ctx context.Context) LoadOutcome {
	data, outcome := loadOrDefault(ctx, c.storage, func() ConfigData {
		return ConfigData{Theme: DefaultTheme}
	}, c.logger, "config")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = data.Theme
	if c.theme == "" {
		c.theme = DefaultTheme
	}
	return outcome
}

// Save implements Persist.
func (c *Config) Save(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := c.storage.Update(ctx, ConfigData{Theme: c.theme})
	return err
}

// Theme returns the configured theme.
func (c *Config) Theme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// SetTheme changes the theme in memory. Call Save to persist it.
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
}

var (
	_ Persist = (*Config)(nil)
	_ Persist = (*Collection)(nil)
)
