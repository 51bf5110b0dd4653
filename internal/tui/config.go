package tui

import (
	"time"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Session   *app.Session
	Now       func() time.Time
	ExportDir string
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Now:       time.Now,
		ExportDir: ".",
		Width:     80,
		Height:    24,
	}
}

// WithSession sets the session the TUI operates on.
func WithSession(session *app.Session) Option {
	return func(c *Config) {
		c.Session = session
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithClock sets the clock used to name exports.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
