package core

import (
	"context"

	"github.com/scout/scout/internal/config"
	"github.com/scout/scout/internal/engine"
	"github.com/scout/scout/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = config.Config
type Option = config.Option
type Document = types.Document
type ScanOptions = engine.Options
type ScanResult = engine.Result

// Load builds the configuration from defaults, config files and the
// environment. Call it once at process entry.
func Load(opts ...Option) (*Config, error) { return config.Load(opts...) }

// Options accepted by Load.
var (
	WithWorkDir      = config.WithWorkDir
	WithEnv          = config.WithEnv
	WithFile         = config.WithFile
	WithLogger       = config.WithLogger
	WithoutDiscovery = config.WithoutDiscovery
)

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg *Config, opts ScanOptions) (ScanResult, error) {
	return engine.Scan(ctx, cfg, opts)
}

// Preview returns the search-result snippet for text, sized by
// cfg.PreviewLength.
func Preview(cfg *Config, text string) string {
	return engine.Preview(text, cfg.PreviewLength)
}

// Truncate cuts extracted text to cfg.MaxChars before it is embedded.
func Truncate(cfg *Config, text string) string {
	return engine.Truncate(text, cfg.MaxChars)
}
