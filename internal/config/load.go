package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type loadOptions struct {
	cwd      string
	lookup   LookupFunc
	logger   log.FieldLogger
	file     string
	noGlobal bool
	noLocal  bool
}

// Option customises Load.
type Option func(*loadOptions)

// WithWorkDir roots the default cache and log directories at dir instead of
// the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *loadOptions) { o.cwd = dir }
}

// WithLookup replaces os.LookupEnv as the environment source.
func WithLookup(fn LookupFunc) Option {
	return func(o *loadOptions) { o.lookup = fn }
}

// WithEnv uses a fixed map as the environment.
func WithEnv(env map[string]string) Option {
	return WithLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
}

// WithLogger sets the logger used to report where each setting came from.
func WithLogger(l log.FieldLogger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// WithFile loads an explicit YAML file. Local and global discovery are
// skipped when a file is given.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.file = path }
}

// WithoutDiscovery disables local and global config file lookup.
func WithoutDiscovery() Option {
	return func(o *loadOptions) {
		o.noGlobal = true
		o.noLocal = true
	}
}

// Load builds the configuration: literal defaults, then the global file,
// then the project-local file (or an explicit one), then environment
// variables. A numeric environment variable that cannot be parsed is
// returned as a *ParseError.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		o.logger = discard
	}
	if o.cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		o.cwd = wd
	}

	cfg := Defaults(o.cwd)
	if err := applyFiles(&cfg, o); err != nil {
		return nil, err
	}
	if err := (envReader{lookup: o.lookup, logger: o.logger}).apply(&cfg); err != nil {
		return nil, err
	}
	o.logger.WithFields(log.Fields{
		"cache_dir": cfg.CacheDir,
		"log_dir":   cfg.LogDir,
		"ocr_dpi":   cfg.OCRDPI,
		"model":     cfg.DefaultModel,
	}).Debug("configuration loaded")
	return &cfg, nil
}

func applyFiles(cfg *Config, o loadOptions) error {
	if o.file != "" {
		fc, err := LoadFile(o.file)
		if err != nil {
			return fmt.Errorf("load config %s: %w", o.file, err)
		}
		return fc.Apply(cfg, o.cwd)
	}
	if !o.noGlobal {
		if err := applyFound(cfg, o, "global", LoadGlobal); err != nil {
			return err
		}
	}
	if !o.noLocal {
		return applyFound(cfg, o, "local", func() (FileConfig, error) { return LoadLocal(o.cwd) })
	}
	return nil
}

func applyFound(cfg *Config, o loadOptions, scope string, load func() (FileConfig, error)) error {
	fc, err := load()
	if errors.Is(err, ErrNoConfigFile) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s config: %w", scope, err)
	}
	o.logger.WithField("scope", scope).Debug("applying config file")
	return fc.Apply(cfg, o.cwd)
}
