// Package config builds Scout's configuration from literal defaults, YAML
// files and environment variables, and provisions the cache and log
// directories. It is internal; other packages receive a *Config from the CLI.
package config
