// Package cache persists per-type document fingerprints at the paths
// resolved by config.Config.CachePath, so unchanged files can be skipped on
// the next run.
package cache
