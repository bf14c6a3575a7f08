// Package engine selects files for ingestion. It applies the configured
// exclusion and extension lists while walking a directory tree, tracks
// content fingerprints in the cache and hands documents to downstream
// pipelines in batches. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
