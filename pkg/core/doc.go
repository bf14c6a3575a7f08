// Package core provides a small, stable facade over Scout's configuration
// and ingestion scan for the OCR, embedding, detection and face pipelines.
// It re-exports a narrow API surface so those tools depend on one import
// path instead of the internal packages.
//
// Example:
//
//	cfg, err := core.Load()
//	if err != nil { /* fatal: bad environment */ }
//	if err := cfg.Initialize(); err != nil { /* handle */ }
//	res, err := core.Scan(ctx, cfg, core.ScanOptions{Root: "."})
//	_ = core.MarshalDocuments(os.Stdout, res.Documents)
package core
