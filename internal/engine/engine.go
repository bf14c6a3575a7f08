package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/scout/scout/internal/cache"
	"github.com/scout/scout/internal/config"
	"github.com/scout/scout/internal/types"
)

// Options controls a single ingestion scan.
type Options struct {
	Root         string
	IncludeGlobs string
	ExcludeGlobs string
	// NoCache skips fingerprinting against the content cache; every
	// document is reported as changed.
	NoCache bool
	// OnBatch receives documents in groups of Config.BatchSize. It is where
	// OCR and embedding pipelines plug in.
	OnBatch  func(ctx context.Context, batch []types.Document) error
	Progress func()
	Logger   log.FieldLogger
}

// Result summarises a scan.
type Result struct {
	Documents []types.Document
	Changed   int
	Images    int
}

// Scan walks opts.Root with the filters from cfg, fingerprints each
// document into the content cache and hands batches to opts.OnBatch. The
// whole scan is bounded by cfg.DefaultTimeout.
func Scan(ctx context.Context, cfg *config.Config, opts Options) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	if cfg.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DefaultTimeout)
		defer cancel()
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return res, fmt.Errorf("resolve %s: %w", root, err)
	}

	var tracker *cache.Tracker
	if !opts.NoCache {
		if err := cfg.Initialize(); err != nil {
			return res, err
		}
		store, err := cache.Open(cfg, config.CacheContent)
		if err != nil {
			return res, err
		}
		tracker = cache.NewTracker(store, cfg.SaveInterval)
	}

	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	batch := make([]types.Document, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		logger.WithField("size", len(batch)).Debug("dispatching batch")
		if opts.OnBatch != nil {
			if err := opts.OnBatch(ctx, batch); err != nil {
				return err
			}
		}
		batch = make([]types.Document, 0, batchSize)
		return nil
	}

	filter := NewFilter(cfg, opts.IncludeGlobs, opts.ExcludeGlobs)
	err = Walk(ctx, root, filter, func(doc types.Document) error {
		if tracker != nil {
			abs := filepath.Join(absRoot, filepath.FromSlash(doc.Path))
			b, err := os.ReadFile(abs)
			if err != nil {
				logger.WithError(err).WithField("path", doc.Path).Warn("skipping unreadable file")
				return nil
			}
			doc.Fingerprint = cache.Fingerprint(b)
			changed, err := tracker.Record(filepath.ToSlash(abs), doc.Fingerprint)
			if err != nil {
				return err
			}
			doc.Changed = changed
		}
		if doc.Changed {
			res.Changed++
		}
		if doc.Kind == types.KindImage {
			res.Images++
		}
		res.Documents = append(res.Documents, doc)
		if opts.Progress != nil {
			opts.Progress()
		}
		batch = append(batch, doc)
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err == nil {
		err = flush()
	}
	if tracker != nil {
		if ferr := tracker.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", root, err)
	}
	logger.WithFields(log.Fields{
		"root":      root,
		"documents": len(res.Documents),
		"changed":   res.Changed,
		"images":    res.Images,
	}).Info("scan complete")
	return res, nil
}
