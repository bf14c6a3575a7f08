package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	defaultCacheDirName = "caches"
	defaultLogDirName   = "logs"

	defaultOCRDPI           = 300
	defaultMaxChars         = 15000
	defaultTimeout          = 600 * time.Second
	defaultBatchSize        = 100
	defaultSaveInterval     = 50
	defaultPreviewLength    = 200
	defaultModel            = "BAAI/bge-m3"
	defaultYOLOWeights      = "models/yolov4.weights"
	defaultYOLOConfig       = "models/yolov4.cfg"
	defaultYOLOClasses      = "models/coco.names"
	defaultYOLOConfidence   = 0.8
	defaultFaceSimilarity   = 0.4
	fallbackCacheFileSuffix = "_cache.pkl"

	dirPerm = 0o755
)

// Cache-type keys with a registered file name.
const (
	CacheText    = "text"
	CacheContent = "content"
	CacheObject  = "object"
	CacheFace    = "face"
)

// Config is the process-wide configuration for Scout. It is built once by
// Load and passed to every collaborator; nothing mutates it afterwards.
type Config struct {
	CacheDir string
	LogDir   string

	// CacheFiles maps a cache-type key to a file name under CacheDir.
	CacheFiles map[string]string

	// ExcludeKeywords are substrings; a path containing one is skipped.
	ExcludeKeywords []string
	// ExcludeFilenames are exact base names that are skipped.
	ExcludeFilenames []string

	FileExtensions  []string
	ImageExtensions []string

	TesseractConfig string
	OCRDPI          int

	MaxChars       int
	DefaultTimeout time.Duration
	BatchSize      int
	SaveInterval   int
	PreviewLength  int

	DefaultModel string
	ModelAliases map[string]string

	YOLOWeights    string
	YOLOConfig     string
	YOLOClasses    string
	YOLOConfidence float64

	FaceSimilarityThreshold float64
}

// Defaults returns the literal configuration rooted at cwd.
func Defaults(cwd string) Config {
	images := []string{".png", ".jpg", ".jpeg"}
	return Config{
		CacheDir: filepath.Join(cwd, defaultCacheDirName),
		LogDir:   filepath.Join(cwd, defaultLogDirName),
		CacheFiles: map[string]string{
			CacheText:    "text_features_cache.pkl",
			CacheContent: "content_cache.pkl",
			CacheObject:  "object_features_cache.pkl",
			CacheFace:    "face_features_cache.pkl",
		},
		ExcludeKeywords: []string{
			"venv", "env", "node_modules", "__pycache__",
			"dist-info", "macosx", "_vendor", "thirdpartynotices",
		},
		ExcludeFilenames: []string{
			"lgpl.txt", "vendor.txt", "thirdpartysoftwarenotice.txt", "entry_points.txt",
		},
		FileExtensions:  append([]string{".pdf", ".txt", ".docx"}, images...),
		ImageExtensions: images,

		OCRDPI:         defaultOCRDPI,
		MaxChars:       defaultMaxChars,
		DefaultTimeout: defaultTimeout,
		BatchSize:      defaultBatchSize,
		SaveInterval:   defaultSaveInterval,
		PreviewLength:  defaultPreviewLength,

		DefaultModel: defaultModel,
		ModelAliases: map[string]string{
			"bgem3": defaultModel,
		},

		YOLOWeights:    defaultYOLOWeights,
		YOLOConfig:     defaultYOLOConfig,
		YOLOClasses:    defaultYOLOClasses,
		YOLOConfidence: defaultYOLOConfidence,

		FaceSimilarityThreshold: defaultFaceSimilarity,
	}
}

// Initialize creates the cache directory, the log directory and the parent
// directory of every registered cache file. Directories that already exist
// are left alone, so repeated or concurrent calls are safe.
func (c *Config) Initialize() error {
	dirs := []string{c.CacheDir, c.LogDir}
	for _, key := range c.CacheTypes() {
		dirs = append(dirs, filepath.Dir(c.CachePath(key)))
	}
	for _, d := range dirs {
		if err := ensureDir(d); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(dir string) error {
	err := os.MkdirAll(dir, dirPerm)
	if err == nil {
		return nil
	}
	// another process may have won the race; only the end state matters
	if errors.Is(err, os.ErrExist) {
		if st, statErr := os.Stat(dir); statErr == nil && st.IsDir() {
			return nil
		}
	}
	return fmt.Errorf("create directory %s: %w", dir, err)
}

// CachePath returns the file path for a cache type. Unregistered types
// resolve to "<type>_cache.pkl" under CacheDir. A name that would climb out
// of CacheDir is re-rooted to its base name. It never touches the disk.
func (c *Config) CachePath(cacheType string) string {
	name, ok := c.CacheFiles[cacheType]
	if !ok {
		name = cacheType + fallbackCacheFileSuffix
	}
	p := filepath.Join(c.CacheDir, name)
	rel, err := filepath.Rel(c.CacheDir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Join(c.CacheDir, filepath.Base(p))
	}
	return p
}

// ResolveModel maps an alias to its model id. An empty name selects the
// default model and unknown names pass through unchanged.
func (c *Config) ResolveModel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.DefaultModel
	}
	if id, ok := c.ModelAliases[strings.ToLower(name)]; ok {
		return id
	}
	return name
}

// IsImage reports whether path has one of the image extensions.
func (c *Config) IsImage(path string) bool {
	return hasExt(c.ImageExtensions, path)
}

// IsSupported reports whether path has one of the recognised extensions.
func (c *Config) IsSupported(path string) bool {
	return hasExt(c.FileExtensions, path)
}

func hasExt(exts []string, path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	return containsFold(exts, ext)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Validate checks ranges and list consistency.
func (c *Config) Validate() error {
	var errs []error
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir must not be empty"))
	}
	if c.LogDir == "" {
		errs = append(errs, errors.New("log_dir must not be empty"))
	}
	positive := []struct {
		name string
		v    int
	}{
		{"ocr_dpi", c.OCRDPI},
		{"max_chars", c.MaxChars},
		{"batch_size", c.BatchSize},
		{"save_interval", c.SaveInterval},
		{"preview_length", c.PreviewLength},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.v))
		}
	}
	if c.DefaultTimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.DefaultTimeout))
	}
	if c.YOLOConfidence < 0 || c.YOLOConfidence > 1 {
		errs = append(errs, fmt.Errorf("yolo_confidence must be within [0,1], got %v", c.YOLOConfidence))
	}
	if c.FaceSimilarityThreshold < 0 || c.FaceSimilarityThreshold > 1 {
		errs = append(errs, fmt.Errorf("face_similarity must be within [0,1], got %v", c.FaceSimilarityThreshold))
	}
	for _, e := range c.ImageExtensions {
		if !containsFold(c.FileExtensions, e) {
			errs = append(errs, fmt.Errorf("image extension %s missing from file extensions", e))
		}
	}
	return errors.Join(errs...)
}

// CacheTypes returns the registered cache-type keys in a stable order.
func (c *Config) CacheTypes() []string {
	keys := make([]string, 0, len(c.CacheFiles))
	for k := range c.CacheFiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
