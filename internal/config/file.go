package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Scout. Nil fields
// leave the underlying value untouched.
type FileConfig struct {
	CacheDir         *string   `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`
	LogDir           *string   `yaml:"log_dir,omitempty" json:"log_dir,omitempty"`
	ExcludeKeywords  *[]string `yaml:"exclude_keywords,omitempty" json:"exclude_keywords,omitempty"`
	ExcludeFilenames *[]string `yaml:"exclude_filenames,omitempty" json:"exclude_filenames,omitempty"`

	MaxChars      *int    `yaml:"max_chars,omitempty" json:"max_chars,omitempty"`
	Timeout       *string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	BatchSize     *int    `yaml:"batch_size,omitempty" json:"batch_size,omitempty"`
	SaveInterval  *int    `yaml:"save_interval,omitempty" json:"save_interval,omitempty"`
	PreviewLength *int    `yaml:"preview_length,omitempty" json:"preview_length,omitempty"`

	DefaultModel *string           `yaml:"default_model,omitempty" json:"default_model,omitempty"`
	ModelAliases map[string]string `yaml:"model_aliases,omitempty" json:"model_aliases,omitempty"`

	// OCR and detector settings mirror the environment variables of the
	// same name; the environment wins when both are set.
	TesseractConfig *string  `yaml:"tesseract_config,omitempty" json:"tesseract_config,omitempty"`
	OCRDPI          *int     `yaml:"ocr_dpi,omitempty" json:"ocr_dpi,omitempty"`
	YOLOWeights     *string  `yaml:"yolo_weights,omitempty" json:"yolo_weights,omitempty"`
	YOLOConfig      *string  `yaml:"yolo_config,omitempty" json:"yolo_config,omitempty"`
	YOLOClasses     *string  `yaml:"yolo_classes,omitempty" json:"yolo_classes,omitempty"`
	YOLOConfidence  *float64 `yaml:"yolo_confidence,omitempty" json:"yolo_confidence,omitempty"`
	FaceSimilarity  *float64 `yaml:"face_similarity,omitempty" json:"face_similarity,omitempty"`
}

// ErrNoConfigFile is returned by LoadLocal and LoadGlobal when no file is found.
var ErrNoConfigFile = errors.New("no config file")

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in dir.
// It supports .scout.yml/.yaml and scout.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range []string{".scout.yml", ".scout.yaml", "scout.yml", "scout.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNoConfigFile
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, ErrNoConfigFile
	}
	p := filepath.Join(base, "scout", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, ErrNoConfigFile
}

// Apply overlays the non-nil fields of fc onto c. Relative directories are
// resolved against cwd.
func (fc FileConfig) Apply(c *Config, cwd string) error {
	if fc.CacheDir != nil {
		c.CacheDir = absUnder(cwd, *fc.CacheDir)
	}
	if fc.LogDir != nil {
		c.LogDir = absUnder(cwd, *fc.LogDir)
	}
	if fc.ExcludeKeywords != nil {
		c.ExcludeKeywords = append([]string(nil), (*fc.ExcludeKeywords)...)
	}
	if fc.ExcludeFilenames != nil {
		c.ExcludeFilenames = append([]string(nil), (*fc.ExcludeFilenames)...)
	}
	setIfNotNil(&c.MaxChars, fc.MaxChars)
	setIfNotNil(&c.BatchSize, fc.BatchSize)
	setIfNotNil(&c.SaveInterval, fc.SaveInterval)
	setIfNotNil(&c.PreviewLength, fc.PreviewLength)
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return &ParseError{Key: "timeout", Value: *fc.Timeout, Err: err}
		}
		c.DefaultTimeout = d
	}
	setIfNotNil(&c.DefaultModel, fc.DefaultModel)
	for alias, id := range fc.ModelAliases {
		c.ModelAliases[strings.ToLower(alias)] = id
	}
	setIfNotNil(&c.TesseractConfig, fc.TesseractConfig)
	setIfNotNil(&c.OCRDPI, fc.OCRDPI)
	setIfNotNil(&c.YOLOWeights, fc.YOLOWeights)
	setIfNotNil(&c.YOLOConfig, fc.YOLOConfig)
	setIfNotNil(&c.YOLOClasses, fc.YOLOClasses)
	setIfNotNil(&c.YOLOConfidence, fc.YOLOConfidence)
	setIfNotNil(&c.FaceSimilarityThreshold, fc.FaceSimilarity)
	return nil
}

// FromConfig captures every field of c so it can be written back as YAML.
func FromConfig(c *Config) FileConfig {
	timeout := c.DefaultTimeout.String()
	aliases := make(map[string]string, len(c.ModelAliases))
	for k, v := range c.ModelAliases {
		aliases[k] = v
	}
	kw := append([]string(nil), c.ExcludeKeywords...)
	fn := append([]string(nil), c.ExcludeFilenames...)
	return FileConfig{
		CacheDir:         &c.CacheDir,
		LogDir:           &c.LogDir,
		ExcludeKeywords:  &kw,
		ExcludeFilenames: &fn,
		MaxChars:         &c.MaxChars,
		Timeout:          &timeout,
		BatchSize:        &c.BatchSize,
		SaveInterval:     &c.SaveInterval,
		PreviewLength:    &c.PreviewLength,
		DefaultModel:     &c.DefaultModel,
		ModelAliases:     aliases,
		TesseractConfig:  &c.TesseractConfig,
		OCRDPI:           &c.OCRDPI,
		YOLOWeights:      &c.YOLOWeights,
		YOLOConfig:       &c.YOLOConfig,
		YOLOClasses:      &c.YOLOClasses,
		YOLOConfidence:   &c.YOLOConfidence,
		FaceSimilarity:   &c.FaceSimilarityThreshold,
	}
}

func setIfNotNil[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func absUnder(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}
