package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoad_OCRDPI(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    int
		wantErr bool
	}{
		{name: "unset", env: map[string]string{}, want: 300},
		{name: "empty", env: map[string]string{"OCR_DPI": ""}, wantErr: true},
		{name: "override", env: map[string]string{"OCR_DPI": "150"}, want: 150},
		{name: "not a number", env: map[string]string{"OCR_DPI": "notanumber"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(WithWorkDir(t.TempDir()), WithEnv(tt.env), WithoutDiscovery())
			if tt.wantErr {
				require.Error(t, err)
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, "OCR_DPI", pe.Key)
				assert.Equal(t, tt.env["OCR_DPI"], pe.Value)
				assert.True(t, errors.Is(err, strconv.ErrSyntax))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.OCRDPI)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	env := map[string]string{
		"TESSERACT_CONFIG": "--psm 6",
		"YOLO_WEIGHTS":     "/opt/yolo/v7.weights",
		"YOLO_CONFIG":      "/opt/yolo/v7.cfg",
		"YOLO_CLASSES":     "/opt/yolo/classes.txt",
		"YOLO_CONFIDENCE":  "0.55",
		"FACE_SIMILARITY":  "0.6",
	}
	cfg, err := Load(WithWorkDir(t.TempDir()), WithEnv(env), WithoutDiscovery())
	require.NoError(t, err)
	assert.Equal(t, "--psm 6", cfg.TesseractConfig)
	assert.Equal(t, "/opt/yolo/v7.weights", cfg.YOLOWeights)
	assert.Equal(t, "/opt/yolo/v7.cfg", cfg.YOLOConfig)
	assert.Equal(t, "/opt/yolo/classes.txt", cfg.YOLOClasses)
	assert.InDelta(t, 0.55, cfg.YOLOConfidence, 1e-9)
	assert.InDelta(t, 0.6, cfg.FaceSimilarityThreshold, 1e-9)
}

func TestLoad_FloatParseErrors(t *testing.T) {
	for _, key := range []string{"YOLO_CONFIDENCE", "FACE_SIMILARITY"} {
		t.Run(key, func(t *testing.T) {
			_, err := Load(WithWorkDir(t.TempDir()), WithEnv(map[string]string{key: "high"}), WithoutDiscovery())
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, key, pe.Key)
		})
	}
}

func TestLoad_EmptyEnvValues(t *testing.T) {
	cfg, err := Load(WithWorkDir(t.TempDir()), WithEnv(map[string]string{
		"YOLO_WEIGHTS":     "",
		"TESSERACT_CONFIG": "",
	}), WithoutDiscovery())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.YOLOWeights, "an empty string setting is kept, not defaulted")
	assert.Equal(t, "", cfg.TesseractConfig)
	assert.Equal(t, "models/yolov4.cfg", cfg.YOLOConfig)

	for _, key := range []string{"YOLO_CONFIDENCE", "FACE_SIMILARITY"} {
		t.Run(key, func(t *testing.T) {
			_, err := Load(WithWorkDir(t.TempDir()), WithEnv(map[string]string{key: ""}), WithoutDiscovery())
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, key, pe.Key)
			assert.Equal(t, "", pe.Value)
		})
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("OCR_DPI", "600")
	cfg, err := Load(WithWorkDir(t.TempDir()), WithoutDiscovery())
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.OCRDPI)
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "scout.yaml", "max_chars: 4000\nbatch_size: 8\ntimeout: 90s\nexclude_keywords: [build]\n")
	fc, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, fc.MaxChars)
	assert.Equal(t, 4000, *fc.MaxChars)
	require.NotNil(t, fc.ExcludeKeywords)
	assert.Equal(t, []string{"build"}, *fc.ExcludeKeywords)
	assert.Nil(t, fc.OCRDPI)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "scout.yaml", "batch_size: 1\n")
	writeTemp(t, dir, ".scout.yaml", "batch_size: 7\n")
	fc, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, fc.BatchSize)
	assert.Equal(t, 7, *fc.BatchSize)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfigFile)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.ErrorIs(t, err, ErrNoConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "scout"), 0o755))
	writeTemp(t, filepath.Join(xdg, "scout"), "config.yml", "ocr_dpi: 200\nbatch_size: 20\npreview_length: 80\n")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	work := t.TempDir()
	writeTemp(t, work, ".scout.yml", "ocr_dpi: 250\nbatch_size: 30\ncache_dir: store\n")

	cfg, err := Load(WithWorkDir(work), WithEnv(map[string]string{"OCR_DPI": "400"}))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.OCRDPI, "environment wins over files")
	assert.Equal(t, 30, cfg.BatchSize, "local file wins over global")
	assert.Equal(t, 80, cfg.PreviewLength, "global file wins over defaults")
	assert.Equal(t, filepath.Join(work, "store"), cfg.CacheDir)
	assert.Equal(t, filepath.Join(work, "store", "content_cache.pkl"), cfg.CachePath("content"))
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "custom.yml", "timeout: 2m\nmodel_aliases:\n  e5: intfloat/e5-large\n")
	cfg, err := Load(WithWorkDir(dir), WithFile(p), WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.DefaultTimeout)
	assert.Equal(t, "intfloat/e5-large", cfg.ResolveModel("e5"))
	assert.Equal(t, "BAAI/bge-m3", cfg.ResolveModel("bgem3"))
}

func TestLoad_MixedCaseAliasesInFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "custom.yml", "model_aliases:\n  E5: intfloat/e5-large\n  MiniLM: sentence-transformers/all-MiniLM-L6-v2\n")
	cfg, err := Load(WithWorkDir(dir), WithFile(p), WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "intfloat/e5-large", cfg.ResolveModel("E5"))
	assert.Equal(t, "intfloat/e5-large", cfg.ResolveModel("e5"))
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", cfg.ResolveModel("minilm"))
	assert.NotContains(t, cfg.ModelAliases, "E5")
}

func TestLoad_BadTimeoutInFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "custom.yml", "timeout: soon\n")
	_, err := Load(WithWorkDir(dir), WithFile(p), WithEnv(nil))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "timeout", pe.Key)
}

func TestFromConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := Defaults(dir)
	orig.BatchSize = 12
	fc := FromConfig(&orig)

	got := Defaults(t.TempDir())
	require.NoError(t, fc.Apply(&got, dir))
	assert.Equal(t, orig, got)
}
