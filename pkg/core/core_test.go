package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Smoke(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "note.txt"), []byte("hi"), 0o644))

	cfg, err := Load(WithWorkDir(t.TempDir()), WithEnv(nil), WithoutDiscovery())
	require.NoError(t, err)
	res, err := Scan(context.Background(), cfg, ScanOptions{Root: root})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)

	var buf bytes.Buffer
	require.NoError(t, MarshalDocuments(&buf, res.Documents))
	docs, err := UnmarshalDocuments(&buf)
	require.NoError(t, err)
	assert.Equal(t, "note.txt", docs[0].Path)
	assert.Equal(t, res.Documents[0].Fingerprint, docs[0].Fingerprint)
}

func TestMarshalDocuments_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalDocuments(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	docs, err := UnmarshalDocuments(&buf)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestUnmarshalDocuments_Malformed(t *testing.T) {
	_, err := UnmarshalDocuments(bytes.NewBufferString("{"))
	assert.ErrorContains(t, err, "decode documents")
}

func TestLoad_ParseErrorSurfaces(t *testing.T) {
	_, err := Load(WithWorkDir(t.TempDir()), WithEnv(map[string]string{"OCR_DPI": "x"}), WithoutDiscovery())
	assert.Error(t, err)
}

func TestPreviewAndTruncate_UseConfigLimits(t *testing.T) {
	cfg, err := Load(WithWorkDir(t.TempDir()), WithEnv(nil), WithoutDiscovery())
	require.NoError(t, err)
	cfg.PreviewLength = 10
	cfg.MaxChars = 4
	assert.Equal(t, "alpha b...", Preview(cfg, "alpha   beta gamma"))
	assert.Equal(t, "alph", Truncate(cfg, "alphabet"))
}
