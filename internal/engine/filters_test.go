package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scout/scout/internal/config"
	"github.com/scout/scout/internal/types"
)

func defaultFilter(t *testing.T, include, exclude string) *Filter {
	t.Helper()
	cfg := config.Defaults(t.TempDir())
	return NewFilter(&cfg, include, exclude)
}

func TestFilter_SkipFile(t *testing.T) {
	f := defaultFilter(t, "", "")
	tests := []struct {
		path string
		skip bool
	}{
		{"docs/report.pdf", false},
		{"notes.TXT", false},
		{"photos/cat.jpeg", false},
		{"letter.docx", false},
		{"archive.zip", true},
		{"main.go", true},
		{"README", true},
		{"venv/lib/readme.txt", true},
		{"pkg/foo.dist-info/METADATA.txt", true},
		{"ThirdPartyNotices/list.txt", true},
		{"site/LGPL.txt", true},
		{"entry_points.txt", true},
		{"some/dir/vendor.txt", true},
		{`windows\node_modules\x.pdf`, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.skip, f.SkipFile(tt.path))
		})
	}
}

func TestFilter_SkipDir(t *testing.T) {
	f := defaultFilter(t, "", "")
	assert.False(t, f.SkipDir("."))
	assert.False(t, f.SkipDir("documents"))
	assert.True(t, f.SkipDir("node_modules"))
	assert.True(t, f.SkipDir("src/__pycache__"))
	assert.True(t, f.SkipDir("MacOSX"))
}

func TestFilter_EveryDefaultExclusion(t *testing.T) {
	cfg := config.Defaults(t.TempDir())
	f := NewFilter(&cfg, "", "")
	for _, k := range cfg.ExcludeKeywords {
		assert.True(t, f.SkipFile(k+"/file.txt"), "keyword %s", k)
	}
	for _, n := range cfg.ExcludeFilenames {
		assert.True(t, f.SkipFile("docs/"+n), "filename %s", n)
	}
}

func TestFilter_Globs(t *testing.T) {
	f := defaultFilter(t, "**/*.pdf", "drafts/**")
	assert.False(t, f.SkipFile("a/b/final.pdf"))
	assert.True(t, f.SkipFile("a/b/final.txt"))
	assert.True(t, f.SkipFile("drafts/early.pdf"))
}

func TestFilter_Kind(t *testing.T) {
	f := defaultFilter(t, "", "")
	assert.Equal(t, types.KindImage, f.Kind("x/y.PNG"))
	assert.Equal(t, types.KindDocument, f.Kind("x/y.pdf"))
}

func TestPreviewAndTruncate(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "a b c", Preview("a\n  b\tc", 200))
	assert.Equal(t, "hello...", Preview("hello wonderful world", 8))
	assert.Equal(t, "he", Preview("hello", 2))
}
