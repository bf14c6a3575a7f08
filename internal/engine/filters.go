package engine

import (
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/scout/scout/internal/config"
	"github.com/scout/scout/internal/types"
)

// Filter decides which paths are ingested. Keyword exclusions match as
// substrings of the lowercased relative path; filename exclusions match the
// lowercased base name exactly.
type Filter struct {
	cfg       *config.Config
	keywords  []string
	filenames map[string]bool
	includes  []string
	excludes  []string
}

// NewFilter builds a filter from cfg's exclusion and extension lists plus
// optional comma-separated include/exclude globs.
func NewFilter(cfg *config.Config, includeGlobs, excludeGlobs string) *Filter {
	f := &Filter{
		cfg:       cfg,
		filenames: make(map[string]bool, len(cfg.ExcludeFilenames)),
		includes:  parseGlobsList(includeGlobs),
		excludes:  parseGlobsList(excludeGlobs),
	}
	for _, k := range cfg.ExcludeKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			f.keywords = append(f.keywords, k)
		}
	}
	for _, n := range cfg.ExcludeFilenames {
		f.filenames[strings.ToLower(n)] = true
	}
	return f
}

// SkipDir reports whether a directory, given relative to the root, should
// not be descended into.
func (f *Filter) SkipDir(rel string) bool {
	rel = toSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	return f.hasKeyword(strings.ToLower(rel))
}

// SkipFile reports whether a file, given relative to the root, should be
// left out of ingestion.
func (f *Filter) SkipFile(rel string) bool {
	rel = toSlash(rel)
	lower := strings.ToLower(rel)
	if f.hasKeyword(lower) {
		return true
	}
	if f.filenames[path.Base(lower)] {
		return true
	}
	if !f.cfg.IsSupported(rel) {
		return true
	}
	return !f.allowedByGlobs(rel)
}

// Kind classifies a supported file.
func (f *Filter) Kind(rel string) types.Kind {
	if f.cfg.IsImage(rel) {
		return types.KindImage
	}
	return types.KindDocument
}

func (f *Filter) hasKeyword(lowerRel string) bool {
	for _, k := range f.keywords {
		if strings.Contains(lowerRel, k) {
			return true
		}
	}
	return false
}

// allowedByGlobs applies include globs as a positive filter, then subtracts
// exclude globs.
func (f *Filter) allowedByGlobs(rel string) bool {
	if len(f.includes) > 0 && !matchAnyGlob(rel, f.includes) {
		return false
	}
	if len(f.excludes) > 0 && matchAnyGlob(rel, f.excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
