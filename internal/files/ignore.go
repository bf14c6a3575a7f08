package files

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// ErrNotInRepo is returned by RepoRoot when dir is not inside a git work tree.
var ErrNotInRepo = errors.New("not inside a git repository")

// RepoRoot returns the work tree root of the git repository containing dir.
func RepoRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", ErrNotInRepo
	}
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no work tree to ignore files in
		return "", ErrNotInRepo
	}
	return wt.Filesystem.Root(), nil
}

// AppendIgnore ensures the given pattern is present in .gitignore at repoRoot.
// It creates the file if missing. Idempotent.
func AppendIgnore(repoRoot, pattern string) (bool, error) {
	path := filepath.Join(repoRoot, ".gitignore")
	existing := map[string]bool{}
	endsWithNewline := true
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if existing[pattern] {
		return false, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	line := pattern + "\n"
	if !endsWithNewline {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return false, err
	}
	return true, nil
}

// IgnorePatterns converts directories into .gitignore patterns relative to
// repoRoot. Directories outside the repository are dropped.
func IgnorePatterns(repoRoot string, dirs ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, d := range dirs {
		rel, err := filepath.Rel(repoRoot, d)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		p := "/" + filepath.ToSlash(rel) + "/"
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
