package git

import (
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// RepoRoot returns the absolute path of the git repository containing dir.
func RepoRoot(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RelPath returns p relative to root in slash form, the way files are
// identified in the repository. p may be relative to the working directory.
func RelPath(root, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside %s", p, root)
	}
	return rel, nil
}

// FileIDs maps command-line paths to file identifiers. Inside a repository
// they are relative to its root; otherwise they are kept as given.
func FileIDs(dir string, paths []string) []string {
	root, err := RepoRoot(dir)
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		if err == nil {
			if rel, relErr := RelPath(root, p); relErr == nil {
				ids = append(ids, rel)
				continue
			}
		}
		ids = append(ids, filepath.ToSlash(filepath.Clean(p)))
	}
	return ids
}

// SuggestBranch derives a branch name from a file identifier, e.g.
// "content/1_General/Intro.mdx" becomes "edit-intro".
func SuggestBranch(file string) string {
	if file == "" {
		return "edit"
	}
	name := strings.TrimSuffix(path.Base(file), path.Ext(file))
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "edit"
	}
	return "edit-" + slug
}
