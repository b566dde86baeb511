package model

import "fmt"

// Session is the GitHub identity of the logged-in user.
type Session struct {
	Login string
	ID    int64
	Name  string // display name, may be empty
}

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
	URL   string // html_url, empty when not fetched
}

// FullName returns "owner/name".
func (r Repo) FullName() string { return r.Owner + "/" + r.Name }

// File describes a file the user asked to open from the file picker.
type File struct {
	ID     string
	Title  string
	Path   string // empty for an internal solution that does not exist yet
	Source string // problem source for solutions, e.g. "usaco"
}

// Exists reports whether the descriptor points at an existing file.
func (f File) Exists() bool { return f.Path != "" }

// Head returns the "<login>:<branch>" form GitHub uses for cross-repo PRs.
func Head(login, branch string) string {
	return fmt.Sprintf("%s:%s", login, branch)
}
