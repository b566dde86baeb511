package state

import (
	"path"
	"slices"
	"strings"

	"guidedit/internal/model"
)

// Workspace is the in-memory open-file list used by the binary. File
// contents live elsewhere; only identifiers are tracked.
type Workspace struct {
	store *Store
}

var _ FileActions = (*Workspace)(nil)

func NewWorkspace(store *Store) *Workspace {
	return &Workspace{store: store}
}

// OpenOrCreateExistingFile adds path to the list if needed and selects it.
func (w *Workspace) OpenOrCreateExistingFile(p string) {
	w.open(path.Clean(p))
}

// CreateNewInternalSolutionFile opens solutions/<id>.mdx for f.
func (w *Workspace) CreateNewInternalSolutionFile(f model.File) {
	w.open(SolutionPath(f))
}

func (w *Workspace) open(id string) {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	if !slices.Contains(w.store.files, id) {
		w.store.files = append(w.store.files, id)
	}
	w.store.active = id
}

// CloseFile removes id. Closing the active file selects its neighbour.
func (w *Workspace) CloseFile(id string) {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()

	idx := slices.Index(w.store.files, id)
	if idx < 0 {
		return
	}
	w.store.files = slices.Delete(w.store.files, idx, idx+1)
	if w.store.active != id {
		return
	}
	switch {
	case len(w.store.files) == 0:
		w.store.active = ""
	case idx < len(w.store.files):
		w.store.active = w.store.files[idx]
	default:
		w.store.active = w.store.files[len(w.store.files)-1]
	}
}

// SolutionPath is the identifier a new internal solution is created under.
func SolutionPath(f model.File) string {
	id := strings.ToLower(strings.TrimSpace(f.ID))
	id = strings.ReplaceAll(id, " ", "-")
	id = strings.ReplaceAll(id, "/", "-")
	if f.Source != "" {
		id = strings.ToLower(f.Source) + "-" + id
	}
	return path.Join("solutions", id+".mdx")
}
