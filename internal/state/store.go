// Package state holds the editor state shared between sidebar components.
// Every field has a single accessor pair; writers race and the last write
// wins.
package state

import (
	"slices"
	"sync"

	"guidedit/internal/forge"
	"guidedit/internal/model"
)

// FileActions are the write-only file operations owned by the editor.
type FileActions interface {
	OpenOrCreateExistingFile(path string)
	CreateNewInternalSolutionFile(f model.File)
	CloseFile(id string)
}

// Store is the shared application state.
type Store struct {
	mu sync.RWMutex

	session *model.Session
	client  forge.Forge
	fork    string
	branch  string
	pr      string

	files  []string
	active string
}

// NewStore returns an empty, logged-out store.
func NewStore() *Store {
	return &Store{}
}

// Session returns the logged-in identity, or nil.
func (s *Store) Session() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// Client returns the authenticated API client, or nil.
func (s *Store) Client() forge.Forge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Login stores the session together with the client that authenticated it.
func (s *Store) Login(sess model.Session, client forge.Forge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	s.client = client
}

// Logout drops the session, the client and everything derived from them.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.client = nil
	s.fork = ""
	s.branch = ""
	s.pr = ""
}

func (s *Store) Fork() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fork
}

func (s *Store) SetFork(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fork = url
}

func (s *Store) Branch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branch
}

// SetBranch sets the working branch. A different branch invalidates the
// pull request and reports true.
func (s *Store) SetBranch(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.branch == name {
		return false
	}
	s.branch = name
	s.pr = ""
	return true
}

func (s *Store) PullRequest() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pr
}

func (s *Store) SetPullRequest(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pr = url
}

// Files returns a copy of the open-file list.
func (s *Store) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.files)
}

func (s *Store) SetFiles(files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = slices.Clone(files)
}

func (s *Store) ActiveFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Store) SetActiveFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
}
