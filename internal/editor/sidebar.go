// Package editor translates file-list intents into calls on the editor's
// file handlers.
package editor

import (
	"guidedit/internal/logger"
	"guidedit/internal/model"
	"guidedit/internal/state"
)

const (
	closeFilePrompt     = "Are you sure you want to close this file? You'll lose your changes."
	closeAllFilesPrompt = "Are you sure you want to close all files? You'll lose all your changes."
)

// Confirmation is a destructive action waiting for the user's answer.
// The zero value is a no-op.
type Confirmation struct {
	Prompt string
	accept func()
}

// Resolve runs the action only if ok.
func (c Confirmation) Resolve(ok bool) {
	if ok && c.accept != nil {
		c.accept()
	}
}

// Sidebar wires the open-file list to the editor's handlers.
type Sidebar struct {
	store *state.Store
	files state.FileActions
}

func New(store *state.Store, files state.FileActions) *Sidebar {
	return &Sidebar{store: store, files: files}
}

// Files returns the open files in list order.
func (s *Sidebar) Files() []string { return s.store.Files() }

// ActiveFile returns the selected file, or "".
func (s *Sidebar) ActiveFile() string { return s.store.ActiveFile() }

// OpenFile selects id.
func (s *Sidebar) OpenFile(id string) {
	s.store.SetActiveFile(id)
}

// CloseFile asks before closing id.
func (s *Sidebar) CloseFile(id string) Confirmation {
	return Confirmation{
		Prompt: closeFilePrompt,
		accept: func() {
			logger.Component("editor").Info("closing file", "file", id)
			s.files.CloseFile(id)
		},
	}
}

// CloseAllFiles asks before closing every open file, in list order.
func (s *Sidebar) CloseAllFiles() Confirmation {
	return Confirmation{
		Prompt: closeAllFilesPrompt,
		accept: func() {
			files := s.store.Files()
			logger.Component("editor").Info("closing all files", "count", len(files))
			for _, f := range files {
				s.files.CloseFile(f)
			}
		},
	}
}

// NewFile opens an existing file by path, or creates a new internal
// solution when the descriptor has no path yet.
func (s *Sidebar) NewFile(f model.File) {
	if f.Exists() {
		s.files.OpenOrCreateExistingFile(f.Path)
		return
	}
	s.files.CreateNewInternalSolutionFile(f)
}
