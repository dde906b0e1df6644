package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const uiStateFileName = "ui_state.json"

// UIState stores small, user-facing state for restoring the last screen on
// relaunch. It is intentionally best effort: callers tolerate missing or
// invalid data.
type UIState struct {
	Version int `json:"version"`

	// View is one of: projects|tree|board
	View string `json:"view,omitempty"`

	OpenProject    string `json:"openProject,omitempty"`
	SelectedNodeID string `json:"selectedNodeId,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.uiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
