package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"agentboard/internal/model"
)

// ReadDoc parses a project file. Any failure (missing file, malformed JSON)
// is returned as an error; callers must abort the save they were attempting
// rather than guess at document state.
func ReadDoc(path string) (*model.ProjectDoc, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc model.ProjectDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteDoc writes the document as pretty JSON (2-space indent, non-ASCII
// preserved) via a temp file in the target's directory plus an atomic
// rename. On any failure the destination is left untouched and the temp
// file is removed. Writing the same document twice produces byte-identical
// files.
func WriteDoc(path string, doc *model.ProjectDoc) error {
	if doc == nil {
		return errors.New("nil document")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	// Temp file in the same directory guarantees same-filesystem rename.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	tmpPath = ""
	return nil
}

// FileExists reports whether path exists as a regular file.
func FileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
