package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const backupsDirName = "backups"

// BackupProject copies a project file into the backups directory with a
// timestamped name and returns the backup path.
func (s Store) BackupProject(name string) (string, error) {
	src := s.ProjectPath(name)
	if !FileExists(src) {
		return "", fmt.Errorf("no such project file: %s", src)
	}
	base := strings.TrimSuffix(filepath.Base(src), ".json")
	stamp := time.Now().UTC().Format("20060102-150405")
	dest := filepath.Join(s.Dir, backupsDirName, fmt.Sprintf("%s-%s.json", base, stamp))
	if err := CopyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
