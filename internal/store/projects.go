package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"agentboard/internal/model"
)

const projectsDirName = "projects"

// Store locates everything for one workspace: project files, the event log,
// backups, config, and persisted UI state all live under Dir.
type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .agentboard
// directory, the same way the CLI finds its workspace from any subdirectory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".agentboard")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the discovered workspace dir, or cwd/.agentboard when
// none exists yet.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".agentboard"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.ProjectsDir(), 0o755)
}

func (s Store) ProjectsDir() string {
	return filepath.Join(s.Dir, projectsDirName)
}

// ProjectPath resolves a project name to its JSON file path. Names are used
// as-is when they already look like a path to an existing file.
func (s Store) ProjectPath(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".json") {
		if FileExists(name) {
			return name
		}
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(s.ProjectsDir(), name)
}

// ListProjects returns the project names (file basenames without .json)
// under the projects directory, sorted.
func (s Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(s.ProjectsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out, nil
}

// CreateProject writes a fresh document for name. Refuses to clobber an
// existing file.
func (s Store) CreateProject(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty project name")
	}
	if err := s.Ensure(); err != nil {
		return "", err
	}
	path := s.ProjectPath(name)
	if FileExists(path) {
		return "", fmt.Errorf("project already exists: %s", path)
	}
	doc := model.NewProjectDoc(strings.TrimSuffix(filepath.Base(path), ".json"))
	if err := WriteDoc(path, doc); err != nil {
		return "", err
	}
	return path, nil
}
