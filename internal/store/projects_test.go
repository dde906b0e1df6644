package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndListProjects(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	path, err := s.CreateProject("demo")
	if err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}
	if filepath.Base(path) != "demo.json" {
		t.Fatalf("unexpected path: %s", path)
	}
	doc, err := ReadDoc(path)
	if err != nil {
		t.Fatalf("ReadDoc error: %v", err)
	}
	if doc.ID != "root" || doc.Topic != "demo" {
		t.Fatalf("unexpected fresh doc: %+v", doc)
	}

	if _, err := s.CreateProject("demo"); err == nil {
		t.Fatalf("expected error creating duplicate project")
	}
	if _, err := s.CreateProject("  "); err == nil {
		t.Fatalf("expected error for empty name")
	}

	if _, err := s.CreateProject("alpha"); err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}
	names, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects error: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "demo" {
		t.Fatalf("unexpected listing: %v", names)
	}
}

func TestListProjectsEmptyStore(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "fresh")}
	names, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty listing; got %v", names)
	}
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	ws := filepath.Join(root, ".agentboard")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(ws, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}

	found, ok := DiscoverDir(nested)
	if !ok || found != ws {
		t.Fatalf("DiscoverDir = %q, %v; want %q", found, ok, ws)
	}

	if _, ok := DiscoverDir(filepath.Join(os.TempDir(), "definitely-not-a-workspace-root")); ok {
		t.Fatalf("expected no discovery outside a workspace")
	}
}

func TestBackupProject(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if _, err := s.CreateProject("demo"); err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}

	dest, err := s.BackupProject("demo")
	if err != nil {
		t.Fatalf("BackupProject error: %v", err)
	}
	if !FileExists(dest) {
		t.Fatalf("backup not written: %s", dest)
	}

	src, _ := os.ReadFile(s.ProjectPath("demo"))
	got, _ := os.ReadFile(dest)
	if string(src) != string(got) {
		t.Fatalf("backup differs from source")
	}

	if _, err := s.BackupProject("missing"); err == nil {
		t.Fatalf("expected error backing up missing project")
	}
}
