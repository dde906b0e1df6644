package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agentboard/internal/model"
)

func testDoc() *model.ProjectDoc {
	return &model.ProjectDoc{
		ID:    "root",
		Topic: "项目",
		Children: []*model.Node{
			{ID: "n-aaaaaaaa", Topic: "A", Content: "<b> & 中文", Children: []*model.Node{}},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	if err := WriteDoc(path, testDoc()); err != nil {
		t.Fatalf("WriteDoc error: %v", err)
	}
	doc, err := ReadDoc(path)
	if err != nil {
		t.Fatalf("ReadDoc error: %v", err)
	}
	if doc.Topic != "项目" {
		t.Fatalf("topic mangled: %q", doc.Topic)
	}
	if got := doc.Children[0].Content; got != "<b> & 中文" {
		t.Fatalf("content mangled: %q", got)
	}
}

func TestWriteDocPrettyAndUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	if err := WriteDoc(path, testDoc()); err != nil {
		t.Fatalf("WriteDoc error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "\n  ") {
		t.Fatalf("expected 2-space indentation:\n%s", s)
	}
	if !strings.Contains(s, "中文") {
		t.Fatalf("non-ASCII was escaped:\n%s", s)
	}
	if strings.Contains(s, `<`) {
		t.Fatalf("HTML was escaped:\n%s", s)
	}
}

func TestWriteDocIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.json")
	doc := testDoc()

	if err := WriteDoc(path, doc); err != nil {
		t.Fatalf("first write error: %v", err)
	}
	first, _ := os.ReadFile(path)
	if err := WriteDoc(path, doc); err != nil {
		t.Fatalf("second write error: %v", err)
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Fatalf("writes are not byte-identical:\n%s\n---\n%s", first, second)
	}

	// No temp files left behind on success.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteDocFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "p.json")
	if err := WriteDoc(path, testDoc()); err == nil {
		t.Fatalf("expected error writing into missing directory")
	}

	// A failed write must not clobber an existing file.
	path = filepath.Join(dir, "p.json")
	if err := WriteDoc(path, testDoc()); err != nil {
		t.Fatalf("WriteDoc error: %v", err)
	}
	before, _ := os.ReadFile(path)
	if err := WriteDoc(path, nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("failed write altered the destination")
	}
}

func TestReadDocFailures(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadDoc(filepath.Join(dir, "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := ReadDoc(bad); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestWriteDocPreservesUnknownTopLevelFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	raw := `{
  "id": "root",
  "topic": "P",
  "children": [],
  "theme": "dark",
  "meta": {"created": "2024-01-01"}
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	doc, err := ReadDoc(path)
	if err != nil {
		t.Fatalf("ReadDoc error: %v", err)
	}
	doc.Children = []*model.Node{{ID: "n-aaaaaaaa", Children: []*model.Node{}}}
	if err := WriteDoc(path, doc); err != nil {
		t.Fatalf("WriteDoc error: %v", err)
	}

	b, _ := os.ReadFile(path)
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if m["theme"] != "dark" {
		t.Fatalf("top-level field truncated: %v", m)
	}
	meta, ok := m["meta"].(map[string]any)
	if !ok || meta["created"] != "2024-01-01" {
		t.Fatalf("nested top-level field truncated: %v", m)
	}
}

func TestNodeChildrenNeverNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	doc := &model.ProjectDoc{ID: "root", Children: []*model.Node{{ID: "n-aaaaaaaa"}}}
	if err := WriteDoc(path, doc); err != nil {
		t.Fatalf("WriteDoc error: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), `"children": null`) {
		t.Fatalf("children serialized as null:\n%s", b)
	}
}
