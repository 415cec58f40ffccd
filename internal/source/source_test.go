package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	path := writeList(t, `# comment
https://example.com/one

  https://example.com/two
# another comment
`)
	got, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://example.com/one", "https://example.com/two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLoad_HostFilter(t *testing.T) {
	path := writeList(t, `https://www.theguardian.com/a
https://other.example.com/b
https://www.theguardian.com/c
`)
	got, err := Load(path, "theguardian.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://www.theguardian.com/a", "https://www.theguardian.com/c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
