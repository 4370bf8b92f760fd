package file

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscoverSortsRecursively(t *testing.T) {
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, "2024"))
	mustMkdir(t, filepath.Join(dir, "2023"))

	mustTouch(t, filepath.Join(dir, "2024", "b.csv"))
	mustTouch(t, filepath.Join(dir, "2023", "z.xlsx"))
	mustTouch(t, filepath.Join(dir, "a.CSV"))
	mustTouch(t, filepath.Join(dir, "notes.txt"))
	mustTouch(t, filepath.Join(dir, "readme.md"))

	got := Discover(dir)
	want := []string{
		filepath.Join(dir, "2023", "z.xlsx"),
		filepath.Join(dir, "2024", "b.csv"),
		filepath.Join(dir, "a.CSV"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if got := Discover(filepath.Join(t.TempDir(), "nope")); len(got) != 0 {
		t.Errorf("Discover on missing dir = %v, want empty", got)
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	if got := Discover(t.TempDir()); len(got) != 0 {
		t.Errorf("Discover on empty dir = %v, want empty", got)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustTouch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("Date;Time\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}
