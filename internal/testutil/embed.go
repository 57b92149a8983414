package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// WriteTestData copies an embedded test file into a fresh temporary
// directory and returns the path of the copy.
func WriteTestData(t testing.TB, name string) string {
	t.Helper()
	data, err := ReadTestData(name)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test data file '%s': %v", path, err)
	}
	return path
}
