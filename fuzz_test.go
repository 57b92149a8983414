//go:build go1.18

package hconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KimNorgaard/go-hconf"
	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/stretchr/testify/require"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the config files from the testdata directory.
	seedFiles, err := filepath.Glob("testdata/*.conf")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}

	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	// Add some simple but important edge cases manually.
	f.Add([]byte(""))
	f.Add([]byte("{"))
	f.Add([]byte("}"))
	f.Add([]byte("="))
	f.Add([]byte("a = {"))
	f.Add([]byte("\xef\xbb\xbfkey = value"))
	f.Add([]byte("x {\n}\n}\n= =\n"))

	f.Fuzz(func(t *testing.T, originalData []byte) {
		// 1. Parsing never fails, whatever the input.
		doc1 := hconf.Parse(originalData)

		// 2. The canonical text of a parsed document must always be writable.
		out, err := hconf.Marshal(doc1)
		require.NoError(t, err, "Marshal failed for a parsed document")

		// 3. Parsing our own output must give back the same tree.
		doc2 := hconf.Parse(out)
		require.True(t, ast.Equal(doc1, doc2), "Document is not the same after a marshal/parse round trip")
	})
}
