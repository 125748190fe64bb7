// Package fsstore provides a filesystem implementation of dashboard.Store.
package fsstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/pretty"

	"github.com/linnemanlabs/dashnote/internal/dashboard"
)

// Store reads and writes dashboard JSON files in a single directory.
type Store struct {
	dir string
}

// New returns a Store over the given directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the sorted base names of all *.json files in the directory.
func (s *Store) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one document from disk. Malformed JSON is an error.
func (s *Store) Load(_ context.Context, name string) (*dashboard.Document, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return dashboard.NewDocument(name, raw)
}

var prettyOpts = &pretty.Options{Width: 80, Indent: "  "}

// Save rewrites the document pretty-printed with two-space indentation, key
// order preserved, and a trailing newline.
func (s *Store) Save(_ context.Context, doc *dashboard.Document) error {
	out := pretty.PrettyOptions(doc.Raw(), prettyOpts)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	if err := os.WriteFile(filepath.Join(s.dir, doc.Name()), out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", doc.Name(), err)
	}
	return nil
}
