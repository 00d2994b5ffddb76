package storage

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
	"gopkg.in/yaml.v3"
)

// ReadFixtures parses a YAML (or JSON) file mapping collection names to
// lists of documents.
func ReadFixtures(path string) (map[string][]model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures map[string][]model.Document
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return fixtures, nil
}

// LoadFixtures inserts every document of the fixtures file into store.
// Collections are loaded in name order and documents in file order, so
// generated ids follow the file layout. It returns the number of inserted documents.
func LoadFixtures(ctx context.Context, store types.DocumentStore, path string) (int, error) {
	fixtures, err := ReadFixtures(path)
	if err != nil {
		return 0, err
	}

	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)

	n := 0
	for _, name := range names {
		for _, doc := range fixtures[name] {
			if _, err := store.Insert(ctx, name, doc); err != nil {
				return n, fmt.Errorf("insert fixture into %s: %w", name, err)
			}
			n++
		}
	}
	return n, nil
}
