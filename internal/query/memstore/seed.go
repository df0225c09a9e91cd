package memstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load seeds the store from a JSON object mapping collection names to
// arrays of documents. Collections are loaded in name order.
func (s *Store) Load(ctx context.Context, r io.Reader) (int, error) {
	var fixture map[string][]map[string]interface{}
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}

	names := make([]string, 0, len(fixture))
	for name := range fixture {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		for i, raw := range fixture[name] {
			if _, err := s.Insert(ctx, name, query.Document(raw)); err != nil {
				return total, fmt.Errorf("seed %s[%d]: %w", name, i, err)
			}
			total++
		}
	}
	return total, nil
}

// LoadFile seeds the store from path.
func (s *Store) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return s.Load(ctx, f)
}
