// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusdocs/internal/logging"
)

// SeedFile is the documents loaded from one <collection>.json file.
type SeedFile struct {
	Collection string
	Path       string
	Documents  []Document
}

// LoadSeedDir reads every *.json file in dir. Each file holds either a JSON
// array of documents or a single document, and is named after the
// collection it populates. Files are returned sorted by collection name.
func LoadSeedDir(dir string) ([]SeedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed directory: %w", err)
	}

	var files []SeedFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		docs, err := LoadSeedFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, SeedFile{
			Collection: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:       path,
			Documents:  docs,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Collection < files[j].Collection })
	return files, nil
}

// LoadSeedFile decodes one seed file.
func LoadSeedFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return DecodeDocuments(data)
}

// DecodeDocuments parses a JSON array of objects or a single object.
func DecodeDocuments(data []byte) ([]Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var doc Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode seed document: %w", err)
		}
		return []Document{doc}, nil
	}

	var docs []Document
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, fmt.Errorf("decode seed documents: %w", err)
	}
	return docs, nil
}

// SeedMode controls what Seed does with collections that already hold data.
type SeedMode string

const (
	// SeedIfEmpty loads a file only when its collection is empty, so a
	// restart against a persistent store does not duplicate documents.
	SeedIfEmpty SeedMode = "if-empty"
	// SeedAlways inserts every file on every call.
	SeedAlways SeedMode = "always"
)

// Valid reports whether m is a known mode.
func (m SeedMode) Valid() bool {
	return m == SeedIfEmpty || m == SeedAlways
}

// Seed loads dir and inserts each file into its collection. With
// SeedIfEmpty, collections that already hold a document are skipped.
// It returns the total number of documents inserted.
func Seed(ctx context.Context, s Seeder, dir string, mode SeedMode) (int, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("unknown seed mode %q", mode)
	}
	files, err := LoadSeedDir(dir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, f := range files {
		if len(f.Documents) == 0 {
			continue
		}
		if mode == SeedIfEmpty {
			existing, err := s.FindOne(ctx, Query{Collection: f.Collection})
			if err != nil {
				return total, fmt.Errorf("check collection %s: %w", f.Collection, err)
			}
			if existing != nil {
				logging.Info().
					Str("collection", f.Collection).
					Msg("Collection already populated, skipping seed file")
				continue
			}
		}

		n, err := s.InsertMany(ctx, f.Collection, f.Documents)
		if err != nil {
			return total, fmt.Errorf("seed collection %s: %w", f.Collection, err)
		}
		total += n

		logging.Info().
			Str("collection", f.Collection).
			Int("documents", n).
			Msg("Seeded collection")
	}
	return total, nil
}
