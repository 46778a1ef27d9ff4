// Package source loads triple graphs from their storage backends: N-Triples
// files on disk or a remote Neo4j database.
package source

import (
	"context"
	"fmt"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// Source yields an in-memory graph ready for mining.
type Source interface {
	// Load materialises the full graph. Mining needs repeated
	// adjacency scans, so streaming from the backend per access is
	// not an option.
	Load(ctx context.Context) (*graph.MemoryGraph, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// FileSource reads an N-Triples file.
type FileSource struct {
	path string
}

// NewFileSource creates a source over an N-Triples file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*graph.MemoryGraph, error) {
	g, err := graph.LoadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph from %s: %w", s.path, err)
	}
	return g, nil
}

// Close implements Source.
func (s *FileSource) Close(ctx context.Context) error { return nil }
