package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Filesystem stores one JSON file per key under a base directory. It is the
// default mirror backend.
type Filesystem struct {
	baseDir string
}

// NewFilesystem ensures the base directory exists and returns a handle.
func NewFilesystem(baseDir string) (*Filesystem, error) {
	if baseDir == "" {
		baseDir = "./.mirror"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror directory: %w", err)
	}
	return &Filesystem{baseDir: baseDir}, nil
}

// Save marshals v and overwrites the document for key.
func (s *Filesystem) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode mirror document: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write mirror document: %w", err)
	}
	return nil
}

// Load reads the document for key into dst. A missing file or unparsable
// content both yield ErrAbsent.
func (s *Filesystem) Load(_ context.Context, key string, dst any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return ErrAbsent
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return ErrAbsent
	}
	return nil
}

// Delete removes the document for key if present.
func (s *Filesystem) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete mirror document: %w", err)
	}
	return nil
}

func (s *Filesystem) path(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}
