package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"invoiceradar/types"
)

// FileStore keeps the corpus as a single JSON document on local disk.
// Saves go through a temp file followed by a rename so a crash mid-write
// never leaves a truncated corpus behind.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path this store reads and writes.
func (f *FileStore) Path() string { return f.path }

// Load reads the corpus from disk. A missing file yields an empty corpus;
// a file that exists but cannot be decoded is an error, since overwriting
// a corrupt corpus would silently discard history.
func (f *FileStore) Load(ctx context.Context) (*types.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.EmptyCorpus(), nil
		}
		return nil, fmt.Errorf("read corpus %s: %w", f.path, err)
	}

	var corpus types.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", f.path, err)
	}
	if corpus.Items == nil {
		corpus.Items = []*types.Item{}
	}
	return &corpus, nil
}

// Save writes the corpus atomically: encode to a temp file in the target
// directory, then rename over the destination.
func (f *FileStore) Save(ctx context.Context, corpus *types.Corpus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create corpus dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp corpus file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp corpus file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp corpus file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace corpus %s: %w", f.path, err)
	}
	return nil
}
