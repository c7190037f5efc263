package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ledger/logs"
	"ledger/types"
)

// FileStore persists one JSON document per block, named by the block's
// header hash, in create-only mode. It takes no locks: a block file is
// written once and never rewritten, and the ledger core treats persistence
// as best-effort.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create block dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveBlock writes <header-hash>.json. An already existing file means the
// block was persisted before; that is a no-op, not an error. The document
// is written to a temp file and renamed into place, so a failed write can
// never leave a partial document under the final name blocking retries.
func (fs *FileStore) SaveBlock(b *types.Block) error {
	path := fs.pathFor(b.ID())
	if _, err := os.Stat(path); err == nil {
		logs.Debug("[FileStore] block %s already persisted", b.Header.Hash.Short())
		return nil
	}
	tmp, err := os.CreateTemp(fs.dir, "."+b.ID()+".tmp-*")
	if err != nil {
		return fmt.Errorf("create block file %s: %w", path, err)
	}
	if err := json.NewEncoder(tmp).Encode(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write block file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write block file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename block file %s: %w", path, err)
	}
	return nil
}

// LoadBlock reads a persisted block back by header hash.
func (fs *FileStore) LoadBlock(id string) (*types.Block, error) {
	data, err := os.ReadFile(fs.pathFor(id))
	if err != nil {
		return nil, err
	}
	var b types.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode block file %s: %w", id, err)
	}
	return &b, nil
}

func (fs *FileStore) pathFor(id string) string {
	return filepath.Join(fs.dir, id+".json")
}
