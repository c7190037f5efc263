package db

import (
	"encoding/json"
	"fmt"
	"math/big"

	"ledger/logs"
	"ledger/types"
)

// Block records live under three key families:
//
//	block_<hash>          full block JSON, keyed by header hash
//	block_ord_<ordinal>   ordinal -> header hash index
//	latest_block_ordinal  tail pointer
func blockKey(id string) string    { return "block_" + id }
func ordinalKey(ord string) string { return "block_ord_" + ord }
func latestOrdinalKey() string     { return "latest_block_ordinal" }

// SaveBlock queues the block for persistence and refreshes the read cache.
// Durability follows the write queue's flush cadence; call ForceFlush when
// a read-after-write is required.
func (manager *Manager) SaveBlock(b *types.Block) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal block %s: %w", b.ID(), err)
	}
	id := b.ID()
	ord := b.Header.Ordinal.String()
	logs.Debug("[db] saving block %s ordinal=%s", b.Header.Hash.Short(), ord)

	manager.EnqueueSet(blockKey(id), data)
	manager.EnqueueSet(ordinalKey(ord), []byte(id))
	manager.EnqueueSet(latestOrdinalKey(), []byte(ord))

	cached := b.Clone()
	manager.blockCache.Add(id, &cached)
	return nil
}

// GetBlock fetches a block by header hash, cache first. Callers get a
// detached copy: the cached block is shared and must never be handed out
// directly, a caller mutation would poison it for everyone.
func (manager *Manager) GetBlock(id string) (*types.Block, error) {
	if v, ok := manager.blockCache.Get(id); ok {
		out := v.(*types.Block).Clone()
		return &out, nil
	}
	data, err := manager.Read(blockKey(id))
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", id, err)
	}
	var b types.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode block %s: %w", id, err)
	}
	manager.blockCache.Add(id, &b)
	out := b.Clone()
	return &out, nil
}

// GetBlockByOrdinal resolves the ordinal index and fetches the block.
func (manager *Manager) GetBlockByOrdinal(ordinal *big.Int) (*types.Block, error) {
	id, err := manager.Read(ordinalKey(ordinal.String()))
	if err != nil {
		return nil, fmt.Errorf("ordinal %s: %w", ordinal, err)
	}
	return manager.GetBlock(string(id))
}

// LatestOrdinal reads the tail pointer.
func (manager *Manager) LatestOrdinal() (*big.Int, error) {
	data, err := manager.Read(latestOrdinalKey())
	if err != nil {
		return nil, err
	}
	ord, ok := new(big.Int).SetString(string(data), 10)
	if !ok {
		return nil, fmt.Errorf("corrupt latest ordinal %q", data)
	}
	return ord, nil
}
