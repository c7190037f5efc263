package types

import (
	"fmt"
	"math/big"
)

// Chain is an append-only ordered block sequence rooted at the genesis
// fixture. It is never empty and blocks are never removed or reordered.
// The Chain itself is not goroutine safe; the ledger orchestrator owns the
// locking around it.
type Chain struct {
	blocks []Block
}

// NewChain seeds a chain with the embedded genesis block.
func NewChain() (*Chain, error) {
	genesis, err := GenesisBlock()
	if err != nil {
		return nil, err
	}
	return &Chain{blocks: []Block{genesis}}, nil
}

// Append pushes a block at the tail.
func (c *Chain) Append(b Block) {
	c.blocks = append(c.blocks, b)
}

// Tip returns the latest block.
func (c *Chain) Tip() Block {
	return c.blocks[len(c.blocks)-1]
}

func (c *Chain) Length() int {
	return len(c.blocks)
}

// Blocks returns a deep copy of the sequence; callers cannot mutate the
// chain through it, not even through a block's transaction slice.
func (c *Chain) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	for i := range c.blocks {
		out[i] = c.blocks[i].Clone()
	}
	return out
}

// Verify walks the whole chain: parent linkage, strictly increasing
// ordinals, and per-block verification. Block 0 is the trust anchor and is
// not re-verified (its digests predate this codebase's canonical encoding).
func (c *Chain) Verify() error {
	if len(c.blocks) == 0 {
		return fmt.Errorf("chain has no genesis block")
	}
	one := big.NewInt(1)
	for i := 1; i < len(c.blocks); i++ {
		prev, cur := c.blocks[i-1], c.blocks[i]
		if !cur.Header.ParentHash.Equal(prev.Header.Hash) {
			return fmt.Errorf("block %d (%s): %w", i, cur.Header.Hash.Short(), ErrBrokenParentLink)
		}
		want := new(big.Int).Add(prev.Header.Ordinal, one)
		if cur.Header.Ordinal.Cmp(want) != 0 {
			return fmt.Errorf("block %d: ordinal %s after %s: %w",
				i, cur.Header.Ordinal, prev.Header.Ordinal, ErrOrdinalOutOfSequence)
		}
		if err := cur.Verify(); err != nil {
			return err
		}
	}
	return nil
}
