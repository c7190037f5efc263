package types

import (
	"encoding/base64"
	"fmt"
	"math/big"
)

// Block is a header plus the ordered transactions it commits, signed by the
// committer over the header hash. Immutable once constructed; once appended
// the chain owns it.
type Block struct {
	Header       Header        `json:"header"`
	Transactions []Transaction `json:"transactions"`
	SigningKey   string        `json:"signing_key"`
	Signature    Signature     `json:"signature"`
}

// NewBlock builds and signs a block on top of parentHash at the given
// ordinal, committing the transactions in the order given.
func NewBlock(parentHash HashDigest, ordinal *big.Int, transactions []Transaction, kp *BlockKeypair) (Block, error) {
	if transactions == nil {
		transactions = []Transaction{}
	}
	root, err := TransactionsRoot(transactions)
	if err != nil {
		return Block{}, err
	}
	header, err := NewHeader(parentHash, root, kp.Address(), ordinal)
	if err != nil {
		return Block{}, err
	}
	msg, err := header.SigningBytes()
	if err != nil {
		return Block{}, err
	}
	return Block{
		Header:       header,
		Transactions: transactions,
		SigningKey:   base64.StdEncoding.EncodeToString(kp.Public()),
		Signature:    kp.Sign(msg),
	}, nil
}

// TransactionsRoot digests the canonical encoding of the ordered list. The
// empty list has a defined root (the digest of an empty sequence).
func TransactionsRoot(transactions []Transaction) (HashDigest, error) {
	root, err := DigestOf(transactions)
	if err != nil {
		return HashDigest{}, fmt.Errorf("hash transactions: %w", err)
	}
	return root, nil
}

// Clone returns a deep copy. Blocks move by value, but Transactions, the
// payload bytes and the big.Int fields alias their backing storage; Clone
// severs those so a mutation of the copy cannot reach the chain or a
// shared cache.
func (b Block) Clone() Block {
	out := b
	if b.Header.Ordinal != nil {
		out.Header.Ordinal = new(big.Int).Set(b.Header.Ordinal)
	}
	if b.Header.Nonce != nil {
		out.Header.Nonce = new(big.Int).Set(b.Header.Nonce)
	}
	out.Transactions = make([]Transaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		tx.Payload = append(tx.Payload[:0:0], tx.Payload...)
		if tx.Nonce != nil {
			tx.Nonce = new(big.Int).Set(tx.Nonce)
		}
		out.Transactions[i] = tx
	}
	return out
}

// ID is the header hash in key form; blocks are addressed by it in storage.
func (b Block) ID() string {
	return b.Header.Hash.Key()
}

// Ordinal returns a copy of the block's position in the chain.
func (b Block) Ordinal() *big.Int {
	return new(big.Int).Set(b.Header.Ordinal)
}

// Verify checks the block, structural before cryptographic, and names the
// failing check:
//  1. the header self-hash (structural integrity),
//  2. the transactions root against the transaction list,
//  3. the committer signature over the header hash.
func (b Block) Verify() error {
	if err := b.Header.VerifyStructure(); err != nil {
		return err
	}
	root, err := TransactionsRoot(b.Transactions)
	if err != nil {
		return err
	}
	if !root.Equal(b.Header.TransactionsHash) {
		return fmt.Errorf("block %s: %w", b.Header.Hash.Short(), ErrTransactionsRootMismatch)
	}
	pub, err := b.Header.Committer.PublicKey()
	if err != nil {
		return fmt.Errorf("block %s committer: %w", b.Header.Hash.Short(), err)
	}
	msg, err := b.Header.SigningBytes()
	if err != nil {
		return err
	}
	if !b.Signature.Verify(pub, msg) {
		return fmt.Errorf("block %s: %w", b.Header.Hash.Short(), ErrSignatureInvalid)
	}
	return nil
}
