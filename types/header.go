package types

import (
	"fmt"
	"math/big"
	"time"
)

// Header is the block metadata. Hash covers every preceding field and is
// fixed at construction; any later mutation is caught by Block.Verify.
type Header struct {
	ParentHash       HashDigest `json:"parent_hash"`
	TransactionsHash HashDigest `json:"transactions_hash"`
	Committer        Address    `json:"committer"`
	Timestamp        uint64     `json:"timestamp"`
	Ordinal          *big.Int   `json:"ordinal"`
	Nonce            *big.Int   `json:"nonce"`
	Hash             HashDigest `json:"hash"`
}

// partialHeader is the hashed subset in canonical field order.
type partialHeader struct {
	ParentHash       HashDigest
	TransactionsHash HashDigest
	Committer        Address
	Timestamp        uint64
	Ordinal          *big.Int
	Nonce            *big.Int
}

// NewHeader builds a header for a block at the given ordinal, stamping the
// current time and a fresh nonce, and seals it with its self-hash.
func NewHeader(parentHash, transactionsHash HashDigest, committer Address, ordinal *big.Int) (Header, error) {
	nonce, err := randomNonce()
	if err != nil {
		return Header{}, err
	}
	h := Header{
		ParentHash:       parentHash,
		TransactionsHash: transactionsHash,
		Committer:        committer,
		Timestamp:        uint64(time.Now().Unix()),
		Ordinal:          new(big.Int).Set(ordinal),
		Nonce:            nonce,
	}
	hash, err := h.computeHash()
	if err != nil {
		return Header{}, err
	}
	h.Hash = hash
	return h, nil
}

// computeHash digests the canonical encoding of the non-hash fields.
func (h Header) computeHash() (HashDigest, error) {
	partial := partialHeader{
		ParentHash:       h.ParentHash,
		TransactionsHash: h.TransactionsHash,
		Committer:        h.Committer,
		Timestamp:        h.Timestamp,
		Ordinal:          h.Ordinal,
		Nonce:            h.Nonce,
	}
	hash, err := DigestOf(partial)
	if err != nil {
		return HashDigest{}, fmt.Errorf("hash header: %w", err)
	}
	return hash, nil
}

// SigningBytes is the message block signatures cover: the canonical byte
// form of the header hash.
func (h Header) SigningBytes() ([]byte, error) {
	return h.Hash.SigningBytes()
}

// VerifyStructure recomputes the self-hash and compares with the stored one.
func (h Header) VerifyStructure() error {
	hash, err := h.computeHash()
	if err != nil {
		return err
	}
	if !hash.Equal(h.Hash) {
		return fmt.Errorf("header %s: %w", h.Hash.Short(), ErrHeaderHashMismatch)
	}
	return nil
}
