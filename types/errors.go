package types

import "errors"

// Verification and submission failures. Structural mismatches are reported
// separately from cryptographic ones so callers can tell tampering of the
// data apart from a bad or foreign signature.
var (
	// ErrHeaderHashMismatch: the header's stored hash does not match the
	// hash recomputed from its fields.
	ErrHeaderHashMismatch = errors.New("header hash mismatch")

	// ErrTransactionsRootMismatch: the transactions root in the header does
	// not match the digest of the block's transaction list.
	ErrTransactionsRootMismatch = errors.New("transactions root mismatch")

	// ErrTransactionHashMismatch: a transaction's stored hash does not match
	// the hash recomputed from its content.
	ErrTransactionHashMismatch = errors.New("transaction hash mismatch")

	// ErrSignatureInvalid: cryptographic verification failed.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrBrokenParentLink: a block's parent hash does not match the header
	// hash of its predecessor.
	ErrBrokenParentLink = errors.New("parent hash does not match previous block")

	// ErrOrdinalOutOfSequence: block ordinals are not strictly increasing
	// by one.
	ErrOrdinalOutOfSequence = errors.New("block ordinal out of sequence")

	// ErrDuplicateTransaction: a transaction with an identical hash is
	// already pending.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrKeyMaterial: malformed, truncated or missing key material.
	ErrKeyMaterial = errors.New("malformed key material")
)
