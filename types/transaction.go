package types

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"ledger/utils"
	"math/big"
	"time"
)

// nonceBits sizes the random per-transaction nonce. The nonce exists for
// hash uniqueness, not replay protection: two submissions of the same
// payload in the same second still produce distinct hashes.
const nonceBits = 128

// Transaction is a signed, content-addressed unit of submitted work. Hash
// and signature are fixed at construction; the payload is opaque to the
// ledger and only ever hashed and stored.
type Transaction struct {
	Submitter Address         `json:"submitter"`
	Timestamp uint64          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
	Nonce     *big.Int        `json:"nonce"`
	Hash      HashDigest      `json:"hash"`
	Signature Signature       `json:"signature"`
}

// partialTransaction is the hashed subset: everything but hash and
// signature, in canonical field order.
type partialTransaction struct {
	Submitter Address
	Timestamp uint64
	Payload   []byte
	Nonce     *big.Int
}

// NewTransaction builds and signs a transaction. The payload must be JSON
// serializable; that is the caller's contract and a marshal failure is
// surfaced as an error rather than a partial transaction.
func NewTransaction(submitter Address, payload interface{}, kp *BlockKeypair) (Transaction, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Transaction{}, fmt.Errorf("marshal payload: %w", err)
	}
	nonce, err := randomNonce()
	if err != nil {
		return Transaction{}, err
	}
	partial := partialTransaction{
		Submitter: submitter,
		Timestamp: uint64(time.Now().Unix()),
		Payload:   raw,
		Nonce:     nonce,
	}
	return partial.seal(kp)
}

// seal computes the content hash and signs it.
func (p partialTransaction) seal(kp *BlockKeypair) (Transaction, error) {
	hash, err := DigestOf(p)
	if err != nil {
		return Transaction{}, fmt.Errorf("hash transaction: %w", err)
	}
	msg, err := hash.SigningBytes()
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Submitter: p.Submitter,
		Timestamp: p.Timestamp,
		Payload:   p.Payload,
		Nonce:     p.Nonce,
		Hash:      hash,
		Signature: kp.Sign(msg),
	}, nil
}

func randomNonce() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), nonceBits)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return n, nil
}

// Digest returns the content hash.
func (t Transaction) Digest() HashDigest {
	return t.Hash
}

// Key is the map/DB key form of the content hash.
func (t Transaction) Key() string {
	return t.Hash.Key()
}

// ShortID is a murmur short id of the hash for logs.
func (t Transaction) ShortID() string {
	return utils.ShortID(t.Hash.Bytes())
}

// PayloadInto unmarshals the opaque payload into v.
func (t Transaction) PayloadInto(v interface{}) error {
	return json.Unmarshal(t.Payload, v)
}

// Verify recomputes the content hash and checks the signature against the
// submitter's embedded key. Structural check first, then cryptographic.
func (t Transaction) Verify() error {
	partial := partialTransaction{
		Submitter: t.Submitter,
		Timestamp: t.Timestamp,
		Payload:   t.Payload,
		Nonce:     t.Nonce,
	}
	hash, err := DigestOf(partial)
	if err != nil {
		return fmt.Errorf("rehash transaction: %w", err)
	}
	if !hash.Equal(t.Hash) {
		return fmt.Errorf("transaction %s: %w", t.Hash.Short(), ErrTransactionHashMismatch)
	}
	pub, err := t.Submitter.PublicKey()
	if err != nil {
		return fmt.Errorf("transaction %s submitter: %w", t.Hash.Short(), err)
	}
	msg, err := t.Hash.SigningBytes()
	if err != nil {
		return err
	}
	if !t.Signature.Verify(pub, msg) {
		return fmt.Errorf("transaction %s: %w", t.Hash.Short(), ErrSignatureInvalid)
	}
	return nil
}
