package types

import (
	"encoding/hex"
	"ledger/utils"

	"github.com/ethereum/go-ethereum/rlp"
)

const (
	// HashCodeKeccak256 is the multihash algorithm code carried in every
	// persisted digest. Changing it is a breaking protocol change.
	HashCodeKeccak256 = 27

	// HashSize is the raw digest length in bytes.
	HashSize = 32

	// DigestBufferLen is the fixed on-wire buffer; the digest occupies the
	// first Size bytes and the rest is zero padding.
	DigestBufferLen = 64
)

// Multihash is the fixed-width digest container of the persisted block
// format: algorithm code, digest size, and the padded digest buffer.
type Multihash struct {
	Code   uint64                `json:"code"`
	Size   uint64                `json:"size"`
	Digest [DigestBufferLen]byte `json:"digest"`
}

// HashDigest is a content hash over the canonical (RLP) encoding of a value.
// Immutable once computed; equality is byte-wise.
type HashDigest struct {
	Multihash Multihash `json:"multihash"`
}

// NewHashDigest hashes raw bytes with keccak-256.
func NewHashDigest(data []byte) HashDigest {
	var h HashDigest
	h.Multihash.Code = HashCodeKeccak256
	h.Multihash.Size = HashSize
	copy(h.Multihash.Digest[:], utils.Keccak256(data))
	return h
}

// DigestOf hashes the canonical RLP encoding of any encodable value.
func DigestOf(v interface{}) (HashDigest, error) {
	data, err := rlp.EncodeToBytes(v)
	if err != nil {
		return HashDigest{}, err
	}
	return NewHashDigest(data), nil
}

// Bytes returns the raw digest without padding.
func (h HashDigest) Bytes() []byte {
	size := h.Multihash.Size
	if size == 0 || size > DigestBufferLen {
		size = HashSize
	}
	return h.Multihash.Digest[:size]
}

func (h HashDigest) Equal(other HashDigest) bool {
	return h.Multihash.Code == other.Multihash.Code &&
		h.Multihash.Size == other.Multihash.Size &&
		h.Multihash.Digest == other.Multihash.Digest
}

func (h HashDigest) IsZero() bool {
	return h.Multihash.Code == 0 && h.Multihash.Size == 0 &&
		h.Multihash.Digest == [DigestBufferLen]byte{}
}

// Key is the full hex form, used as map key, DB key and block file name.
func (h HashDigest) Key() string {
	return hex.EncodeToString(h.Bytes())
}

// Short is a log-friendly prefix of the digest.
func (h HashDigest) Short() string {
	k := h.Key()
	if len(k) > 12 {
		return k[:12]
	}
	return k
}

func (h HashDigest) String() string {
	return h.Key()
}

// SigningBytes is the canonical byte form of the digest itself, the message
// that transaction and block signatures cover.
func (h HashDigest) SigningBytes() ([]byte, error) {
	return rlp.EncodeToBytes(h)
}
