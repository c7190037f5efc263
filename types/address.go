package types

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"ledger/utils"
)

const (
	// AddressCode is the multihash identity code: the "digest" is the
	// encoded key itself, not a hash of it.
	AddressCode = 0

	// AddressSize is the framed public key length.
	AddressSize = 36
)

// addressPrefix frames an ed25519 public key the way libp2p peer ids do:
// a protobuf header (key type ed25519, 32-byte payload) ahead of the key.
var addressPrefix = [4]byte{0x08, 0x01, 0x12, 0x20}

// Address is the identity derived from a public key, embedded in
// transactions as submitter and in headers as committer. Because the frame
// carries the full key, any holder of an address can verify signatures made
// by its owner. Two addresses are equal iff derived from the same key.
type Address struct {
	PeerID Multihash `json:"peer_id"`
}

// AddressOf derives the address of an ed25519 public key.
func AddressOf(pub ed25519.PublicKey) Address {
	var a Address
	a.PeerID.Code = AddressCode
	a.PeerID.Size = AddressSize
	copy(a.PeerID.Digest[:4], addressPrefix[:])
	copy(a.PeerID.Digest[4:], pub)
	return a
}

// PublicKey recovers the verify key from the frame.
func (a Address) PublicKey() (ed25519.PublicKey, error) {
	if a.PeerID.Code != AddressCode || a.PeerID.Size != AddressSize {
		return nil, fmt.Errorf("address code=%d size=%d: %w", a.PeerID.Code, a.PeerID.Size, ErrKeyMaterial)
	}
	if !bytes.Equal(a.PeerID.Digest[:4], addressPrefix[:]) {
		return nil, fmt.Errorf("address frame %x: %w", a.PeerID.Digest[:4], ErrKeyMaterial)
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, a.PeerID.Digest[4:4+ed25519.PublicKeySize])
	return pub, nil
}

func (a Address) Equal(other Address) bool {
	return a.PeerID.Code == other.PeerID.Code &&
		a.PeerID.Size == other.PeerID.Size &&
		a.PeerID.Digest == other.PeerID.Digest
}

// String renders the address in bech32 for logs. Falls back to hex when the
// frame is not a well-formed key (e.g. a foreign fixture).
func (a Address) String() string {
	pub, err := a.PublicKey()
	if err != nil {
		size := a.PeerID.Size
		if size > DigestBufferLen {
			size = DigestBufferLen
		}
		return hex.EncodeToString(a.PeerID.Digest[:size])
	}
	addr, err := utils.DeriveBech32Address(pub)
	if err != nil {
		return hex.EncodeToString(pub)
	}
	return addr
}
