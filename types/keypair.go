package types

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// KeypairLen is the encoded keypair length: the ed25519 private key already
// carries the public half in its second 32 bytes.
const KeypairLen = ed25519.PrivateKeySize

// BlockKeypair is the node's ed25519 signing identity. The zero value is
// unusable; construct via GenerateKeypair or DecodeKeypair.
type BlockKeypair struct {
	priv ed25519.PrivateKey
}

// GenerateKeypair creates a fresh random keypair.
func GenerateKeypair() (*BlockKeypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &BlockKeypair{priv: priv}, nil
}

// DecodeKeypair restores a keypair from its 64-byte encoded form.
func DecodeKeypair(data []byte) (*BlockKeypair, error) {
	if len(data) != KeypairLen {
		return nil, fmt.Errorf("keypair must be %d bytes, got %d: %w", KeypairLen, len(data), ErrKeyMaterial)
	}
	priv := make(ed25519.PrivateKey, KeypairLen)
	copy(priv, data)
	return &BlockKeypair{priv: priv}, nil
}

// Encode returns the 64-byte private form written to key files.
func (kp *BlockKeypair) Encode() []byte {
	out := make([]byte, KeypairLen)
	copy(out, kp.priv)
	return out
}

func (kp *BlockKeypair) Public() ed25519.PublicKey {
	return kp.priv.Public().(ed25519.PublicKey)
}

// Sign signs msg with the private key.
func (kp *BlockKeypair) Sign(msg []byte) Signature {
	var sig Signature
	copy(sig.Sig[:], ed25519.Sign(kp.priv, msg))
	return sig
}

// Address derives the on-chain identity of this keypair.
func (kp *BlockKeypair) Address() Address {
	return AddressOf(kp.Public())
}
