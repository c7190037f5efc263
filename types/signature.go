package types

import (
	"crypto/ed25519"
	"encoding/hex"
)

// SignatureLen is the ed25519 signature length.
const SignatureLen = ed25519.SignatureSize

// Signature holds the raw signature bytes over a message. Verification is a
// pure function of (public key, message, signature); the verify key travels
// separately, embedded in the signer's Address.
type Signature struct {
	Sig [SignatureLen]byte `json:"signature"`
}

// Verify reports whether sig is a valid signature of msg under pub.
func (s Signature) Verify(pub ed25519.PublicKey, msg []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, msg, s.Sig[:])
}

func (s Signature) String() string {
	return hex.EncodeToString(s.Sig[:])
}
