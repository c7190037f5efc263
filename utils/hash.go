package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes data with legacy keccak-256 (the pre-NIST padding).
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func Sha256Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// ShortID condenses arbitrary bytes into an 8-byte murmur3 hex string.
// Log-friendly only, never used for integrity.
func ShortID(data []byte) string {
	h := murmur3.New64()
	_, _ = h.Write(data)
	sum64 := h.Sum64()
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum64 >> (8 * i))
	}
	return hex.EncodeToString(b)
}
