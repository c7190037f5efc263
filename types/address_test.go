package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRoundTrip(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	addr := kp.Address()
	assert.Equal(t, uint64(AddressCode), addr.PeerID.Code)
	assert.Equal(t, uint64(AddressSize), addr.PeerID.Size)

	pub, err := addr.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, []byte(kp.Public()), []byte(pub))
}

func TestAddressEquality(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)
	other, err := GenerateKeypair()
	require.NoError(t, err)

	assert.True(t, kp.Address().Equal(AddressOf(kp.Public())))
	assert.False(t, kp.Address().Equal(other.Address()))
}

func TestAddressBech32Display(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	s := kp.Address().String()
	assert.True(t, strings.HasPrefix(s, "bc1q"), "got %s", s)
}

func TestSignatureVerify(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)
	other, err := GenerateKeypair()
	require.NoError(t, err)

	msg := []byte("message under test")
	sig := kp.Sign(msg)

	assert.True(t, sig.Verify(kp.Public(), msg))
	assert.False(t, sig.Verify(other.Public(), msg))
	assert.False(t, sig.Verify(kp.Public(), []byte("different message")))

	mutated := sig
	mutated.Sig[10] ^= 0x01
	assert.False(t, mutated.Verify(kp.Public(), msg))
}

func TestKeypairEncodeDecode(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	decoded, err := DecodeKeypair(kp.Encode())
	require.NoError(t, err)
	assert.Equal(t, []byte(kp.Public()), []byte(decoded.Public()))

	msg := []byte("same key, same signature")
	assert.Equal(t, kp.Sign(msg), decoded.Sign(msg))

	_, err = DecodeKeypair([]byte("short"))
	require.Error(t, err)
}
