package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestNewTransactionVerifies(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	tx, err := NewTransaction(kp.Address(), "Hello First Transaction", kp)
	require.NoError(t, err)

	require.NoError(t, tx.Verify())
	assert.Equal(t, uint64(HashCodeKeccak256), tx.Hash.Multihash.Code)
	assert.Equal(t, uint64(HashSize), tx.Hash.Multihash.Size)
	assert.NotNil(t, tx.Nonce)

	var payload string
	require.NoError(t, tx.PayloadInto(&payload))
	assert.Equal(t, "Hello First Transaction", payload)
}

func TestTransactionStructuredPayload(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	in := thing{Name: "Christian", Age: 10}
	tx, err := NewTransaction(kp.Address(), in, kp)
	require.NoError(t, err)
	require.NoError(t, tx.Verify())

	var out thing
	require.NoError(t, tx.PayloadInto(&out))
	assert.Equal(t, in, out)
}

func TestTransactionTamperedPayload(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	tx, err := NewTransaction(kp.Address(), "original", kp)
	require.NoError(t, err)

	tx.Payload = json.RawMessage(`"tampered"`)
	err = tx.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransactionHashMismatch))
}

func TestTransactionTamperedSignature(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	tx, err := NewTransaction(kp.Address(), "payload", kp)
	require.NoError(t, err)

	tx.Signature.Sig[0] ^= 0xff
	err = tx.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestTransactionForeignSubmitter(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)
	other, err := GenerateKeypair()
	require.NoError(t, err)

	// signed by kp but claiming other's identity: the embedded key no
	// longer matches the signature
	tx, err := NewTransaction(other.Address(), "payload", kp)
	require.NoError(t, err)

	err = tx.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	tx, err := NewTransaction(kp.Address(), thing{Name: "roundtrip", Age: 3}, kp)
	require.NoError(t, err)

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded.Hash.Equal(tx.Hash))
	assert.Equal(t, tx.Signature, decoded.Signature)
	assert.Zero(t, tx.Nonce.Cmp(decoded.Nonce))
	require.NoError(t, decoded.Verify())
}

func TestTransactionHashesDiffer(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	// same payload, distinct nonces, distinct content hashes
	a, err := NewTransaction(kp.Address(), "same payload", kp)
	require.NoError(t, err)
	b, err := NewTransaction(kp.Address(), "same payload", kp)
	require.NoError(t, err)
	assert.False(t, a.Hash.Equal(b.Hash))
	assert.NotEqual(t, a.Key(), b.Key())
}
