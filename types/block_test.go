package types

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeypair(t *testing.T) *BlockKeypair {
	t.Helper()
	kp, err := GenerateKeypair()
	require.NoError(t, err)
	return kp
}

func TestBuildBlock(t *testing.T) {
	kp := testKeypair(t)

	tx, err := NewTransaction(kp.Address(), "Hello First Transaction", kp)
	require.NoError(t, err)

	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(1), []Transaction{tx}, kp)
	require.NoError(t, err)

	assert.Zero(t, block.Header.Ordinal.Cmp(big.NewInt(1)))
	assert.True(t, block.Header.Committer.Equal(kp.Address()))
	require.NoError(t, block.Verify())
}

func TestEmptyBlockHasDefinedRoot(t *testing.T) {
	kp := testKeypair(t)

	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(1), nil, kp)
	require.NoError(t, err)

	require.NotNil(t, block.Transactions)
	assert.Len(t, block.Transactions, 0)

	emptyRoot, err := TransactionsRoot([]Transaction{})
	require.NoError(t, err)
	assert.True(t, block.Header.TransactionsHash.Equal(emptyRoot))
	require.NoError(t, block.Verify())
}

func TestTamperedTransactionReportsRootMismatch(t *testing.T) {
	kp := testKeypair(t)

	tx, err := NewTransaction(kp.Address(), "untouched", kp)
	require.NoError(t, err)
	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(1), []Transaction{tx}, kp)
	require.NoError(t, err)

	// flip one payload byte without re-signing: this must surface as a
	// transactions-root mismatch, not as a signature failure
	block.Transactions[0].Payload[1] ^= 0xff
	err = block.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransactionsRootMismatch))
	assert.False(t, errors.Is(err, ErrSignatureInvalid))
}

func TestTamperedHeaderReportsHashMismatch(t *testing.T) {
	kp := testKeypair(t)

	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(1), nil, kp)
	require.NoError(t, err)

	block.Header.Timestamp++
	err = block.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderHashMismatch))
}

func TestForeignSignatureRejected(t *testing.T) {
	kp := testKeypair(t)
	other := testKeypair(t)

	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(1), nil, kp)
	require.NoError(t, err)

	msg, err := block.Header.SigningBytes()
	require.NoError(t, err)
	block.Signature = other.Sign(msg)

	err = block.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestBlockJSONRoundTrip(t *testing.T) {
	kp := testKeypair(t)

	tx, err := NewTransaction(kp.Address(), thing{Name: "persisted", Age: 7}, kp)
	require.NoError(t, err)
	block, err := NewBlock(NewHashDigest([]byte("parent")), big.NewInt(9), []Transaction{tx}, kp)
	require.NoError(t, err)

	data, err := json.Marshal(block)
	require.NoError(t, err)

	var decoded Block
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded.Header.Hash.Equal(block.Header.Hash))
	assert.Equal(t, block.ID(), decoded.ID())
	require.NoError(t, decoded.Verify())
}
