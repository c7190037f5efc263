package keys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ledger/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keypair")

	created, err := LoadOrCreate(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, int64(types.KeypairLen), info.Size())

	loaded, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(created.Public()), []byte(loaded.Public()))
	assert.True(t, created.Address().Equal(loaded.Address()))
}

func TestLoadTruncatedKeyFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keypair")
	require.NoError(t, os.WriteFile(path, make([]byte, 17), 0o600))

	_, err := LoadOrCreate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrKeyMaterial))
}
