// Package keys is the key-management collaborator: it loads the node's
// signing keypair from a file or creates and persists one. The ledger core
// itself never touches the filesystem for key material.
package keys

import (
	"fmt"
	"os"

	"ledger/logs"
	"ledger/types"
)

// LoadOrCreate reads the 64-byte keypair file at path if it exists, else
// generates a fresh keypair and writes it with owner-only permissions.
// A file of the wrong length is a fatal startup error, not regenerated:
// silently replacing a corrupt key would change the node's identity.
func LoadOrCreate(path string) (*types.BlockKeypair, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		kp, derr := types.DecodeKeypair(data)
		if derr != nil {
			return nil, fmt.Errorf("key file %s: %w", path, derr)
		}
		logs.Debug("[Keys] loaded keypair from %s", path)
		return kp, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file %s: %w", path, err)
	}

	kp, err := types.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, kp.Encode(), 0o600); err != nil {
		return nil, fmt.Errorf("write key file %s: %w", path, err)
	}
	logs.Info("[Keys] created keypair at %s", path)
	return kp, nil
}
