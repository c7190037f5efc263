package utils

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// DeriveBech32Address renders a public key as a bech32 P2WPKH address
// (Hash160 of the key, mainnet params). Display form for logs and block
// explorers; identity comparison stays on the raw key bytes.
func DeriveBech32Address(pubKey []byte) (string, error) {
	pubKeyHash := btcutil.Hash160(pubKey)
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, &chaincfg.MainNetParams)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
