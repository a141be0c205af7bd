// internal/infra/wallet/keypair.go
package wallet

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"github.com/blocto/solana-go-sdk/types"
)

// decodeKeypairJSON restores the 64-byte secret of a solana-keygen keypair file.
// The canonical form is a JSON array of 64 numbers; a base64 string produced by
// encoding/json for []byte is accepted too.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err == nil {
		if len(ints) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(ints), ed25519.PrivateKeySize)
		}
		b := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("secret key byte out of range at %d: %d", i, v)
			}
			b[i] = byte(v)
		}
		return b, nil
	}

	var keyBytes []byte
	if err := json.Unmarshal(data, &keyBytes); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(keyBytes), ed25519.PrivateKeySize)
	}
	return keyBytes, nil
}

// accountFromKeypairJSON decodes a keypair file into a signing account.
func accountFromKeypairJSON(data []byte) (types.Account, error) {
	b, err := decodeKeypairJSON(data)
	if err != nil {
		return types.Account{}, err
	}
	acc, err := types.AccountFromBytes(b)
	if err != nil {
		return types.Account{}, fmt.Errorf("AccountFromBytes: %w", err)
	}
	return acc, nil
}

// EncodeKeypairJSON renders a 64-byte secret in the solana-keygen format.
func EncodeKeypairJSON(secret []byte) ([]byte, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(secret), ed25519.PrivateKeySize)
	}
	ints := make([]int, len(secret))
	for i, v := range secret {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}
