// internal/domain/wallet/provider_port.go
package wallet

import "context"

// Provider is the capability handle of one installed wallet.
//
// Adapter examples:
//   - keypair-backed provider (local solana-keygen file)
//   - keypair-backed provider (GCP Secret Manager)
type Provider interface {
	Type() Type

	// Connect asks the wallet to expose its account. Declining returns ErrUserRejected.
	Connect(ctx context.Context) error

	// Disconnect revokes the connection on the wallet side.
	Disconnect(ctx context.Context) error

	// PublicKey returns the base58 account address, or "" while disconnected.
	PublicKey() string

	// SignTransaction signs a serialized transaction message and returns the
	// 64-byte ed25519 signature. Declining returns ErrUserRejected.
	SignTransaction(ctx context.Context, message []byte) ([]byte, error)
}

// Registry resolves wallet types to installed providers.
// It MUST return an error matching ErrWalletNotFound when the wallet is absent.
type Registry interface {
	Resolve(ctx context.Context, t Type) (Provider, error)
}
