package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrWalletNotFound is matched by NotFoundError.
	ErrWalletNotFound = errors.New("wallet: not found")
	// ErrConnectionRejected is matched by ConnectionRejectedError.
	ErrConnectionRejected = errors.New("wallet: connection rejected")

	// ErrUserRejected is returned by providers when the user declines a request.
	ErrUserRejected = errors.New("wallet: user rejected the request")
	// ErrNotConnected is returned by providers asked to sign before connecting.
	ErrNotConnected = errors.New("wallet: provider is not connected")

	ErrUnknownType      = errors.New("wallet: unknown wallet type")
	ErrInvalidAddress   = errors.New("wallet: invalid address")
	ErrAlreadyConnected = errors.New("wallet: a wallet is already connected")
	ErrKeyAbsent        = errors.New("wallet: no key material for wallet")
	ErrNoActiveSession  = errors.New("wallet: no active session")
)

// NotFoundError means the environment has no provider for the wallet.
// Its message is meant to be shown to the user as-is.
type NotFoundError struct {
	Wallet Descriptor
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s wallet not found, install from %s", e.Wallet.Name, e.Wallet.InstallURL)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrWalletNotFound }

// NewNotFoundError builds the error for t; unknown types fall back to the raw id.
func NewNotFoundError(t Type) *NotFoundError {
	d, ok := Describe(t)
	if !ok {
		d = Descriptor{Type: t, Name: string(t)}
	}
	return &NotFoundError{Wallet: d}
}

// ConnectionRejectedError carries the provider's own message.
type ConnectionRejectedError struct {
	Wallet Type
	Reason string
	Err    error
}

func (e *ConnectionRejectedError) Error() string {
	return fmt.Sprintf("%s connection rejected: %s", e.Wallet, e.Reason)
}

func (e *ConnectionRejectedError) Is(target error) bool { return target == ErrConnectionRejected }

func (e *ConnectionRejectedError) Unwrap() error { return e.Err }
