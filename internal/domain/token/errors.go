package token

import (
	"errors"
	"fmt"
)

// Creation failures. Typed errors below match these through errors.Is.
var (
	ErrSessionExpired        = errors.New("token: wallet session expired, reconnect your wallet")
	ErrNetworkUnreachable    = errors.New("token: network unreachable")
	ErrUserRejectedSignature = errors.New("token: transaction signature rejected in wallet")
	ErrTransactionFailed     = errors.New("token: transaction failed")
	ErrValidation            = errors.New("token: invalid request")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransactionFailedError carries the chain's reason.
type TransactionFailedError struct {
	Reason string
	Err    error
}

func (e *TransactionFailedError) Error() string {
	return "transaction failed: " + e.Reason
}

func (e *TransactionFailedError) Is(target error) bool { return target == ErrTransactionFailed }

func (e *TransactionFailedError) Unwrap() error { return e.Err }

// NetworkError wraps a transport failure during Op.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Is(target error) bool { return target == ErrNetworkUnreachable }

func (e *NetworkError) Unwrap() error { return e.Err }
