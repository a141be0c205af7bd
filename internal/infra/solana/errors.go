// internal/infra/solana/errors.go
package solana

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

// transport failures the rpc client reports only as text
var transportHints = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"i/o timeout",
	"tls handshake",
	"eof",
	"timeout",
	"network is unreachable",
	"status code: 502",
	"status code: 503",
	"status code: 504",
}

// classifyRPCError maps an RPC failure to NetworkError when the cluster could
// not be reached and TransactionFailedError otherwise.
func classifyRPCError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTransportError(err) {
		return &tokendom.NetworkError{Op: op, Err: err}
	}
	return &tokendom.TransactionFailedError{Reason: op + ": " + err.Error(), Err: err}
}

func classifySignError(err error) error {
	switch {
	case errors.Is(err, walletdom.ErrUserRejected):
		return tokendom.ErrUserRejectedSignature
	case errors.Is(err, walletdom.ErrNotConnected):
		return tokendom.ErrSessionExpired
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &tokendom.NetworkError{Op: "signing", Err: err}
	}
	return &tokendom.TransactionFailedError{Reason: "wallet signing failed", Err: err}
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, h := range transportHints {
		if strings.Contains(msg, h) {
			return true
		}
	}
	return false
}

func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
