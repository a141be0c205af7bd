// internal/application/usecase/connection_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	walletdom "tokencreator/internal/domain/wallet"
)

// ConnectionController owns the single wallet session.
// Connect and Disconnect are serialized by the caller (AppStateMachine).
type ConnectionController struct {
	registry walletdom.Registry

	mu       sync.Mutex
	session  *walletdom.Session
	provider walletdom.Provider
}

func NewConnectionController(registry walletdom.Registry) *ConnectionController {
	return &ConnectionController{registry: registry}
}

// Connect resolves t and asks the provider to connect.
//
// Errors:
//   - *walletdom.NotFoundError when the wallet is not installed
//   - *walletdom.ConnectionRejectedError for any provider failure, with its message
//   - walletdom.ErrAlreadyConnected while another session is active
func (c *ConnectionController) Connect(ctx context.Context, t walletdom.Type) (walletdom.Session, error) {
	if _, ok := walletdom.Describe(t); !ok {
		return walletdom.Session{}, walletdom.ErrUnknownType
	}

	c.mu.Lock()
	active := c.session != nil
	c.mu.Unlock()
	if active {
		return walletdom.Session{}, walletdom.ErrAlreadyConnected
	}

	if c.registry == nil {
		return walletdom.Session{}, walletdom.NewNotFoundError(t)
	}
	p, err := c.registry.Resolve(ctx, t)
	if err != nil {
		if errors.Is(err, walletdom.ErrWalletNotFound) {
			log.Printf("[connection] wallet=%s not installed", t)
			return walletdom.Session{}, err
		}
		return walletdom.Session{}, rejected(t, err)
	}

	if err := p.Connect(ctx); err != nil {
		log.Printf("[connection] wallet=%s connect FAILED err=%v", t, err)
		return walletdom.Session{}, rejected(t, err)
	}

	sess, err := walletdom.NewSession(t, p.PublicKey())
	if err != nil {
		if derr := p.Disconnect(ctx); derr != nil {
			log.Printf("[connection] wallet=%s disconnect after bad key FAILED err=%v", t, derr)
		}
		return walletdom.Session{}, &walletdom.ConnectionRejectedError{
			Wallet: t,
			Reason: "wallet did not return a valid public key",
			Err:    err,
		}
	}

	c.mu.Lock()
	c.session = &sess
	c.provider = p
	c.mu.Unlock()

	log.Printf("[connection] connected wallet=%s address=%s", t, maskShort(sess.Address))
	return sess, nil
}

// Disconnect clears the session, then disconnects the provider of the stored
// wallet type. A failing remote disconnect is only logged.
func (c *ConnectionController) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	sess, p := c.session, c.provider
	c.session, c.provider = nil, nil
	c.mu.Unlock()

	if sess == nil {
		return walletdom.ErrNoActiveSession
	}

	if p != nil {
		if err := p.Disconnect(ctx); err != nil {
			log.Printf("[connection] wallet=%s remote disconnect FAILED err=%v (local session cleared)", sess.WalletType, err)
		}
	}
	log.Printf("[connection] disconnected wallet=%s address=%s", sess.WalletType, maskShort(sess.Address))
	return nil
}

// Session returns the active session.
func (c *ConnectionController) Session() (walletdom.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return walletdom.Session{}, false
	}
	return *c.session, true
}

// Provider returns the provider of the active session, or nil.
func (c *ConnectionController) Provider() walletdom.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

func rejected(t walletdom.Type, err error) error {
	reason := err.Error()
	if errors.Is(err, walletdom.ErrUserRejected) {
		reason = "user rejected the request"
	}
	return &walletdom.ConnectionRejectedError{Wallet: t, Reason: reason, Err: err}
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
