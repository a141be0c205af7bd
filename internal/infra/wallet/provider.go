// internal/infra/wallet/provider.go
package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/types"

	walletdom "tokencreator/internal/domain/wallet"
)

// ApprovalKind is what the wallet asks the user to approve.
type ApprovalKind string

const (
	ApproveConnect ApprovalKind = "connect"
	ApproveSign    ApprovalKind = "sign"
)

// ApprovalRequest is shown to the user before the wallet acts.
type ApprovalRequest struct {
	Wallet  walletdom.Descriptor
	Kind    ApprovalKind
	Address string
	Summary string
}

// Approver stands in for the wallet's confirmation popup.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (bool, error)
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (bool, error) {
	return f(ctx, req)
}

// AutoApprove accepts every request.
var AutoApprove Approver = ApproverFunc(func(context.Context, ApprovalRequest) (bool, error) {
	return true, nil
})

// keypairProvider is a wallet holding a local ed25519 keypair.
type keypairProvider struct {
	desc     walletdom.Descriptor
	account  types.Account
	approver Approver

	mu        sync.Mutex
	connected bool
}

func (p *keypairProvider) Type() walletdom.Type { return p.desc.Type }

func (p *keypairProvider) Connect(ctx context.Context) error {
	if err := p.approve(ctx, ApprovalRequest{
		Kind:    ApproveConnect,
		Address: p.account.PublicKey.ToBase58(),
		Summary: fmt.Sprintf("Connect %s to Token Creator", p.desc.Name),
	}); err != nil {
		return err
	}

	p.mu.Lock()
	p.connected = true
	p.mu.Unlock()
	return nil
}

func (p *keypairProvider) Disconnect(ctx context.Context) error {
	_ = ctx

	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
	return nil
}

func (p *keypairProvider) PublicKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return ""
	}
	return p.account.PublicKey.ToBase58()
}

func (p *keypairProvider) SignTransaction(ctx context.Context, message []byte) ([]byte, error) {
	p.mu.Lock()
	connected := p.connected
	p.mu.Unlock()
	if !connected {
		return nil, walletdom.ErrNotConnected
	}

	if err := p.approve(ctx, ApprovalRequest{
		Kind:    ApproveSign,
		Address: p.account.PublicKey.ToBase58(),
		Summary: fmt.Sprintf("Sign a %d-byte transaction", len(message)),
	}); err != nil {
		return nil, err
	}
	return p.account.Sign(message), nil
}

func (p *keypairProvider) approve(ctx context.Context, req ApprovalRequest) error {
	if p.approver == nil {
		return nil
	}
	req.Wallet = p.desc
	ok, err := p.approver.Approve(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		return walletdom.ErrUserRejected
	}
	return nil
}

// PhantomProvider is the Phantom variant.
type PhantomProvider struct{ *keypairProvider }

// SolflareProvider is the Solflare variant.
type SolflareProvider struct{ *keypairProvider }

// BackpackProvider is the Backpack variant.
type BackpackProvider struct{ *keypairProvider }

// NewProvider builds the variant for t around acc.
func NewProvider(t walletdom.Type, acc types.Account, approver Approver) (walletdom.Provider, error) {
	desc, ok := walletdom.Describe(t)
	if !ok {
		return nil, walletdom.ErrUnknownType
	}
	base := &keypairProvider{desc: desc, account: acc, approver: approver}

	switch t {
	case walletdom.TypePhantom:
		return &PhantomProvider{base}, nil
	case walletdom.TypeSolflare:
		return &SolflareProvider{base}, nil
	case walletdom.TypeBackpack:
		return &BackpackProvider{base}, nil
	}
	return nil, walletdom.ErrUnknownType
}
