// internal/infra/solana/chain.go
package solana

import (
	"context"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"
)

// signatureStatus is the part of getSignatureStatuses the executor reads.
type signatureStatus struct {
	Found     bool
	Confirmed bool
	Err       any
}

// chain is the RPC surface one mint needs.
type chain interface {
	MintRentExemption(ctx context.Context) (uint64, error)
	LatestBlockhash(ctx context.Context) (string, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	SignatureStatus(ctx context.Context, sig string) (signatureStatus, error)
}

// rpcChain talks to a cluster through the blocto client.
type rpcChain struct {
	c *client.Client
}

func (r rpcChain) MintRentExemption(ctx context.Context) (uint64, error) {
	return r.c.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
}

func (r rpcChain) LatestBlockhash(ctx context.Context) (string, error) {
	res, err := r.c.GetLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return res.Blockhash, nil
}

func (r rpcChain) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	return r.c.SendTransaction(ctx, tx)
}

func (r rpcChain) SignatureStatus(ctx context.Context, sig string) (signatureStatus, error) {
	st, err := r.c.GetSignatureStatus(ctx, sig)
	if err != nil {
		return signatureStatus{}, err
	}
	if st == nil {
		return signatureStatus{}, nil
	}
	out := signatureStatus{Found: true, Err: st.Err}
	if st.ConfirmationStatus != nil {
		switch string(*st.ConfirmationStatus) {
		case "confirmed", "finalized":
			out.Confirmed = true
		}
	}
	return out, nil
}

// chainPool keeps one client per endpoint.
type chainPool struct {
	mu     sync.Mutex
	dial   func(endpoint string) chain
	chains map[string]chain
}

func newChainPool(dial func(endpoint string) chain) *chainPool {
	if dial == nil {
		dial = func(endpoint string) chain { return rpcChain{c: client.NewClient(endpoint)} }
	}
	return &chainPool{dial: dial, chains: make(map[string]chain)}
}

func (p *chainPool) get(endpoint string) (chain, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("solana: empty rpc endpoint")
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.chains[endpoint]; ok {
		return c, nil
	}
	c := p.dial(endpoint)
	p.chains[endpoint] = c
	return c, nil
}
