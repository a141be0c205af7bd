package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	walletdom "tokencreator/internal/domain/wallet"
)

// Registry detects installed wallets in a KeySource and hands out one
// provider handle per wallet type.
type Registry struct {
	source   KeySource
	approver Approver

	mu        sync.Mutex
	providers map[walletdom.Type]walletdom.Provider
}

var _ walletdom.Registry = (*Registry)(nil)

func NewRegistry(source KeySource, approver Approver) *Registry {
	return &Registry{
		source:    source,
		approver:  approver,
		providers: make(map[walletdom.Type]walletdom.Provider),
	}
}

// Resolve returns the provider for t, or a *walletdom.NotFoundError when the
// wallet is absent. Other key source failures are returned unchanged.
func (r *Registry) Resolve(ctx context.Context, t walletdom.Type) (walletdom.Provider, error) {
	if _, ok := walletdom.Describe(t); !ok {
		return nil, walletdom.ErrUnknownType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.providers[t]; ok {
		return p, nil
	}
	if r.source == nil {
		return nil, walletdom.NewNotFoundError(t)
	}

	acc, err := r.source.Load(ctx, t)
	if err != nil {
		if errors.Is(err, walletdom.ErrKeyAbsent) {
			return nil, walletdom.NewNotFoundError(t)
		}
		return nil, fmt.Errorf("wallet registry: load %s: %w", t, err)
	}

	p, err := NewProvider(t, acc, r.approver)
	if err != nil {
		return nil, err
	}
	r.providers[t] = p
	return p, nil
}

// Available probes every known wallet.
func (r *Registry) Available(ctx context.Context) []walletdom.Availability {
	ds := walletdom.Descriptors()
	out := make([]walletdom.Availability, 0, len(ds))
	for _, d := range ds {
		_, err := r.Resolve(ctx, d.Type)
		out = append(out, walletdom.Availability{Descriptor: d, Installed: err == nil})
	}
	return out
}
