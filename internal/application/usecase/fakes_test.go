package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/mr-tron/base58"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

func testAddress(seed byte) string {
	return base58.Encode(bytes.Repeat([]byte{seed}, 32))
}

// ---- wallet ----

type fakeProvider struct {
	mu sync.Mutex

	typ       walletdom.Type
	addr      string
	connected bool

	connectErr    error
	disconnectErr error
	signErr       error
	connectGate   chan struct{}
	connectEnter  chan struct{}

	connects    int
	disconnects int
}

func newFakeProvider(t walletdom.Type, addr string) *fakeProvider {
	return &fakeProvider{typ: t, addr: addr}
}

func (p *fakeProvider) Type() walletdom.Type { return p.typ }

func (p *fakeProvider) Connect(ctx context.Context) error {
	if p.connectGate != nil {
		if p.connectEnter != nil {
			close(p.connectEnter)
		}
		select {
		case <-p.connectGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connects++
	if p.connectErr != nil {
		return p.connectErr
	}
	p.connected = true
	return nil
}

func (p *fakeProvider) Disconnect(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnects++
	p.connected = false
	return p.disconnectErr
}

func (p *fakeProvider) PublicKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return ""
	}
	return p.addr
}

func (p *fakeProvider) SignTransaction(_ context.Context, msg []byte) ([]byte, error) {
	if p.signErr != nil {
		return nil, p.signErr
	}
	return msg, nil
}

// dropConnection simulates the user disconnecting from inside the wallet.
func (p *fakeProvider) dropConnection() {
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
}

type fakeRegistry struct {
	providers  map[walletdom.Type]*fakeProvider
	resolveErr error
}

func newFakeRegistry(ps ...*fakeProvider) *fakeRegistry {
	r := &fakeRegistry{providers: make(map[walletdom.Type]*fakeProvider)}
	for _, p := range ps {
		r.providers[p.typ] = p
	}
	return r
}

func (r *fakeRegistry) Resolve(_ context.Context, t walletdom.Type) (walletdom.Provider, error) {
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	p, ok := r.providers[t]
	if !ok {
		return nil, walletdom.NewNotFoundError(t)
	}
	return p, nil
}

// ---- chain ----

type fakeEndpoints struct{}

func (fakeEndpoints) Resolve(n network.Network) (string, error) {
	if !n.Valid() {
		return "", network.ErrUnknownNetwork
	}
	return "https://rpc.test/" + string(n), nil
}

type executeCall struct {
	endpoint string
	plan     tokendom.MintPlan
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []executeCall

	mint string
	sig  string
	err  error
}

func (e *fakeExecutor) Execute(_ context.Context, endpoint string, plan tokendom.MintPlan, signer walletdom.Provider) (tokendom.MintReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, executeCall{endpoint: endpoint, plan: plan})
	if e.err != nil {
		return tokendom.MintReceipt{}, e.err
	}
	if signer.PublicKey() == "" {
		return tokendom.MintReceipt{}, tokendom.ErrSessionExpired
	}
	return tokendom.MintReceipt{MintAddress: e.mint, Signature: e.sig}, nil
}

func (e *fakeExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

type fakeUploader struct {
	uri  string
	err  error
	docs []tokendom.MetadataDocument
}

func (u *fakeUploader) Upload(_ context.Context, doc tokendom.MetadataDocument) (string, error) {
	u.docs = append(u.docs, doc)
	return u.uri, u.err
}

type fakeLedger struct {
	mu      sync.Mutex
	saved   []tokendom.MintRecord
	saveErr error
	listErr error
	limit   int
}

func (l *fakeLedger) Save(_ context.Context, rec tokendom.MintRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.saveErr != nil {
		return l.saveErr
	}
	l.saved = append(l.saved, rec)
	return nil
}

func (l *fakeLedger) ListByOwner(_ context.Context, owner string, limit int) ([]tokendom.MintRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = limit
	if l.listErr != nil {
		return nil, l.listErr
	}
	var out []tokendom.MintRecord
	for i := len(l.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if l.saved[i].Owner == owner {
			out = append(out, l.saved[i])
		}
	}
	return out, nil
}

// ---- creator ----

type createCall struct {
	req     tokendom.Request
	session walletdom.Session
	network network.Network
}

// blockingCreator holds every Create until release is closed.
type blockingCreator struct {
	mu      sync.Mutex
	calls   []createCall
	started chan struct{}
	release chan struct{}

	result tokendom.Result
	err    error
}

func newBlockingCreator() *blockingCreator {
	return &blockingCreator{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (c *blockingCreator) Create(ctx context.Context, req tokendom.Request, session walletdom.Session, _ walletdom.Provider, n network.Network) (tokendom.Result, error) {
	c.mu.Lock()
	c.calls = append(c.calls, createCall{req: req, session: session, network: n})
	c.mu.Unlock()
	c.started <- struct{}{}

	select {
	case <-c.release:
	case <-ctx.Done():
		return tokendom.Result{}, ctx.Err()
	}
	return c.result, c.err
}

func (c *blockingCreator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

var errBoom = errors.New("boom")
