package solana

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

func TestMintExecutor_Execute(t *testing.T) {
	owner := newFakeSigner()
	mint := types.NewAccount()
	c := &fakeChain{statuses: []signatureStatus{{}, {Found: true}, {Found: true, Confirmed: true}}}
	e := newTestExecutor(c, mint)

	got, err := e.Execute(context.Background(), "http://rpc.local", tokendom.MintPlan{
		Name: "Test Token", Symbol: "TEST", Decimals: 9, Amount: 1_000_000_000_000_000,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, mint.PublicKey.ToBase58(), got.MintAddress)
	assert.Equal(t, "sig-1", got.Signature)
	assert.Equal(t, 3, c.polls)

	require.Len(t, c.sent, 1)
	tx := c.sent[0]
	assert.Len(t, tx.Message.Instructions, 5)
	assert.Equal(t, owner.acc.PublicKey, tx.Message.Accounts[0], "wallet pays the fee")

	data, err := tx.Message.Serialize()
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 2)
	for i, sig := range tx.Signatures {
		assert.True(t, ed25519.Verify(tx.Message.Accounts[i].Bytes(), data, sig), "signature %d", i)
	}
}

func TestMintExecutor_Failures(t *testing.T) {
	refused := &url.Error{Op: "Post", URL: "http://rpc.local", Err: errors.New("dial tcp: connection refused")}

	tests := []struct {
		name     string
		chain    *fakeChain
		signer   func() *fakeSigner
		timeout  time.Duration
		wantErr  error
		wantSent int
	}{
		{
			name:    "unreachable cluster",
			chain:   &fakeChain{rentErr: refused},
			wantErr: tokendom.ErrNetworkUnreachable,
		},
		{
			name:  "wallet rejects signature",
			chain: &fakeChain{},
			signer: func() *fakeSigner {
				s := newFakeSigner()
				s.signErr = walletdom.ErrUserRejected
				return s
			},
			wantErr: tokendom.ErrUserRejectedSignature,
		},
		{
			name:  "wallet disconnected",
			chain: &fakeChain{},
			signer: func() *fakeSigner {
				s := newFakeSigner()
				s.signErr = walletdom.ErrNotConnected
				return s
			},
			wantErr: tokendom.ErrSessionExpired,
		},
		{
			name:    "preflight rejects transaction",
			chain:   &fakeChain{sendErr: errors.New("rpc response error: Transaction simulation failed: insufficient lamports")},
			wantErr: tokendom.ErrTransactionFailed,
		},
		{
			name: "transaction fails on chain",
			chain: &fakeChain{statuses: []signatureStatus{
				{Found: true, Err: map[string]any{"InstructionError": []any{0, "Custom"}}},
			}},
			wantErr:  tokendom.ErrTransactionFailed,
			wantSent: 1,
		},
		{
			name:     "confirmation never arrives",
			chain:    &fakeChain{statuses: []signatureStatus{{}}},
			timeout:  30 * time.Millisecond,
			wantErr:  tokendom.ErrNetworkUnreachable,
			wantSent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := newFakeSigner()
			if tt.signer != nil {
				signer = tt.signer()
			}
			ctx := context.Background()
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}

			_, err := newTestExecutor(tt.chain, types.NewAccount()).
				Execute(ctx, "http://rpc.local", tokendom.MintPlan{Name: "A", Symbol: "A", Amount: 1}, signer)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, tt.chain.sent, tt.wantSent)
		})
	}
}

func TestMintExecutor_RequiresConnectedSigner(t *testing.T) {
	signer := newFakeSigner()
	signer.disconnected = true

	_, err := newTestExecutor(&fakeChain{}, types.NewAccount()).
		Execute(context.Background(), "http://rpc.local", tokendom.MintPlan{}, signer)
	assert.ErrorIs(t, err, tokendom.ErrSessionExpired)

	_, err = newTestExecutor(&fakeChain{}, types.NewAccount()).
		Execute(context.Background(), "http://rpc.local", tokendom.MintPlan{}, nil)
	assert.ErrorIs(t, err, ErrMintSignerEmpty)
}

func TestMintExecutor_ReusesChainPerEndpoint(t *testing.T) {
	var dialed []string
	pool := newChainPool(func(endpoint string) chain {
		dialed = append(dialed, endpoint)
		return &fakeChain{}
	})

	a, err := pool.get("https://a")
	require.NoError(t, err)
	b, err := pool.get("https://a")
	require.NoError(t, err)
	_, err = pool.get("https://b")
	require.NoError(t, err)
	_, err = pool.get("")
	require.Error(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, []string{"https://a", "https://b"}, dialed)
}

func TestEndpoints(t *testing.T) {
	e := NewEndpoints("", " https://mainnet.example ")

	got, err := e.Resolve(network.Devnet)
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", got)

	got, err = e.Resolve(network.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.example", got)

	_, err = e.Resolve(network.Network("testnet"))
	assert.ErrorIs(t, err, network.ErrUnknownNetwork)
}

func TestClassifyRPCError(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{context.DeadlineExceeded, tokendom.ErrNetworkUnreachable},
		{errors.New("Post \"https://api.devnet.solana.com\": EOF"), tokendom.ErrNetworkUnreachable},
		{errors.New("dial tcp: lookup api.example: no such host"), tokendom.ErrNetworkUnreachable},
		{errors.New("Blockhash not found"), tokendom.ErrTransactionFailed},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, classifyRPCError("op", tt.err), tt.want, tt.err.Error())
	}
	assert.NoError(t, classifyRPCError("op", nil))
}

func TestMaskShort(t *testing.T) {
	assert.Equal(t, "", maskShort("  "))
	assert.Equal(t, "short", maskShort("short"))
	assert.Equal(t, "So11***1112", maskShort("So11111111111111111111111111111111111111112"))
}

// ---- fakes ----

func newTestExecutor(c *fakeChain, mint types.Account) *MintExecutorSolana {
	e := NewMintExecutorSolana(time.Millisecond)
	e.pool = newChainPool(func(string) chain { return c })
	e.newMint = func() types.Account { return mint }
	return e
}

type fakeChain struct {
	mu sync.Mutex

	rentErr   error
	sendErr   error
	statuses  []signatureStatus
	statusErr error

	sent  []types.Transaction
	polls int
}

func (f *fakeChain) MintRentExemption(context.Context) (uint64, error) {
	return 1_461_600, f.rentErr
}

func (f *fakeChain) LatestBlockhash(context.Context) (string, error) {
	return types.NewAccount().PublicKey.ToBase58(), nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx types.Transaction) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return "sig-1", nil
}

func (f *fakeChain) SignatureStatus(context.Context, string) (signatureStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.statusErr != nil {
		return signatureStatus{}, f.statusErr
	}
	if len(f.statuses) == 0 {
		return signatureStatus{Found: true, Confirmed: true}, nil
	}
	st := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return st, nil
}

type fakeSigner struct {
	acc          types.Account
	signErr      error
	disconnected bool
}

func newFakeSigner() *fakeSigner { return &fakeSigner{acc: types.NewAccount()} }

func (s *fakeSigner) Type() walletdom.Type { return walletdom.TypePhantom }
func (s *fakeSigner) Connect(context.Context) error { return nil }
func (s *fakeSigner) Disconnect(context.Context) error { return nil }

func (s *fakeSigner) PublicKey() string {
	if s.disconnected {
		return ""
	}
	return s.acc.PublicKey.ToBase58()
}

func (s *fakeSigner) SignTransaction(_ context.Context, msg []byte) ([]byte, error) {
	if s.signErr != nil {
		return nil, s.signErr
	}
	return s.acc.Sign(msg), nil
}
