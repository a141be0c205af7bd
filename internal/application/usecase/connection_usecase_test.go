package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	walletdom "tokencreator/internal/domain/wallet"
)

func TestConnectionController_Connect(t *testing.T) {
	addr := testAddress(50)
	p := newFakeProvider(walletdom.TypePhantom, addr)
	c := NewConnectionController(newFakeRegistry(p))
	ctx := context.Background()

	sess, err := c.Connect(ctx, walletdom.TypePhantom)
	require.NoError(t, err)
	assert.Equal(t, walletdom.Session{WalletType: walletdom.TypePhantom, Address: addr}, sess)

	got, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Same(t, p, c.Provider())

	_, err = c.Connect(ctx, walletdom.TypeSolflare)
	assert.ErrorIs(t, err, walletdom.ErrAlreadyConnected)
}

func TestConnectionController_Failures(t *testing.T) {
	tests := []struct {
		name      string
		reg       *fakeRegistry
		typ       walletdom.Type
		want      error
		wantInMsg string
	}{
		{
			name:      "absent",
			reg:       newFakeRegistry(),
			typ:       walletdom.TypeSolflare,
			want:      walletdom.ErrWalletNotFound,
			wantInMsg: "Solflare wallet not found, install from https://solflare.com/",
		},
		{
			name: "provider error keeps its message",
			reg: func() *fakeRegistry {
				p := newFakeProvider(walletdom.TypePhantom, testAddress(51))
				p.connectErr = errBoom
				return newFakeRegistry(p)
			}(),
			typ:       walletdom.TypePhantom,
			want:      walletdom.ErrConnectionRejected,
			wantInMsg: "phantom connection rejected: boom",
		},
		{
			name:      "registry failure is not reported as absence",
			reg:       &fakeRegistry{resolveErr: errBoom},
			typ:       walletdom.TypeBackpack,
			want:      walletdom.ErrConnectionRejected,
			wantInMsg: "boom",
		},
		{
			name:      "invalid public key",
			reg:       newFakeRegistry(newFakeProvider(walletdom.TypePhantom, "Addr1")),
			typ:       walletdom.TypePhantom,
			want:      walletdom.ErrConnectionRejected,
			wantInMsg: "valid public key",
		},
		{
			name: "unknown type",
			reg:  newFakeRegistry(),
			typ:  walletdom.Type("metamask"),
			want: walletdom.ErrUnknownType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConnectionController(tt.reg)
			_, err := c.Connect(context.Background(), tt.typ)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.wantInMsg)

			_, ok := c.Session()
			assert.False(t, ok)
			assert.Nil(t, c.Provider())
		})
	}
}

func TestConnectionController_Disconnect(t *testing.T) {
	p := newFakeProvider(walletdom.TypeBackpack, testAddress(52))
	p.disconnectErr = errBoom
	c := NewConnectionController(newFakeRegistry(p))
	ctx := context.Background()

	assert.ErrorIs(t, c.Disconnect(ctx), walletdom.ErrNoActiveSession)

	_, err := c.Connect(ctx, walletdom.TypeBackpack)
	require.NoError(t, err)
	require.NoError(t, c.Disconnect(ctx))

	_, ok := c.Session()
	assert.False(t, ok)
	assert.Equal(t, 1, p.disconnects)

	// a new wallet can connect afterwards
	p.disconnectErr = nil
	_, err = c.Connect(ctx, walletdom.TypeBackpack)
	require.NoError(t, err)
}
