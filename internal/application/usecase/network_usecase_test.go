package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokencreator/internal/domain/network"
)

func TestNetworkSelector(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewNetworkSelector("")
	s.now = func() time.Time { return now }

	assert.Equal(t, network.Devnet, s.Current())
	assert.False(t, s.Switching())

	changed, err := s.Select(network.Devnet)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, s.Switching())

	changed, err = s.Select(network.Mainnet)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, network.Mainnet, s.Current())
	assert.True(t, s.Switching())

	now = now.Add(NetworkSwitchNotice)
	assert.False(t, s.Switching())

	_, err = s.Select(network.Network("testnet"))
	assert.ErrorIs(t, err, network.ErrUnknownNetwork)
	assert.Equal(t, network.Mainnet, s.Current())
}
