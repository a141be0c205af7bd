package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Network
		wantErr bool
	}{
		{in: "devnet", want: Devnet},
		{in: " Mainnet ", want: Mainnet},
		{in: "mainnet-beta", want: Mainnet},
		{in: "testnet", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownNetwork)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplorerTokenURL(t *testing.T) {
	assert.Equal(t,
		"https://solscan.io/token/9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM?cluster=devnet",
		ExplorerTokenURL("", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Devnet),
	)
	assert.Equal(t,
		"https://explorer.example/token/Mint1?cluster=mainnet",
		ExplorerTokenURL("explorer.example", "Mint1", Mainnet),
	)
}
