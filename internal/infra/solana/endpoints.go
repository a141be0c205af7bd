// internal/infra/solana/endpoints.go
package solana

import (
	"strings"

	"github.com/blocto/solana-go-sdk/rpc"

	"tokencreator/internal/domain/network"
	"tokencreator/internal/domain/token"
)

// Endpoints maps each cluster to its RPC URL.
type Endpoints struct {
	Devnet  string
	Mainnet string
}

var _ token.EndpointResolver = Endpoints{}

// NewEndpoints falls back to the public cluster endpoints for empty values.
func NewEndpoints(devnet, mainnet string) Endpoints {
	d := strings.TrimSpace(devnet)
	if d == "" {
		d = rpc.DevnetRPCEndpoint
	}
	m := strings.TrimSpace(mainnet)
	if m == "" {
		m = rpc.MainnetRPCEndpoint
	}
	return Endpoints{Devnet: d, Mainnet: m}
}

func (e Endpoints) Resolve(n network.Network) (string, error) {
	switch n {
	case network.Devnet:
		return e.Devnet, nil
	case network.Mainnet:
		return e.Mainnet, nil
	}
	return "", network.ErrUnknownNetwork
}
