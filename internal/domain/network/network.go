// internal/domain/network/network.go
package network

import (
	"errors"
	"net/url"
	"strings"
)

// Network is a Solana cluster the user can mint on.
type Network string

const (
	Devnet  Network = "devnet"
	Mainnet Network = "mainnet"
)

// Default is the cluster selected before the user picks one.
const Default = Devnet

// DefaultExplorerHost is used when no explorer host is configured.
const DefaultExplorerHost = "solscan.io"

var ErrUnknownNetwork = errors.New("network: unknown network")

// Parse accepts "devnet" and "mainnet" (also "mainnet-beta").
func Parse(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "devnet":
		return Devnet, nil
	case "mainnet", "mainnet-beta":
		return Mainnet, nil
	default:
		return "", ErrUnknownNetwork
	}
}

func (n Network) Valid() bool { return n == Devnet || n == Mainnet }

func (n Network) String() string { return string(n) }

// ExplorerTokenURL renders https://<host>/token/<mint>?cluster=<network>.
func ExplorerTokenURL(host, mintAddress string, n Network) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultExplorerHost
	}
	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/token/" + mintAddress,
		RawQuery: url.Values{"cluster": []string{string(n)}}.Encode(),
	}
	return u.String()
}
