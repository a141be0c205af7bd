// internal/domain/wallet/entity.go
package wallet

import (
	"strings"

	"github.com/mr-tron/base58"
)

// Type identifies a supported browser wallet.
type Type string

const (
	TypePhantom  Type = "phantom"
	TypeSolflare Type = "solflare"
	TypeBackpack Type = "backpack"
)

// Descriptor is the static catalogue entry of a wallet.
type Descriptor struct {
	Type       Type   `json:"id"`
	Name       string `json:"name"`
	InstallURL string `json:"installUrl"`
}

var descriptors = []Descriptor{
	{Type: TypePhantom, Name: "Phantom", InstallURL: "https://phantom.app/"},
	{Type: TypeSolflare, Name: "Solflare", InstallURL: "https://solflare.com/"},
	{Type: TypeBackpack, Name: "Backpack", InstallURL: "https://backpack.app/"},
}

// Descriptors returns the wallets in display order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Describe returns the catalogue entry for t.
func Describe(t Type) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Type == t {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ParseType accepts a wallet id case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Describe(t); !ok {
		return "", ErrUnknownType
	}
	return t, nil
}

func (t Type) String() string { return string(t) }

// Availability is a catalogue entry with its installation state.
type Availability struct {
	Descriptor
	Installed bool `json:"installed"`
}

// Session is the single active wallet connection.
type Session struct {
	WalletType Type   `json:"walletType"`
	Address    string `json:"address"`
}

// NewSession validates the address as a base58 encoded 32-byte public key.
func NewSession(t Type, address string) (Session, error) {
	if _, ok := Describe(t); !ok {
		return Session{}, ErrUnknownType
	}
	address = strings.TrimSpace(address)
	if !IsValidAddress(address) {
		return Session{}, ErrInvalidAddress
	}
	return Session{WalletType: t, Address: address}, nil
}

// IsValidAddress reports whether s decodes to a 32-byte Solana public key.
func IsValidAddress(s string) bool {
	if s == "" {
		return false
	}
	b, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(b) == 32
}
