package token

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tokencreator/internal/domain/network"
)

// Limits of the Metaplex metadata account.
const (
	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200

	// MaxDecimals is the u8 range of an SPL mint; wallets conventionally use 0-9.
	MaxDecimals = math.MaxUint8
)

// Request is what the user submits from the creation form.
type Request struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	TotalSupply uint64 `json:"totalSupply"`

	// Optional metadata.
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	MetadataURI string `json:"metadataUri,omitempty"`
}

// Normalize trims user input.
func (r Request) Normalize() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.MetadataURI = strings.TrimSpace(r.MetadataURI)
	return r
}

// Validate checks a normalized request and returns the first *ValidationError.
func (r Request) Validate() error {
	switch {
	case r.Name == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case len(r.Name) > MaxNameLen:
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d bytes", MaxNameLen)}
	case !utf8.ValidString(r.Name):
		return &ValidationError{Field: "name", Reason: "must be valid UTF-8"}
	case r.Symbol == "":
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	case len(r.Symbol) > MaxSymbolLen:
		return &ValidationError{Field: "symbol", Reason: fmt.Sprintf("must be at most %d bytes", MaxSymbolLen)}
	case r.Decimals < 0 || r.Decimals > MaxDecimals:
		return &ValidationError{Field: "decimals", Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimals)}
	case r.TotalSupply == 0:
		return &ValidationError{Field: "totalSupply", Reason: "must be a positive integer"}
	case len(r.MetadataURI) > MaxURILen:
		return &ValidationError{Field: "metadataUri", Reason: fmt.Sprintf("must be at most %d bytes", MaxURILen)}
	}
	if _, err := BaseUnits(r.TotalSupply, r.Decimals); err != nil {
		return err
	}
	return nil
}

// ParseSupply parses a decimal integer supply as typed in a form.
func ParseSupply(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, &ValidationError{Field: "totalSupply", Reason: "must be a positive integer"}
	}
	return n, nil
}

// RawSupply returns totalSupply × 10^decimals exactly.
func RawSupply(totalSupply uint64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scale.Mul(scale, new(big.Int).SetUint64(totalSupply))
}

// BaseUnits is RawSupply checked against the u64 amount of an SPL mint-to.
func BaseUnits(totalSupply uint64, decimals int) (uint64, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return 0, &ValidationError{Field: "decimals", Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimals)}
	}
	raw := RawSupply(totalSupply, decimals)
	if !raw.IsUint64() {
		return 0, &ValidationError{
			Field:  "totalSupply",
			Reason: fmt.Sprintf("%d at %d decimals exceeds the maximum of %d base units", totalSupply, decimals, uint64(math.MaxUint64)),
		}
	}
	return raw.Uint64(), nil
}

var displayPrinter = message.NewPrinter(language.English)

// DisplaySupply renders raw base units as a grouped human amount, e.g. "1,000" or "1,000.5".
func DisplaySupply(raw uint64, decimals uint8) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(new(big.Int).SetUint64(raw), scale, new(big.Int))

	out := displayPrinter.Sprintf("%d", whole.Uint64())
	if frac.Sign() == 0 {
		return out
	}
	f := frac.String()
	if pad := int(decimals) - len(f); pad > 0 {
		f = strings.Repeat("0", pad) + f
	}
	return out + "." + strings.TrimRight(f, "0")
}

// Result is the immutable outcome of one successful creation.
type Result struct {
	MintAddress          string          `json:"mintAddress"`
	TokenName            string          `json:"tokenName"`
	TokenSymbol          string          `json:"tokenSymbol"`
	TotalSupply          uint64          `json:"totalSupply,string"`
	DisplaySupply        string          `json:"displaySupply"`
	Decimals             uint8           `json:"decimals"`
	TransactionSignature string          `json:"transactionSignature"`
	ExplorerURL          string          `json:"explorerUrl"`
	Network              network.Network `json:"network"`
	MetadataURI          string          `json:"metadataUri,omitempty"`
}
