package token

import (
	"context"
	"errors"
	"time"

	"tokencreator/internal/domain/network"
	"tokencreator/internal/domain/wallet"
)

// ========================================
// Chain
// ========================================

// MintPlan is the on-chain shape of one creation.
type MintPlan struct {
	Name        string
	Symbol      string
	Decimals    uint8
	Amount      uint64 // base units minted to the owner's associated token account
	MetadataURI string
}

// MintReceipt is returned once the transaction is confirmed.
type MintReceipt struct {
	MintAddress string
	Signature   string
}

// EndpointResolver maps a cluster to its RPC endpoint.
type EndpointResolver interface {
	Resolve(n network.Network) (string, error)
}

// MintExecutor creates the mint, the owner's token account, mints the supply
// and writes metadata in a single transaction signed through signer.
type MintExecutor interface {
	Execute(ctx context.Context, endpoint string, plan MintPlan, signer wallet.Provider) (MintReceipt, error)
}

// ========================================
// Metadata hosting
// ========================================

// MetadataDocument is the off-chain JSON referenced by the metadata account.
type MetadataDocument struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// MetadataUploader stores a document and returns its public URI.
type MetadataUploader interface {
	Upload(ctx context.Context, doc MetadataDocument) (string, error)
}

// ========================================
// Ledger
// ========================================

var ErrRecordNotFound = errors.New("token: mint record not found")

// MintRecord is the persisted form of a Result.
type MintRecord struct {
	MintAddress string          `json:"mintAddress"`
	Owner       string          `json:"owner"`
	WalletType  wallet.Type     `json:"walletType"`
	Name        string          `json:"tokenName"`
	Symbol      string          `json:"tokenSymbol"`
	Decimals    uint8           `json:"decimals"`
	RawSupply   uint64          `json:"totalSupply,string"`
	Signature   string          `json:"transactionSignature"`
	Network     network.Network `json:"network"`
	ExplorerURL string          `json:"explorerUrl"`
	MetadataURI string          `json:"metadataUri,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewMintRecord flattens a result for storage.
func NewMintRecord(res Result, session wallet.Session, at time.Time) MintRecord {
	return MintRecord{
		MintAddress: res.MintAddress,
		Owner:       session.Address,
		WalletType:  session.WalletType,
		Name:        res.TokenName,
		Symbol:      res.TokenSymbol,
		Decimals:    res.Decimals,
		RawSupply:   res.TotalSupply,
		Signature:   res.TransactionSignature,
		Network:     res.Network,
		ExplorerURL: res.ExplorerURL,
		MetadataURI: res.MetadataURI,
		CreatedAt:   at.UTC(),
	}
}

// MintLedger persists created tokens.
//
// Adapter examples:
//   - Firestore implementation
//   - PostgreSQL implementation
type MintLedger interface {
	Save(ctx context.Context, rec MintRecord) error

	// ListByOwner returns newest first; limit <= 0 uses the adapter default.
	ListByOwner(ctx context.Context, owner string, limit int) ([]MintRecord, error)
}
