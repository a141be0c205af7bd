// internal/adapters/out/firestore/mint_ledger_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

const mintLedgerCollection = "token_mints"

// MintLedgerFS stores one document per mint, keyed by mint address.
type MintLedgerFS struct {
	Client *firestore.Client
}

func NewMintLedgerFS(client *firestore.Client) *MintLedgerFS {
	return &MintLedgerFS{Client: client}
}

var _ tokendom.MintLedger = (*MintLedgerFS)(nil)

func (r *MintLedgerFS) col() *firestore.CollectionRef {
	return r.Client.Collection(mintLedgerCollection)
}

// mintDoc keeps the raw supply as a decimal string; Firestore integers are int64.
type mintDoc struct {
	MintAddress string    `firestore:"mintAddress"`
	Owner       string    `firestore:"owner"`
	WalletType  string    `firestore:"walletType"`
	Name        string    `firestore:"tokenName"`
	Symbol      string    `firestore:"tokenSymbol"`
	Decimals    int64     `firestore:"decimals"`
	RawSupply   string    `firestore:"totalSupply"`
	Signature   string    `firestore:"transactionSignature"`
	Network     string    `firestore:"network"`
	ExplorerURL string    `firestore:"explorerUrl"`
	MetadataURI string    `firestore:"metadataUri,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func toMintDoc(rec tokendom.MintRecord) mintDoc {
	return mintDoc{
		MintAddress: rec.MintAddress,
		Owner:       rec.Owner,
		WalletType:  string(rec.WalletType),
		Name:        rec.Name,
		Symbol:      rec.Symbol,
		Decimals:    int64(rec.Decimals),
		RawSupply:   strconv.FormatUint(rec.RawSupply, 10),
		Signature:   rec.Signature,
		Network:     string(rec.Network),
		ExplorerURL: rec.ExplorerURL,
		MetadataURI: rec.MetadataURI,
		CreatedAt:   rec.CreatedAt.UTC(),
	}
}

func (d mintDoc) record() (tokendom.MintRecord, error) {
	raw, err := strconv.ParseUint(d.RawSupply, 10, 64)
	if err != nil {
		return tokendom.MintRecord{}, err
	}
	return tokendom.MintRecord{
		MintAddress: d.MintAddress,
		Owner:       d.Owner,
		WalletType:  walletdom.Type(d.WalletType),
		Name:        d.Name,
		Symbol:      d.Symbol,
		Decimals:    uint8(d.Decimals),
		RawSupply:   raw,
		Signature:   d.Signature,
		Network:     network.Network(d.Network),
		ExplorerURL: d.ExplorerURL,
		MetadataURI: d.MetadataURI,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

func (r *MintLedgerFS) Save(ctx context.Context, rec tokendom.MintRecord) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id := strings.TrimSpace(rec.MintAddress)
	if id == "" {
		return errors.New("mint ledger: mint address is empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	// mint addresses are unique; a retry of the same record is not an error
	_, err := r.col().Doc(id).Create(ctx, toMintDoc(rec))
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// ListByOwner filters by owner in Firestore and sorts in memory to avoid a
// composite index.
func (r *MintLedgerFS) ListByOwner(ctx context.Context, owner string, limit int) ([]tokendom.MintRecord, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().Where("owner", "==", strings.TrimSpace(owner)).Documents(ctx)
	defer it.Stop()

	var out []tokendom.MintRecord
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d mintDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		rec, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortNewestFirst(recs []tokendom.MintRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].MintAddress > recs[j].MintAddress
	})
}
