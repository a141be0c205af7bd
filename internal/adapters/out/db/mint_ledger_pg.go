// internal/adapters/out/db/mint_ledger_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

// MintLedgerSchema creates the ledger table. total_supply is NUMERIC because
// u64 base units do not fit BIGINT.
const MintLedgerSchema = `
CREATE TABLE IF NOT EXISTS token_mints (
  mint_address          TEXT PRIMARY KEY,
  owner                 TEXT NOT NULL,
  wallet_type           TEXT NOT NULL,
  token_name            TEXT NOT NULL,
  token_symbol          TEXT NOT NULL,
  decimals              SMALLINT NOT NULL,
  total_supply          NUMERIC(20,0) NOT NULL,
  transaction_signature TEXT NOT NULL,
  network               TEXT NOT NULL,
  explorer_url          TEXT NOT NULL,
  metadata_uri          TEXT NOT NULL DEFAULT '',
  created_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS token_mints_owner_created_idx ON token_mints (owner, created_at DESC);
`

// MintLedgerPG is the PostgreSQL implementation of token.MintLedger.
type MintLedgerPG struct {
	DB *sql.DB
}

func NewMintLedgerPG(db *sql.DB) *MintLedgerPG {
	return &MintLedgerPG{DB: db}
}

var _ tokendom.MintLedger = (*MintLedgerPG)(nil)

// EnsureSchema applies MintLedgerSchema.
func (r *MintLedgerPG) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("mint ledger: db is nil")
	}
	_, err := r.DB.ExecContext(ctx, MintLedgerSchema)
	return err
}

func (r *MintLedgerPG) Save(ctx context.Context, rec tokendom.MintRecord) error {
	if r.DB == nil {
		return errors.New("mint ledger: db is nil")
	}
	if strings.TrimSpace(rec.MintAddress) == "" {
		return errors.New("mint ledger: mint address is empty")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT INTO token_mints (
  mint_address, owner, wallet_type, token_name, token_symbol, decimals, total_supply,
  transaction_signature, network, explorer_url, metadata_uri, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (mint_address) DO NOTHING`

	_, err := r.DB.ExecContext(ctx, q,
		rec.MintAddress,
		rec.Owner,
		string(rec.WalletType),
		rec.Name,
		rec.Symbol,
		int16(rec.Decimals),
		strconv.FormatUint(rec.RawSupply, 10),
		rec.Signature,
		string(rec.Network),
		rec.ExplorerURL,
		rec.MetadataURI,
		rec.CreatedAt.UTC(),
	)
	return err
}

func (r *MintLedgerPG) ListByOwner(ctx context.Context, owner string, limit int) ([]tokendom.MintRecord, error) {
	if r.DB == nil {
		return nil, errors.New("mint ledger: db is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT
  mint_address, owner, wallet_type, token_name, token_symbol, decimals, total_supply::text,
  transaction_signature, network, explorer_url, metadata_uri, created_at
FROM token_mints
WHERE owner = $1
ORDER BY created_at DESC, mint_address DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, q, strings.TrimSpace(owner), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tokendom.MintRecord
	for rows.Next() {
		rec, err := scanMintRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanMintRecord(s interface{ Scan(dest ...any) error }) (tokendom.MintRecord, error) {
	var (
		rec        tokendom.MintRecord
		walletType string
		decimals   int16
		supply     string
		net        string
	)
	if err := s.Scan(
		&rec.MintAddress,
		&rec.Owner,
		&walletType,
		&rec.Name,
		&rec.Symbol,
		&decimals,
		&supply,
		&rec.Signature,
		&net,
		&rec.ExplorerURL,
		&rec.MetadataURI,
		&rec.CreatedAt,
	); err != nil {
		return tokendom.MintRecord{}, err
	}
	raw, err := strconv.ParseUint(supply, 10, 64)
	if err != nil {
		return tokendom.MintRecord{}, err
	}
	rec.WalletType = walletdom.Type(walletType)
	rec.Decimals = uint8(decimals)
	rec.RawSupply = raw
	rec.Network = network.Network(net)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}
