package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

func TestMintLedgerPG_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	rec := tokendom.MintRecord{
		MintAddress: "Mint1",
		Owner:       "Owner1",
		WalletType:  walletdom.TypePhantom,
		Name:        "Foo",
		Symbol:      "FOO",
		Decimals:    9,
		RawSupply:   18_446_744_073_709_551_615,
		Signature:   "sig",
		Network:     network.Devnet,
		ExplorerURL: "https://solscan.io/token/Mint1?cluster=devnet",
		CreatedAt:   at,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO token_mints")).
		WithArgs("Mint1", "Owner1", "phantom", "Foo", "FOO", int16(9), "18446744073709551615",
			"sig", "devnet", rec.ExplorerURL, "", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewMintLedgerPG(db).Save(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMintLedgerPG_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	cols := []string{
		"mint_address", "owner", "wallet_type", "token_name", "token_symbol", "decimals", "total_supply",
		"transaction_signature", "network", "explorer_url", "metadata_uri", "created_at",
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM token_mints")).
		WithArgs("Owner1", 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("M2", "Owner1", "solflare", "Bar", "BAR", int16(0), "7", "s2", "mainnet", "u2", "", at.Add(time.Hour)).
			AddRow("M1", "Owner1", "phantom", "Foo", "FOO", int16(6), "1000000000", "s1", "devnet", "u1", "ipfs://m", at))

	got, err := NewMintLedgerPG(db).ListByOwner(context.Background(), " Owner1 ", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "M2", got[0].MintAddress)
	assert.Equal(t, walletdom.TypeSolflare, got[0].WalletType)
	assert.Equal(t, network.Mainnet, got[0].Network)
	assert.Equal(t, uint64(1_000_000_000), got[1].RawSupply)
	assert.Equal(t, uint8(6), got[1].Decimals)
	assert.Equal(t, "ipfs://m", got[1].MetadataURI)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMintLedgerPG_ListRejectsCorruptSupply(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM token_mints").
		WillReturnRows(sqlmock.NewRows([]string{
			"mint_address", "owner", "wallet_type", "token_name", "token_symbol", "decimals", "total_supply",
			"transaction_signature", "network", "explorer_url", "metadata_uri", "created_at",
		}).AddRow("M1", "O", "phantom", "Foo", "FOO", int16(0), "-1", "s", "devnet", "u", "", time.Now()))

	_, err = NewMintLedgerPG(db).ListByOwner(context.Background(), "O", 0)
	assert.Error(t, err)
}
