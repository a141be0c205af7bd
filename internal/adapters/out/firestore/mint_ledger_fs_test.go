package firestore

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

func TestMintDoc_KeepsFullU64Supply(t *testing.T) {
	rec := tokendom.MintRecord{
		MintAddress: "Mint1",
		Owner:       "Owner1",
		WalletType:  walletdom.TypeSolflare,
		Decimals:    9,
		RawSupply:   math.MaxUint64,
		Network:     network.Mainnet,
		CreatedAt:   time.Date(2026, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600)),
	}

	d := toMintDoc(rec)
	assert.Equal(t, "18446744073709551615", d.RawSupply)

	got, err := d.record()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got.RawSupply)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestSortNewestFirst(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := []tokendom.MintRecord{
		{MintAddress: "a", CreatedAt: t0},
		{MintAddress: "b", CreatedAt: t0.Add(time.Hour)},
		{MintAddress: "c", CreatedAt: t0},
	}
	sortNewestFirst(recs)
	assert.Equal(t, "b", recs[0].MintAddress)
	assert.Equal(t, "c", recs[1].MintAddress)
	assert.Equal(t, "a", recs[2].MintAddress)
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestMintLedgerFS_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "tokencreator-test")
	require.NoError(t, err)
	defer client.Close()

	ledger := NewMintLedgerFS(client)
	owner := "Owner-" + time.Now().Format("150405.000000")
	t0 := time.Now().UTC().Truncate(time.Millisecond)

	for i, mint := range []string{"m1-" + owner, "m2-" + owner} {
		require.NoError(t, ledger.Save(ctx, tokendom.MintRecord{
			MintAddress: mint, Owner: owner, RawSupply: 1000, CreatedAt: t0.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, ledger.Save(ctx, tokendom.MintRecord{MintAddress: "m1-" + owner, Owner: owner, RawSupply: 1}))

	got, err := ledger.ListByOwner(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m2-"+owner, got[0].MintAddress)
	assert.Equal(t, uint64(1000), got[1].RawSupply)
}
