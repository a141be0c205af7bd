package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "tokencreator/internal/domain/token"
)

func TestMintHistory_ListByOwner(t *testing.T) {
	owner := testAddress(70)
	ledger := &fakeLedger{saved: []tokendom.MintRecord{
		{MintAddress: "a", Owner: owner},
		{MintAddress: "b", Owner: testAddress(71)},
		{MintAddress: "c", Owner: owner},
	}}
	u := NewMintHistoryUsecase(ledger)
	ctx := context.Background()

	recs, err := u.ListByOwner(ctx, owner, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, ledger.limit)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].MintAddress)

	_, err = u.ListByOwner(ctx, owner, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, ledger.limit)

	recs, err = u.ListByOwner(ctx, testAddress(72), 5)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = u.ListByOwner(ctx, "not base58 0OIl", 5)
	assert.ErrorIs(t, err, tokendom.ErrValidation)

	_, err = NewMintHistoryUsecase(nil).ListByOwner(ctx, owner, 5)
	assert.ErrorIs(t, err, ErrLedgerDisabled)
}
