// internal/application/usecase/mint_history_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

var ErrLedgerDisabled = errors.New("mint history: ledger is not configured")

// MintHistoryUsecase lists tokens created by a wallet.
type MintHistoryUsecase struct {
	ledger tokendom.MintLedger
}

func NewMintHistoryUsecase(ledger tokendom.MintLedger) *MintHistoryUsecase {
	return &MintHistoryUsecase{ledger: ledger}
}

// ListByOwner returns newest first. limit is clamped to 1..100 (0 means 20).
func (u *MintHistoryUsecase) ListByOwner(ctx context.Context, owner string, limit int) ([]tokendom.MintRecord, error) {
	if u == nil || u.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	owner = strings.TrimSpace(owner)
	if !walletdom.IsValidAddress(owner) {
		return nil, &tokendom.ValidationError{Field: "owner", Reason: "must be a base58 wallet address"}
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	recs, err := u.ledger.ListByOwner(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []tokendom.MintRecord{}
	}
	return recs, nil
}
