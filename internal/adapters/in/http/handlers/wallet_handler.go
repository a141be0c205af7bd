package handlers

import (
	"context"
	"net/http"

	walletdom "tokencreator/internal/domain/wallet"
)

// WalletLister reports which wallets are installed on this host.
type WalletLister interface {
	Available(ctx context.Context) []walletdom.Availability
}

// WalletHandler serves GET /wallets.
type WalletHandler struct {
	lister WalletLister
}

func NewWalletHandler(lister WalletLister) http.Handler {
	return &WalletHandler{lister: lister}
}

func (h *WalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.lister == nil {
		writeJSON(w, http.StatusOK, []walletdom.Availability{})
		return
	}
	writeJSON(w, http.StatusOK, h.lister.Available(r.Context()))
}
