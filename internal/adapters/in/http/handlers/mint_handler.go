// internal/adapters/in/http/handlers/mint_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "tokencreator/internal/application/usecase"
)

// MintHandler serves GET /mints?owner=<address>&limit=<n>.
type MintHandler struct {
	uc *usecase.MintHistoryUsecase
}

func NewMintHandler(uc *usecase.MintHistoryUsecase) http.Handler {
	return &MintHandler{uc: uc}
}

func (h *MintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	owner := strings.TrimSpace(q.Get("owner"))
	limit := parseIntDefault(q.Get("limit"), 0)

	recs, err := h.uc.ListByOwner(r.Context(), owner, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"owner": owner,
		"items": recs,
	})
}
