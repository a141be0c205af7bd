// internal/adapters/in/http/handlers/session_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	usecase "tokencreator/internal/application/usecase"
	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

// maxSubmitWait bounds ?wait=true on token submission.
const maxSubmitWait = 2 * time.Minute

// SessionHandler exposes one AppStateMachine per client under /sessions.
type SessionHandler struct {
	store *usecase.SessionStore
}

func NewSessionHandler(store *usecase.SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// Routes mounts the session endpoints on r.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Delete("/", h.delete)
		r.Post("/connect", h.connect)
		r.Post("/disconnect", h.disconnect)
		r.Put("/network", h.selectNetwork)
		r.Post("/tokens", h.submit)
		r.Post("/create-another", h.createAnother)
	})
}

type sessionView struct {
	ID string `json:"id"`
	usecase.Snapshot
}

func (h *SessionHandler) machine(w http.ResponseWriter, r *http.Request) (string, *usecase.AppStateMachine, bool) {
	id := chi.URLParam(r, "id")
	m, err := h.store.Get(id)
	if err != nil {
		writeDomainError(w, r, err)
		return "", nil, false
	}
	return id, m, true
}

// POST /sessions
func (h *SessionHandler) create(w http.ResponseWriter, _ *http.Request) {
	id, m := h.store.Create()
	writeJSON(w, http.StatusCreated, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// GET /sessions/{id}
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// DELETE /sessions/{id}
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{id}/connect {"wallet":"phantom"}
func (h *SessionHandler) connect(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var body struct {
		Wallet string `json:"wallet"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := walletdom.ParseType(body.Wallet)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := m.Connect(r.Context(), t); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// POST /sessions/{id}/disconnect
func (h *SessionHandler) disconnect(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	if err := m.Disconnect(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// PUT /sessions/{id}/network {"network":"mainnet"}
func (h *SessionHandler) selectNetwork(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var body struct {
		Network string `json:"network"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	n, err := network.Parse(body.Network)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := m.SelectNetwork(n); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// tokenRequestBody accepts decimals and totalSupply as JSON numbers or
// numeric strings; supplies above 2^53 must be sent as strings by JS clients.
type tokenRequestBody struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    json.Number `json:"decimals"`
	TotalSupply json.Number `json:"totalSupply"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	MetadataURI string      `json:"metadataUri"`
}

func (b tokenRequestBody) toRequest() (tokendom.Request, error) {
	decimals, err := strconv.Atoi(strings.TrimSpace(b.Decimals.String()))
	if err != nil {
		return tokendom.Request{}, &tokendom.ValidationError{Field: "decimals", Reason: "must be an integer"}
	}
	supply, err := tokendom.ParseSupply(b.TotalSupply.String())
	if err != nil {
		return tokendom.Request{}, err
	}
	return tokendom.Request{
		Name:        b.Name,
		Symbol:      b.Symbol,
		Decimals:    decimals,
		TotalSupply: supply,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		MetadataURI: b.MetadataURI,
	}, nil
}

// POST /sessions/{id}/tokens
// Answers 202 with phase "creating"; ?wait=true blocks until the attempt
// resolves and answers 200.
func (h *SessionHandler) submit(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var body tokenRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	done, err := m.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		ctx, cancel := context.WithTimeout(r.Context(), maxSubmitWait)
		defer cancel()
		select {
		case <-done:
			writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
			return
		case <-ctx.Done():
		}
	}
	writeJSON(w, http.StatusAccepted, sessionView{ID: id, Snapshot: m.Snapshot()})
}

// POST /sessions/{id}/create-another
func (h *SessionHandler) createAnother(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	if err := m.CreateAnother(); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView{ID: id, Snapshot: m.Snapshot()})
}
