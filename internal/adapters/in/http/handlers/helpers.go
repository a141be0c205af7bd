// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	usecase "tokencreator/internal/application/usecase"
	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps usecase and domain errors to status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrCreationInFlight),
		errors.Is(err, usecase.ErrNetworkLocked),
		errors.Is(err, usecase.ErrIntentInFlight):
		status = http.StatusConflict
	case errors.Is(err, walletdom.ErrUnknownType),
		errors.Is(err, network.ErrUnknownNetwork),
		errors.Is(err, tokendom.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrLedgerDisabled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s 500 err=%v", r.Method, r.URL.Path, err)
	}
	writeError(w, status, err.Error())
}

// decodeJSON reads a bounded JSON body. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
