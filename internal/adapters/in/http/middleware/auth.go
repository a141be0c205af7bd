// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier is satisfied by *fbauth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// use a dedicated key type for context values
type ctxKey struct{ name string }

var ctxKeyUID = ctxKey{name: "uid"}

// AuthMiddleware checks "Authorization: Bearer <ID_TOKEN>" against Firebase
// and puts the uid in the request context.
type AuthMiddleware struct {
	FirebaseAuth TokenVerifier
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "auth middleware not initialized")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Printf("[auth] verify failed path=%s err=%v", r.URL.Path, err)
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			writeJSONError(w, http.StatusUnauthorized, "invalid uid in token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UIDFromContext returns the Firebase uid set by AuthMiddleware.
func UIDFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxKeyUID).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
