package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tokencreator/internal/adapters/in/http/handlers"
	"tokencreator/internal/adapters/in/http/middleware"
	usecase "tokencreator/internal/application/usecase"
)

// RouterDeps collects everything main wires into the HTTP layer.
type RouterDeps struct {
	Sessions *usecase.SessionStore
	Wallets  handlers.WalletLister
	History  *usecase.MintHistoryUsecase

	// When set, /sessions and /mints require a Firebase ID token.
	Auth *middleware.AuthMiddleware

	CORSAllowedOrigins []string
}

// NewRouter sets up HTTP routing.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS outermost so panics still carry the headers
	r.Use(middleware.CORS(deps.CORSAllowedOrigins))
	r.Use(middleware.Recover)

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodGet, "/wallets", handlers.NewWalletHandler(deps.Wallets))

	r.Group(func(r chi.Router) {
		if deps.Auth != nil {
			r.Use(deps.Auth.Handler)
		}
		if deps.Sessions != nil {
			r.Route("/sessions", handlers.NewSessionHandler(deps.Sessions).Routes)
		}
		r.Method(http.MethodGet, "/mints", handlers.NewMintHandler(deps.History))
	})

	return r
}
