// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "tokencreator/internal/adapters/in/http"
	"tokencreator/internal/adapters/in/http/middleware"
	appcfg "tokencreator/internal/infra/config"
	"tokencreator/internal/platform/di"
)

const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := appcfg.Load()

	// stdout + LOG_FILE
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644); err == nil {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
			defer f.Close()
			log.Printf("[boot] log output = stdout + %s", cfg.LogFile)
		} else {
			log.Printf("[boot] WARN: could not open %s: %v", cfg.LogFile, err)
		}
	}

	// healthz stays up even if DI fails
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	cont, err := di.Build(ctx, cfg, nil)
	if err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		defer cont.Close()

		deps := httpin.RouterDeps{
			Sessions:           cont.Sessions,
			Wallets:            cont.Wallets,
			History:            cont.History,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		}
		if cont.Infra.FirebaseAuth != nil {
			deps.Auth = &middleware.AuthMiddleware{FirebaseAuth: cont.Infra.FirebaseAuth}
			log.Printf("[boot] auth required on /sessions and /mints")
		}
		mux.Handle("/", httpin.NewRouter(deps))

		go cont.Sessions.RunSweeper(ctx, sweepInterval)
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// long enough for POST /sessions/{id}/tokens?wait=true
		WriteTimeout: cfg.CreateTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		log.Printf("[boot] shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
