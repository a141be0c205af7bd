// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "tokencreator/internal/infra/config"
	"tokencreator/internal/infra/database"
	firestoreinfra "tokencreator/internal/infra/firestore"
)

// Infra owns the external clients. Each one is opened only when the
// configuration needs it.
type Infra struct {
	Config *appcfg.Config

	Firestore     *firestoreinfra.ClientWrapper
	DB            *database.DB
	GCS           *storage.Client
	SecretManager *secretmanager.Client
	FirebaseAuth  *firebaseauth.Client
}

// NewInfra opens clients for the configured features.
// The ledger backend and Firebase Auth (when AUTH_REQUIRED) are strict;
// Secret Manager and GCS are best-effort (warn + continue).
func NewInfra(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}
	inf := &Infra{Config: cfg}

	var clientOpts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.GCPCreds); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di.infra] using credentials file %s", redactPath(credFile))
	}

	// 1) Mint ledger backend (strict)
	switch cfg.MintLedger {
	case appcfg.LedgerFirestore:
		fs, err := firestoreinfra.NewClient(ctx, cfg.GCPProjectID, cfg.GCPCreds)
		if err != nil {
			return nil, fmt.Errorf("di.infra: firestore ledger: %w", err)
		}
		inf.Firestore = fs
	case appcfg.LedgerPostgres:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("di.infra: postgres ledger: %w", err)
		}
		inf.DB = db
	default:
		log.Printf("[di.infra] mint ledger disabled (MINT_LEDGER=%s)", cfg.MintLedger)
	}

	// 2) Secret Manager for wallet keypairs (best-effort)
	if cfg.GCPProjectID != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: secretmanager.NewClient failed: %v (secret wallets disabled)", err)
		} else {
			inf.SecretManager = sm
		}
	}

	// 3) GCS for metadata documents (best-effort; Arweave wins when both are set)
	if cfg.MetadataBucket != "" && cfg.ArweaveBaseURL == "" {
		gcs, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: storage.NewClient failed: %v (metadata upload disabled)", err)
		} else {
			inf.GCS = gcs
		}
	}

	// 4) Firebase Auth (strict when required)
	if cfg.AuthRequired {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: firebase app: %w", err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: firebase auth: %w", err)
		}
		inf.FirebaseAuth = authClient
		log.Printf("[di.infra] Firebase Auth initialized project=%s", cfg.FirebaseProjectID)
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

// redactPath keeps only the last path segment.
func redactPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
