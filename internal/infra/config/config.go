// internal/infra/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger backends for created tokens.
const (
	LedgerNone      = "none"
	LedgerFirestore = "firestore"
	LedgerPostgres  = "postgres"
)

// Config holds every environment setting of the api and tokenctl binaries.
type Config struct {
	Port               string
	CORSAllowedOrigins []string

	// Solana
	DevnetRPCURL        string
	MainnetRPCURL       string
	ExplorerHost        string
	CreateTimeout       time.Duration
	ConfirmPollInterval time.Duration

	// Wallet key sources
	WalletKeypairDir   string
	WalletSecretPrefix string

	// GCP
	GCPProjectID string
	GCPCreds     string

	// Token metadata hosting
	MetadataBucket        string
	MetadataPublicBaseURL string
	ArweaveBaseURL        string
	ArweaveAPIKey         string

	// Mint ledger
	MintLedger  string
	DatabaseURL string

	// Firebase Auth
	FirebaseProjectID string
	AuthRequired      bool

	SessionIdleTTL time.Duration
	LogFile        string
}

// Load reads the environment.
func Load() *Config {
	project := os.Getenv("GCP_PROJECT_ID")

	cfg := &Config{
		Port:               getenvDefault("PORT", "8080"),
		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),

		DevnetRPCURL:        os.Getenv("SOLANA_DEVNET_RPC_URL"),
		MainnetRPCURL:       os.Getenv("SOLANA_MAINNET_RPC_URL"),
		ExplorerHost:        getenvDefault("EXPLORER_HOST", "solscan.io"),
		CreateTimeout:       getenvDuration("CREATE_TIMEOUT", 90*time.Second),
		ConfirmPollInterval: getenvDuration("CONFIRM_POLL_INTERVAL", 2*time.Second),

		WalletKeypairDir:   getenvDefault("WALLET_KEYPAIR_DIR", defaultKeypairDir()),
		WalletSecretPrefix: getenvDefault("WALLET_SECRET_PREFIX", "wallet-keypair-"),

		GCPProjectID: project,
		GCPCreds:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		MetadataBucket:        os.Getenv("METADATA_BUCKET"),
		MetadataPublicBaseURL: os.Getenv("METADATA_PUBLIC_BASE_URL"),
		ArweaveBaseURL:        os.Getenv("ARWEAVE_BASE_URL"),
		ArweaveAPIKey:         os.Getenv("ARWEAVE_API_KEY"),

		MintLedger:  strings.ToLower(getenvDefault("MINT_LEDGER", LedgerNone)),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// FIREBASE_PROJECT_ID falls back to the GCP project
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", project),
		AuthRequired:      getenvBool("AUTH_REQUIRED", false),

		SessionIdleTTL: getenvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	switch cfg.MintLedger {
	case LedgerNone, LedgerFirestore, LedgerPostgres:
	default:
		log.Printf("[config] unknown MINT_LEDGER=%q, falling back to %s", cfg.MintLedger, LedgerNone)
		cfg.MintLedger = LedgerNone
	}

	return cfg
}

func defaultKeypairDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return home + "/.config/tokencreator/wallets"
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
