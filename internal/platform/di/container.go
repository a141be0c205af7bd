// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"

	dbadapter "tokencreator/internal/adapters/out/db"
	fsadapter "tokencreator/internal/adapters/out/firestore"
	gcsadapter "tokencreator/internal/adapters/out/gcs"
	usecase "tokencreator/internal/application/usecase"
	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	arweaveinfra "tokencreator/internal/infra/arweave"
	appcfg "tokencreator/internal/infra/config"
	solanainfra "tokencreator/internal/infra/solana"
	walletinfra "tokencreator/internal/infra/wallet"
)

// Container is the bundle main uses.
type Container struct {
	Config *appcfg.Config
	Infra  *Infra

	Keys         walletinfra.KeySource
	Approver     walletinfra.Approver
	Wallets      *walletinfra.Registry
	Orchestrator *usecase.TokenCreationOrchestrator
	History      *usecase.MintHistoryUsecase
	Sessions     *usecase.SessionStore
}

// Build wires every component. approver stands in for the wallet's popup;
// nil approves everything.
func Build(ctx context.Context, cfg *appcfg.Config, approver walletinfra.Approver) (*Container, error) {
	inf, err := NewInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Infra: inf, Approver: approver}

	ledger, err := c.mintLedger(ctx)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}

	c.Keys = c.keySource()
	// Availability probes only; intents go through per-session registries.
	c.Wallets = walletinfra.NewRegistry(c.Keys, nil)

	executor := solanainfra.NewMintExecutorSolana(cfg.ConfirmPollInterval)
	c.Orchestrator = usecase.NewTokenCreationOrchestrator(
		solanainfra.NewEndpoints(cfg.DevnetRPCURL, cfg.MainnetRPCURL),
		executor,
		c.metadataUploader(),
		ledger,
		cfg.ExplorerHost,
	)
	c.History = usecase.NewMintHistoryUsecase(ledger)
	c.Sessions = usecase.NewSessionStore(c.NewMachine, cfg.SessionIdleTTL)

	return c, nil
}

// NewMachine builds one AppStateMachine with its own wallet registry so
// provider handles are never shared between users.
func (c *Container) NewMachine() *usecase.AppStateMachine {
	reg := walletinfra.NewRegistry(c.Keys, c.Approver)
	return usecase.NewAppStateMachine(
		usecase.NewConnectionController(reg),
		usecase.NewNetworkSelector(network.Default),
		c.Orchestrator,
		c.Config.CreateTimeout,
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}

func (c *Container) keySource() walletinfra.KeySource {
	src := walletinfra.MultiKeySource{walletinfra.NewDirKeySource(c.Config.WalletKeypairDir)}
	if c.Infra.SecretManager != nil {
		src = append(src, walletinfra.NewSecretManagerKeySource(
			c.Infra.SecretManager, c.Config.GCPProjectID, c.Config.WalletSecretPrefix,
		))
		log.Printf("[di] wallet keypairs: dir=%s + secret manager prefix=%s", c.Config.WalletKeypairDir, c.Config.WalletSecretPrefix)
	} else {
		log.Printf("[di] wallet keypairs: dir=%s", c.Config.WalletKeypairDir)
	}
	return src
}

// mintLedger returns nil when no backend is configured.
func (c *Container) mintLedger(ctx context.Context) (tokendom.MintLedger, error) {
	switch {
	case c.Infra.Firestore != nil:
		log.Printf("[di] mint ledger: firestore")
		return fsadapter.NewMintLedgerFS(c.Infra.Firestore.Client), nil
	case c.Infra.DB != nil:
		pg := dbadapter.NewMintLedgerPG(c.Infra.DB.Client)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("di: mint ledger schema: %w", err)
		}
		log.Printf("[di] mint ledger: postgres")
		return pg, nil
	}
	return nil, nil
}

// metadataUploader returns nil when neither Arweave nor GCS is configured.
func (c *Container) metadataUploader() tokendom.MetadataUploader {
	switch {
	case c.Config.ArweaveBaseURL != "":
		log.Printf("[di] metadata uploader: arweave baseURL=%s", c.Config.ArweaveBaseURL)
		return arweaveinfra.NewHTTPUploader(c.Config.ArweaveBaseURL, c.Config.ArweaveAPIKey)
	case c.Infra.GCS != nil:
		log.Printf("[di] metadata uploader: gcs bucket=%s", c.Config.MetadataBucket)
		return gcsadapter.NewTokenMetadataRepositoryGCS(c.Infra.GCS, c.Config.MetadataBucket, c.Config.MetadataPublicBaseURL)
	}
	log.Printf("[di] metadata uploader: none (tokens need an explicit metadataUri)")
	return nil
}
