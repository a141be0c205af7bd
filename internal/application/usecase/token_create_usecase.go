// internal/application/usecase/token_create_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

const ledgerSaveTimeout = 10 * time.Second

// TokenCreationOrchestrator turns a validated request into an on-chain mint.
// It reads the session and network it is given and never changes them.
type TokenCreationOrchestrator struct {
	endpoints    tokendom.EndpointResolver
	executor     tokendom.MintExecutor
	uploader     tokendom.MetadataUploader // optional
	ledger       tokendom.MintLedger       // optional
	explorerHost string

	now func() time.Time
}

// NewTokenCreationOrchestrator wires the orchestrator. uploader and ledger may be nil.
func NewTokenCreationOrchestrator(
	endpoints tokendom.EndpointResolver,
	executor tokendom.MintExecutor,
	uploader tokendom.MetadataUploader,
	ledger tokendom.MintLedger,
	explorerHost string,
) *TokenCreationOrchestrator {
	return &TokenCreationOrchestrator{
		endpoints:    endpoints,
		executor:     executor,
		uploader:     uploader,
		ledger:       ledger,
		explorerHost: explorerHost,
		now:          time.Now,
	}
}

// Create runs one creation attempt. Every error matches one of
// tokendom.ErrSessionExpired, ErrValidation, ErrNetworkUnreachable,
// ErrUserRejectedSignature or ErrTransactionFailed.
func (o *TokenCreationOrchestrator) Create(
	ctx context.Context,
	req tokendom.Request,
	session walletdom.Session,
	signer walletdom.Provider,
	n network.Network,
) (tokendom.Result, error) {
	// 1) the wallet must still be the one that connected
	if session.Address == "" || signer == nil ||
		signer.Type() != session.WalletType ||
		signer.PublicKey() != session.Address {
		log.Printf("[token_create] session expired wallet=%s address=%s", session.WalletType, maskShort(session.Address))
		return tokendom.Result{}, tokendom.ErrSessionExpired
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return tokendom.Result{}, err
	}
	amount, err := tokendom.BaseUnits(req.TotalSupply, req.Decimals)
	if err != nil {
		return tokendom.Result{}, err
	}

	// 2) endpoint
	if o.endpoints == nil || o.executor == nil {
		return tokendom.Result{}, &tokendom.TransactionFailedError{Reason: "token creation is not configured"}
	}
	endpoint, err := o.endpoints.Resolve(n)
	if err != nil {
		return tokendom.Result{}, &tokendom.ValidationError{Field: "network", Reason: err.Error()}
	}

	// 3) metadata + mint
	metadataURI := o.metadataURI(ctx, req)
	plan := tokendom.MintPlan{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Decimals:    uint8(req.Decimals),
		Amount:      amount,
		MetadataURI: metadataURI,
	}

	log.Printf(
		"[token_create] start wallet=%s owner=%s network=%s symbol=%s decimals=%d amount=%d",
		session.WalletType, maskShort(session.Address), n, plan.Symbol, plan.Decimals, plan.Amount,
	)

	// 4) confirmation happens inside the executor
	receipt, err := o.executor.Execute(ctx, endpoint, plan, signer)
	if err != nil {
		err = normalizeCreateError(err)
		log.Printf("[token_create] FAILED symbol=%s network=%s err=%v", plan.Symbol, n, err)
		return tokendom.Result{}, err
	}

	// 5) result
	res := tokendom.Result{
		MintAddress:          receipt.MintAddress,
		TokenName:            plan.Name,
		TokenSymbol:          plan.Symbol,
		TotalSupply:          plan.Amount,
		DisplaySupply:        tokendom.DisplaySupply(plan.Amount, plan.Decimals),
		Decimals:             plan.Decimals,
		TransactionSignature: receipt.Signature,
		ExplorerURL:          network.ExplorerTokenURL(o.explorerHost, receipt.MintAddress, n),
		Network:              n,
		MetadataURI:          metadataURI,
	}

	log.Printf("[token_create] OK mint=%s tx=%s network=%s", maskShort(res.MintAddress), maskShort(res.TransactionSignature), n)

	o.record(ctx, res, session)
	return res, nil
}

// metadataURI prefers the caller's URI, then an uploaded document.
// Upload failures are logged and the token is created without a URI.
func (o *TokenCreationOrchestrator) metadataURI(ctx context.Context, req tokendom.Request) string {
	if req.MetadataURI != "" || o.uploader == nil {
		return req.MetadataURI
	}
	uri, err := o.uploader.Upload(ctx, buildMetadataDocument(req))
	if err != nil {
		log.Printf("[token_create] metadata upload FAILED symbol=%s err=%v", req.Symbol, err)
		return ""
	}
	if len(uri) > tokendom.MaxURILen {
		log.Printf("[token_create] metadata uri too long (%d), skipped", len(uri))
		return ""
	}
	return uri
}

// record is best-effort; the token exists on chain either way.
func (o *TokenCreationOrchestrator) record(ctx context.Context, res tokendom.Result, session walletdom.Session) {
	if o.ledger == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerSaveTimeout)
	defer cancel()

	if err := o.ledger.Save(saveCtx, tokendom.NewMintRecord(res, session, o.now())); err != nil {
		log.Printf("[token_create] ledger save FAILED mint=%s err=%v", maskShort(res.MintAddress), err)
	}
}

func normalizeCreateError(err error) error {
	switch {
	case errors.Is(err, tokendom.ErrSessionExpired),
		errors.Is(err, tokendom.ErrValidation),
		errors.Is(err, tokendom.ErrNetworkUnreachable),
		errors.Is(err, tokendom.ErrUserRejectedSignature),
		errors.Is(err, tokendom.ErrTransactionFailed):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &tokendom.NetworkError{Op: "token creation", Err: err}
	}
	return &tokendom.TransactionFailedError{Reason: err.Error(), Err: err}
}
