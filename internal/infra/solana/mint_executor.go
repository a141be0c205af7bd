// internal/infra/solana/mint_executor.go
package solana

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
)

var (
	ErrMintExecutorNotConfigured = errors.New("mint_executor: not configured")
	ErrMintSignerEmpty           = errors.New("mint_executor: signer is nil")
)

const defaultPollInterval = 2 * time.Second

// MintExecutorSolana builds the token creation transaction, has the connected
// wallet sign it, submits it and waits for confirmation.
type MintExecutorSolana struct {
	PollInterval time.Duration

	pool    *chainPool
	newMint func() types.Account
}

var _ tokendom.MintExecutor = (*MintExecutorSolana)(nil)

func NewMintExecutorSolana(pollInterval time.Duration) *MintExecutorSolana {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &MintExecutorSolana{
		PollInterval: pollInterval,
		pool:         newChainPool(nil),
		newMint:      types.NewAccount,
	}
}

// Execute runs one creation against endpoint:
// - create and initialize the mint (authority = wallet)
// - create the wallet's associated token account
// - mint plan.Amount base units to it
// - create the metadata account
func (e *MintExecutorSolana) Execute(
	ctx context.Context,
	endpoint string,
	plan tokendom.MintPlan,
	signer walletdom.Provider,
) (tokendom.MintReceipt, error) {
	if e == nil || e.pool == nil {
		return tokendom.MintReceipt{}, ErrMintExecutorNotConfigured
	}
	if signer == nil {
		return tokendom.MintReceipt{}, ErrMintSignerEmpty
	}

	ownerAddr := signer.PublicKey()
	if ownerAddr == "" {
		return tokendom.MintReceipt{}, tokendom.ErrSessionExpired
	}
	owner := common.PublicKeyFromString(ownerAddr)

	c, err := e.pool.get(endpoint)
	if err != nil {
		return tokendom.MintReceipt{}, err
	}

	mint := e.newMint()

	ata, _, err := common.FindAssociatedTokenAddress(owner, mint.PublicKey)
	if err != nil {
		return tokendom.MintReceipt{}, &tokendom.TransactionFailedError{Reason: "derive token account", Err: err}
	}
	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return tokendom.MintReceipt{}, &tokendom.TransactionFailedError{Reason: "derive metadata account", Err: err}
	}

	rent, err := c.MintRentExemption(ctx)
	if err != nil {
		return tokendom.MintReceipt{}, classifyRPCError("rent exemption lookup", err)
	}
	blockhash, err := c.LatestBlockhash(ctx)
	if err != nil {
		return tokendom.MintReceipt{}, classifyRPCError("blockhash lookup", err)
	}

	msg := types.NewMessage(types.NewMessageParam{
		FeePayer:        owner,
		RecentBlockhash: blockhash,
		Instructions:    buildMintInstructions(owner, mint.PublicKey, ata, metadataPubkey, rent, plan),
	})
	data, err := msg.Serialize()
	if err != nil {
		return tokendom.MintReceipt{}, &tokendom.TransactionFailedError{Reason: "serialize message", Err: err}
	}

	walletSig, err := signer.SignTransaction(ctx, data)
	if err != nil {
		return tokendom.MintReceipt{}, classifySignError(err)
	}
	if len(walletSig) != ed25519.SignatureSize || !ed25519.Verify(owner.Bytes(), data, walletSig) {
		return tokendom.MintReceipt{}, &tokendom.TransactionFailedError{Reason: "wallet returned an invalid signature"}
	}

	tx, err := assembleTransaction(msg, map[common.PublicKey][]byte{
		owner:          walletSig,
		mint.PublicKey: mint.Sign(data),
	})
	if err != nil {
		return tokendom.MintReceipt{}, &tokendom.TransactionFailedError{Reason: "assemble transaction", Err: err}
	}

	sig, err := c.SendTransaction(ctx, tx)
	if err != nil {
		return tokendom.MintReceipt{}, classifyRPCError("send transaction", err)
	}

	log.Printf(
		"[mint_executor] submitted tx=%s mint=%s owner=%s ata=%s amount=%d decimals=%d",
		maskShort(sig),
		maskShort(mint.PublicKey.ToBase58()),
		maskShort(ownerAddr),
		maskShort(ata.ToBase58()),
		plan.Amount,
		plan.Decimals,
	)

	if err := e.awaitConfirmation(ctx, c, sig); err != nil {
		log.Printf("[mint_executor] tx=%s not confirmed: %v", maskShort(sig), err)
		return tokendom.MintReceipt{}, err
	}

	log.Printf("[mint_executor] confirmed tx=%s mint=%s", maskShort(sig), maskShort(mint.PublicKey.ToBase58()))

	return tokendom.MintReceipt{
		MintAddress: mint.PublicKey.ToBase58(),
		Signature:   sig,
	}, nil
}

func buildMintInstructions(
	owner, mint, ata, metadata common.PublicKey,
	rent uint64,
	plan tokendom.MintPlan,
) []types.Instruction {
	return []types.Instruction{
		system.CreateAccount(system.CreateAccountParam{
			From:     owner,
			New:      mint,
			Owner:    common.TokenProgramID,
			Lamports: rent,
			Space:    token.MintAccountSize,
		}),
		token.InitializeMint(token.InitializeMintParam{
			Decimals:   plan.Decimals,
			Mint:       mint,
			MintAuth:   owner,
			FreezeAuth: nil,
		}),
		associated_token_account.CreateAssociatedTokenAccount(
			associated_token_account.CreateAssociatedTokenAccountParam{
				Funder:                 owner,
				Owner:                  owner,
				Mint:                   mint,
				AssociatedTokenAccount: ata,
			},
		),
		token.MintTo(token.MintToParam{
			Mint:   mint,
			To:     ata,
			Auth:   owner,
			Amount: plan.Amount,
		}),
		token_metadata.CreateMetadataAccountV3(
			token_metadata.CreateMetadataAccountV3Param{
				Metadata:                metadata,
				Mint:                    mint,
				MintAuthority:           owner,
				UpdateAuthority:         owner,
				Payer:                   owner,
				UpdateAuthorityIsSigner: true,
				IsMutable:               true,
				Data: token_metadata.DataV2{
					Name:                 plan.Name,
					Symbol:               plan.Symbol,
					Uri:                  plan.MetadataURI,
					SellerFeeBasisPoints: 0,
					Creators: &[]token_metadata.Creator{
						{Address: owner, Verified: true, Share: 100},
					},
				},
				CollectionDetails: nil,
			},
		),
	}
}

// assembleTransaction places each signature at its signer's account index.
func assembleTransaction(msg types.Message, sigs map[common.PublicKey][]byte) (types.Transaction, error) {
	n := int(msg.Header.NumRequireSignatures)
	if n > len(msg.Accounts) {
		return types.Transaction{}, fmt.Errorf("message requires %d signatures but has %d accounts", n, len(msg.Accounts))
	}
	out := make([]types.Signature, n)
	for i := 0; i < n; i++ {
		s, ok := sigs[msg.Accounts[i]]
		if !ok {
			return types.Transaction{}, fmt.Errorf("missing signature for %s", msg.Accounts[i].ToBase58())
		}
		out[i] = s
	}
	return types.Transaction{Signatures: out, Message: msg}, nil
}

func (e *MintExecutorSolana) awaitConfirmation(ctx context.Context, c chain, sig string) error {
	ticker := time.NewTicker(e.PollInterval)
	defer ticker.Stop()

	for {
		st, err := c.SignatureStatus(ctx, sig)
		if err != nil {
			return classifyRPCError("confirmation", err)
		}
		if st.Found && st.Err != nil {
			return &tokendom.TransactionFailedError{Reason: fmt.Sprintf("%v", st.Err)}
		}
		if st.Confirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return &tokendom.NetworkError{Op: "confirmation", Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
