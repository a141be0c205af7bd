package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tokencreator/internal/domain/network"
	tokendom "tokencreator/internal/domain/token"
	walletdom "tokencreator/internal/domain/wallet"
	walletinfra "tokencreator/internal/infra/wallet"
	"tokencreator/internal/platform/di"
)

func createCmd() *cobra.Command {
	var (
		walletName  string
		networkName string
		supply      string
		yes         bool
		req         tokendom.Request
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Connect a wallet and create a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			t, err := walletdom.ParseType(walletName)
			if err != nil {
				return err
			}
			n, err := network.Parse(networkName)
			if err != nil {
				return err
			}
			if req.TotalSupply, err = tokendom.ParseSupply(supply); err != nil {
				return err
			}

			var approver walletinfra.Approver = walletinfra.AutoApprove
			if !yes {
				approver = promptApprover(cmd.InOrStdin(), out)
			}
			cont, err := di.Build(ctx, cfg, approver)
			if err != nil {
				return err
			}
			defer cont.Close()

			m := cont.NewMachine()
			defer func() { _ = m.Close(context.WithoutCancel(ctx)) }()

			if err := m.Connect(ctx, t); err != nil {
				return err
			}
			snap := m.Snapshot()
			if snap.Error != nil {
				return errors.New(snap.Error.Message)
			}
			fmt.Fprintf(out, "connected %s %s\n", t, snap.Session.Address)

			if err := m.SelectNetwork(n); err != nil {
				return err
			}

			done, err := m.Submit(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "creating %s on %s...\n", strings.ToUpper(strings.TrimSpace(req.Symbol)), n)
			<-done

			snap = m.Snapshot()
			if snap.Error != nil {
				return fmt.Errorf("%s: %s", snap.Error.Kind, snap.Error.Message)
			}
			res := snap.Result
			fmt.Fprintf(out, "mint:      %s\n", res.MintAddress)
			fmt.Fprintf(out, "supply:    %s %s\n", res.DisplaySupply, res.TokenSymbol)
			fmt.Fprintf(out, "signature: %s\n", res.TransactionSignature)
			fmt.Fprintf(out, "explorer:  %s\n", res.ExplorerURL)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&walletName, "wallet", "w", "phantom", "phantom | solflare | backpack")
	f.StringVarP(&networkName, "network", "n", string(network.Default), "devnet | mainnet")
	f.StringVar(&req.Name, "name", "", "token name (max 32 bytes)")
	f.StringVar(&req.Symbol, "symbol", "", "token symbol (max 10 bytes)")
	f.IntVar(&req.Decimals, "decimals", 9, "decimal places")
	f.StringVar(&supply, "supply", "", "total supply in whole tokens")
	f.StringVar(&req.Description, "description", "", "metadata description")
	f.StringVar(&req.ImageURL, "image", "", "metadata image URL")
	f.StringVar(&req.MetadataURI, "metadata-uri", "", "use this metadata URI instead of uploading one")
	f.BoolVarP(&yes, "yes", "y", false, "approve wallet requests without prompting")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("supply")
	return cmd
}

// promptApprover asks on the terminal, like a wallet popup would.
func promptApprover(in io.Reader, out io.Writer) walletinfra.Approver {
	rd := bufio.NewReader(in)
	return walletinfra.ApproverFunc(func(ctx context.Context, req walletinfra.ApprovalRequest) (bool, error) {
		fmt.Fprintf(out, "[%s] %s (%s) approve? [y/N] ", req.Wallet.Name, req.Summary, req.Address)
		line, err := rd.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}
