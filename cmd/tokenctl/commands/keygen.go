package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	walletdom "tokencreator/internal/domain/wallet"
	walletinfra "tokencreator/internal/infra/wallet"
)

func keygenCmd() *cobra.Command {
	var (
		walletName string
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Install a wallet by generating a solana-keygen compatible keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := walletdom.ParseType(walletName)
			if err != nil {
				return err
			}
			src := walletinfra.NewDirKeySource(cfg.WalletKeypairDir)
			if src.Dir == "" {
				return errors.New("keypair dir is not set (use --keypair-dir)")
			}
			path := src.Path(t)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			priv, err := solana.NewRandomPrivateKey()
			if err != nil {
				return fmt.Errorf("generate keypair: %w", err)
			}
			data, err := walletinfra.EncodeKeypairJSON(priv)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s wallet installed\n  address: %s\n  keypair: %s\n", t, priv.PublicKey(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&walletName, "wallet", "w", "phantom", "phantom | solflare | backpack")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing keypair")
	return cmd
}
