package commands

import (
	"github.com/spf13/cobra"

	appcfg "tokencreator/internal/infra/config"
)

var (
	cfg        *appcfg.Config
	keypairDir string
)

func Execute() error {
	root := &cobra.Command{
		Use:          "tokenctl",
		Short:        "Create SPL tokens from a local Solana wallet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = appcfg.Load()
			if keypairDir != "" {
				cfg.WalletKeypairDir = keypairDir
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&keypairDir, "keypair-dir", "", "wallet keypair dir (default $WALLET_KEYPAIR_DIR or ~/.config/tokencreator/wallets)")

	root.AddCommand(walletsCmd(), keygenCmd(), createCmd(), historyCmd())
	return root.Execute()
}
