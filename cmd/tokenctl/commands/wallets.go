package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	walletinfra "tokencreator/internal/infra/wallet"
)

func walletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallets",
		Short: "List supported wallets and whether they are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := walletinfra.NewRegistry(walletinfra.NewDirKeySource(cfg.WalletKeypairDir), nil)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WALLET\tINSTALLED\tINSTALL")
			for _, a := range reg.Available(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%t\t%s\n", a.Type, a.Installed, a.InstallURL)
			}
			return tw.Flush()
		},
	}
}
