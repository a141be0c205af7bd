package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tokencreator/internal/platform/di"
)

func historyCmd() *cobra.Command {
	var (
		owner string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List tokens created by a wallet address (needs MINT_LEDGER)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cont, err := di.Build(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer cont.Close()

			recs, err := cont.History.ListByOwner(cmd.Context(), owner, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tNETWORK\tSYMBOL\tMINT")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Network, r.Symbol, r.MintAddress)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "wallet address")
	cmd.Flags().IntVar(&limit, "limit", 20, "max rows (1-100)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
