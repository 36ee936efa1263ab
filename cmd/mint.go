package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
)

var mintAmount string

var mintCmd = &cobra.Command{
	Use:     "mint",
	Short:   "Mint tokens at 0.001 ETH each",
	Example: `  w3ico mint --amount 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(mintAmount)
		if err != nil {
			return err
		}
		cost, err := ico.MintCost(amount)
		if err != nil {
			return err
		}
		return runWrite(cmd, writeOp{
			title:   "Mint Preview",
			confirm: fmt.Sprintf("Mint %s tokens?", amount),
			done:    "Successfully minted ZeroDot618 Tokens",
			plan: func(svc *ico.Service) (*transact.Plan, error) {
				return svc.PlanMint(cmd.Context(), amount)
			},
			pairs: [][2]string{
				{"Amount", amount.String() + " tokens"},
				{"Price", formatCost(cost)},
			},
		})
	},
}

func init() {
	mintCmd.Flags().StringVarP(&mintAmount, "amount", "a", "", "number of whole tokens to mint")
	_ = mintCmd.MarkFlagRequired("amount")
}
