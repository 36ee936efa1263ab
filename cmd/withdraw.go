package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw the sale proceeds (contract owner only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrite(cmd, writeOp{
			title:   "Withdraw Preview",
			confirm: "Withdraw all ether from the token contract?",
			done:    "Withdrawal confirmed",
			plan: func(svc *ico.Service) (*transact.Plan, error) {
				return svc.PlanWithdraw(cmd.Context())
			},
		})
	},
}
