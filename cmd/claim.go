package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim 10 tokens for every unclaimed NFT you hold",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrite(cmd, writeOp{
			title:   "Claim Preview",
			confirm: "Claim tokens?",
			done:    "Successfully claimed ZeroDot618 Tokens",
			plan: func(svc *ico.Service) (*transact.Plan, error) {
				return svc.PlanClaim(cmd.Context())
			},
		})
	},
}
