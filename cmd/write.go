package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

// writeOp is one of the sale's state-changing calls.
type writeOp struct {
	title   string
	confirm string
	done    string
	plan    func(*ico.Service) (*transact.Plan, error)
	pairs   [][2]string
}

// runWrite prepares op, shows a preview, asks for confirmation, sends it and
// prints the refreshed sale state.
func runWrite(cmd *cobra.Command, op writeOp) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := openSale(ctx)
	if err != nil {
		return err
	}
	svc, err := s.service()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner("Preparing transaction...")
	spin.Start()
	plan, err := op.plan(svc)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.KeyValueBlock(op.title, append(op.pairs, planPairs(plan, s.net)...)))
	if !confirm(op.confirm) {
		fmt.Fprintln(out, ui.Meta("Cancelled."))
		return nil
	}

	spin = ui.NewSpinner("Waiting for confirmation...")
	spin.Start()
	res, err := svc.Execute(ctx, plan)
	spin.Stop()
	if res != nil {
		printReceipt(out, s.net, res.Receipt)
	}
	if err != nil {
		if errors.Is(err, chain.ErrReverted) && res != nil {
			printSnapshot(out, res.Snapshot)
		}
		return err
	}

	fmt.Fprintln(out, ui.Success(op.done))
	printSnapshot(out, res.Snapshot)
	return nil
}

func formatCost(wei *big.Int) string {
	return chain.FormatEther(wei) + " ETH"
}
