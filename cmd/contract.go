package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/contract"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var contractJSON bool

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Inspect the built-in ABIs and deployed contracts",
}

var contractABICmd = &cobra.Command{
	Use:       "abi <token|nft>",
	Short:     "Print a built-in ABI with function selectors",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{contract.BuiltinToken, contract.BuiltinNFT},
	RunE: func(cmd *cobra.Command, args []string) error {
		b, ok := contract.GetBuiltin(args[0])
		if !ok {
			var ids []string
			for _, b := range contract.AllBuiltins() {
				ids = append(ids, b.ID)
			}
			return fmt.Errorf("unknown ABI %q (choose one of: %s)", args[0], strings.Join(ids, ", "))
		}
		out := cmd.OutOrStdout()
		if contractJSON {
			fmt.Fprintln(out, strings.TrimSpace(b.JSON))
			return nil
		}

		fmt.Fprintln(out, ui.StyleTitle.Render(b.Name))
		if b.Description != "" {
			fmt.Fprintln(out, ui.Meta(b.Description))
		}
		t := ui.NewTable([]ui.Column{
			{Title: "Selector", Width: 10},
			{Title: "Function", Width: 44},
			{Title: "Mutability", Width: 10},
		})
		for _, m := range contract.Methods(b.ABI) {
			t.AddRow(ui.Row{m.Selector, m.Signature, m.StateMutability})
		}
		fmt.Fprint(out, t.Render())
		return nil
	},
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contracts deployed with w3ico",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := contract.NewRegistry(cfg.ContractsPath())
		if err := reg.Load(); err != nil {
			return err
		}
		entries := reg.All()
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, ui.Info("No contracts deployed yet."))
			fmt.Fprintln(out, ui.Hint("w3ico deploy --artifact <file> --nft <address>"))
			return nil
		}
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 18},
			{Title: "Network", Width: 10},
			{Title: "Address", Width: 42},
			{Title: "Deployed", Width: 20},
		})
		for _, e := range entries {
			t.AddRow(ui.Row{e.Name, e.Network, e.Address, e.DeployedAt})
		}
		fmt.Fprint(out, t.Render())
		return nil
	},
}

func init() {
	contractABICmd.Flags().BoolVar(&contractJSON, "json", false, "print the raw ABI JSON")
	contractCmd.AddCommand(contractABICmd, contractListCmd)
}
