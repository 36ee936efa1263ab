package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/rpc"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints",
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC URL, tried before the built-in ones",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", err, args[0])
		}
		if err := cfg.AddRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(n.DisplayName), args[1])))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Removed RPC for %s: %s", args[0], args[1])))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list [network]",
	Short: "List RPCs for a network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.StyleTitle.Render("RPCs for "+n.DisplayName))
		for _, u := range cfg.GetRPCs(n.Name) {
			fmt.Fprintf(out, "  %s %s\n", ui.Meta("(custom) "), u)
		}
		for _, u := range n.RPCs {
			fmt.Fprintf(out, "  %s %s\n", ui.Meta("(builtin)"), u)
		}
		fmt.Fprintln(out, ui.Meta("selection: "+string(rpc.ParseAlgorithm(cfg.RPCAlgorithm))))
		return nil
	},
}

var rpcBenchCmd = &cobra.Command{
	Use:   "bench [network]",
	Short: "Measure latency and head block of every RPC",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()

		spin := ui.NewSpinner("Benchmarking " + n.DisplayName + " RPCs...")
		spin.Start()
		results := rpc.Benchmark(ctx, networkRPCs(n), rpc.DefaultDialer)
		spin.Stop()

		t := ui.NewTable([]ui.Column{
			{Title: "URL", Width: 48},
			{Title: "Latency", Width: 10},
			{Title: "Block", Width: 10},
			{Title: "Status", Width: 6},
		})
		for _, r := range results {
			status, latency, block := "down", "-", "-"
			if r.Healthy {
				status = "ok"
				latency = r.Latency.Round(1e6).String()
				block = fmt.Sprintf("%d", r.BlockNumber)
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

// networkArg resolves an optional network argument.
func networkArg(args []string) (*chain.Network, error) {
	if len(args) == 0 {
		return resolveNetwork()
	}
	n, err := chain.NewRegistry().GetByName(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, args[0])
	}
	return n, nil
}

func init() {
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchCmd)
}
