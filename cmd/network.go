package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "List networks and set the default",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		current := ""
		if n, err := resolveNetwork(); err == nil {
			current = n.Name
		}
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 10},
			{Title: "Display", Width: 12},
			{Title: "Chain ID", Width: 10},
			{Title: "Explorer", Width: 32},
			{Title: "Active", Width: 6},
		})
		for _, n := range chain.NewRegistry().All() {
			t.AddRow(ui.Row{n.Name, n.DisplayName, fmt.Sprintf("%d", n.ChainID), n.Explorer, yesMark(n.Name == current)})
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", err, args[0])
		}
		cfg.DefaultNetwork = n.Name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Default network set to "+ui.ChainName(n.DisplayName)))
		if project.Network != "" && project.Network != n.Name {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn(fmt.Sprintf("%s still selects %s", project.Path(), project.Network)))
		}
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}
