package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings and the project file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("Settings ("+cfg.Dir()+")", cfg.Settings()))
		fmt.Fprintln(out, ui.KeyValueBlock("Project ("+project.Path()+")", [][2]string{
			{"network", project.Network},
			{"nft_contract", project.NFTContract},
			{"token_contract", project.TokenContract},
			{"artifact", project.Artifact},
			{"deployed_at", project.DeployedAt},
		}))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting (default_network, default_wallet, rpc_algorithm, log_level)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if key == config.KeyDefaultNetwork {
			if _, err := chain.NewRegistry().GetByName(value); err != nil {
				return fmt.Errorf("%w: %q", err, value)
			}
		}
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s = %s", key, value)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
