package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/logging"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/w3ico/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	projectPath string
	networkFlag string
	walletFlag  string
	verbose     bool
	assumeYes   bool
	scanWorkers int

	cfg     *config.Config
	project *config.Project
	log     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "w3ico",
	Short: "Deploy and run the ZeroDot618 token sale from the terminal",
	Long: `w3ico deploys the ZeroDot618 token contract and lets a wallet mint tokens,
claim tokens for the NFTs it holds, and withdraw the sale proceeds when it
owns the contract.

Contract addresses live in w3ico.yaml in the working directory. The
W3ICO_NETWORK, W3ICO_NFT_CONTRACT and W3ICO_TOKEN_CONTRACT environment
variables override it.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func setup() error {
	var err error
	cfg, err = config.Load(cfgDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err = logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	project, err = config.LoadProject(projectPath)
	if err != nil {
		return err
	}
	project.ApplyEnv()
	log.Debug("configuration loaded",
		zap.String("config_dir", cfg.Dir()),
		zap.String("project", project.Path()))
	return nil
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errText(err))
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(config.EnvConfigDir); envDir != "" {
		cfgDir = envDir
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.w3ico)")
	pf.StringVar(&projectPath, "project", config.ProjectFile, "project file with contract addresses")
	pf.StringVarP(&networkFlag, "network", "n", "", "network to use (default: project or config network)")
	pf.StringVarP(&walletFlag, "wallet", "w", "", "wallet name (default: the default wallet)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	pf.IntVar(&scanWorkers, "scan-workers", 1, "concurrent lookups when counting claimable NFTs")

	rootCmd.AddCommand(
		deployCmd,
		statusCmd,
		mintCmd,
		claimCmd,
		withdrawCmd,
		pageCmd,
		walletCmd,
		networkCmd,
		rpcCmd,
		contractCmd,
		configCmd,
	)
}
