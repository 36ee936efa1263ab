package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3ico/internal/ui"
	"github.com/Mohsinsiddi/w3ico/internal/wallet"
)

var walletKeyFlag bool

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the wallets that sign sale transactions",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a watch-only wallet, or a signing wallet with --key",
	Long: `Add a wallet.

  w3ico wallet add alice 0x...     watch-only: status and a read-only page
  w3ico wallet add alice --key     signing: the private key is read from the
                                   terminal without echo and stored in the
                                   OS keychain`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := args[0]
		mgr := newWalletManager()

		if walletKeyFlag {
			key, err := ui.PromptSecret("Private key:")
			if err != nil {
				return err
			}
			w, err := mgr.AddWithKey(name, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
		} else {
			if len(args) < 2 {
				return fmt.Errorf("address required for a watch-only wallet, or pass --key to import a signing key")
			}
			if err := mgr.Add(name, &wallet.Wallet{Address: args[1]}); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(args[1]))))
		}
		if d := mgr.Default(); d != nil && d.Name == name {
			fmt.Fprintln(out, ui.Meta("It is the default wallet."))
		} else {
			fmt.Fprintln(out, ui.Hint("Make it the default with: w3ico wallet use "+name))
		}
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new signing wallet",
	Long: `Generate a new keypair and store the private key in the OS keychain.

The private key is printed once. Store it somewhere safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		w, hexKey, err := newWalletManager().Generate(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.KeyValueBlock("New Wallet", [][2]string{
			{"Name", w.Name},
			{"Address", w.Address},
			{"Private Key", "0x" + hexKey},
		}))
		fmt.Fprintln(out, ui.Warn("The private key is shown only once. Never share it."))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		wallets := newWalletManager().List()
		if len(wallets) == 0 {
			fmt.Fprintln(out, ui.Info("No wallets yet."))
			fmt.Fprintln(out, ui.Hint("Add one with: w3ico wallet add deployer --key"))
			return nil
		}

		session := wallet.DefaultSession()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 42},
			{Title: "Type", Width: 10},
			{Title: "Unlocked", Width: 8},
			{Title: "Default", Width: 7},
		})
		for _, w := range wallets {
			t.AddRow(ui.Row{w.Name, w.Address, w.Type, yesMark(w.CanSign() && session.Unlocked(w.Name)), yesMark(w.IsDefault)})
		}
		fmt.Fprint(out, t.Render())
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the default wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			var choices []ui.Choice
			for _, w := range mgr.List() {
				choices = append(choices, ui.Choice{Label: w.Name, Detail: w.Address, Value: w.Name})
			}
			picked, err := ui.Pick("Default wallet", choices, cfg.DefaultWallet)
			if err != nil || picked == "" {
				return err
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !assumeYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUnlockCmd = &cobra.Command{
	Use:   "unlock [name]",
	Short: "Cache a wallet's key for this session",
	Long: `Read the key from the OS keychain once and cache it in a 0600 session
file, so following commands sign without keychain prompts. Clear it with
'w3ico wallet lock'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := walletName()
		if len(args) == 1 {
			name = args[0]
		}
		mgr := newWalletManager()
		w, err := mgr.Resolve(name)
		if err != nil {
			return err
		}
		if !w.CanSign() {
			return fmt.Errorf("%w: %s", wallet.ErrWatchOnly, w.Name)
		}
		key, err := mgr.Keys().Retrieve(w.KeyRef)
		if err != nil {
			return err
		}
		if err := wallet.DefaultSession().Put(map[string]string{w.KeyRef: key}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Wallet %q unlocked.", w.Name)))
		return nil
	},
}

var walletLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Clear all cached keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wallet.DefaultSession().Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Session cleared."))
		return nil
	},
}

func yesMark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

func init() {
	walletAddCmd.Flags().BoolVar(&walletKeyFlag, "key", false, "prompt for a private key and add a signing wallet")
	walletCmd.AddCommand(
		walletAddCmd,
		walletGenerateCmd,
		walletListCmd,
		walletUseCmd,
		walletRemoveCmd,
		walletUnlockCmd,
		walletLockCmd,
	)
}
