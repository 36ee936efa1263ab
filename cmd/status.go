package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/ens"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show balance, total minted and claimable tokens",
	Long: `Show the sale as the page would: the wallet's token balance, the total
minted against the 10000 cap, and the tokens its unclaimed NFTs are worth.

Watch-only wallets, raw addresses (--wallet 0x...) and ENS names
(--wallet name.eth) work here.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		s, err := openSale(ctx)
		if err != nil {
			return err
		}
		addr, err := s.viewer(ctx)
		if err != nil {
			return err
		}

		spin := ui.NewSpinner("Reading contracts...")
		spin.Start()
		snap := s.reader.Refresh(ctx, addr)
		native, nerr := s.client.BalanceAt(ctx, addr)
		name, eerr := ens.Reverse(ctx, s.client, addr)
		spin.Stop()
		if eerr != nil {
			log.Debug("no ens name", zap.Stringer("address", addr), zap.Error(eerr))
		}

		nativeStr := "unavailable"
		if nerr == nil {
			nativeStr = chain.FormatEther(native) + " " + s.net.NativeCurrency
		}
		pairs := [][2]string{
			{"Network", s.net.DisplayName},
			{"Token", s.reader.Token().Hex()},
			{"NFT", s.reader.NFT().Hex()},
			{"Wallet", addr.Hex()},
		}
		if name != "" {
			pairs = append(pairs, [2]string{"ENS", name})
		}
		pairs = append(pairs, [2]string{"Native Balance", nativeStr})
		fmt.Fprintln(out, ui.KeyValueBlock("ZeroDot618 ICO", pairs))
		printSnapshot(out, snap)
		return nil
	},
}
