package cmd

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/ens"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
	"github.com/Mohsinsiddi/w3ico/internal/wallet"
)

var pageCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"page"},
	Short:   "Open the interactive sale page",
	Long: `Open the sale page: balance, total minted and a single action button.

  enter  connect / mint the typed amount
  m      type a mint amount
  c      claim tokens for unclaimed NFTs
  w      withdraw (contract owner)
  r      refresh
  q      quit

Watch-only wallets, raw addresses and ENS names open the page read-only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSale(ctx)
		if err != nil {
			return err
		}
		sale, err := s.pageSale(ctx)
		if err != nil {
			return err
		}
		return ui.RunPage(ctx, sale, s.net, log)
	},
}

// pageSale returns a signing service for the selected wallet, or a
// read-only viewer when --wallet names an address or a watch-only wallet.
func (s *sale) pageSale(ctx context.Context) (ui.Sale, error) {
	if !common.IsHexAddress(walletFlag) && !ens.IsName(walletFlag) {
		svc, err := s.service()
		if err == nil {
			return svc, nil
		}
		if !errors.Is(err, wallet.ErrWatchOnly) {
			return nil, err
		}
	}
	addr, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("opening the page read-only", zap.Stringer("address", addr))
	return ico.NewViewer(s.reader, addr).Expect(s.client, s.net), nil
}
