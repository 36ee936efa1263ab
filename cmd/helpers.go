package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/ens"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/rpc"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
	"github.com/Mohsinsiddi/w3ico/internal/wallet"
)

// resolveNetwork picks the network: --network, then W3ICO_NETWORK or the
// project file, then the configured default.
func resolveNetwork() (*chain.Network, error) {
	name := networkFlag
	if name == "" && project != nil {
		name = project.Network
	}
	if name == "" {
		name = cfg.DefaultNetwork
	}
	n, err := chain.NewRegistry().GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (see `w3ico network list`)", err, name)
	}
	return n, nil
}

// networkRPCs lists custom RPCs first, then the built-in ones.
func networkRPCs(n *chain.Network) []string {
	return slices.Concat(cfg.GetRPCs(n.Name), n.RPCs)
}

// dialNetwork benchmarks the network's RPCs and connects to the best one.
func dialNetwork(ctx context.Context, n *chain.Network) (*chain.EVMClient, error) {
	urls := networkRPCs(n)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no RPCs configured for %s, add one with `w3ico rpc add %s <url>`", n.DisplayName, n.Name)
	}
	bctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.Best(bctx, urls, rpc.ParseAlgorithm(cfg.RPCAlgorithm), nil, log)
	if err != nil {
		return nil, fmt.Errorf("selecting RPC for %s: %w", n.DisplayName, err)
	}
	log.Debug("using rpc", zap.String("network", n.Name), zap.String("url", url))
	return chain.NewEVMClient(url), nil
}

// openKeyStore opens the keychain holding private keys.
var openKeyStore = func() wallet.KeyStore {
	return wallet.DefaultKeystore(filepath.Join(cfg.Dir(), "keys"), wallet.DefaultSession())
}

func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeyStore(openKeyStore()),
	)
}

// walletName is --wallet, falling back to the configured default.
func walletName() string {
	if walletFlag != "" {
		return walletFlag
	}
	return cfg.DefaultWallet
}

func parseAddress(label, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", label, s)
	}
	return common.HexToAddress(s), nil
}

// parseAmount parses a positive whole number of tokens.
func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", ico.ErrInvalidAmount, s)
	}
	return v, nil
}

// sale is an opened connection to the token sale on one network.
type sale struct {
	net    *chain.Network
	client *chain.EVMClient
	reader *ico.Reader
	mgr    *wallet.Manager
}

// openSale connects to the project's network and verifies the node serves it.
func openSale(ctx context.Context) (*sale, error) {
	net, err := resolveNetwork()
	if err != nil {
		return nil, err
	}
	tokenHex, err := project.RequireToken()
	if err != nil {
		return nil, err
	}
	nftHex, err := project.RequireNFT()
	if err != nil {
		return nil, err
	}
	token, err := parseAddress("token", tokenHex)
	if err != nil {
		return nil, err
	}
	nft, err := parseAddress("nft", nftHex)
	if err != nil {
		return nil, err
	}

	client, err := dialNetwork(ctx, net)
	if err != nil {
		return nil, err
	}
	if err := ico.CheckNetwork(ctx, client, net); err != nil {
		return nil, err
	}
	reader := ico.NewReader(client, token, nft, ico.WithLogger(log), ico.WithScanWorkers(scanWorkers))
	return &sale{net: net, client: client, reader: reader, mgr: newWalletManager()}, nil
}

// viewer returns the address to read state for. --wallet may be a raw
// address or an ENS name.
func (s *sale) viewer(ctx context.Context) (common.Address, error) {
	if common.IsHexAddress(walletFlag) {
		return common.HexToAddress(walletFlag), nil
	}
	if ens.IsName(walletFlag) {
		addr, err := ens.Resolve(ctx, s.client, walletFlag)
		if err != nil {
			return common.Address{}, err
		}
		log.Debug("resolved ens name", zap.String("name", walletFlag), zap.String("address", addr.Hex()))
		return addr, nil
	}
	w, err := s.mgr.Resolve(walletName())
	if err != nil {
		return common.Address{}, err
	}
	return w.Addr(), nil
}

// service returns a write-capable sale for the selected signing wallet.
func (s *sale) service() (*ico.Service, error) {
	signer, err := loadSigner(s.mgr)
	if err != nil {
		return nil, err
	}
	tr := transact.New(s.client, signer, log)
	return ico.NewService(s.reader, tr).Expect(s.client, s.net), nil
}

func loadSigner(mgr *wallet.Manager) (*wallet.Signer, error) {
	w, err := mgr.Resolve(walletName())
	if err != nil {
		return nil, err
	}
	signer, err := wallet.NewSigner(w, mgr.Keys())
	if errors.Is(err, wallet.ErrWatchOnly) {
		return nil, fmt.Errorf("%w: import its key with `w3ico wallet add %s --key`", err, w.Name)
	}
	return signer, err
}

func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	return ui.Confirm(prompt)
}

// planPairs describes a prepared transaction for the preview block.
func planPairs(p *transact.Plan, net *chain.Network) [][2]string {
	gas := fmt.Sprintf("%d", p.Tx.Gas())
	if !p.Estimated {
		gas += " (fallback)"
	}
	to := "contract creation"
	if p.Tx.To() != nil {
		to = p.Tx.To().Hex()
	}
	return [][2]string{
		{"From", p.From.Hex()},
		{"To", to},
		{"Value", chain.FormatEther(p.Tx.Value()) + " " + net.NativeCurrency},
		{"Gas Limit", gas},
		{"Max Fee", fmt.Sprintf("%d Gwei", chain.WeiToGwei(p.Tx.GasFeeCap()))},
		{"Max Cost", chain.FormatEther(p.MaxCost()) + " " + net.NativeCurrency},
		{"Network", net.DisplayName},
	}
}

func printReceipt(out io.Writer, net *chain.Network, rcpt *chain.Receipt) {
	if rcpt == nil {
		return
	}
	fmt.Fprintln(out, ui.Meta("tx    "), ui.Addr(rcpt.Hash.Hex()))
	fmt.Fprintln(out, ui.Meta("block "), rcpt.BlockNumber, ui.Meta(fmt.Sprintf("gas used %d", rcpt.GasUsed)))
	if link := net.TxURL(rcpt.Hash.Hex()); link != "" {
		fmt.Fprintln(out, ui.Meta(link))
	}
}

func printSnapshot(out io.Writer, s ico.Snapshot) {
	fmt.Fprintln(out, s.BalanceLine())
	fmt.Fprintln(out, s.MintedLine())
	switch ico.NextAction(s, false) {
	case ico.ActionWithdraw:
		fmt.Fprintln(out, ui.Hint("You own the contract: w3ico withdraw"))
	case ico.ActionClaim:
		fmt.Fprintln(out, ui.Val(s.ClaimLine()))
		fmt.Fprintln(out, ui.Hint("w3ico claim"))
	case ico.ActionMint:
		fmt.Fprintln(out, ui.Hint(fmt.Sprintf("w3ico mint --amount <n>  (%s ETH per token)", chain.FormatEther(ico.TokenPrice()))))
	}
}

// errText renders an error for the terminal.
func errText(err error) string {
	switch {
	case errors.Is(err, ico.ErrWrongNetwork):
		return ui.Err(err.Error()) + "\n" + ui.Hint("pass --network or fix the RPC with `w3ico rpc add`")
	case errors.Is(err, chain.ErrReverted):
		return ui.Err("the contract rejected the transaction (reverted)")
	}
	return ui.Err(err.Error())
}
