package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/contract"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
	"github.com/Mohsinsiddi/w3ico/internal/ui"
)

var (
	deployArtifact string
	deployNFT      string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the ZeroDot618 token contract",
	Long: `Deploy the token contract from a compiled Hardhat or Foundry artifact.

The constructor takes the address of the NFT collection whose holders may
claim tokens. It defaults to nft_contract in w3ico.yaml.

On success the token address is written back to w3ico.yaml and recorded in
the contract registry.`,
	Example: `  w3ico deploy --artifact artifacts/contracts/ZeroDot618Token.sol/ZeroDot618Token.json \
    --nft 0x... --network goerli`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		path := deployArtifact
		if path == "" {
			path = project.Artifact
		}
		if path == "" {
			return fmt.Errorf("--artifact is required (or set artifact in %s)", config.ProjectFile)
		}
		nftHex := deployNFT
		if nftHex == "" {
			var err error
			if nftHex, err = project.RequireNFT(); err != nil {
				return err
			}
		}
		nft, err := parseAddress("nft", nftHex)
		if err != nil {
			return err
		}

		art, err := contract.LoadArtifact(path)
		if err != nil {
			return err
		}
		if art.ContractName == "" {
			art.ContractName = "ZeroDot618Token"
		}
		data, err := art.DeployData(nft)
		if err != nil {
			return fmt.Errorf("encoding constructor: %w", err)
		}

		net, err := resolveNetwork()
		if err != nil {
			return err
		}
		client, err := dialNetwork(ctx, net)
		if err != nil {
			return err
		}
		if err := ico.CheckNetwork(ctx, client, net); err != nil {
			return err
		}
		signer, err := loadSigner(newWalletManager())
		if err != nil {
			return err
		}
		tr := transact.New(client, signer, log)

		spin := ui.NewSpinner("Preparing deployment...")
		spin.Start()
		plan, err := tr.Prepare(ctx, transact.Request{Data: data, FallbackGas: config.GasLimitTokenDeploy})
		spin.Stop()
		if err != nil {
			return err
		}

		pairs := append([][2]string{
			{"Contract", art.ContractName},
			{"NFT Contract", nft.Hex()},
			{"Bytecode", fmt.Sprintf("%d bytes", len(art.Bytecode))},
		}, planPairs(plan, net)...)
		fmt.Fprintln(out, ui.KeyValueBlock("Deploy Preview", pairs))
		if !confirm("Deploy this contract?") {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}

		hash, err := tr.Send(ctx, plan)
		if err != nil {
			return err
		}
		spin = ui.NewSpinner("Waiting for deployment " + ui.TruncateAddr(hash.Hex()) + "...")
		spin.Start()
		rcpt, err := tr.Wait(ctx, hash, config.TxDeployTimeout)
		spin.Stop()
		printReceipt(out, net, rcpt)
		if err != nil {
			return err
		}

		addr := rcpt.ContractAddress.Hex()
		fmt.Fprintf(out, "ZeroDot618 Token Contract Address: %s\n", ui.Addr(addr))
		log.Info("token deployed", zap.String("address", addr), zap.String("network", net.Name))

		deployedAt := time.Now().UTC().Format(time.RFC3339)
		project.Network = net.Name
		project.NFTContract = nft.Hex()
		project.TokenContract = addr
		project.Artifact = path
		project.DeployTx = hash.Hex()
		project.DeployedAt = deployedAt
		project.Deployer = signer.Address().Hex()
		if err := project.Save(); err != nil {
			return fmt.Errorf("saving %s: %w", project.Path(), err)
		}

		reg := contract.NewRegistry(cfg.ContractsPath())
		if err := reg.Load(); err != nil {
			return err
		}
		reg.Add(&contract.Entry{
			Name:       art.ContractName,
			Network:    net.Name,
			Address:    addr,
			BuiltinID:  contract.BuiltinToken,
			Deployer:   project.Deployer,
			TxHash:     project.DeployTx,
			DeployedAt: deployedAt,
		})
		if err := reg.Save(); err != nil {
			return err
		}

		if link := net.AddressURL(addr); link != "" {
			fmt.Fprintln(out, ui.Meta(link))
		}
		fmt.Fprintln(out, ui.Success("Saved to "+project.Path()))
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployArtifact, "artifact", "", "compiled contract artifact (Hardhat or Foundry JSON)")
	deployCmd.Flags().StringVar(&deployNFT, "nft", "", "NFT collection address passed to the constructor")
}
