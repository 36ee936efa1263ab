package contract

// BuiltinNFT is the registry ID of the ERC-721 collection the token reads.
const BuiltinNFT = "nft"

func init() {
	RegisterBuiltin(Builtin{
		ID:          BuiltinNFT,
		Name:        "ZeroDot618 NFT (ERC-721 Enumerable)",
		Description: "Read-only subset of the NFT collection used to find unclaimed token IDs.",
		JSON:        nftABIJSON,
	})
}

const nftABIJSON = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`
