package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
)

// Fees holds EIP-1559 fee parameters for a new transaction.
type Fees struct {
	BaseFee   *big.Int // nil on pre-London chains
	GasTipCap *big.Int
	GasFeeCap *big.Int
}

// SuggestFees derives tip and fee cap from eth_gasPrice and the latest base fee.
// The fee cap allows the base fee to double before the tx stops being includable.
func (c *EVMClient) SuggestFees(ctx context.Context) (*Fees, error) {
	gp, err := c.GasPrice(ctx)
	if err != nil {
		return nil, err
	}

	var head *struct {
		BaseFeePerGas *hexutil.Big `json:"baseFeePerGas"`
	}
	if err := c.call(ctx, &head, "eth_getBlockByNumber", "latest", false); err != nil || head == nil || head.BaseFeePerGas == nil {
		// Legacy chain: pay the quoted gas price.
		return &Fees{GasTipCap: gp, GasFeeCap: new(big.Int).Set(gp)}, nil
	}
	return feesFrom(gp, head.BaseFeePerGas.ToInt()), nil
}

func feesFrom(gasPrice, baseFee *big.Int) *Fees {
	tip := new(big.Int).Sub(gasPrice, baseFee)
	if tip.Sign() <= 0 {
		tip = big.NewInt(params.GWei)
	}
	feeCap := new(big.Int).Mul(baseFee, big.NewInt(2))
	feeCap.Add(feeCap, tip)
	return &Fees{BaseFee: baseFee, GasTipCap: tip, GasFeeCap: feeCap}
}

// MaxCost is the upper bound a transaction can spend on gas plus value.
func (f *Fees) MaxCost(gas uint64, value *big.Int) *big.Int {
	cost := new(big.Int).Mul(f.GasFeeCap, new(big.Int).SetUint64(gas))
	if value != nil {
		cost.Add(cost, value)
	}
	return cost
}
