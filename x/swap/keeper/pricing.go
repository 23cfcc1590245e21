package keeper

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// GetInputPrice returns the output bought by selling input into a pool with
// the given reserves, after deducting totalFee from the input:
//
//	eff = input * (1 - totalFee)
//	out = floor(eff * outputReserve / (inputReserve + eff))
//
// The fee is applied in 1e18 fixed point so no precision is lost before the
// final floor division.
func GetInputPrice(input, inputReserve, outputReserve math.Uint, totalFee math.LegacyDec) (math.Uint, error) {
	if inputReserve.IsZero() || outputReserve.IsZero() {
		return math.Uint{}, errorsmod.Wrapf(types.ErrNoLiquidity, "reserves %s/%s", inputReserve, outputReserve)
	}
	if totalFee.IsNil() || totalFee.IsNegative() || totalFee.GT(types.MaxFeePercent) {
		return math.Uint{}, errorsmod.Wrapf(types.ErrFeesTooHigh, "total fee %s", totalFee)
	}

	feeComplement := new(big.Int).Sub(feePrecision, totalFee.BigInt())
	effScaled, err := checkedMul(input.BigInt(), feeComplement)
	if err != nil {
		return math.Uint{}, err
	}
	numerator, err := checkedMul(effScaled, outputReserve.BigInt())
	if err != nil {
		return math.Uint{}, err
	}
	scaledReserve, err := checkedMul(inputReserve.BigInt(), feePrecision)
	if err != nil {
		return math.Uint{}, err
	}
	denominator, err := checkedAdd(scaledReserve, effScaled)
	if err != nil {
		return math.Uint{}, err
	}
	out, err := checkedQuo(numerator, denominator)
	if err != nil {
		return math.Uint{}, err
	}
	return toAmount(out)
}

// ProtocolFeeAmount returns floor(input * protocolFee).
func ProtocolFeeAmount(input math.Uint, protocolFee math.LegacyDec) (math.Uint, error) {
	return SafeMulFraction(input, protocolFee)
}

// swapQuote is the outcome of pricing one swap leg against a pool.
type swapQuote struct {
	input       math.Uint
	output      math.Uint
	protocolFee math.Uint
	// net is the input left after the protocol cut. It is what the pricing
	// formula sees and what the input reserve grows by.
	net math.Uint
}

// quoteSwap prices selling input of side sel and applies the result to pool.
// The protocol fee is cut from the gross input first; the remainder is priced
// with the lp fee, which therefore stays in the reserves. The output reserve
// strictly decreases and the product of the reserves never drops.
func quoteSwap(pool *types.Pool, sel types.TokenSelect, input math.Uint, fees types.FeeConfig) (swapQuote, error) {
	in, out := pool.Sides(sel)
	if in.Amount.IsZero() || out.Amount.IsZero() {
		return swapQuote{}, errorsmod.Wrapf(types.ErrNoLiquidity, "reserves %s/%s", in.Amount, out.Amount)
	}
	protocolFee, err := ProtocolFeeAmount(input, fees.ProtocolFeePercent)
	if err != nil {
		return swapQuote{}, err
	}
	net, err := SafeSub(input, protocolFee)
	if err != nil {
		return swapQuote{}, err
	}
	output, err := GetInputPrice(net, in.Amount, out.Amount, fees.LpFeePercent)
	if err != nil {
		return swapQuote{}, err
	}
	if output.IsZero() {
		return swapQuote{}, errorsmod.Wrapf(types.ErrZeroOutput, "selling %s of %s buys nothing", input, in.Info)
	}

	oldK := pool.Product()
	newIn, err := SafeAdd(in.Amount, net)
	if err != nil {
		return swapQuote{}, err
	}
	newOut, err := SafeSub(out.Amount, output)
	if err != nil {
		return swapQuote{}, err
	}
	in.Amount = newIn
	out.Amount = newOut
	if newK := pool.Product(); newK.Cmp(oldK) < 0 {
		return swapQuote{}, errorsmod.Wrapf(types.ErrInvariantViolation, "constant product decreased: old_k=%s, new_k=%s", oldK, newK)
	}

	return swapQuote{input: input, output: output, protocolFee: protocolFee, net: net}, nil
}
