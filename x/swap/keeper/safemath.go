package keeper

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Amounts are 128-bit. Products of two amounts and a fee scale stay within
// the 512-bit intermediate ceiling below.

var (
	maxIntermediate = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 512), big.NewInt(1))

	// feePrecision is the fixed-point scale of fee fractions (1e18).
	feePrecision = math.LegacyOneDec().BigInt()
)

func checkIntermediate(x *big.Int, op string) (*big.Int, error) {
	if x.Cmp(maxIntermediate) > 0 {
		return nil, errorsmod.Wrapf(types.ErrOverflow, "%s exceeds 512 bits", op)
	}
	return x, nil
}

func checkedMul(a, b *big.Int) (*big.Int, error) {
	return checkIntermediate(new(big.Int).Mul(a, b), "multiplication")
}

func checkedAdd(a, b *big.Int) (*big.Int, error) {
	return checkIntermediate(new(big.Int).Add(a, b), "addition")
}

func checkedQuo(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errorsmod.Wrap(types.ErrDivideByZero, "division by zero")
	}
	return new(big.Int).Quo(a, b), nil
}

// toAmount narrows x to a 128-bit amount.
func toAmount(x *big.Int) (math.Uint, error) {
	if x.Sign() < 0 {
		return math.Uint{}, errorsmod.Wrapf(types.ErrOverflow, "negative amount %s", x)
	}
	amt := math.NewUintFromBigInt(x)
	if amt.GT(types.MaxAmount) {
		return math.Uint{}, errorsmod.Wrapf(types.ErrOverflow, "amount %s exceeds 128 bits", x)
	}
	return amt, nil
}

// SafeAdd adds two amounts, failing when the sum leaves 128 bits.
func SafeAdd(a, b math.Uint) (math.Uint, error) {
	return toAmount(new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// SafeSub subtracts b from a, failing on underflow.
func SafeSub(a, b math.Uint) (math.Uint, error) {
	if a.LT(b) {
		return math.Uint{}, errorsmod.Wrapf(types.ErrOverflow, "underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMulDiv returns floor(a * b / c).
func SafeMulDiv(a, b, c math.Uint) (math.Uint, error) {
	num, err := checkedMul(a.BigInt(), b.BigInt())
	if err != nil {
		return math.Uint{}, err
	}
	q, err := checkedQuo(num, c.BigInt())
	if err != nil {
		return math.Uint{}, err
	}
	return toAmount(q)
}

// SafeMulFraction returns floor(a * frac) for a fraction in [0, 1].
func SafeMulFraction(a math.Uint, frac math.LegacyDec) (math.Uint, error) {
	if frac.IsNil() || frac.IsNegative() || frac.GT(math.LegacyOneDec()) {
		return math.Uint{}, errorsmod.Wrapf(types.ErrInvalidAmount, "fraction %s out of range", frac)
	}
	num, err := checkedMul(a.BigInt(), frac.BigInt())
	if err != nil {
		return math.Uint{}, err
	}
	q, err := checkedQuo(num, feePrecision)
	if err != nil {
		return math.Uint{}, err
	}
	return toAmount(q)
}
