package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// MaxAmount is the largest amount a reserve, deposit or output may hold (2^128-1).
var MaxAmount = math.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// TokenSelect picks one side of the pool.
type TokenSelect uint8

const (
	Asset1 TokenSelect = iota + 1
	Asset2
)

// Other returns the opposite side.
func (s TokenSelect) Other() TokenSelect {
	if s == Asset1 {
		return Asset2
	}
	return Asset1
}

func (s TokenSelect) Validate() error {
	if s != Asset1 && s != Asset2 {
		return errorsmod.Wrapf(ErrInvalidAsset, "unknown token select %d", s)
	}
	return nil
}

func (s TokenSelect) String() string {
	switch s {
	case Asset1:
		return "asset1"
	case Asset2:
		return "asset2"
	default:
		return fmt.Sprintf("TokenSelect(%d)", uint8(s))
	}
}

func (s TokenSelect) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TokenSelect) UnmarshalJSON(bz []byte) error {
	var str string
	if err := json.Unmarshal(bz, &str); err != nil {
		return err
	}
	sel, err := ParseTokenSelect(str)
	if err != nil {
		return err
	}
	*s = sel
	return nil
}

// ParseTokenSelect parses "asset1" or "asset2".
func ParseTokenSelect(s string) (TokenSelect, error) {
	switch s {
	case "asset1", "1":
		return Asset1, nil
	case "asset2", "2":
		return Asset2, nil
	default:
		return 0, errorsmod.Wrapf(ErrInvalidAsset, "unknown token select %q", s)
	}
}

// Reserve is the pool's balance of one asset.
type Reserve struct {
	Info   AssetInfo `json:"info"`
	Amount math.Uint `json:"amount"`
}

// Pool holds both reserves of a pool instance.
type Pool struct {
	Asset1 Reserve `json:"asset1"`
	Asset2 Reserve `json:"asset2"`
}

// NewPool returns an empty pool over the two assets.
func NewPool(asset1, asset2 AssetInfo) Pool {
	return Pool{
		Asset1: Reserve{Info: asset1, Amount: math.ZeroUint()},
		Asset2: Reserve{Info: asset2, Amount: math.ZeroUint()},
	}
}

// Side returns a pointer to the selected reserve.
func (p *Pool) Side(s TokenSelect) *Reserve {
	if s == Asset1 {
		return &p.Asset1
	}
	return &p.Asset2
}

// Sides returns the input and output reserves for a swap that sells input.
func (p *Pool) Sides(input TokenSelect) (in, out *Reserve) {
	return p.Side(input), p.Side(input.Other())
}

// SideOf reports which side holds asset.
func (p Pool) SideOf(asset AssetInfo) (TokenSelect, bool) {
	switch {
	case p.Asset1.Info.Equal(asset):
		return Asset1, true
	case p.Asset2.Info.Equal(asset):
		return Asset2, true
	default:
		return 0, false
	}
}

// IsEmpty reports whether either reserve is zero.
func (p Pool) IsEmpty() bool {
	return p.Asset1.Amount.IsZero() || p.Asset2.Amount.IsZero()
}

// Product returns reserve1 * reserve2.
func (p Pool) Product() *big.Int {
	return new(big.Int).Mul(p.Asset1.Amount.BigInt(), p.Asset2.Amount.BigInt())
}

// Validate checks asset identifiers and reserve bounds.
func (p Pool) Validate() error {
	if err := p.Asset1.Info.Validate(); err != nil {
		return errorsmod.Wrap(err, "asset1")
	}
	if err := p.Asset2.Info.Validate(); err != nil {
		return errorsmod.Wrap(err, "asset2")
	}
	if p.Asset1.Info.Equal(p.Asset2.Info) {
		return errorsmod.Wrapf(ErrInvalidAsset, "pool assets must differ, both are %s", p.Asset1.Info)
	}
	for _, r := range []Reserve{p.Asset1, p.Asset2} {
		if r.Amount.IsNil() {
			return errorsmod.Wrapf(ErrInvalidState, "reserve of %s is nil", r.Info)
		}
		if r.Amount.GT(MaxAmount) {
			return errorsmod.Wrapf(ErrOverflow, "reserve of %s exceeds 128 bits", r.Info)
		}
	}
	return nil
}
