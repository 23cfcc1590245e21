package types

import (
	"context"

	"cosmossdk.io/math"
)

// ShareLedger is the liquidity share token sub-system. It owns balances and
// total supply; the pool only reads them and emits mint/burn effects.
type ShareLedger interface {
	TotalSupply(ctx context.Context, shareToken string) (math.Uint, error)
	Balance(ctx context.Context, shareToken, owner string) (math.Uint, error)
}

// PoolQuerier resolves the asset composition of another pool instance.
type PoolQuerier interface {
	PoolInfo(ctx context.Context, poolAddress string) (InfoResponse, error)
}
