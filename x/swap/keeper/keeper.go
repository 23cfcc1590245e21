package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Keeper of a single pool instance. Each instance owns its store; address is
// the account the instance holds reserves under.
type Keeper struct {
	storeKey    storetypes.StoreKey
	address     string
	shareLedger types.ShareLedger
	poolQuerier types.PoolQuerier
	metrics     *SwapMetrics
}

// NewKeeper creates a new swap Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	address string,
	shareLedger types.ShareLedger,
	poolQuerier types.PoolQuerier,
) *Keeper {
	return &Keeper{
		storeKey:    key,
		address:     address,
		shareLedger: shareLedger,
		poolQuerier: poolQuerier,
		metrics:     GetSwapMetrics(),
	}
}

// Address returns the pool instance address.
func (k Keeper) Address() string {
	return k.address
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName, "pool", k.address)
}

// getStore returns the KVStore for the pool instance
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// atomically runs fn against a cached context and commits its writes and
// events only when fn succeeds.
func (k Keeper) atomically(ctx context.Context, fn func(sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
