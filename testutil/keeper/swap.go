package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// GenesisTime is the block time of contexts built by SwapKeeper.
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// SwapFixture bundles a pool keeper with its mock collaborators.
type SwapFixture struct {
	Keeper  *keeper.Keeper
	Ctx     sdk.Context
	Address string
	Shares  *MockShareLedger
	Pools   *MockPoolQuerier
}

// SwapKeeper creates a test keeper for one pool instance with mock dependencies
func SwapKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	f := NewSwapFixture(t)
	return f.Keeper, f.Ctx
}

// NewSwapFixture creates a test keeper for one pool instance and returns its
// mock share ledger and pool querier.
func NewSwapFixture(t testing.TB) *SwapFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	addr := types.PoolAddress("test-pool")
	shares := NewMockShareLedger()
	pools := NewMockPoolQuerier()
	k := keeper.NewKeeper(storeKey, addr, shares, pools)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: GenesisTime}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return &SwapFixture{
		Keeper:  k,
		Ctx:     ctx,
		Address: addr,
		Shares:  shares,
		Pools:   pools,
	}
}

// Instantiate creates the pool over asset1/asset2 with owner and binds its
// share token.
func (f *SwapFixture) Instantiate(t testing.TB, asset1, asset2 types.AssetInfo, owner string, fees types.FeeConfig) string {
	_, err := f.Keeper.Instantiate(f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               asset1,
		Asset2:               asset2,
		ShareTokenCodeID:     1,
		Owner:                owner,
		ProtocolFeeRecipient: fees.ProtocolFeeRecipient,
		LpFeePercent:         fees.LpFeePercent,
		ProtocolFeePercent:   fees.ProtocolFeePercent,
	})
	require.NoError(t, err)

	shareToken := types.PoolAddress("test-pool/share-token")
	_, err = f.Keeper.ConfirmBinding(f.Ctx, &types.MsgConfirmBinding{
		ReplyID:           types.InstantiateShareTokenReplyID,
		ShareTokenAddress: shareToken,
	})
	require.NoError(t, err)
	return shareToken
}

// AddLiquidity deposits into the pool and applies the share mint.
func (f *SwapFixture) AddLiquidity(t testing.TB, msg *types.MsgAddLiquidity) *types.MsgAddLiquidityResponse {
	resp, err := f.Keeper.AddLiquidity(f.Ctx, msg)
	require.NoError(t, err)
	f.Shares.Apply(resp.Effects)
	return resp
}

// AdvanceBlock moves the context forward by one block and d of wall time.
func (f *SwapFixture) AdvanceBlock(d time.Duration) {
	f.Ctx = f.Ctx.WithBlockHeight(f.Ctx.BlockHeight() + 1).WithBlockTime(f.Ctx.BlockTime().Add(d))
}

// NativeFunds returns the coins attached to a request paying amount of denom.
func NativeFunds(denom string, amount uint64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(denom, math.NewIntFromUint64(amount)))
}
