package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

var (
	owner   = types.PoolAddress("owner")
	trader  = types.PoolAddress("trader")
	feeSink = types.PoolAddress("fee-recipient")
	tokenX  = types.PoolAddress("token-x")
	outPool = types.PoolAddress("out-pool")

	upaw = types.NativeAsset("upaw")
	tokX = types.TokenAsset(tokenX)
)

func lpOnlyFees() types.FeeConfig {
	return types.FeeConfig{
		LpFeePercent:         math.LegacyNewDecWithPrec(3, 3),
		ProtocolFeePercent:   math.LegacyZeroDec(),
		ProtocolFeeRecipient: feeSink,
	}
}

func splitFees() types.FeeConfig {
	return types.FeeConfig{
		LpFeePercent:         math.LegacyNewDecWithPrec(3, 3),
		ProtocolFeePercent:   math.LegacyNewDecWithPrec(1, 2),
		ProtocolFeeRecipient: feeSink,
	}
}

// requireEffects compares effect lists by their rendered form.
func requireEffects(t *testing.T, expected, actual []types.Effect) {
	t.Helper()
	exp, err := types.MarshalEffects(expected)
	require.NoError(t, err)
	act, err := types.MarshalEffects(actual)
	require.NoError(t, err)
	require.JSONEq(t, string(exp), string(act))
}

func hasEvent(ctx sdk.Context, eventType string) bool {
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

type KeeperTestSuite struct {
	suite.Suite
	f          *keepertest.SwapFixture
	shareToken string
}

func (s *KeeperTestSuite) SetupTest() {
	s.f = keepertest.NewSwapFixture(s.T())
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

// setupPool creates a upaw/token-x pool seeded with 1000 upaw and 2000 token-x.
func (s *KeeperTestSuite) setupPool(fees types.FeeConfig) {
	s.shareToken = s.f.Instantiate(s.T(), upaw, tokX, owner, fees)
	s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 1000),
		Asset1Amount: math.NewUint(1000),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(2000),
	})
}

func (s *KeeperTestSuite) reserves() (uint64, uint64) {
	pool, err := s.f.Keeper.GetPool(s.f.Ctx)
	s.Require().NoError(err)
	return pool.Asset1.Amount.Uint64(), pool.Asset2.Amount.Uint64()
}

func (s *KeeperTestSuite) TestInstantiate() {
	resp, err := s.f.Keeper.Instantiate(s.f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               upaw,
		Asset2:               tokX,
		ShareTokenCodeID:     9,
		Owner:                owner,
		ProtocolFeeRecipient: feeSink,
		LpFeePercent:         math.LegacyNewDecWithPrec(3, 3),
		ProtocolFeePercent:   math.LegacyZeroDec(),
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Effects, 1)
	inst, ok := resp.Effects[0].(types.InstantiateShareTokenEffect)
	s.Require().True(ok)
	s.Require().Equal(types.InstantiateShareTokenReplyID, inst.ReplyID)
	s.Require().Equal(uint64(9), inst.CodeID)
	s.Require().Equal(s.f.Address, inst.Minter)

	binding, err := s.f.Keeper.GetBinding(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.BindingAwaiting, binding.Status)
	s.Require().True(hasEvent(s.f.Ctx, types.EventTypeInstantiate))

	// liquidity is refused until the share token is bound
	_, err = s.f.Keeper.AddLiquidity(s.f.Ctx, &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 10),
		Asset1Amount: math.NewUint(10),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(10),
	})
	s.Require().ErrorIs(err, types.ErrShareTokenNotBound)

	_, err = s.f.Keeper.Instantiate(s.f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               upaw,
		Asset2:               tokX,
		ProtocolFeeRecipient: feeSink,
		LpFeePercent:         math.LegacyZeroDec(),
		ProtocolFeePercent:   math.LegacyZeroDec(),
	})
	s.Require().ErrorIs(err, types.ErrAlreadyInstantiated)
}

func (s *KeeperTestSuite) TestInstantiateFeesTooHigh() {
	_, err := s.f.Keeper.Instantiate(s.f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               upaw,
		Asset2:               tokX,
		ProtocolFeeRecipient: feeSink,
		LpFeePercent:         math.LegacyNewDecWithPrec(7, 1),
		ProtocolFeePercent:   math.LegacyNewDecWithPrec(4, 1),
	})
	s.Require().ErrorIs(err, types.ErrFeesTooHigh)
	s.Require().False(s.f.Keeper.HasPool(s.f.Ctx))
}

func (s *KeeperTestSuite) TestConfirmBinding() {
	_, err := s.f.Keeper.ConfirmBinding(s.f.Ctx, &types.MsgConfirmBinding{ReplyID: 0, ShareTokenAddress: tokenX})
	s.Require().ErrorIs(err, types.ErrUnknownReplyID, "no pending request before instantiate")

	_, err = s.f.Keeper.Instantiate(s.f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               upaw,
		Asset2:               tokX,
		ProtocolFeeRecipient: feeSink,
		LpFeePercent:         math.LegacyZeroDec(),
		ProtocolFeePercent:   math.LegacyZeroDec(),
	})
	s.Require().NoError(err)

	_, err = s.f.Keeper.ConfirmBinding(s.f.Ctx, &types.MsgConfirmBinding{ReplyID: 7, ShareTokenAddress: tokenX})
	s.Require().ErrorIs(err, types.ErrUnknownReplyID)

	_, err = s.f.Keeper.ConfirmBinding(s.f.Ctx, &types.MsgConfirmBinding{ReplyID: 0})
	s.Require().ErrorIs(err, types.ErrShareTokenInstantiate)

	shareToken := types.PoolAddress("lp")
	resp, err := s.f.Keeper.ConfirmBinding(s.f.Ctx, &types.MsgConfirmBinding{ReplyID: 0, ShareTokenAddress: shareToken})
	s.Require().NoError(err)
	s.Require().Equal(shareToken, resp.ShareToken)

	got, err := s.f.Keeper.GetShareToken(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(shareToken, got)

	_, err = s.f.Keeper.ConfirmBinding(s.f.Ctx, &types.MsgConfirmBinding{ReplyID: 0, ShareTokenAddress: shareToken})
	s.Require().ErrorIs(err, types.ErrUnknownReplyID)
}

func (s *KeeperTestSuite) TestAddLiquidityBootstrap() {
	s.shareToken = s.f.Instantiate(s.T(), upaw, tokX, owner, lpOnlyFees())

	resp := s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 1000),
		Asset1Amount: math.NewUint(1000),
		MinLiquidity: math.NewUint(1000),
		MaxAsset2:    math.NewUint(2000),
	})
	s.Require().Equal(uint64(1000), resp.SharesMinted.Uint64())
	s.Require().Equal(uint64(2000), resp.Asset2Required.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferFromEffect{Token: tokenX, Owner: trader, Recipient: s.f.Address, Amount: math.NewUint(2000)},
		types.MintSharesEffect{ShareToken: s.shareToken, Recipient: trader, Amount: math.NewUint(1000)},
	}, resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(1000), r1)
	s.Require().Equal(uint64(2000), r2)

	snaps, err := s.f.Keeper.GetSnapshots(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Len(snaps, 1)
	s.Require().True(snaps[0].Price1.Equal(math.LegacyNewDec(2)))
	s.Require().Equal(keepertest.GenesisTime.Unix(), snaps[0].Timestamp)
}

func (s *KeeperTestSuite) TestAddLiquidityProportional() {
	s.setupPool(lpOnlyFees())

	resp := s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 500),
		Asset1Amount: math.NewUint(500),
		MinLiquidity: math.NewUint(500),
		MaxAsset2:    math.NewUint(1100),
	})
	s.Require().Equal(uint64(500), resp.SharesMinted.Uint64())
	// floor(500*2000/1000)+1
	s.Require().Equal(uint64(1001), resp.Asset2Required.Uint64())

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(1500), r1)
	s.Require().Equal(uint64(3001), r2)
}

func (s *KeeperTestSuite) TestAddLiquidityFailures() {
	s.setupPool(lpOnlyFees())

	tests := []struct {
		name string
		msg  types.MsgAddLiquidity
		err  error
	}{
		{
			name: "secondary above max",
			msg: types.MsgAddLiquidity{
				Funds:        keepertest.NativeFunds("upaw", 500),
				Asset1Amount: math.NewUint(500),
				MinLiquidity: math.ZeroUint(),
				MaxAsset2:    math.NewUint(1000),
			},
			err: types.ErrMaxSecondaryExceeded,
		},
		{
			name: "shares below min",
			msg: types.MsgAddLiquidity{
				Funds:        keepertest.NativeFunds("upaw", 500),
				Asset1Amount: math.NewUint(500),
				MinLiquidity: math.NewUint(501),
				MaxAsset2:    math.NewUint(2000),
			},
			err: types.ErrMinSharesNotMet,
		},
		{
			name: "funds short",
			msg: types.MsgAddLiquidity{
				Funds:        keepertest.NativeFunds("upaw", 499),
				Asset1Amount: math.NewUint(500),
				MinLiquidity: math.ZeroUint(),
				MaxAsset2:    math.NewUint(2000),
			},
			err: types.ErrInsufficientFunds,
		},
		{
			name: "wrong denom",
			msg: types.MsgAddLiquidity{
				Funds:        keepertest.NativeFunds("uatom", 500),
				Asset1Amount: math.NewUint(500),
				MinLiquidity: math.ZeroUint(),
				MaxAsset2:    math.NewUint(2000),
			},
			err: types.ErrIncorrectDenom,
		},
		{
			name: "expired",
			msg: types.MsgAddLiquidity{
				Funds:        keepertest.NativeFunds("upaw", 500),
				Asset1Amount: math.NewUint(500),
				MinLiquidity: math.ZeroUint(),
				MaxAsset2:    math.NewUint(2000),
				Expiration:   types.AtHeight(1),
			},
			err: types.ErrExpired,
		},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			msg := tc.msg
			msg.Sender = trader
			_, err := s.f.Keeper.AddLiquidity(s.f.Ctx, &msg)
			s.Require().ErrorIs(err, tc.err)

			r1, r2 := s.reserves()
			s.Require().Equal(uint64(1000), r1)
			s.Require().Equal(uint64(2000), r2)
		})
	}
}

func (s *KeeperTestSuite) TestAddLiquidityRefundsNativeExcess() {
	uusdc := types.NativeAsset("uusdc")
	shareToken := s.f.Instantiate(s.T(), upaw, uusdc, owner, lpOnlyFees())
	s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 1000).Add(sdk.NewInt64Coin("uusdc", 1000)),
		Asset1Amount: math.NewUint(1000),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(1000),
	})

	resp := s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 100).Add(sdk.NewInt64Coin("uusdc", 150)),
		Asset1Amount: math.NewUint(100),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(150),
	})
	s.Require().Equal(uint64(101), resp.Asset2Required.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.MintSharesEffect{ShareToken: shareToken, Recipient: trader, Amount: math.NewUint(100)},
		types.BankSendEffect{ToAddress: trader, Amount: sdk.NewCoins(sdk.NewInt64Coin("uusdc", 49))},
	}, resp.Effects)
}

func (s *KeeperTestSuite) TestRemoveLiquidity() {
	s.setupPool(lpOnlyFees())

	resp, err := s.f.Keeper.RemoveLiquidity(s.f.Ctx, &types.MsgRemoveLiquidity{
		Sender:    trader,
		Amount:    math.NewUint(500),
		MinAsset1: math.NewUint(500),
		MinAsset2: math.NewUint(1000),
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(500), resp.Asset1Returned.Uint64())
	s.Require().Equal(uint64(1000), resp.Asset2Returned.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.BurnSharesEffect{ShareToken: s.shareToken, Owner: trader, Amount: math.NewUint(500)},
		types.BankSendEffect{ToAddress: trader, Amount: sdk.NewCoins(sdk.NewInt64Coin("upaw", 500))},
		types.TokenTransferEffect{Token: tokenX, Recipient: trader, Amount: math.NewUint(1000)},
	}, resp.Effects)
	s.f.Shares.Apply(resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(500), r1)
	s.Require().Equal(uint64(1000), r2)
}

func (s *KeeperTestSuite) TestRemoveLiquidityFailures() {
	s.setupPool(lpOnlyFees())

	tests := []struct {
		name string
		msg  types.MsgRemoveLiquidity
		err  error
	}{
		{"more than held", types.MsgRemoveLiquidity{Amount: math.NewUint(1001), MinAsset1: math.ZeroUint(), MinAsset2: math.ZeroUint()}, types.ErrInsufficientShares},
		{"primary below min", types.MsgRemoveLiquidity{Amount: math.NewUint(500), MinAsset1: math.NewUint(501), MinAsset2: math.ZeroUint()}, types.ErrMinPrimaryNotMet},
		{"secondary below min", types.MsgRemoveLiquidity{Amount: math.NewUint(500), MinAsset1: math.ZeroUint(), MinAsset2: math.NewUint(1001)}, types.ErrMinSecondaryNotMet},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			msg := tc.msg
			msg.Sender = trader
			_, err := s.f.Keeper.RemoveLiquidity(s.f.Ctx, &msg)
			s.Require().ErrorIs(err, tc.err)

			r1, r2 := s.reserves()
			s.Require().Equal(uint64(1000), r1)
			s.Require().Equal(uint64(2000), r2)
		})
	}
}

func (s *KeeperTestSuite) TestRemoveAllLiquidity() {
	s.setupPool(lpOnlyFees())

	resp, err := s.f.Keeper.RemoveLiquidity(s.f.Ctx, &types.MsgRemoveLiquidity{
		Sender:    trader,
		Amount:    math.NewUint(1000),
		MinAsset1: math.ZeroUint(),
		MinAsset2: math.ZeroUint(),
	})
	s.Require().NoError(err)
	s.f.Shares.Apply(resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Zero(r1)
	s.Require().Zero(r2)

	// no snapshot is taken for an empty pool
	snaps, err := s.f.Keeper.GetSnapshots(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Len(snaps, 1)

	_, err = s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 10),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(10),
		MinOutput:   math.ZeroUint(),
	})
	s.Require().ErrorIs(err, types.ErrNoLiquidity)
}

func (s *KeeperTestSuite) TestSwapNativeInput() {
	s.setupPool(lpOnlyFees())

	resp, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 100),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(100),
		MinOutput:   math.NewUint(181),
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(181), resp.AmountOut.Uint64())
	s.Require().True(resp.ProtocolFee.IsZero())
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferEffect{Token: tokenX, Recipient: trader, Amount: math.NewUint(181)},
	}, resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(1100), r1)
	s.Require().Equal(uint64(1819), r2)
	s.Require().True(hasEvent(s.f.Ctx, types.EventTypeSwap))
}

func (s *KeeperTestSuite) TestSwapTokenInput() {
	s.setupPool(lpOnlyFees())

	resp, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		InputToken:  types.Asset2,
		InputAmount: math.NewUint(200),
		MinOutput:   math.ZeroUint(),
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(90), resp.AmountOut.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferFromEffect{Token: tokenX, Owner: trader, Recipient: s.f.Address, Amount: math.NewUint(200)},
		types.BankSendEffect{ToAddress: trader, Amount: sdk.NewCoins(sdk.NewInt64Coin("upaw", 90))},
	}, resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(910), r1)
	s.Require().Equal(uint64(2200), r2)
}

func (s *KeeperTestSuite) TestSwapWithProtocolFee() {
	s.setupPool(splitFees())

	resp, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 100),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(100),
		MinOutput:   math.ZeroUint(),
	})
	s.Require().NoError(err)
	// 1 upaw protocol cut, 99 priced at the lp fee
	s.Require().Equal(uint64(1), resp.ProtocolFee.Uint64())
	s.Require().Equal(uint64(179), resp.AmountOut.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferEffect{Token: tokenX, Recipient: trader, Amount: math.NewUint(179)},
		types.BankSendEffect{ToAddress: feeSink, Amount: sdk.NewCoins(sdk.NewInt64Coin("upaw", 1))},
	}, resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(1099), r1)
	s.Require().Equal(uint64(1821), r2)
}

func (s *KeeperTestSuite) TestSwapAndSendTo() {
	s.setupPool(lpOnlyFees())
	recipient := types.PoolAddress("recipient")

	resp, err := s.f.Keeper.SwapAndSendTo(s.f.Ctx, &types.MsgSwapAndSendTo{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 100),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(100),
		Recipient:   recipient,
		MinToken:    math.ZeroUint(),
	})
	s.Require().NoError(err)
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferEffect{Token: tokenX, Recipient: recipient, Amount: math.NewUint(181)},
	}, resp.Effects)
}

func (s *KeeperTestSuite) TestSwapFailures() {
	s.setupPool(lpOnlyFees())
	now := s.f.Ctx.BlockTime()

	tests := []struct {
		name string
		msg  types.MsgSwap
		err  error
	}{
		{"output below min", types.MsgSwap{Funds: keepertest.NativeFunds("upaw", 100), InputToken: types.Asset1, InputAmount: math.NewUint(100), MinOutput: math.NewUint(182)}, types.ErrSwapMinNotMet},
		{"expired by height", types.MsgSwap{Funds: keepertest.NativeFunds("upaw", 100), InputToken: types.Asset1, InputAmount: math.NewUint(100), MinOutput: math.ZeroUint(), Expiration: types.AtHeight(1)}, types.ErrExpired},
		{"expired by time", types.MsgSwap{Funds: keepertest.NativeFunds("upaw", 100), InputToken: types.Asset1, InputAmount: math.NewUint(100), MinOutput: math.ZeroUint(), Expiration: types.AtTime(now)}, types.ErrExpired},
		{"funds mismatch", types.MsgSwap{Funds: keepertest.NativeFunds("upaw", 99), InputToken: types.Asset1, InputAmount: math.NewUint(100), MinOutput: math.ZeroUint()}, types.ErrInsufficientFunds},
		{"missing funds", types.MsgSwap{InputToken: types.Asset1, InputAmount: math.NewUint(100), MinOutput: math.ZeroUint()}, types.ErrInsufficientFunds},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			msg := tc.msg
			msg.Sender = trader
			_, err := s.f.Keeper.Swap(s.f.Ctx, &msg)
			s.Require().ErrorIs(err, tc.err)

			r1, r2 := s.reserves()
			s.Require().Equal(uint64(1000), r1)
			s.Require().Equal(uint64(2000), r2)
		})
	}

	_, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 100),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(100),
		MinOutput:   math.ZeroUint(),
		Expiration:  types.AtHeight(2),
	})
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestSwapZeroOutput() {
	s.shareToken = s.f.Instantiate(s.T(), upaw, tokX, owner, lpOnlyFees())
	s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 1000000),
		Asset1Amount: math.NewUint(1000000),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(10),
	})

	_, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 1),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(1),
		MinOutput:   math.ZeroUint(),
	})
	s.Require().ErrorIs(err, types.ErrZeroOutput)
}

func (s *KeeperTestSuite) TestPassThroughSwapTokenIntermediate() {
	s.setupPool(lpOnlyFees())
	s.f.Pools.Register(outPool, tokX, types.NativeAsset("uatom"))

	resp, err := s.f.Keeper.PassThroughSwap(s.f.Ctx, &types.MsgPassThroughSwap{
		Sender:            trader,
		Funds:             keepertest.NativeFunds("upaw", 100),
		OutputPoolAddress: outPool,
		InputToken:        types.Asset1,
		InputTokenAmount:  math.NewUint(100),
		OutputMinToken:    math.NewUint(50),
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(181), resp.IntermediateAmount.Uint64())
	requireEffects(s.T(), []types.Effect{
		types.TokenIncreaseAllowanceEffect{Token: tokenX, Spender: outPool, Amount: math.NewUint(181), Expires: types.AtHeight(2)},
		types.PoolSwapEffect{
			Pool: outPool,
			Msg: types.MsgSwapAndSendTo{
				Sender:      s.f.Address,
				InputToken:  types.Asset1,
				InputAmount: math.NewUint(181),
				Recipient:   trader,
				MinToken:    math.NewUint(50),
			},
		},
	}, resp.Effects)

	r1, r2 := s.reserves()
	s.Require().Equal(uint64(1100), r1)
	s.Require().Equal(uint64(1819), r2)
}

func (s *KeeperTestSuite) TestPassThroughSwapNativeIntermediate() {
	s.shareToken = s.f.Instantiate(s.T(), tokX, upaw, owner, splitFees())
	s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 1000),
		Asset1Amount: math.NewUint(2000),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(1000),
	})
	s.f.Pools.Register(outPool, types.NativeAsset("uatom"), upaw)

	resp, err := s.f.Keeper.PassThroughSwap(s.f.Ctx, &types.MsgPassThroughSwap{
		Sender:            trader,
		OutputPoolAddress: outPool,
		InputToken:        types.Asset1,
		InputTokenAmount:  math.NewUint(200),
		OutputMinToken:    math.ZeroUint(),
	})
	s.Require().NoError(err)
	// 2 token-x protocol cut, 198 priced at the lp fee
	s.Require().Equal(uint64(2), resp.ProtocolFee.Uint64())
	out := resp.IntermediateAmount
	funds := sdk.NewCoins(sdk.NewCoin("upaw", math.NewIntFromBigInt(out.BigInt())))
	requireEffects(s.T(), []types.Effect{
		types.TokenTransferFromEffect{Token: tokenX, Owner: trader, Recipient: s.f.Address, Amount: math.NewUint(200)},
		types.TokenTransferEffect{Token: tokenX, Recipient: feeSink, Amount: math.NewUint(2)},
		types.PoolSwapEffect{
			Pool: outPool,
			Msg: types.MsgSwapAndSendTo{
				Sender:      s.f.Address,
				Funds:       funds,
				InputToken:  types.Asset2,
				InputAmount: out,
				Recipient:   trader,
				MinToken:    math.ZeroUint(),
			},
			Funds: funds,
		},
	}, resp.Effects)
}

func (s *KeeperTestSuite) TestPassThroughSwapInvalidOutputPool() {
	s.setupPool(lpOnlyFees())
	s.f.Pools.Register(outPool, types.NativeAsset("uatom"), types.NativeAsset("uosmo"))

	cases := map[string]string{
		"pool without intermediate": outPool,
		"unknown pool":              types.PoolAddress("missing"),
		"self":                      s.f.Address,
	}
	for name, addr := range cases {
		s.Run(name, func() {
			_, err := s.f.Keeper.PassThroughSwap(s.f.Ctx, &types.MsgPassThroughSwap{
				Sender:            trader,
				Funds:             keepertest.NativeFunds("upaw", 100),
				OutputPoolAddress: addr,
				InputToken:        types.Asset1,
				InputTokenAmount:  math.NewUint(100),
				OutputMinToken:    math.ZeroUint(),
			})
			s.Require().ErrorIs(err, types.ErrInvalidOutputPool)

			r1, r2 := s.reserves()
			s.Require().Equal(uint64(1000), r1)
			s.Require().Equal(uint64(2000), r2)
			snaps, err := s.f.Keeper.GetSnapshots(s.f.Ctx)
			s.Require().NoError(err)
			s.Require().Len(snaps, 1)
		})
	}
}

func (s *KeeperTestSuite) TestUpdateConfig() {
	s.setupPool(lpOnlyFees())
	stranger := types.PoolAddress("stranger")
	newOwner := types.PoolAddress("new-owner")

	update := func(sender string, lp, protocol math.LegacyDec, nextOwner string) error {
		_, err := s.f.Keeper.UpdateConfig(s.f.Ctx, &types.MsgUpdateConfig{
			Sender:               sender,
			Owner:                nextOwner,
			LpFeePercent:         lp,
			ProtocolFeePercent:   protocol,
			ProtocolFeeRecipient: feeSink,
		})
		return err
	}

	// the ceiling is reported whoever asks
	err := update(stranger, math.LegacyNewDecWithPrec(6, 1), math.LegacyNewDecWithPrec(5, 1), "")
	s.Require().ErrorIs(err, types.ErrFeesTooHigh)

	err = update(stranger, math.LegacyNewDecWithPrec(1, 2), math.LegacyZeroDec(), "")
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	err = update(owner, math.LegacyNewDecWithPrec(1, 2), math.LegacyNewDecWithPrec(2, 2), newOwner)
	s.Require().NoError(err)

	fees, err := s.f.Keeper.GetFeeConfig(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().True(fees.LpFeePercent.Equal(math.LegacyNewDecWithPrec(1, 2)))
	s.Require().True(fees.ProtocolFeePercent.Equal(math.LegacyNewDecWithPrec(2, 2)))
	s.Require().Equal(newOwner, s.f.Keeper.GetOwner(s.f.Ctx))

	err = update(owner, math.LegacyZeroDec(), math.LegacyZeroDec(), "")
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *KeeperTestSuite) TestUpdateConfigLockedPool() {
	_, err := s.f.Keeper.Instantiate(s.f.Ctx, &types.MsgInstantiate{
		Sender:               owner,
		Asset1:               upaw,
		Asset2:               tokX,
		ProtocolFeeRecipient: feeSink,
		LpFeePercent:         math.LegacyZeroDec(),
		ProtocolFeePercent:   math.LegacyZeroDec(),
	})
	s.Require().NoError(err)

	_, err = s.f.Keeper.UpdateConfig(s.f.Ctx, &types.MsgUpdateConfig{
		Sender:               owner,
		LpFeePercent:         math.LegacyZeroDec(),
		ProtocolFeePercent:   math.LegacyZeroDec(),
		ProtocolFeeRecipient: feeSink,
	})
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *KeeperTestSuite) TestQueries() {
	s.shareToken = s.f.Instantiate(s.T(), upaw, tokX, owner, lpOnlyFees())
	s.f.AddLiquidity(s.T(), &types.MsgAddLiquidity{
		Sender:       trader,
		Funds:        keepertest.NativeFunds("upaw", 100),
		Asset1Amount: math.NewUint(100),
		MinLiquidity: math.ZeroUint(),
		MaxAsset2:    math.NewUint(100),
	})

	info, err := s.f.Keeper.Info(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(100), info.Asset1Reserve.Uint64())
	s.Require().Equal(uint64(100), info.ShareSupply.Uint64())
	s.Require().Equal(s.shareToken, info.ShareToken)
	s.Require().Equal(owner, info.Owner)
	s.Require().True(info.Asset2.Equal(tokX))

	price, err := s.f.Keeper.Asset1ForAsset2Price(s.f.Ctx, math.NewUint(10))
	s.Require().NoError(err)
	s.Require().Equal(uint64(9), price.OutputAmount.Uint64())

	price, err = s.f.Keeper.Asset2ForAsset1Price(s.f.Ctx, math.NewUint(10))
	s.Require().NoError(err)
	s.Require().Equal(uint64(9), price.OutputAmount.Uint64())

	snaps, err := s.f.Keeper.Snapshots(s.f.Ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(snaps.Snapshots, 1)

	params, err := s.f.Keeper.GetParams(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultParams(), params)
}

func (s *KeeperTestSuite) TestQueriesBeforeInstantiate() {
	_, err := s.f.Keeper.Info(s.f.Ctx)
	s.Require().ErrorIs(err, types.ErrNotInstantiated)

	_, err = s.f.Keeper.Asset1ForAsset2Price(s.f.Ctx, math.NewUint(10))
	s.Require().ErrorIs(err, types.ErrNotInstantiated)
}

func (s *KeeperTestSuite) TestGenesisRoundTrip() {
	s.setupPool(splitFees())
	s.f.AdvanceBlock(time.Minute)
	_, err := s.f.Keeper.Swap(s.f.Ctx, &types.MsgSwap{
		Sender:      trader,
		Funds:       keepertest.NativeFunds("upaw", 100),
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(100),
		MinOutput:   math.ZeroUint(),
	})
	s.Require().NoError(err)

	exported, err := s.f.Keeper.ExportGenesis(s.f.Ctx)
	s.Require().NoError(err)
	s.Require().NoError(exported.Validate())
	s.Require().Len(exported.Snapshots, 2)
	s.Require().Equal(owner, exported.Owner)

	other := keepertest.NewSwapFixture(s.T())
	s.Require().NoError(other.Keeper.InitGenesis(other.Ctx, *exported))
	reimported, err := other.Keeper.ExportGenesis(other.Ctx)
	s.Require().NoError(err)

	s.Require().Equal(exported.Pool.Asset1.Amount.String(), reimported.Pool.Asset1.Amount.String())
	s.Require().Equal(exported.Pool.Asset2.Amount.String(), reimported.Pool.Asset2.Amount.String())
	s.Require().Equal(*exported.Binding, *reimported.Binding)
	s.Require().Len(reimported.Snapshots, 2)
	s.Require().Equal(exported.Snapshots[1].Timestamp, reimported.Snapshots[1].Timestamp)
}
