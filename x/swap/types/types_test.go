package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/swap/types"
)

var tokenAddr = types.PoolAddress("token")

func TestAssetInfoJSON(t *testing.T) {
	tests := []struct {
		name  string
		asset types.AssetInfo
		json  string
	}{
		{"native", types.NativeAsset("upaw"), `{"native":"upaw"}`},
		{"token", types.TokenAsset(tokenAddr), `{"token":"` + tokenAddr + `"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bz, err := json.Marshal(tc.asset)
			require.NoError(t, err)
			require.JSONEq(t, tc.json, string(bz))

			var decoded types.AssetInfo
			require.NoError(t, json.Unmarshal(bz, &decoded))
			require.True(t, decoded.Equal(tc.asset))
		})
	}

	var both types.AssetInfo
	err := json.Unmarshal([]byte(`{"native":"upaw","token":"`+tokenAddr+`"}`), &both)
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestAssetInfoEffects(t *testing.T) {
	recipient := types.PoolAddress("recipient")
	amount := math.NewUint(42)

	native := types.NativeAsset("upaw")
	send, ok := native.TransferEffect(recipient, amount).(types.BankSendEffect)
	require.True(t, ok)
	require.Equal(t, recipient, send.ToAddress)
	require.Equal(t, "42upaw", send.Amount.String())
	_, ok = native.PullEffect(recipient, tokenAddr, amount)
	require.False(t, ok)

	token := types.TokenAsset(tokenAddr)
	transfer, ok := token.TransferEffect(recipient, amount).(types.TokenTransferEffect)
	require.True(t, ok)
	require.Equal(t, tokenAddr, transfer.Token)
	pull, ok := token.PullEffect(recipient, "pool", amount)
	require.True(t, ok)
	require.Equal(t, types.TokenTransferFromEffect{Token: tokenAddr, Owner: recipient, Recipient: "pool", Amount: amount}, pull)
	require.Panics(t, func() { token.Coin(amount) })
}

func TestPoolValidate(t *testing.T) {
	valid := types.NewPool(types.NativeAsset("upaw"), types.TokenAsset(tokenAddr))
	require.NoError(t, valid.Validate())
	require.True(t, valid.IsEmpty())

	same := types.NewPool(types.NativeAsset("upaw"), types.NativeAsset("upaw"))
	require.ErrorIs(t, same.Validate(), types.ErrInvalidAsset)

	badToken := types.NewPool(types.NativeAsset("upaw"), types.TokenAsset("not-an-address"))
	require.ErrorIs(t, badToken.Validate(), types.ErrInvalidAsset)

	tooBig := valid
	tooBig.Asset1.Amount = types.MaxAmount.Add(math.OneUint())
	require.ErrorIs(t, tooBig.Validate(), types.ErrOverflow)
}

func TestPoolSides(t *testing.T) {
	pool := types.NewPool(types.NativeAsset("upaw"), types.TokenAsset(tokenAddr))
	in, out := pool.Sides(types.Asset2)
	require.True(t, in.Info.IsToken())
	require.True(t, out.Info.IsNative())

	sel, ok := pool.SideOf(types.TokenAsset(tokenAddr))
	require.True(t, ok)
	require.Equal(t, types.Asset2, sel)
	_, ok = pool.SideOf(types.NativeAsset("uatom"))
	require.False(t, ok)

	parsed, err := types.ParseTokenSelect("asset1")
	require.NoError(t, err)
	require.Equal(t, types.Asset1, parsed)
	require.Equal(t, types.Asset2, parsed.Other())
	_, err = types.ParseTokenSelect("asset3")
	require.Error(t, err)
}

func TestValidateFees(t *testing.T) {
	tests := []struct {
		name     string
		lp       math.LegacyDec
		protocol math.LegacyDec
		err      error
	}{
		{"default split", math.LegacyNewDecWithPrec(25, 4), math.LegacyNewDecWithPrec(5, 4), nil},
		{"exactly one", math.LegacyNewDecWithPrec(5, 1), math.LegacyNewDecWithPrec(5, 1), nil},
		{"zero", math.LegacyZeroDec(), math.LegacyZeroDec(), nil},
		{"above one", math.LegacyNewDecWithPrec(6, 1), math.LegacyNewDecWithPrec(5, 1), types.ErrFeesTooHigh},
		{"negative", math.LegacyNewDecWithPrec(-1, 2), math.LegacyZeroDec(), types.ErrInvalidAmount},
		{"unset", math.LegacyDec{}, math.LegacyZeroDec(), types.ErrInvalidAmount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := types.ValidateFees(tc.lp, tc.protocol)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestShareTokenBinding(t *testing.T) {
	shareToken := types.PoolAddress("share")
	awaiting := types.AwaitingBinding(types.InstantiateShareTokenReplyID)

	_, err := awaiting.ShareToken()
	require.ErrorIs(t, err, types.ErrShareTokenNotBound)

	_, err = awaiting.Accept(7, shareToken)
	require.ErrorIs(t, err, types.ErrUnknownReplyID)

	_, err = awaiting.Accept(types.InstantiateShareTokenReplyID, "")
	require.ErrorIs(t, err, types.ErrShareTokenInstantiate)

	bound, err := awaiting.Accept(types.InstantiateShareTokenReplyID, shareToken)
	require.NoError(t, err)
	addr, err := bound.ShareToken()
	require.NoError(t, err)
	require.Equal(t, shareToken, addr)

	_, err = bound.Accept(types.InstantiateShareTokenReplyID, shareToken)
	require.ErrorIs(t, err, types.ErrUnknownReplyID)
}

func TestExpiration(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	var never *types.Expiration
	require.False(t, never.IsExpired(100, now))

	require.True(t, types.AtHeight(10).IsExpired(10, now))
	require.False(t, types.AtHeight(11).IsExpired(10, now))

	require.True(t, types.AtTime(now).IsExpired(1, now))
	require.False(t, types.AtTime(now.Add(time.Second)).IsExpired(1, now))

	require.ErrorIs(t, types.CheckExpiration(types.AtHeight(5), 6, now), types.ErrExpired)
	require.NoError(t, types.CheckExpiration(nil, 6, now))

	h := uint64(1)
	both := &types.Expiration{AtHeight: &h, AtTime: &now}
	require.Error(t, both.Validate())
}

func TestComputeTWAP(t *testing.T) {
	dec := math.LegacyNewDec

	t.Run("empty series", func(t *testing.T) {
		twap, err := types.ComputeTWAP(nil)
		require.NoError(t, err)
		require.True(t, twap.Price1.IsZero())
	})

	t.Run("zero elapsed time", func(t *testing.T) {
		twap, err := types.ComputeTWAP([]types.PriceSnapshot{
			{Price1: dec(5), Price2: dec(1), Timestamp: 10},
			{Price1: dec(7), Price2: dec(1), Timestamp: 10},
		})
		require.NoError(t, err)
		require.True(t, twap.Price1.IsZero())
		require.True(t, twap.Price2.IsZero())
		require.Zero(t, twap.Elapsed)
	})

	t.Run("time weighted", func(t *testing.T) {
		twap, err := types.ComputeTWAP([]types.PriceSnapshot{
			{Price1: dec(2), Price2: dec(4), Timestamp: 0},
			{Price1: dec(100), Price2: dec(100), Timestamp: 90},
			{Price1: dec(2), Price2: dec(4), Timestamp: 91},
			{Price1: dec(2), Price2: dec(4), Timestamp: 100},
		})
		require.NoError(t, err)
		// (2*90 + 100*1 + 2*9) / 100
		require.Equal(t, "2.980000000000000000", twap.Price1.String())
		require.Equal(t, int64(100), twap.Elapsed)
	})

	t.Run("timestamps going backwards", func(t *testing.T) {
		_, err := types.ComputeTWAP([]types.PriceSnapshot{
			{Price1: dec(1), Price2: dec(1), Timestamp: 10},
			{Price1: dec(1), Price2: dec(1), Timestamp: 5},
		})
		require.ErrorIs(t, err, types.ErrInvalidState)
	})
}

func TestSpotSnapshot(t *testing.T) {
	pool := types.NewPool(types.NativeAsset("upaw"), types.TokenAsset(tokenAddr))
	_, ok := types.SpotSnapshot(pool, 1)
	require.False(t, ok)

	pool.Asset1.Amount = math.NewUint(1000)
	pool.Asset2.Amount = math.NewUint(2000)
	snap, ok := types.SpotSnapshot(pool, 1)
	require.True(t, ok)
	require.True(t, snap.Price1.Equal(math.LegacyNewDec(2)))
	require.True(t, snap.Price2.Equal(math.LegacyNewDecWithPrec(5, 1)))
}

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())

	recipient := types.PoolAddress("fees")
	pool := types.NewPool(types.NativeAsset("upaw"), types.TokenAsset(tokenAddr))
	fees := types.DefaultFeeConfig(recipient)
	binding := types.AwaitingBinding(types.InstantiateShareTokenReplyID)

	gs := types.GenesisState{
		Params:  types.DefaultParams(),
		Pool:    &pool,
		Fees:    &fees,
		Binding: &binding,
	}
	require.NoError(t, gs.Validate())

	noFees := gs
	noFees.Fees = nil
	require.Error(t, noFees.Validate())

	orphan := types.GenesisState{Params: types.DefaultParams(), Owner: recipient}
	require.Error(t, orphan.Validate())

	unordered := gs
	unordered.Snapshots = []types.PriceSnapshot{
		{Price1: math.LegacyOneDec(), Price2: math.LegacyOneDec(), Timestamp: 5},
		{Price1: math.LegacyOneDec(), Price2: math.LegacyOneDec(), Timestamp: 4},
	}
	require.Error(t, unordered.Validate())

	badParams := gs
	badParams.Params.MaxSnapshots = 1
	require.ErrorIs(t, badParams.Validate(), types.ErrInvalidParams)
}

func TestMsgValidateBasic(t *testing.T) {
	sender := types.PoolAddress("sender")

	swap := types.MsgSwap{
		Sender:      sender,
		InputToken:  types.Asset1,
		InputAmount: math.NewUint(10),
		MinOutput:   math.ZeroUint(),
	}
	require.NoError(t, swap.ValidateBasic())

	zero := swap
	zero.InputAmount = math.ZeroUint()
	require.ErrorIs(t, zero.ValidateBasic(), types.ErrInvalidAmount)

	badSender := swap
	badSender.Sender = "nope"
	require.ErrorIs(t, badSender.ValidateBasic(), types.ErrInvalidAddress)

	badSelect := swap
	badSelect.InputToken = types.TokenSelect(9)
	require.ErrorIs(t, badSelect.ValidateBasic(), types.ErrInvalidAsset)

	update := types.MsgUpdateConfig{
		Sender:               sender,
		LpFeePercent:         math.LegacyOneDec(),
		ProtocolFeePercent:   math.LegacyOneDec(),
		ProtocolFeeRecipient: sender,
	}
	require.NoError(t, update.ValidateBasic())
}
