package keeper_test

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

type fakeBalances map[string]math.Uint

func (f fakeBalances) BalanceOf(_ context.Context, asset types.AssetInfo, owner string) math.Uint {
	if b, ok := f[asset.String()+"/"+owner]; ok {
		return b
	}
	return math.ZeroUint()
}

func (s *KeeperTestSuite) TestInvariantsHoldForBackedPool() {
	s.setupPool(lpOnlyFees())
	bank := fakeBalances{
		upaw.String() + "/" + s.f.Address: math.NewUint(1000),
		tokX.String() + "/" + s.f.Address: math.NewUint(2000),
	}

	msg, broken := keeper.AllInvariants(*s.f.Keeper, bank)(s.f.Ctx)
	s.Require().False(broken, msg)
}

func (s *KeeperTestSuite) TestReservesBackedInvariantBroken() {
	s.setupPool(lpOnlyFees())
	bank := fakeBalances{
		upaw.String() + "/" + s.f.Address: math.NewUint(999),
		tokX.String() + "/" + s.f.Address: math.NewUint(2000),
	}

	msg, broken := keeper.ReservesBackedInvariant(*s.f.Keeper, bank)(s.f.Ctx)
	s.Require().True(broken)
	s.Require().Contains(msg, "found 1 reserves above the pool balance")
}

func (s *KeeperTestSuite) TestShareSupplyInvariantBroken() {
	s.setupPool(lpOnlyFees())
	s.f.Shares.Burn(s.shareToken, trader, math.NewUint(1000))

	_, broken := keeper.ShareSupplyInvariant(*s.f.Keeper)(s.f.Ctx)
	s.Require().True(broken)
}

func (s *KeeperTestSuite) TestInvariantsSkipUninstantiatedPool() {
	_, broken := keeper.AllInvariants(*s.f.Keeper, fakeBalances{})(s.f.Ctx)
	s.Require().False(broken)
}
