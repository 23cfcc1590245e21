package simulation

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

var (
	nativeBalancePrefix = []byte("n/")
	tokenBalancePrefix  = []byte("t/")
	tokenSupplyPrefix   = []byte("s/")
	allowancePrefix     = []byte("a/")
	minterPrefix        = []byte("m/")
)

// Allowance lets a spender pull up to Amount of an owner's tokens until Expires.
type Allowance struct {
	Amount  math.Uint         `json:"amount"`
	Expires *types.Expiration `json:"expires,omitempty"`
}

// Ledger holds every balance the simulated pools touch: native coins, token
// balances, allowances and share token supply. It lives in its own store so a
// discarded cache context rolls it back together with pool state.
type Ledger struct {
	storeKey storetypes.StoreKey
}

var _ types.ShareLedger = Ledger{}

func NewLedger(key storetypes.StoreKey) Ledger {
	return Ledger{storeKey: key}
}

func (l Ledger) store(ctx context.Context, pfx []byte) prefix.Store {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return prefix.NewStore(sdkCtx.KVStore(l.storeKey), pfx)
}

func pairKey(a, b string) []byte {
	return []byte(a + "/" + b)
}

func getUint(store prefix.Store, key []byte) math.Uint {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroUint()
	}
	return math.NewUintFromString(string(bz))
}

func setUint(store prefix.Store, key []byte, v math.Uint) {
	if v.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, []byte(v.String()))
}

// TotalSupply returns the issued amount of token.
func (l Ledger) TotalSupply(ctx context.Context, token string) (math.Uint, error) {
	return getUint(l.store(ctx, tokenSupplyPrefix), []byte(token)), nil
}

// Balance returns owner's balance of token.
func (l Ledger) Balance(ctx context.Context, token, owner string) (math.Uint, error) {
	return getUint(l.store(ctx, tokenBalancePrefix), pairKey(token, owner)), nil
}

// NativeBalance returns owner's balance of denom.
func (l Ledger) NativeBalance(ctx context.Context, denom, owner string) math.Uint {
	return getUint(l.store(ctx, nativeBalancePrefix), pairKey(denom, owner))
}

// BalanceOf returns owner's balance of asset.
func (l Ledger) BalanceOf(ctx context.Context, asset types.AssetInfo, owner string) math.Uint {
	if asset.IsToken() {
		bal, _ := l.Balance(ctx, asset.Address(), owner)
		return bal
	}
	return l.NativeBalance(ctx, asset.Denom(), owner)
}

func (l Ledger) balanceStore(ctx context.Context, asset types.AssetInfo) (prefix.Store, []byte) {
	if asset.IsToken() {
		return l.store(ctx, tokenBalancePrefix), []byte(asset.Address())
	}
	return l.store(ctx, nativeBalancePrefix), []byte(asset.Denom())
}

// Fund issues amount of asset to owner out of thin air. Token supply grows
// with it; native supply is not tracked.
func (l Ledger) Fund(ctx context.Context, asset types.AssetInfo, owner string, amount math.Uint) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	store, id := l.balanceStore(ctx, asset)
	key := pairKey(string(id), owner)
	setUint(store, key, getUint(store, key).Add(amount))
	if asset.IsToken() {
		supply := l.store(ctx, tokenSupplyPrefix)
		setUint(supply, id, getUint(supply, id).Add(amount))
	}
	return nil
}

// Send moves amount of asset from one account to another.
func (l Ledger) Send(ctx context.Context, asset types.AssetInfo, from, to string, amount math.Uint) error {
	if amount.IsZero() {
		return nil
	}
	store, id := l.balanceStore(ctx, asset)
	fromKey := pairKey(string(id), from)
	bal := getUint(store, fromKey)
	if bal.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientBalance, "%s holds %s %s, needs %s", from, bal, asset, amount)
	}
	setUint(store, fromKey, bal.Sub(amount))
	toKey := pairKey(string(id), to)
	setUint(store, toKey, getUint(store, toKey).Add(amount))
	return nil
}

// SendCoins moves native coins between accounts.
func (l Ledger) SendCoins(ctx context.Context, from, to string, coins sdk.Coins) error {
	for _, c := range coins {
		if err := l.Send(ctx, types.NativeAsset(c.Denom), from, to, math.NewUintFromBigInt(c.Amount.BigInt())); err != nil {
			return err
		}
	}
	return nil
}

// Allowance returns what spender may still pull from owner. Expired
// allowances read as zero.
func (l Ledger) Allowance(ctx context.Context, token, owner, spender string) (Allowance, error) {
	bz := l.store(ctx, allowancePrefix).Get(pairKey(token, owner+"/"+spender))
	if bz == nil {
		return Allowance{Amount: math.ZeroUint()}, nil
	}
	var a Allowance
	if err := json.Unmarshal(bz, &a); err != nil {
		return Allowance{}, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if a.Expires.IsExpired(sdkCtx.BlockHeight(), sdkCtx.BlockTime()) {
		return Allowance{Amount: math.ZeroUint(), Expires: a.Expires}, nil
	}
	return a, nil
}

func (l Ledger) setAllowance(ctx context.Context, token, owner, spender string, a Allowance) error {
	store := l.store(ctx, allowancePrefix)
	key := pairKey(token, owner+"/"+spender)
	if a.Amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := json.Marshal(a)
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// IncreaseAllowance raises what spender may pull from owner and replaces the
// expiration when one is given.
func (l Ledger) IncreaseAllowance(ctx context.Context, token, owner, spender string, amount math.Uint, expires *types.Expiration) error {
	current, err := l.Allowance(ctx, token, owner, spender)
	if err != nil {
		return err
	}
	next := Allowance{Amount: current.Amount.Add(amount), Expires: current.Expires}
	if expires != nil {
		next.Expires = expires
	}
	return l.setAllowance(ctx, token, owner, spender, next)
}

// TransferFrom moves owner's tokens to recipient on behalf of spender,
// consuming its allowance.
func (l Ledger) TransferFrom(ctx context.Context, token, spender, owner, recipient string, amount math.Uint) error {
	if amount.IsZero() {
		return nil
	}
	current, err := l.Allowance(ctx, token, owner, spender)
	if err != nil {
		return err
	}
	if current.Amount.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientAllowance, "%s may pull %s of %s from %s, needs %s", spender, current.Amount, token, owner, amount)
	}
	current.Amount = current.Amount.Sub(amount)
	if err := l.setAllowance(ctx, token, owner, spender, current); err != nil {
		return err
	}
	return l.Send(ctx, types.TokenAsset(token), owner, recipient, amount)
}

// RegisterToken creates token with minter as its only issuer.
func (l Ledger) RegisterToken(ctx context.Context, token, minter string) error {
	store := l.store(ctx, minterPrefix)
	if store.Has([]byte(token)) {
		return errorsmod.Wrapf(ErrTokenExists, "token %s", token)
	}
	store.Set([]byte(token), []byte(minter))
	return nil
}

// Minter returns the issuer of token, or "" for unregistered tokens.
func (l Ledger) Minter(ctx context.Context, token string) string {
	return string(l.store(ctx, minterPrefix).Get([]byte(token)))
}

func (l Ledger) checkMinter(ctx context.Context, token, sender string) error {
	if minter := l.Minter(ctx, token); minter == "" || minter != sender {
		return errorsmod.Wrapf(ErrUnauthorizedMinter, "%s cannot issue %s", sender, token)
	}
	return nil
}

// Mint issues amount of token to recipient. Only the minter may mint.
func (l Ledger) Mint(ctx context.Context, token, sender, recipient string, amount math.Uint) error {
	if err := l.checkMinter(ctx, token, sender); err != nil {
		return err
	}
	return l.Fund(ctx, types.TokenAsset(token), recipient, amount)
}

// Burn destroys amount of owner's token. Only the minter may burn.
func (l Ledger) Burn(ctx context.Context, token, sender, owner string, amount math.Uint) error {
	if err := l.checkMinter(ctx, token, sender); err != nil {
		return err
	}
	balances := l.store(ctx, tokenBalancePrefix)
	key := pairKey(token, owner)
	bal := getUint(balances, key)
	if bal.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientBalance, "%s holds %s of %s, burning %s", owner, bal, token, amount)
	}
	setUint(balances, key, bal.Sub(amount))
	supply := l.store(ctx, tokenSupplyPrefix)
	setUint(supply, []byte(token), getUint(supply, []byte(token)).Sub(amount))
	return nil
}
