package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	"github.com/paw-chain/pawswap/x/swap/types"
)

func (k Keeper) getJSON(ctx context.Context, key []byte, v any) (bool, error) {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return false, nil
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return true, errorsmod.Wrapf(types.ErrInvalidState, "decode record %x: %s", key, err)
	}
	return true, nil
}

func (k Keeper) setJSON(ctx context.Context, key []byte, v any) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidState, "encode record %x: %s", key, err)
	}
	k.getStore(ctx).Set(key, bz)
	return nil
}

// HasPool reports whether the instance has been instantiated.
func (k Keeper) HasPool(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.PoolKey)
}

// GetPool returns the reserve ledger.
func (k Keeper) GetPool(ctx context.Context) (types.Pool, error) {
	var pool types.Pool
	found, err := k.getJSON(ctx, types.PoolKey, &pool)
	if err != nil {
		return types.Pool{}, err
	}
	if !found {
		return types.Pool{}, errorsmod.Wrap(types.ErrNotInstantiated, "pool not found")
	}
	return pool, nil
}

// SetPool stores the reserve ledger.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	return k.setJSON(ctx, types.PoolKey, pool)
}

// GetFeeConfig returns the fee configuration.
func (k Keeper) GetFeeConfig(ctx context.Context) (types.FeeConfig, error) {
	var fees types.FeeConfig
	found, err := k.getJSON(ctx, types.FeeConfigKey, &fees)
	if err != nil {
		return types.FeeConfig{}, err
	}
	if !found {
		return types.FeeConfig{}, errorsmod.Wrap(types.ErrNotInstantiated, "fee config not found")
	}
	return fees, nil
}

// SetFeeConfig stores the fee configuration.
func (k Keeper) SetFeeConfig(ctx context.Context, fees types.FeeConfig) error {
	if err := fees.Validate(); err != nil {
		return err
	}
	return k.setJSON(ctx, types.FeeConfigKey, fees)
}

// GetOwner returns the owner address, or "" when administration is locked.
func (k Keeper) GetOwner(ctx context.Context) string {
	bz := k.getStore(ctx).Get(types.OwnerKey)
	return string(bz)
}

// SetOwner stores owner. An empty owner locks the configuration for good.
func (k Keeper) SetOwner(ctx context.Context, owner string) {
	store := k.getStore(ctx)
	if owner == "" {
		store.Delete(types.OwnerKey)
		return
	}
	store.Set(types.OwnerKey, []byte(owner))
}

// GetBinding returns the share token binding state.
func (k Keeper) GetBinding(ctx context.Context) (types.ShareTokenBinding, error) {
	var binding types.ShareTokenBinding
	found, err := k.getJSON(ctx, types.BindingKey, &binding)
	if err != nil {
		return types.ShareTokenBinding{}, err
	}
	if !found {
		return types.ShareTokenBinding{}, errorsmod.Wrap(types.ErrNotInstantiated, "share token binding not found")
	}
	return binding, nil
}

// SetBinding stores the share token binding state.
func (k Keeper) SetBinding(ctx context.Context, binding types.ShareTokenBinding) error {
	if err := binding.Validate(); err != nil {
		return err
	}
	return k.setJSON(ctx, types.BindingKey, binding)
}

// GetShareToken returns the bound share token address.
func (k Keeper) GetShareToken(ctx context.Context) (string, error) {
	binding, err := k.GetBinding(ctx)
	if err != nil {
		return "", err
	}
	return binding.ShareToken()
}

// GetParams returns the oracle parameters, falling back to defaults.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params := types.DefaultParams()
	if _, err := k.getJSON(ctx, types.ParamsKey, &params); err != nil {
		return types.Params{}, err
	}
	return params, nil
}

// SetParams stores the oracle parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return k.setJSON(ctx, types.ParamsKey, params)
}
