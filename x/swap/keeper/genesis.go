package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// InitGenesis initializes the pool instance from genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis state: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}
	if genState.Pool == nil {
		return nil
	}

	if err := k.SetPool(ctx, *genState.Pool); err != nil {
		return fmt.Errorf("failed to set pool: %w", err)
	}
	if err := k.SetFeeConfig(ctx, *genState.Fees); err != nil {
		return fmt.Errorf("failed to set fee config: %w", err)
	}
	k.SetOwner(ctx, genState.Owner)
	if err := k.SetBinding(ctx, *genState.Binding); err != nil {
		return fmt.Errorf("failed to set share token binding: %w", err)
	}
	for _, snap := range genState.Snapshots {
		if err := k.AppendSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("failed to import snapshot at %d: %w", snap.Timestamp, err)
		}
	}
	return nil
}

// ExportGenesis exports the pool instance state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}
	genesis := &types.GenesisState{Params: params}
	if !k.HasPool(ctx) {
		return genesis, nil
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	fees, err := k.GetFeeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee config: %w", err)
	}
	binding, err := k.GetBinding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get share token binding: %w", err)
	}
	snaps, err := k.GetSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}

	genesis.Pool = &pool
	genesis.Fees = &fees
	genesis.Owner = k.GetOwner(ctx)
	genesis.Binding = &binding
	genesis.Snapshots = snaps
	return genesis, nil
}
