package simulation

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Info describes the named pool at the committed state.
func (e *Executor) Info(pool string) (types.InfoResponse, error) {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return types.InfoResponse{}, err
	}
	return p.Keeper.Info(e.ctx)
}

// Quote prices selling amount of the selected side of the named pool.
func (e *Executor) Quote(pool string, sel types.TokenSelect, amount math.Uint) (types.PriceResponse, error) {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return types.PriceResponse{}, err
	}
	if sel == types.Asset1 {
		return p.Keeper.Asset1ForAsset2Price(e.ctx, amount)
	}
	return p.Keeper.Asset2ForAsset1Price(e.ctx, amount)
}

// TWAP averages the named pool's prices over the last window seconds.
func (e *Executor) TWAP(pool string, window uint64) (types.TWAP, error) {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return types.TWAP{}, err
	}
	return p.Keeper.TWAP(e.ctx, window)
}

// Snapshots returns up to limit of the named pool's newest snapshots.
func (e *Executor) Snapshots(pool string, limit uint32) (types.SnapshotsResponse, error) {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return types.SnapshotsResponse{}, err
	}
	return p.Keeper.Snapshots(e.ctx, limit)
}

// PoolState is a pool's description keyed by its name.
type PoolState struct {
	Name    string              `json:"name"`
	Address string              `json:"address"`
	Info    *types.InfoResponse `json:"info,omitempty"`
}

// State describes every pool. Pools that were never instantiated carry no info.
func (e *Executor) State() []PoolState {
	names := e.registry.Names()
	out := make([]PoolState, 0, len(names))
	for _, name := range names {
		p, _ := e.registry.ByName(name)
		st := PoolState{Name: name, Address: p.Address}
		if info, err := p.Keeper.Info(e.ctx); err == nil {
			st.Info = &info
		}
		out = append(out, st)
	}
	return out
}
