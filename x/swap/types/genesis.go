package types

import (
	"fmt"
)

// GenesisState is the full pool aggregate. A nil Pool means the instance has
// not been instantiated yet.
type GenesisState struct {
	Params    Params             `json:"params"`
	Pool      *Pool              `json:"pool,omitempty"`
	Fees      *FeeConfig         `json:"fees,omitempty"`
	Owner     string             `json:"owner,omitempty"`
	Binding   *ShareTokenBinding `json:"binding,omitempty"`
	Snapshots []PriceSnapshot    `json:"snapshots,omitempty"`
}

// DefaultGenesis returns the default genesis state for the swap module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.Pool == nil {
		if gs.Fees != nil || gs.Binding != nil || gs.Owner != "" || len(gs.Snapshots) > 0 {
			return fmt.Errorf("pool state given without a pool")
		}
		return nil
	}
	if err := gs.Pool.Validate(); err != nil {
		return fmt.Errorf("invalid pool: %w", err)
	}
	if gs.Fees == nil {
		return fmt.Errorf("fee config is required with a pool")
	}
	if err := gs.Fees.Validate(); err != nil {
		return fmt.Errorf("invalid fee config: %w", err)
	}
	if gs.Owner != "" {
		if err := validateAddress("owner", gs.Owner); err != nil {
			return err
		}
	}
	if gs.Binding == nil {
		return fmt.Errorf("share token binding is required with a pool")
	}
	if err := gs.Binding.Validate(); err != nil {
		return fmt.Errorf("invalid binding: %w", err)
	}
	if uint64(len(gs.Snapshots)) > uint64(gs.Params.MaxSnapshots) {
		return fmt.Errorf("%d snapshots exceed max %d", len(gs.Snapshots), gs.Params.MaxSnapshots)
	}
	for i, snap := range gs.Snapshots {
		if err := snap.Validate(); err != nil {
			return err
		}
		if i > 0 && snap.Timestamp < gs.Snapshots[i-1].Timestamp {
			return fmt.Errorf("snapshot %d out of order", i)
		}
	}
	return nil
}
