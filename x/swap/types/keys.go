package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "swap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store keys. Every pool instance owns its own store, so the pool aggregate is
// kept as a handful of singleton records plus the snapshot series.
var (
	PoolKey           = []byte{0x01}
	FeeConfigKey      = []byte{0x02}
	OwnerKey          = []byte{0x03}
	BindingKey        = []byte{0x04}
	ParamsKey         = []byte{0x05}
	SnapshotCursorKey = []byte{0x06}
	SnapshotKeyPrefix = []byte{0x07}
)

// InstantiateShareTokenReplyID tags the share token creation request. It is
// the only correlation id the pool ever hands out.
const InstantiateShareTokenReplyID uint64 = 0

// PoolAddress derives the deterministic account address of the pool
// instance registered under name.
func PoolAddress(name string) string {
	return sdk.AccAddress(address.Module(ModuleName, []byte(name))).String()
}
