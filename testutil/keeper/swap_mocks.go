package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// MockShareLedger tracks share balances in memory.
type MockShareLedger struct {
	Supply   map[string]math.Uint
	Balances map[string]map[string]math.Uint
}

func NewMockShareLedger() *MockShareLedger {
	return &MockShareLedger{
		Supply:   make(map[string]math.Uint),
		Balances: make(map[string]map[string]math.Uint),
	}
}

func (m *MockShareLedger) TotalSupply(_ context.Context, token string) (math.Uint, error) {
	if s, ok := m.Supply[token]; ok {
		return s, nil
	}
	return math.ZeroUint(), nil
}

func (m *MockShareLedger) Balance(_ context.Context, token, owner string) (math.Uint, error) {
	if b, ok := m.Balances[token][owner]; ok {
		return b, nil
	}
	return math.ZeroUint(), nil
}

// Mint credits amount shares to owner.
func (m *MockShareLedger) Mint(token, owner string, amount math.Uint) {
	if m.Balances[token] == nil {
		m.Balances[token] = make(map[string]math.Uint)
	}
	bal, _ := m.Balance(context.Background(), token, owner)
	supply, _ := m.TotalSupply(context.Background(), token)
	m.Balances[token][owner] = bal.Add(amount)
	m.Supply[token] = supply.Add(amount)
}

// Burn debits amount shares from owner.
func (m *MockShareLedger) Burn(token, owner string, amount math.Uint) {
	bal, _ := m.Balance(context.Background(), token, owner)
	supply, _ := m.TotalSupply(context.Background(), token)
	m.Balances[token][owner] = bal.Sub(amount)
	m.Supply[token] = supply.Sub(amount)
}

// Apply executes the share effects in effects and ignores the rest.
func (m *MockShareLedger) Apply(effects []types.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case types.MintSharesEffect:
			m.Mint(e.ShareToken, e.Recipient, e.Amount)
		case types.BurnSharesEffect:
			m.Burn(e.ShareToken, e.Owner, e.Amount)
		}
	}
}

// MockPoolQuerier serves fixed pool descriptions by address.
type MockPoolQuerier struct {
	Pools map[string]types.InfoResponse
}

func NewMockPoolQuerier() *MockPoolQuerier {
	return &MockPoolQuerier{Pools: make(map[string]types.InfoResponse)}
}

// Register makes addr resolve to a pool trading asset1/asset2.
func (m *MockPoolQuerier) Register(addr string, asset1, asset2 types.AssetInfo) {
	m.Pools[addr] = types.InfoResponse{
		Asset1:        asset1,
		Asset2:        asset2,
		Asset1Reserve: math.ZeroUint(),
		Asset2Reserve: math.ZeroUint(),
		ShareSupply:   math.ZeroUint(),
	}
}

func (m *MockPoolQuerier) PoolInfo(_ context.Context, addr string) (types.InfoResponse, error) {
	info, ok := m.Pools[addr]
	if !ok {
		return types.InfoResponse{}, fmt.Errorf("no pool at %s", addr)
	}
	return info, nil
}
