package simulation

import (
	"context"
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// Pool is one named pool instance of the simulated chain.
type Pool struct {
	Name    string
	Address string
	Keeper  *keeper.Keeper
}

// Registry resolves pool instances by name and by address.
type Registry struct {
	byName    map[string]*Pool
	byAddress map[string]*Pool
}

var _ types.PoolQuerier = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*Pool),
		byAddress: make(map[string]*Pool),
	}
}

func (r *Registry) add(p *Pool) error {
	if _, ok := r.byName[p.Name]; ok {
		return errorsmod.Wrapf(ErrDuplicatePool, "%q", p.Name)
	}
	r.byName[p.Name] = p
	r.byAddress[p.Address] = p
	return nil
}

// ByName returns the pool registered under name.
func (r *Registry) ByName(name string) (*Pool, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownPool, "name %q", name)
	}
	return p, nil
}

// ByAddress returns the pool holding reserves at addr.
func (r *Registry) ByAddress(addr string) (*Pool, error) {
	p, ok := r.byAddress[addr]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownPool, "address %s", addr)
	}
	return p, nil
}

// Names lists the registered pools in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PoolInfo describes the pool at addr. Uninstantiated pools are reported as
// errors.
func (r *Registry) PoolInfo(ctx context.Context, addr string) (types.InfoResponse, error) {
	p, err := r.ByAddress(addr)
	if err != nil {
		return types.InfoResponse{}, err
	}
	return p.Keeper.Info(ctx)
}
