package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// DefaultGenesisTime is the block time of scenarios that give none.
var DefaultGenesisTime = time.Unix(1_700_000_000, 0).UTC()

// Scenario is a scripted sequence of steps against a set of named pools.
type Scenario struct {
	GenesisTime string   `yaml:"genesis_time"`
	Pools       []string `yaml:"pools"`
	Steps       []Step   `yaml:"steps"`
}

// Step is one loosely typed scenario action. Keys depend on the action.
type Step map[string]interface{}

// StepResult reports the outcome of one step.
type StepResult struct {
	Index   int             `json:"index"`
	Action  string          `json:"action"`
	Pool    string          `json:"pool,omitempty"`
	TxID    string          `json:"tx_id,omitempty"`
	Height  int64           `json:"height"`
	Effects json.RawMessage `json:"effects,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(bz)
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(bz []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(bz, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if len(s.Pools) == 0 {
		return nil, fmt.Errorf("scenario declares no pools")
	}
	return &s, nil
}

// Genesis returns the scenario start time.
func (s *Scenario) Genesis() (time.Time, error) {
	if s.GenesisTime == "" {
		return DefaultGenesisTime, nil
	}
	t, err := cast.ToTimeE(s.GenesisTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("genesis_time: %w", err)
	}
	return t.UTC(), nil
}

// AccountAddress derives the address of the scenario account called name.
func AccountAddress(name string) string {
	return sdk.AccAddress(address.Module("swapsim", []byte(name))).String()
}

// ResolveAddress turns a scenario reference into a bech32 address:
// "pool:NAME" is a pool, "share:NAME" its share token, a bech32 string is
// itself and anything else names an account.
func ResolveAddress(ref string) string {
	switch {
	case strings.HasPrefix(ref, "pool:"):
		return types.PoolAddress(strings.TrimPrefix(ref, "pool:"))
	case strings.HasPrefix(ref, "share:"):
		return types.PoolAddress(strings.TrimPrefix(ref, "share:") + "/share-token")
	}
	if _, err := sdk.AccAddressFromBech32(ref); err == nil {
		return ref
	}
	return AccountAddress(ref)
}

// ParseAsset parses "native:DENOM" or "token:REF".
func ParseAsset(s string) (types.AssetInfo, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return types.AssetInfo{}, errorsmod.Wrapf(types.ErrInvalidAsset, "asset %q must be native:DENOM or token:REF", s)
	}
	switch kind {
	case "native":
		return types.NativeAsset(value), nil
	case "token":
		return types.TokenAsset(ResolveAddress(value)), nil
	default:
		return types.AssetInfo{}, errorsmod.Wrapf(types.ErrInvalidAsset, "unknown asset kind %q", kind)
	}
}

// NewScenarioExecutor builds an executor hosting the scenario's pools.
func NewScenarioExecutor(s *Scenario, opts ...ExecutorOption) (*Executor, error) {
	genesis, err := s.Genesis()
	if err != nil {
		return nil, err
	}
	return NewExecutor(genesis, append(opts, WithPools(s.Pools...))...)
}

// Run executes every step in order. A step fails the run when its outcome
// does not match its expect_error flag.
func Run(ctx context.Context, e *Executor, s *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		res, err := e.runStep(ctx, i, step)
		results = append(results, res)
		expectErr := cast.ToBool(step["expect_error"])
		switch {
		case err != nil && !expectErr:
			return results, fmt.Errorf("step %d (%s): %w", i, res.Action, err)
		case err == nil && expectErr:
			return results, fmt.Errorf("step %d (%s): expected an error", i, res.Action)
		}
	}
	return results, nil
}

func (e *Executor) runStep(ctx context.Context, i int, step Step) (StepResult, error) {
	action := cast.ToString(step["action"])
	res := StepResult{
		Index:  i,
		Action: action,
		Pool:   cast.ToString(step["pool"]),
		Height: e.ctx.BlockHeight(),
	}

	var err error
	switch action {
	case "fund":
		err = e.stepFund(step)
	case "approve":
		err = e.stepApprove(step)
	case "advance":
		err = e.stepAdvance(step)
	default:
		var msg types.Msg
		if msg, err = e.buildMsg(action, step); err == nil {
			var receipt *Receipt
			receipt, err = e.Deliver(ctx, res.Pool, msg)
			if receipt != nil {
				res.TxID = receipt.ID
				if err == nil {
					res.Effects, err = types.MarshalEffects(receipt.Effects)
				}
			}
		}
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res, err
}

func (e *Executor) stepFund(step Step) error {
	asset, err := ParseAsset(cast.ToString(step["asset"]))
	if err != nil {
		return err
	}
	amount, err := uintArg(step, "amount")
	if err != nil {
		return err
	}
	return e.Fund(ResolveAddress(cast.ToString(step["account"])), asset, amount)
}

func (e *Executor) stepApprove(step Step) error {
	amount, err := uintArg(step, "amount")
	if err != nil {
		return err
	}
	return e.Approve(
		ResolveAddress(cast.ToString(step["owner"])),
		ResolveAddress(cast.ToString(step["token"])),
		cast.ToString(step["pool"]),
		amount,
	)
}

func (e *Executor) stepAdvance(step Step) error {
	d, err := durationArg(step["duration"])
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	blocks := cast.ToInt(step["blocks"])
	if blocks <= 0 {
		blocks = 1
	}
	for n := 0; n < blocks; n++ {
		e.AdvanceBlock(d)
	}
	return nil
}

func (e *Executor) buildMsg(action string, step Step) (types.Msg, error) {
	sender := ResolveAddress(cast.ToString(step["sender"]))
	funds, err := sdk.ParseCoinsNormalized(cast.ToString(step["funds"]))
	if err != nil {
		return nil, fmt.Errorf("funds: %w", err)
	}
	exp, err := e.expirationArg(step)
	if err != nil {
		return nil, err
	}

	switch action {
	case "instantiate":
		a1, err := ParseAsset(cast.ToString(step["asset1"]))
		if err != nil {
			return nil, err
		}
		a2, err := ParseAsset(cast.ToString(step["asset2"]))
		if err != nil {
			return nil, err
		}
		lp, protocol, err := feeArgs(step)
		if err != nil {
			return nil, err
		}
		return &types.MsgInstantiate{
			Sender:               sender,
			Asset1:               a1,
			Asset2:               a2,
			ShareTokenCodeID:     cast.ToUint64(step["code_id"]),
			Owner:                optionalAddress(step, "owner"),
			ProtocolFeeRecipient: ResolveAddress(cast.ToString(step["fee_recipient"])),
			LpFeePercent:         lp,
			ProtocolFeePercent:   protocol,
		}, nil

	case "add_liquidity":
		a1, err := uintArg(step, "asset1_amount")
		if err != nil {
			return nil, err
		}
		max2, err := uintArg(step, "max_asset2")
		if err != nil {
			return nil, err
		}
		minLiq, err := uintArg(step, "min_liquidity")
		if err != nil {
			return nil, err
		}
		return &types.MsgAddLiquidity{
			Sender:       sender,
			Funds:        funds,
			Asset1Amount: a1,
			MinLiquidity: minLiq,
			MaxAsset2:    max2,
			Expiration:   exp,
		}, nil

	case "remove_liquidity":
		amount, err := uintArg(step, "amount")
		if err != nil {
			return nil, err
		}
		min1, err := uintArg(step, "min_asset1")
		if err != nil {
			return nil, err
		}
		min2, err := uintArg(step, "min_asset2")
		if err != nil {
			return nil, err
		}
		return &types.MsgRemoveLiquidity{
			Sender:     sender,
			Amount:     amount,
			MinAsset1:  min1,
			MinAsset2:  min2,
			Expiration: exp,
		}, nil

	case "swap", "pass_through":
		sel, err := types.ParseTokenSelect(cast.ToString(step["input"]))
		if err != nil {
			return nil, err
		}
		amount, err := uintArg(step, "amount")
		if err != nil {
			return nil, err
		}
		minOut, err := uintArg(step, "min_output")
		if err != nil {
			return nil, err
		}
		if action == "pass_through" {
			return &types.MsgPassThroughSwap{
				Sender:            sender,
				Funds:             funds,
				OutputPoolAddress: ResolveAddress(cast.ToString(step["output_pool"])),
				InputToken:        sel,
				InputTokenAmount:  amount,
				OutputMinToken:    minOut,
				Expiration:        exp,
			}, nil
		}
		if recipient := optionalAddress(step, "recipient"); recipient != "" {
			return &types.MsgSwapAndSendTo{
				Sender:      sender,
				Funds:       funds,
				InputToken:  sel,
				InputAmount: amount,
				Recipient:   recipient,
				MinToken:    minOut,
				Expiration:  exp,
			}, nil
		}
		return &types.MsgSwap{
			Sender:      sender,
			Funds:       funds,
			InputToken:  sel,
			InputAmount: amount,
			MinOutput:   minOut,
			Expiration:  exp,
		}, nil

	case "update_config":
		lp, protocol, err := feeArgs(step)
		if err != nil {
			return nil, err
		}
		return &types.MsgUpdateConfig{
			Sender:               sender,
			Owner:                optionalAddress(step, "owner"),
			LpFeePercent:         lp,
			ProtocolFeePercent:   protocol,
			ProtocolFeeRecipient: ResolveAddress(cast.ToString(step["fee_recipient"])),
		}, nil

	default:
		return nil, errorsmod.Wrapf(ErrUnsupportedMsg, "action %q", action)
	}
}

// uintArg reads key as an amount; a missing key is zero.
func uintArg(step Step, key string) (math.Uint, error) {
	raw := cast.ToString(step[key])
	if raw == "" {
		return math.ZeroUint(), nil
	}
	amount, err := math.ParseUint(raw)
	if err != nil {
		return math.Uint{}, fmt.Errorf("%s: %w", key, err)
	}
	return amount, nil
}

func decArg(step Step, key string) (math.LegacyDec, error) {
	raw := cast.ToString(step[key])
	if raw == "" {
		return math.LegacyZeroDec(), nil
	}
	d, err := math.LegacyNewDecFromStr(raw)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func feeArgs(step Step) (lp, protocol math.LegacyDec, err error) {
	if lp, err = decArg(step, "lp_fee"); err != nil {
		return
	}
	protocol, err = decArg(step, "protocol_fee")
	return
}

func optionalAddress(step Step, key string) string {
	ref := cast.ToString(step[key])
	if ref == "" {
		return ""
	}
	return ResolveAddress(ref)
}

// expirationArg reads expires_at_height, expires_at_time or expires_in
// (relative to the current block time).
func (e *Executor) expirationArg(step Step) (*types.Expiration, error) {
	switch {
	case step["expires_at_height"] != nil:
		h, err := cast.ToUint64E(step["expires_at_height"])
		if err != nil {
			return nil, fmt.Errorf("expires_at_height: %w", err)
		}
		return types.AtHeight(h), nil
	case step["expires_at_time"] != nil:
		t, err := cast.ToTimeE(step["expires_at_time"])
		if err != nil {
			return nil, fmt.Errorf("expires_at_time: %w", err)
		}
		return types.AtTime(t.UTC()), nil
	case step["expires_in"] != nil:
		d, err := durationArg(step["expires_in"])
		if err != nil {
			return nil, fmt.Errorf("expires_in: %w", err)
		}
		return types.AtTime(e.ctx.BlockTime().Add(d)), nil
	default:
		return nil, nil
	}
}

// durationArg reads a duration string such as "90s"; bare numbers are seconds.
func durationArg(v interface{}) (time.Duration, error) {
	switch v.(type) {
	case nil:
		return 0, nil
	case int, int64, uint64, float64:
		secs, err := cast.ToInt64E(v)
		return time.Duration(secs) * time.Second, err
	default:
		return cast.ToDurationE(v)
	}
}
