package simulation

import (
	"context"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/pawswap/internal/telemetry"
	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

const (
	ledgerStoreKey = "ledger"
	// maxDispatchDepth bounds nested pool-to-pool dispatch.
	maxDispatchDepth = 8
)

// Receipt records the outcome of one delivered transaction.
type Receipt struct {
	ID      string         `json:"id"`
	Pool    string         `json:"pool"`
	MsgType string         `json:"msg_type"`
	Height  int64          `json:"height"`
	Time    time.Time      `json:"time"`
	Effects []types.Effect `json:"-"`
	Events  sdk.Events     `json:"-"`
	Error   string         `json:"error,omitempty"`
}

// Executor is a single-process chain hosting several pool instances over a
// shared ledger. Every transaction runs in one cached context; a failure
// anywhere, nested legs included, discards all of it.
type Executor struct {
	cms      storetypes.CommitMultiStore
	ctx      sdk.Context
	ledger   Ledger
	registry *Registry
	tracer   trace.Tracer
	metrics  *telemetry.TxMetrics
	logger   log.Logger
	receipts []Receipt
	checks   bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorConfig)

type executorConfig struct {
	logger log.Logger
	tracer trace.Tracer
	meter  metric.Meter
	pools  []string
}

// WithLogger sets the logger handed to pool keepers.
func WithLogger(logger log.Logger) ExecutorOption {
	return func(c *executorConfig) { c.logger = logger }
}

// WithTracer sets the tracer used for transaction, message and effect spans.
func WithTracer(tracer trace.Tracer) ExecutorOption {
	return func(c *executorConfig) { c.tracer = tracer }
}

// WithMeter sets the meter transaction metrics are recorded on.
func WithMeter(meter metric.Meter) ExecutorOption {
	return func(c *executorConfig) { c.meter = meter }
}

// WithPools hosts a pool instance under each name.
func WithPools(names ...string) ExecutorOption {
	return func(c *executorConfig) { c.pools = append(c.pools, names...) }
}

// NewExecutor mounts one store per pool plus the ledger store and
// initializes every pool from default genesis.
func NewExecutor(genesisTime time.Time, opts ...ExecutorOption) (*Executor, error) {
	cfg := executorConfig{
		logger: log.NewNopLogger(),
		tracer: otel.Tracer("pawswap/simulation"),
		meter:  otel.Meter("pawswap/simulation"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger

	txMetrics, err := telemetry.NewTxMetrics(cfg.meter)
	if err != nil {
		return nil, errorsmod.Wrap(err, "create metrics")
	}

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())

	ledgerKey := storetypes.NewKVStoreKey(ledgerStoreKey)
	cms.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, nil)
	ledger := NewLedger(ledgerKey)
	registry := NewRegistry()

	for _, name := range cfg.pools {
		// store names double as prefixes of the shared db
		if name == "" || strings.Contains(name, "/") {
			return nil, errorsmod.Wrapf(ErrInvalidPoolName, "%q", name)
		}
		key := storetypes.NewKVStoreKey(types.StoreKey + "_" + name)
		addr := types.PoolAddress(name)
		p := &Pool{
			Name:    name,
			Address: addr,
			Keeper:  keeper.NewKeeper(key, addr, ledger, registry),
		}
		if err := registry.add(p); err != nil {
			return nil, err
		}
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errorsmod.Wrap(err, "load stores")
	}

	ctx := sdk.NewContext(cms, cmtproto.Header{Height: 1, Time: genesisTime.UTC()}, false, logger)
	for _, name := range registry.Names() {
		p, _ := registry.ByName(name)
		if err := p.Keeper.InitGenesis(ctx, *types.DefaultGenesis()); err != nil {
			return nil, errorsmod.Wrapf(err, "init pool %s", name)
		}
	}

	return &Executor{
		cms:      cms,
		ctx:      ctx,
		ledger:   ledger,
		registry: registry,
		tracer:   cfg.tracer,
		metrics:  txMetrics,
		logger:   logger.With("module", "swapsim"),
		checks:   true,
	}, nil
}

// Context returns the current committed context.
func (e *Executor) Context() sdk.Context { return e.ctx }

func (e *Executor) Ledger() Ledger { return e.ledger }

func (e *Executor) Registry() *Registry { return e.registry }

// Receipts returns every delivered transaction in order.
func (e *Executor) Receipts() []Receipt { return e.receipts }

// SetInvariantChecks toggles the pool invariant checks run after each
// successful transaction.
func (e *Executor) SetInvariantChecks(enabled bool) { e.checks = enabled }

// AdvanceBlock commits the current block and starts the next one d later.
func (e *Executor) AdvanceBlock(d time.Duration) {
	e.cms.Commit()
	header := e.ctx.BlockHeader()
	header.Height++
	header.Time = header.Time.Add(d)
	e.ctx = e.ctx.WithBlockHeader(header)
	e.metrics.RecordBlockHeight(context.Background(), header.Height)
}

// Fund issues amount of asset to owner.
func (e *Executor) Fund(owner string, asset types.AssetInfo, amount math.Uint) error {
	return e.ledger.Fund(e.ctx, asset, owner, amount)
}

// Approve lets the named pool pull up to amount of owner's token.
func (e *Executor) Approve(owner, token, pool string, amount math.Uint) error {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return err
	}
	return e.ledger.IncreaseAllowance(e.ctx, token, owner, p.Address, amount, nil)
}

// Deliver executes msg against the named pool along with every effect it
// returns, atomically.
func (e *Executor) Deliver(goCtx context.Context, pool string, msg types.Msg) (*Receipt, error) {
	p, err := e.registry.ByName(pool)
	if err != nil {
		return nil, err
	}

	receipt := Receipt{
		ID:      uuid.NewString(),
		Pool:    pool,
		MsgType: msg.Type(),
		Height:  e.ctx.BlockHeight(),
		Time:    e.ctx.BlockTime(),
	}

	spanCtx, span := e.tracer.Start(goCtx, "swap.tx",
		trace.WithAttributes(
			attribute.String("tx.id", receipt.ID),
			attribute.String("pool.name", pool),
		),
	)
	defer span.End()

	start := time.Now()
	cacheCtx, write := e.ctx.CacheContext()
	cacheCtx = cacheCtx.WithContext(spanCtx)

	effects, err := e.dispatch(cacheCtx, p, msg, 0)
	if err == nil && e.checks {
		err = e.checkInvariants(cacheCtx)
	}
	e.metrics.RecordTransaction(spanCtx, pool, msg.Type(), time.Since(start), len(effects), err == nil)

	receipt.Effects = effects
	receipt.Events = cacheCtx.EventManager().Events()
	if err != nil {
		telemetry.RecordError(span, err)
		receipt.Error = err.Error()
		receipt.Effects = nil
		e.receipts = append(e.receipts, receipt)
		e.logger.Info("tx failed", "id", receipt.ID, "pool", pool, "msg", msg.Type(), "err", err)
		return &receipt, err
	}

	write()
	e.receipts = append(e.receipts, receipt)
	e.logger.Debug("tx delivered", "id", receipt.ID, "pool", pool, "msg", msg.Type(), "effects", len(effects))
	return &receipt, nil
}

func (e *Executor) checkInvariants(ctx sdk.Context) error {
	for _, name := range e.registry.Names() {
		p, _ := e.registry.ByName(name)
		if res, broken := keeper.AllInvariants(*p.Keeper, e.ledger)(ctx); broken {
			return errorsmod.Wrap(types.ErrInvariantViolation, res)
		}
	}
	return nil
}

// dispatch moves the attached funds to p, runs msg and then applies its
// effects in order. It returns every effect executed, nested ones included.
func (e *Executor) dispatch(ctx sdk.Context, p *Pool, msg types.Msg, depth int) ([]types.Effect, error) {
	if depth > maxDispatchDepth {
		return nil, errorsmod.Wrapf(ErrMaxDepth, "depth %d", depth)
	}

	spanCtx, span := telemetry.StartMsgSpan(ctx.Context(), e.tracer, p.Name, msg.Type(), ctx.BlockHeight())
	defer span.End()
	ctx = ctx.WithContext(spanCtx)

	if sender, funds := msgFunds(msg); !funds.IsZero() {
		if err := e.ledger.SendCoins(ctx, sender, p.Address, funds); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	effects, err := e.handle(ctx, p, msg)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	all := make([]types.Effect, 0, len(effects))
	for _, eff := range effects {
		all = append(all, eff)
		nested, err := e.apply(ctx, p, eff, depth)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		all = append(all, nested...)
	}
	return all, nil
}

func (e *Executor) handle(ctx sdk.Context, p *Pool, msg types.Msg) ([]types.Effect, error) {
	k := p.Keeper
	switch msg := msg.(type) {
	case *types.MsgInstantiate:
		resp, err := k.Instantiate(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgAddLiquidity:
		resp, err := k.AddLiquidity(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgRemoveLiquidity:
		resp, err := k.RemoveLiquidity(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgSwap:
		resp, err := k.Swap(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgSwapAndSendTo:
		resp, err := k.SwapAndSendTo(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgPassThroughSwap:
		resp, err := k.PassThroughSwap(ctx, msg)
		if err != nil {
			return nil, err
		}
		return resp.Effects, nil
	case *types.MsgUpdateConfig:
		_, err := k.UpdateConfig(ctx, msg)
		return nil, err
	case *types.MsgConfirmBinding:
		_, err := k.ConfirmBinding(ctx, msg)
		return nil, err
	default:
		return nil, errorsmod.Wrapf(ErrUnsupportedMsg, "%T", msg)
	}
}

// apply executes one effect on behalf of p.
func (e *Executor) apply(ctx sdk.Context, p *Pool, eff types.Effect, depth int) ([]types.Effect, error) {
	spanCtx, span := telemetry.StartEffectSpan(ctx.Context(), e.tracer, p.Address, eff.EffectType())
	defer span.End()
	ctx = ctx.WithContext(spanCtx)

	var (
		nested []types.Effect
		err    error
	)
	switch eff := eff.(type) {
	case types.BankSendEffect:
		err = e.ledger.SendCoins(ctx, p.Address, eff.ToAddress, eff.Amount)
	case types.TokenTransferEffect:
		err = e.ledger.Send(ctx, types.TokenAsset(eff.Token), p.Address, eff.Recipient, eff.Amount)
	case types.TokenTransferFromEffect:
		err = e.ledger.TransferFrom(ctx, eff.Token, p.Address, eff.Owner, eff.Recipient, eff.Amount)
	case types.TokenIncreaseAllowanceEffect:
		err = e.ledger.IncreaseAllowance(ctx, eff.Token, p.Address, eff.Spender, eff.Amount, eff.Expires)
	case types.MintSharesEffect:
		err = e.ledger.Mint(ctx, eff.ShareToken, p.Address, eff.Recipient, eff.Amount)
	case types.BurnSharesEffect:
		err = e.ledger.Burn(ctx, eff.ShareToken, p.Address, eff.Owner, eff.Amount)
	case types.PoolSwapEffect:
		var target *Pool
		if target, err = e.registry.ByAddress(eff.Pool); err == nil {
			msg := eff.Msg
			nested, err = e.dispatch(ctx, target, &msg, depth+1)
		}
	case types.InstantiateShareTokenEffect:
		token := types.PoolAddress(p.Name + "/share-token")
		if err = e.ledger.RegisterToken(ctx, token, eff.Minter); err != nil {
			err = errorsmod.Wrap(types.ErrShareTokenInstantiate, err.Error())
			break
		}
		nested, err = e.dispatch(ctx, p, &types.MsgConfirmBinding{
			ReplyID:           eff.ReplyID,
			ShareTokenAddress: token,
		}, depth+1)
	default:
		err = errorsmod.Wrapf(ErrUnsupportedEffect, "%T", eff)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return nested, nil
}

// msgFunds returns the sender and native coins attached to msg.
func msgFunds(msg types.Msg) (string, sdk.Coins) {
	switch msg := msg.(type) {
	case *types.MsgAddLiquidity:
		return msg.Sender, msg.Funds
	case *types.MsgSwap:
		return msg.Sender, msg.Funds
	case *types.MsgSwapAndSendTo:
		return msg.Sender, msg.Funds
	case *types.MsgPassThroughSwap:
		return msg.Sender, msg.Funds
	default:
		return "", nil
	}
}
