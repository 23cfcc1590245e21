package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SwapMetrics holds all Prometheus metrics for the swap module
type SwapMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec
	PassThroughSwaps  *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec

	// TWAP metrics
	SnapshotsRecorded *prometheus.CounterVec
	SnapshotsPruned   *prometheus.CounterVec
	SpotPrice         *prometheus.GaugeVec

	// Admin metrics
	ConfigUpdates *prometheus.CounterVec
}

var (
	swapMetricsOnce sync.Once
	swapMetrics     *SwapMetrics
)

// NewSwapMetrics creates and registers swap metrics (singleton pattern)
func NewSwapMetrics() *SwapMetrics {
	swapMetricsOnce.Do(func() {
		swapMetrics = &SwapMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool", "input", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool", "asset"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "protocol_fees_total",
					Help:      "Total protocol fees sent to the fee recipient",
				},
				[]string{"pool", "asset"},
			),
			PassThroughSwaps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "pass_through_swaps_total",
					Help:      "Total pass-through swaps forwarded to another pool",
				},
				[]string{"pool", "output_pool"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to the pool",
				},
				[]string{"pool", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from the pool",
				},
				[]string{"pool", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool", "asset"},
			),
			SnapshotsRecorded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "price_snapshots_total",
					Help:      "Total price snapshots recorded",
				},
				[]string{"pool"},
			),
			SnapshotsPruned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "price_snapshots_pruned_total",
					Help:      "Total price snapshots pruned from the series",
				},
				[]string{"pool"},
			),
			SpotPrice: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "spot_price",
					Help:      "Latest spot price of asset1 in asset2 (side=1) and asset2 in asset1 (side=2)",
				},
				[]string{"pool", "side"},
			),
			ConfigUpdates: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "config_updates_total",
					Help:      "Total fee configuration updates",
				},
				[]string{"pool"},
			),
		}
	})
	return swapMetrics
}

// GetSwapMetrics returns the singleton swap metrics instance
func GetSwapMetrics() *SwapMetrics {
	if swapMetrics == nil {
		return NewSwapMetrics()
	}
	return swapMetrics
}

// amountFloat converts an amount for metric reporting. Values above 2^53 lose
// precision.
func amountFloat(amt math.Uint) float64 {
	if amt.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amt.BigInt()).Float64()
	return f
}

func decFloat(d math.LegacyDec) float64 {
	if d.IsNil() {
		return 0
	}
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
