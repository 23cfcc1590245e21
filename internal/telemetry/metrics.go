package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TxMetrics holds the instruments recorded for every delivered transaction.
type TxMetrics struct {
	txCounter   metric.Int64Counter
	txDuration  metric.Float64Histogram
	txEffects   metric.Int64Histogram
	blockHeight metric.Int64Gauge
}

// NewTxMetrics creates the transaction instruments on meter.
func NewTxMetrics(meter metric.Meter) (*TxMetrics, error) {
	txCounter, err := meter.Int64Counter(
		"pawswap.tx.total",
		metric.WithDescription("Total number of delivered transactions"),
		metric.WithUnit("{transaction}"),
	)
	if err != nil {
		return nil, err
	}

	txDuration, err := meter.Float64Histogram(
		"pawswap.tx.processing_time",
		metric.WithDescription("Transaction processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	txEffects, err := meter.Int64Histogram(
		"pawswap.tx.effects",
		metric.WithDescription("Effects executed per transaction"),
		metric.WithUnit("{effect}"),
	)
	if err != nil {
		return nil, err
	}

	blockHeight, err := meter.Int64Gauge(
		"pawswap.block.height",
		metric.WithDescription("Current block height"),
		metric.WithUnit("{block}"),
	)
	if err != nil {
		return nil, err
	}

	return &TxMetrics{
		txCounter:   txCounter,
		txDuration:  txDuration,
		txEffects:   txEffects,
		blockHeight: blockHeight,
	}, nil
}

// RecordTransaction records one delivered transaction.
func (m *TxMetrics) RecordTransaction(
	ctx context.Context,
	pool, msgType string,
	duration time.Duration,
	effects int,
	success bool,
) {
	status := "success"
	if !success {
		status = "failed"
	}

	attrs := metric.WithAttributes(
		attribute.String("pool.name", pool),
		attribute.String("tx.type", msgType),
		attribute.String("tx.status", status),
	)

	m.txCounter.Add(ctx, 1, attrs)
	m.txDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.txEffects.Record(ctx, int64(effects), attrs)
}

// RecordBlockHeight records the current block height
func (m *TxMetrics) RecordBlockHeight(ctx context.Context, height int64) {
	m.blockHeight.Record(ctx, height)
}
