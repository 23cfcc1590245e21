package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledProvider(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.HealthCheck())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Endpoint: "localhost:4318", SampleRate: 0.5}, false},
		{"missing endpoint", Config{SampleRate: 1}, true},
		{"sample rate too high", Config{Endpoint: "localhost:4318", SampleRate: 1.5}, true},
		{"negative sample rate", Config{Endpoint: "localhost:4318", SampleRate: -0.1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateConfig(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	ctx, msgSpan := StartMsgSpan(context.Background(), tracer, "paw-usdc", "swap", 7)
	_, effSpan := StartEffectSpan(ctx, tracer, "pool-addr", "bank_send")
	RecordError(effSpan, errors.New("insufficient balance"))
	effSpan.End()
	msgSpan.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "swap.effect.bank_send", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "swap.msg.swap", spans[1].Name())
	require.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}
