//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Options{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	ctx := context.Background()
	RecordLookup(ctx, "get_exchange_rate", "success")
	RecordLookup(ctx, "get_exchange_rate", "success")
	RecordLookup(ctx, "get_exchange_rate", "error")
	RecordCalcAttempt(ctx, "ok")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	sums := map[string]map[attribute.Distinct]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, m.Name)
			sums[m.Name] = map[attribute.Distinct]int64{}
			for _, dp := range data.DataPoints {
				sums[m.Name][dp.Attributes.Equivalent()] = dp.Value
			}
		}
	}

	ok := attribute.NewSet(KeyTool.String("get_exchange_rate"), KeyStatus.String("success"))
	failed := attribute.NewSet(KeyTool.String("get_exchange_rate"), KeyStatus.String("error"))
	assert.Equal(t, int64(2), sums["multitool.lookup.count"][ok.Equivalent()])
	assert.Equal(t, int64(1), sums["multitool.lookup.count"][failed.Equivalent()])
	calcOK := attribute.NewSet(KeyOutcome.String("ok"))
	assert.Equal(t, int64(1), sums["multitool.calc.attempts"][calcOK.Equivalent()])
}

func TestStartSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := StartSpan(context.Background(), "currency.convert", KeyTool.String("converter"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "currency.convert", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), KeyTool.String("converter"))
}
