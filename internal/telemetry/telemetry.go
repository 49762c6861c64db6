//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry wires OTLP trace and metric export and holds the
// instruments shared by the lookup tools and the calculation engine.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"trpc.group/trpc-go/trpc-agent-go/log"
	ametric "trpc.group/trpc-go/trpc-agent-go/telemetry/metric"
	atrace "trpc.group/trpc-go/trpc-agent-go/telemetry/trace"
)

const instrumentationName = "github.com/NilangJotaniya/My-adk-agent"

// Attribute keys used on every instrument.
const (
	KeyTool    = attribute.Key("multitool.tool")
	KeyStatus  = attribute.Key("multitool.status")
	KeyOutcome = attribute.Key("multitool.calc.outcome")
)

// Options configures exporter start-up.
type Options struct {
	// Endpoint is the OTLP collector host:port. Empty disables export.
	Endpoint string
	// Protocol is "grpc" or "http".
	Protocol    string
	ServiceName string
}

// Setup starts trace and metric exporters. The returned function flushes and
// stops them. With an empty endpoint it is a no-op and the global no-op
// providers stay in place.
func Setup(ctx context.Context, opts Options) (func(context.Context) error, error) {
	if opts.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	cleanTrace, err := atrace.Start(ctx,
		atrace.WithEndpoint(opts.Endpoint),
		atrace.WithProtocol(opts.Protocol),
		atrace.WithServiceName(opts.ServiceName),
	)
	if err != nil {
		return nil, fmt.Errorf("start trace telemetry: %w", err)
	}
	mp, err := ametric.NewMeterProvider(ctx,
		ametric.WithEndpoint(opts.Endpoint),
		ametric.WithProtocol(opts.Protocol),
		ametric.WithServiceName(opts.ServiceName),
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create meter provider: %w", err), cleanTrace())
	}
	if err := ametric.InitMeterProvider(mp); err != nil {
		return nil, errors.Join(fmt.Errorf("init meter provider: %w", err), cleanTrace())
	}
	otel.SetMeterProvider(mp)
	log.Infof("telemetry export enabled (endpoint=%s, protocol=%s)", opts.Endpoint, opts.Protocol)

	return func(ctx context.Context) error {
		return errors.Join(cleanTrace(), mp.Shutdown(ctx))
	}, nil
}

type instruments struct {
	lookups      metric.Int64Counter
	calcAttempts metric.Int64Counter
}

var (
	instOnce sync.Once
	inst     instruments
)

// The global meter provider delegates instruments created here once Setup
// installs a real provider.
func load() *instruments {
	instOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		var err error
		if inst.lookups, err = meter.Int64Counter(
			"multitool.lookup.count",
			metric.WithDescription("Lookup tool invocations by tool and status"),
			metric.WithUnit("1"),
		); err != nil {
			log.Warnf("create lookup counter: %v", err)
		}
		if inst.calcAttempts, err = meter.Int64Counter(
			"multitool.calc.attempts",
			metric.WithDescription("Calculation attempts by outcome"),
			metric.WithUnit("1"),
		); err != nil {
			log.Warnf("create calculation counter: %v", err)
		}
	})
	return &inst
}

// RecordLookup counts one invocation of a lookup tool.
func RecordLookup(ctx context.Context, tool, status string) {
	if c := load().lookups; c != nil {
		c.Add(ctx, 1, metric.WithAttributes(KeyTool.String(tool), KeyStatus.String(status)))
	}
}

// RecordCalcAttempt counts one generate-and-execute attempt.
func RecordCalcAttempt(ctx context.Context, outcome string) {
	if c := load().calcAttempts; c != nil {
		c.Add(ctx, 1, metric.WithAttributes(KeyOutcome.String(outcome)))
	}
}

// StartSpan starts a span on the module tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}
