//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package fee looks up the fee fraction charged for a payment method.
//
// An unknown method is not a failure: it yields a zero fee and the
// not_recognized status so that callers proceed as if no fee applies.
package fee

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
)

// Status values.
const (
	StatusSuccess       = "success"
	StatusNotRecognized = "not_recognized"
)

const toolName = "get_fee_for_payment_method"

// Result is the answer of a fee lookup.
type Result struct {
	Status        string          `json:"status"`
	Method        string          `json:"method"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	Message       string          `json:"message,omitempty"`
}

// Recognized reports whether the method was found in the table.
func (r Result) Recognized() bool {
	return r.Status == StatusSuccess
}

// Table maps lowercase payment-method labels to fee fractions.
// It is read only after construction.
type Table struct {
	fees map[string]decimal.Decimal
}

var defaultFees = map[string]decimal.Decimal{
	"platinum credit card": decimal.RequireFromString("0.02"),
	"gold debit card":      decimal.RequireFromString("0.035"),
	"bank transfer":        decimal.RequireFromString("0.01"),
}

// NewTable returns the built-in table with overrides merged on top.
// Override keys are normalised like lookups.
func NewTable(overrides map[string]decimal.Decimal) *Table {
	fees := make(map[string]decimal.Decimal, len(defaultFees)+len(overrides))
	for k, v := range defaultFees {
		fees[k] = v
	}
	for k, v := range overrides {
		if key := normalize(k); key != "" {
			fees[key] = v
		}
	}
	return &Table{fees: fees}
}

// Lookup returns the fee for method.
func (t *Table) Lookup(ctx context.Context, method string) Result {
	res := t.lookup(method)
	telemetry.RecordLookup(ctx, toolName, res.Status)
	return res
}

func (t *Table) lookup(method string) Result {
	name := strings.TrimSpace(method)
	if fee, ok := t.fees[normalize(name)]; ok {
		return Result{Status: StatusSuccess, Method: name, FeePercentage: fee}
	}
	return Result{
		Status:        StatusNotRecognized,
		Method:        name,
		FeePercentage: decimal.Zero,
		Message:       fmt.Sprintf("Payment method '%s' not recognized; no fee applied.", name),
	}
}

// Methods lists the known labels.
func (t *Table) Methods() []string {
	out := make([]string, 0, len(t.fees))
	for k := range t.fees {
		out = append(out, k)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
