//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package rate holds the exchange-rate table.
package rate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
)

// Status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const toolName = "get_exchange_rate"

// Pair is an ordered currency pair. Codes are expected in upper case.
type Pair struct {
	Base   string
	Target string
}

func (p Pair) String() string {
	return p.Base + "/" + p.Target
}

// ParsePair parses "USD/EUR". The codes are not normalised.
func ParsePair(s string) (Pair, error) {
	base, target, ok := strings.Cut(s, "/")
	if !ok || base == "" || target == "" {
		return Pair{}, fmt.Errorf("invalid currency pair %q", s)
	}
	return Pair{Base: base, Target: target}, nil
}

// Result is the answer of a rate lookup. Rate is nil on error.
type Result struct {
	Status       string           `json:"status"`
	Base         string           `json:"base"`
	Target       string           `json:"target"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// OK reports whether a rate was found.
func (r Result) OK() bool {
	return r.Status == StatusSuccess && r.Rate != nil
}

// Table maps ordered pairs to rates. It is read only after construction.
type Table struct {
	rates map[Pair]decimal.Decimal
}

var defaultRates = map[Pair]decimal.Decimal{
	{"USD", "EUR"}: decimal.RequireFromString("0.92"),
	{"USD", "JPY"}: decimal.RequireFromString("157.50"),
	{"USD", "INR"}: decimal.RequireFromString("83.58"),
}

// NewTable returns the built-in table with overrides merged on top.
func NewTable(overrides map[Pair]decimal.Decimal) *Table {
	rates := make(map[Pair]decimal.Decimal, len(defaultRates)+len(overrides))
	for k, v := range defaultRates {
		rates[k] = v
	}
	for k, v := range overrides {
		rates[k] = v
	}
	return &Table{rates: rates}
}

// Lookup matches (base, target) exactly. Normalisation is the caller's job.
func (t *Table) Lookup(ctx context.Context, base, target string) Result {
	res := Result{Base: base, Target: target}
	if r, ok := t.rates[Pair{Base: base, Target: target}]; ok {
		res.Status = StatusSuccess
		res.Rate = &r
	} else {
		res.Status = StatusError
		res.ErrorMessage = fmt.Sprintf("Unsupported currency pair: %s/%s", base, target)
	}
	telemetry.RecordLookup(ctx, toolName, res.Status)
	return res
}

// Pairs returns the supported pairs in a stable order.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.rates))
	for p := range t.rates {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Normalize trims and upper-cases a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
