//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package rate

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-agent-go/tool"
)

func TestLookup_Known(t *testing.T) {
	tbl := NewTable(nil)
	res := tbl.Lookup(context.Background(), "USD", "EUR")
	require.True(t, res.OK())
	assert.True(t, decimal.RequireFromString("0.92").Equal(*res.Rate))
	assert.Empty(t, res.ErrorMessage)
}

func TestLookup_Deterministic(t *testing.T) {
	tbl := NewTable(nil)
	for _, p := range tbl.Pairs() {
		first := tbl.Lookup(context.Background(), p.Base, p.Target)
		for i := 0; i < 5; i++ {
			again := tbl.Lookup(context.Background(), p.Base, p.Target)
			require.True(t, again.OK())
			assert.True(t, first.Rate.Equal(*again.Rate), p.String())
		}
	}
}

func TestLookup_ResultDoesNotAliasTable(t *testing.T) {
	tbl := NewTable(nil)
	res := tbl.Lookup(context.Background(), "USD", "JPY")
	*res.Rate = decimal.NewFromInt(1)
	again := tbl.Lookup(context.Background(), "USD", "JPY")
	assert.True(t, decimal.RequireFromString("157.5").Equal(*again.Rate))
}

func TestLookup_Unsupported(t *testing.T) {
	tbl := NewTable(nil)
	tests := []struct{ base, target string }{
		{"USD", "XYZ"},
		{"EUR", "USD"}, // pairs are ordered
		{"usd", "eur"}, // the table itself does not normalise
		{"", ""},
	}
	for _, tt := range tests {
		res := tbl.Lookup(context.Background(), tt.base, tt.target)
		assert.Equal(t, StatusError, res.Status)
		assert.False(t, res.OK())
		assert.Nil(t, res.Rate)
		assert.Equal(t, "Unsupported currency pair: "+tt.base+"/"+tt.target, res.ErrorMessage)
	}
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("GBP/USD")
	require.NoError(t, err)
	assert.Equal(t, Pair{Base: "GBP", Target: "USD"}, p)

	for _, bad := range []string{"GBPUSD", "/USD", "GBP/"} {
		_, err := ParsePair(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewTable_Overrides(t *testing.T) {
	tbl := NewTable(map[Pair]decimal.Decimal{{"GBP", "USD"}: decimal.RequireFromString("1.27")})
	assert.True(t, tbl.Lookup(context.Background(), "GBP", "USD").OK())
	assert.Len(t, tbl.Pairs(), 4)
}

func TestTool_Normalises(t *testing.T) {
	tl := NewTool(NewTable(nil))
	assert.Equal(t, "get_exchange_rate", tl.Declaration().Name)

	out, err := tl.(tool.CallableTool).Call(context.Background(),
		[]byte(`{"base_currency":" usd","target_currency":"inr "}`))
	require.NoError(t, err)
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","base":"USD","target":"INR","rate":"83.58"}`, string(b))

	out, err = tl.(tool.CallableTool).Call(context.Background(),
		[]byte(`{"base_currency":"USD","target_currency":"XYZ"}`))
	require.NoError(t, err)
	b, err = json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","base":"USD","target":"XYZ","error_message":"Unsupported currency pair: USD/XYZ"}`, string(b))
}
