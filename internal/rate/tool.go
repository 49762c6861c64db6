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

	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"
)

// Args is the argument object of the rate tool.
type Args struct {
	BaseCurrency   string `json:"base_currency" jsonschema:"description=ISO 4217 code of the source currency such as USD,required"`
	TargetCurrency string `json:"target_currency" jsonschema:"description=ISO 4217 code of the destination currency such as EUR,required"`
}

// NewTool exposes t as the get_exchange_rate function tool. Codes are
// normalised before the lookup.
func NewTool(t *Table) tool.Tool {
	return function.NewFunctionTool(
		func(ctx context.Context, args Args) (Result, error) {
			return t.Lookup(ctx, Normalize(args.BaseCurrency), Normalize(args.TargetCurrency)), nil
		},
		function.WithName(toolName),
		function.WithDescription("Get the exchange rate from base_currency to target_currency. "+
			"Unsupported pairs return status error and no rate."),
	)
}
