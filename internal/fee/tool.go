//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package fee

import (
	"context"

	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"
)

// Args is the argument object of the fee tool.
type Args struct {
	Method string `json:"method" jsonschema:"description=Payment method label such as Platinum Credit Card,required"`
}

// NewTool exposes t as the get_fee_for_payment_method function tool.
func NewTool(t *Table) tool.Tool {
	return function.NewFunctionTool(
		func(ctx context.Context, args Args) (Result, error) {
			return t.Lookup(ctx, args.Method), nil
		},
		function.WithName(toolName),
		function.WithDescription("Look up the transaction fee fraction for a payment method. "+
			"Unknown methods return status not_recognized and a zero fee."),
	)
}
