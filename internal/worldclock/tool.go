//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package worldclock

import (
	"context"

	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"
)

// Args is the argument object of the get_current_time tool.
type Args struct {
	City string `json:"city" jsonschema:"description=City name or IANA zone id such as Paris or Asia/Kolkata,required"`
}

// NewTool exposes the clock as the get_current_time function tool. Lookup
// failures are reported in the result, never as a tool error.
func NewTool(c *Clock) tool.Tool {
	return function.NewFunctionTool(
		func(ctx context.Context, args Args) (Result, error) {
			return c.Lookup(ctx, args.City), nil
		},
		function.WithName(toolName),
		function.WithDescription("Get the current local time for a city (e.g. Paris, NYC) or an IANA time zone id."),
	)
}
