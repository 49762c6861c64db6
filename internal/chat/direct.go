//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package chat

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NilangJotaniya/My-adk-agent/internal/router"
)

// Handler answers one utterance without an LLM conversation loop.
type Handler interface {
	Handle(ctx context.Context, utterance string) (router.Reply, error)
}

// Direct is a terminal session served by the deterministic router.
type Direct struct {
	handler Handler
	in      io.Reader
	out     io.Writer
}

// NewDirect creates a Direct session reading stdin and writing stdout.
func NewDirect(h Handler, opts ...DirectOption) *Direct {
	d := &Direct{handler: h, in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DirectOption configures Direct.
type DirectOption func(*Direct)

// WithDirectIO replaces stdin and stdout.
func WithDirectIO(in io.Reader, out io.Writer) DirectOption {
	return func(d *Direct) {
		d.in = in
		d.out = out
	}
}

// Run reads lines until EOF or /exit.
func (d *Direct) Run(ctx context.Context) error {
	fmt.Fprintf(d.out, "Router ready. Type %s to quit.\n\n", exitCommand)
	return readLoop(d.in, d.out, func(input string) error {
		reply, err := d.handler.Handle(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "%s %s\n", agentColor("Assistant:"), reply.Text)
		return nil
	})
}
