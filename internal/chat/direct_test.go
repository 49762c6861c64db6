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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilangJotaniya/My-adk-agent/internal/router"
)

type handlerFunc func(ctx context.Context, utterance string) (router.Reply, error)

func (f handlerFunc) Handle(ctx context.Context, utterance string) (router.Reply, error) {
	return f(ctx, utterance)
}

func TestDirect_Run(t *testing.T) {
	color.NoColor = true
	var seen []string
	h := handlerFunc(func(_ context.Context, u string) (router.Reply, error) {
		seen = append(seen, u)
		if u == "fail" {
			return router.Reply{}, errors.New("model unavailable")
		}
		return router.Reply{Intent: router.IntentUnknown, Text: router.HelpText}, nil
	})
	var out bytes.Buffer
	d := NewDirect(h, WithDirectIO(strings.NewReader("hello\n\nfail\n/exit\nignored\n"), &out))

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []string{"hello", "fail"}, seen)
	assert.Contains(t, out.String(), "Assistant: "+router.HelpText)
	assert.Contains(t, out.String(), "Error: model unavailable")
	assert.Contains(t, out.String(), "Goodbye!")
}
