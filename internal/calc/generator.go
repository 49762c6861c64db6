//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package calc

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-agent-go/model"
)

// Instruction restricts the model to code-only replies.
const Instruction = `You are a calculator that answers only with Python code.
Reply with exactly one fenced python code block and nothing else: no prose,
no explanation and never a number stated outside the code.
The code must compute the requested values with ordinary Python arithmetic
and print each result on its own line as "name = value".
Do not read input, use the network or touch files.`

// ModelGenerator asks a model for code.
type ModelGenerator struct {
	model       model.Model
	instruction string
	genConfig   model.GenerationConfig
}

// GeneratorOption configures ModelGenerator.
type GeneratorOption func(*ModelGenerator)

// WithInstruction replaces the system instruction.
func WithInstruction(s string) GeneratorOption {
	return func(g *ModelGenerator) {
		g.instruction = s
	}
}

// WithGenerationConfig sets the generation parameters. Streaming is always
// disabled.
func WithGenerationConfig(cfg model.GenerationConfig) GeneratorOption {
	return func(g *ModelGenerator) {
		g.genConfig = cfg
	}
}

// NewModelGenerator creates a generator backed by m.
func NewModelGenerator(m model.Model, opts ...GeneratorOption) *ModelGenerator {
	temperature := 0.0
	g := &ModelGenerator{
		model:       m,
		instruction: Instruction,
		genConfig:   model.GenerationConfig{Temperature: &temperature},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.genConfig.Stream = false
	return g
}

// Generate implements Generator. Rejected replies are replayed together with
// the reason they were rejected.
func (g *ModelGenerator) Generate(ctx context.Context, task Task, feedback []Feedback) (string, error) {
	msgs := []model.Message{
		model.NewSystemMessage(g.instruction),
		model.NewUserMessage(task.Prompt()),
	}
	for _, fb := range feedback {
		msgs = append(msgs,
			model.NewAssistantMessage(fb.Reply),
			model.NewUserMessage("That reply was rejected: "+fb.Problem+
				"\nReply again with one corrected python code block."),
		)
	}

	ch, err := g.model.GenerateContent(ctx, &model.Request{
		Messages:         msgs,
		GenerationConfig: g.genConfig,
	})
	if err != nil {
		return "", fmt.Errorf("model %s: %w", g.model.Info().Name, err)
	}
	var (
		text  string
		delta strings.Builder
	)
	for rsp := range ch {
		if rsp == nil {
			continue
		}
		if rsp.Error != nil {
			return "", fmt.Errorf("model %s: %s", g.model.Info().Name, rsp.Error.Message)
		}
		if len(rsp.Choices) == 0 {
			continue
		}
		if rsp.IsPartial {
			delta.WriteString(rsp.Choices[0].Delta.Content)
			continue
		}
		if c := rsp.Choices[0].Message.Content; c != "" {
			text = c
		}
	}
	if text == "" {
		text = delta.String()
	}
	return text, nil
}
