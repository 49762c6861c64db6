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
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
	"trpc.group/trpc-go/trpc-agent-go/codeexecutor"
)

const sandboxPrompt = "Run the following Python program with the code execution tool exactly as written. " +
	"Do not modify it and do not add commentary.\n\n```python\n%s\n```"

// modelCaller is satisfied by (*genai.Client).Models and by test stubs.
type modelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiExecutor runs Python in Gemini's hosted code execution sandbox.
type GeminiExecutor struct {
	model  string
	caller modelCaller
}

// NewGeminiExecutor creates an executor using the given Gemini model.
func NewGeminiExecutor(ctx context.Context, apiKey, modelName string) (*GeminiExecutor, error) {
	if modelName == "" {
		return nil, errors.New("gemini executor: model name is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini executor: create client: %w", err)
	}
	if client.Models == nil {
		return nil, errors.New("gemini executor: client is missing the Models service")
	}
	return &GeminiExecutor{model: modelName, caller: client.Models}, nil
}

// ExecuteCode implements Executor. Only Python blocks are accepted. A
// sandbox outcome other than OK is returned as an error.
func (g *GeminiExecutor) ExecuteCode(
	ctx context.Context, input codeexecutor.CodeExecutionInput,
) (codeexecutor.CodeExecutionResult, error) {
	var out strings.Builder
	for i, block := range input.CodeBlocks {
		switch strings.ToLower(block.Language) {
		case "", "python", "py", "python3":
		default:
			return codeexecutor.CodeExecutionResult{}, fmt.Errorf("block %d: unsupported language %q", i, block.Language)
		}
		s, err := g.run(ctx, block.Code)
		if err != nil {
			return codeexecutor.CodeExecutionResult{}, fmt.Errorf("block %d: %w", i, err)
		}
		out.WriteString(s)
	}
	return codeexecutor.CodeExecutionResult{Output: out.String()}, nil
}

func (g *GeminiExecutor) run(ctx context.Context, code string) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: fmt.Sprintf(sandboxPrompt, strings.TrimSpace(code))}},
	}}
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		Tools:       []*genai.Tool{{CodeExecution: &genai.ToolCodeExecution{}}},
	}
	resp, err := g.caller.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("sandbox returned no candidates")
	}

	var (
		out      strings.Builder
		ran      []string
		executed bool
	)
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.ExecutableCode != nil {
			ran = append(ran, part.ExecutableCode.Code)
		}
		if part.CodeExecutionResult == nil {
			continue
		}
		executed = true
		r := part.CodeExecutionResult
		if r.Outcome != genai.OutcomeOK {
			return "", fmt.Errorf("sandbox outcome %s: %s", r.Outcome, strings.TrimSpace(r.Output))
		}
		out.WriteString(r.Output)
	}
	if !executed {
		return "", errors.New("sandbox did not execute the code")
	}
	// The output only counts when it came from the submitted program.
	if len(ran) == 0 {
		return "", errors.New("sandbox did not report the executed code")
	}
	for _, c := range ran {
		if normalizeCode(c) != normalizeCode(code) {
			return "", fmt.Errorf("sandbox ran different code than submitted: %q", strings.TrimSpace(c))
		}
	}
	return out.String(), nil
}

// normalizeCode drops trailing spaces and blank lines.
func normalizeCode(code string) string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n") {
		if l = strings.TrimRight(l, " \t"); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}
