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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"trpc.group/trpc-go/trpc-agent-go/codeexecutor"
)

type stubCaller struct {
	resp    *genai.GenerateContentResponse
	err     error
	model   string
	config  *genai.GenerateContentConfig
	content []*genai.Content
}

func (s *stubCaller) GenerateContent(_ context.Context, model string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.model, s.content, s.config = model, contents, config
	return s.resp, s.err
}

func sandboxResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func pythonInput(code string) codeexecutor.CodeExecutionInput {
	return codeexecutor.CodeExecutionInput{
		CodeBlocks:  []codeexecutor.CodeBlock{{Code: code, Language: "python"}},
		ExecutionID: "exec-1",
	}
}

func TestGeminiExecutor_OK(t *testing.T) {
	caller := &stubCaller{resp: sandboxResponse(
		&genai.Part{Text: "Running it."},
		&genai.Part{ExecutableCode: &genai.ExecutableCode{Code: "print(460)"}},
		&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{Outcome: genai.OutcomeOK, Output: "converted = 460\n"}},
	)}
	g := &GeminiExecutor{model: "gemini-2.5-flash", caller: caller}

	out, err := g.ExecuteCode(context.Background(), pythonInput("print(460)"))
	require.NoError(t, err)
	assert.Equal(t, "converted = 460\n", out.Output)
	assert.Equal(t, "gemini-2.5-flash", caller.model)
	require.Len(t, caller.config.Tools, 1)
	assert.NotNil(t, caller.config.Tools[0].CodeExecution)
	assert.Contains(t, caller.content[0].Parts[0].Text, "print(460)")
}

func TestGeminiExecutor_Failures(t *testing.T) {
	tests := []struct {
		name   string
		caller *stubCaller
		input  codeexecutor.CodeExecutionInput
		want   string
	}{
		{
			name:   "api error",
			caller: &stubCaller{err: errors.New("permission denied")},
			input:  pythonInput("print(1)"),
			want:   "permission denied",
		},
		{
			name: "failed outcome",
			caller: &stubCaller{resp: sandboxResponse(&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{
				Outcome: genai.OutcomeFailed, Output: "ZeroDivisionError",
			}})},
			input: pythonInput("1/0"),
			want:  "ZeroDivisionError",
		},
		{
			name:   "not executed",
			caller: &stubCaller{resp: sandboxResponse(&genai.Part{Text: "the answer is 2"})},
			input:  pythonInput("print(1+1)"),
			want:   "did not execute",
		},
		{
			name: "rewritten code",
			caller: &stubCaller{resp: sandboxResponse(
				&genai.Part{ExecutableCode: &genai.ExecutableCode{Code: "print(\"converted = 460\")"}},
				&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{Outcome: genai.OutcomeOK, Output: "converted = 460\n"}},
			)},
			input: pythonInput("print(f\"converted = {500 * 0.93}\")"),
			want:  "different code than submitted",
		},
		{
			name: "executed code not reported",
			caller: &stubCaller{resp: sandboxResponse(
				&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{Outcome: genai.OutcomeOK, Output: "2\n"}},
			)},
			input: pythonInput("print(1+1)"),
			want:  "did not report the executed code",
		},
		{
			name:   "no candidates",
			caller: &stubCaller{resp: &genai.GenerateContentResponse{}},
			input:  pythonInput("print(1)"),
			want:   "no candidates",
		},
		{
			name:   "bash",
			caller: &stubCaller{},
			input: codeexecutor.CodeExecutionInput{
				CodeBlocks: []codeexecutor.CodeBlock{{Code: "echo 1", Language: "bash"}},
			},
			want: "unsupported language",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GeminiExecutor{model: "m", caller: tt.caller}
			_, err := g.ExecuteCode(context.Background(), tt.input)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGeminiExecutor_ToleratesWhitespace(t *testing.T) {
	caller := &stubCaller{resp: sandboxResponse(
		&genai.Part{ExecutableCode: &genai.ExecutableCode{Code: "x = 2  \r\n\nprint(x * 3)\n"}},
		&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{Outcome: genai.OutcomeOK, Output: "6\n"}},
	)}
	g := &GeminiExecutor{model: "m", caller: caller}

	out, err := g.ExecuteCode(context.Background(), pythonInput("x = 2\nprint(x * 3)"))
	require.NoError(t, err)
	assert.Equal(t, "6\n", out.Output)
}

func TestCompute_RewrittenSandboxCodeIsRejected(t *testing.T) {
	caller := &stubCaller{resp: sandboxResponse(
		&genai.Part{ExecutableCode: &genai.ExecutableCode{Code: "print(\"converted = 460\")"}},
		&genai.Part{CodeExecutionResult: &genai.CodeExecutionResult{Outcome: genai.OutcomeOK, Output: "converted = 460\n"}},
	)}
	gen := &scriptedGenerator{replies: []string{"```python\nprint(f\"converted = {500 * 0.93}\")\n```"}}
	eng := NewEngine(gen, &GeminiExecutor{model: "m", caller: caller}, WithMaxAttempts(2))

	_, err := eng.Compute(context.Background(), Task{Description: "convert", Outputs: []string{"converted"}})
	require.ErrorIs(t, err, ErrNoResult)
	assert.Contains(t, err.Error(), "different code than submitted")
	assert.Equal(t, 2, gen.calls)
}

func TestNewGeminiExecutor_RequiresModel(t *testing.T) {
	_, err := NewGeminiExecutor(context.Background(), "key", "")
	assert.Error(t, err)
}
