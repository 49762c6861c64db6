//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package calc performs arithmetic by generating code and executing it.
//
// A number produced by this package always comes from the output of an
// executed program. The generator is asked for code only; its text is never
// read as an answer. Attempts whose code does not run or does not print the
// requested values are fed back to the generator and regenerated, up to a
// fixed number of attempts.
package calc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"trpc.group/trpc-go/trpc-agent-go/codeexecutor"
	"trpc.group/trpc-go/trpc-agent-go/log"

	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
)

// DefaultMaxAttempts caps generate-and-execute rounds per task.
const DefaultMaxAttempts = 3

// ErrNoResult is returned when every attempt failed to produce a verified
// result.
var ErrNoResult = errors.New("could not complete calculation")

// Attempt outcomes recorded on the attempt counter.
const (
	outcomeOK         = "ok"
	outcomeNoCode     = "no_code"
	outcomeExecFailed = "exec_failed"
	outcomeBadOutput  = "bad_output"
)

// Task describes a computation in natural language. Outputs names the
// values the program must print, one per line, as "name = value".
type Task struct {
	Description string
	Outputs     []string
}

// Prompt renders the task as the generator's user message.
func (t Task) Prompt() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(t.Description))
	if len(t.Outputs) > 0 {
		b.WriteString("\n\nPrint each of these values on its own line in the form `name = value`: ")
		b.WriteString(strings.Join(t.Outputs, ", "))
		b.WriteString(".")
	}
	return b.String()
}

// Result is a verified computation. Code and Output always hold the program
// and the output the numbers were read from.
type Result struct {
	// Values holds every "name = number" line of the output.
	Values map[string]decimal.Decimal
	// Value is the last number printed.
	Value    decimal.Decimal
	Code     string
	Language string
	Output   string
	Attempts int
}

// Get returns a named value.
func (r *Result) Get(name string) (decimal.Decimal, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Feedback tells the generator why its previous reply was rejected.
type Feedback struct {
	Reply   string
	Problem string
}

// Generator produces the reply holding the code for a task.
type Generator interface {
	Generate(ctx context.Context, task Task, feedback []Feedback) (string, error)
}

// Executor runs code blocks. The framework's code executors satisfy it.
type Executor interface {
	ExecuteCode(ctx context.Context, input codeexecutor.CodeExecutionInput) (codeexecutor.CodeExecutionResult, error)
}

// Engine drives generation and execution.
type Engine struct {
	gen         Generator
	exec        Executor
	maxAttempts int
	delimiter   codeexecutor.CodeBlockDelimiter
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxAttempts sets the attempt cap. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(gen Generator, exec Executor, opts ...Option) *Engine {
	e := &Engine{
		gen:         gen,
		exec:        exec,
		maxAttempts: DefaultMaxAttempts,
		delimiter:   codeexecutor.CodeBlockDelimiter{Start: "```", End: "```"},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// attemptError is a rejected attempt. It never leaves the package.
type attemptError struct {
	outcome string
	msg     string
}

func (e *attemptError) Error() string { return e.msg }

func rejected(outcome, format string, args ...any) *attemptError {
	return &attemptError{outcome: outcome, msg: fmt.Sprintf(format, args...)}
}

// Compute runs the task until a program prints the requested values or the
// attempt cap is reached. Generator errors are returned as is; exhausting
// the attempts yields ErrNoResult.
func (e *Engine) Compute(ctx context.Context, task Task) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "calc.compute",
		attribute.Int("calc.max_attempts", e.maxAttempts),
		attribute.StringSlice("calc.outputs", task.Outputs),
	)
	defer span.End()

	var (
		feedback []Feedback
		last     *attemptError
	)
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		reply, err := e.gen.Generate(ctx, task, feedback)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generate")
			return nil, fmt.Errorf("generate code: %w", err)
		}
		res, aerr := e.attempt(ctx, task, reply)
		if aerr == nil {
			telemetry.RecordCalcAttempt(ctx, outcomeOK)
			res.Attempts = attempt
			span.SetAttributes(attribute.Int("calc.attempts", attempt))
			return res, nil
		}
		telemetry.RecordCalcAttempt(ctx, aerr.outcome)
		log.Debugf("calc: attempt %d/%d rejected: %s", attempt, e.maxAttempts, aerr.msg)
		last = aerr
		feedback = append(feedback, Feedback{Reply: reply, Problem: aerr.msg})
	}
	span.SetStatus(codes.Error, "exhausted")
	log.Warnf("calc: giving up after %d attempts: %s", e.maxAttempts, last.msg)
	return nil, fmt.Errorf("%w after %d attempts: %s", ErrNoResult, e.maxAttempts, last.msg)
}

func (e *Engine) attempt(ctx context.Context, task Task, reply string) (*Result, *attemptError) {
	blocks := codeexecutor.ExtractCodeBlock(reply, e.delimiter)
	switch {
	case len(blocks) == 0:
		return nil, rejected(outcomeNoCode, "the reply contained no fenced code block; reply with exactly one python code block")
	case len(blocks) > 1:
		return nil, rejected(outcomeNoCode, "the reply contained %d code blocks; reply with exactly one", len(blocks))
	}
	block := blocks[0]
	if strings.TrimSpace(block.Code) == "" {
		return nil, rejected(outcomeNoCode, "the code block is empty")
	}
	switch strings.ToLower(strings.TrimSpace(block.Language)) {
	case "", "python", "py", "python3":
		block.Language = "python"
	default:
		return nil, rejected(outcomeNoCode, "the code block is %q; only python code is executed", block.Language)
	}

	out, err := e.exec.ExecuteCode(ctx, codeexecutor.CodeExecutionInput{
		CodeBlocks:  []codeexecutor.CodeBlock{block},
		ExecutionID: uuid.NewString(),
	})
	if err != nil {
		return nil, rejected(outcomeExecFailed, "execution failed: %v", err)
	}
	// The local executor reports block failures inside the output.
	if strings.Contains(out.Output, "Error executing code block") {
		return nil, rejected(outcomeExecFailed, "execution failed: %s", strings.TrimSpace(out.Output))
	}
	if strings.TrimSpace(out.Output) == "" {
		return nil, rejected(outcomeBadOutput, "the program printed nothing; print the results")
	}

	values, last, ok := ParseOutput(out.Output)
	if !ok {
		return nil, rejected(outcomeBadOutput, "the output contains no number: %q", out.Output)
	}
	var missing []string
	for _, name := range task.Outputs {
		if _, found := values[name]; !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, rejected(outcomeBadOutput, "the output is missing %s; print them as `name = value`",
			strings.Join(missing, ", "))
	}
	return &Result{
		Values:   values,
		Value:    last,
		Code:     block.Code,
		Language: block.Language,
		Output:   out.Output,
	}, nil
}
