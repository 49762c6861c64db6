//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package chat is the interactive terminal host around a runner.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"trpc.group/trpc-go/trpc-agent-go/agent"
	"trpc.group/trpc-go/trpc-agent-go/event"
	"trpc.group/trpc-go/trpc-agent-go/model"
	"trpc.group/trpc-go/trpc-agent-go/runner"
)

const exitCommand = "/exit"

var (
	userColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	agentColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	toolColor  = color.New(color.FgYellow).SprintFunc()
	errColor   = color.New(color.FgRed).SprintFunc()
)

// Session is one terminal conversation.
type Session struct {
	runner    runner.Runner
	userID    string
	sessionID string
	streaming bool
	showTools bool
	in        io.Reader
	out       io.Writer
}

// Option configures a Session.
type Option func(*Session)

// WithStreaming prints deltas as they arrive.
func WithStreaming(s bool) Option {
	return func(c *Session) { c.streaming = s }
}

// WithToolTrace prints tool calls and tool responses.
func WithToolTrace(show bool) Option {
	return func(c *Session) { c.showTools = show }
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Session) {
		c.in = in
		c.out = out
	}
}

// New creates a session on r.
func New(r runner.Runner, userID string, opts ...Option) *Session {
	s := &Session{
		runner:    r,
		userID:    userID,
		sessionID: "session-" + uuid.NewString(),
		showTools: true,
		in:        os.Stdin,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads lines until EOF or /exit.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Chat ready (session %s). Type %s to quit.\n\n", s.sessionID, exitCommand)
	return readLoop(s.in, s.out, func(input string) error {
		return s.send(ctx, input)
	})
}

// readLoop prompts for lines and hands each non-empty one to handle until
// EOF or /exit. Handler errors are printed and the loop continues.
func readLoop(in io.Reader, out io.Writer, handle func(string) error) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s ", userColor("You:"))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == exitCommand {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if err := handle(input); err != nil {
			fmt.Fprintf(out, "%s %v\n", errColor("Error:"), err)
		}
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input scanner error: %w", err)
	}
	return nil
}

func (s *Session) send(ctx context.Context, text string) error {
	events, err := s.runner.Run(ctx, s.userID, s.sessionID, model.NewUserMessage(text),
		agent.WithRequestID(uuid.NewString()))
	if err != nil {
		return fmt.Errorf("failed to run agent: %w", err)
	}
	fmt.Fprintf(s.out, "%s ", agentColor("Assistant:"))
	for evt := range events {
		s.print(evt)
		if evt.IsFinalResponse() {
			break
		}
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) print(evt *event.Event) {
	if evt.Response == nil {
		return
	}
	if evt.Error != nil {
		fmt.Fprintf(s.out, "\n%s %s\n", errColor("Error:"), evt.Error.Message)
		return
	}
	if len(evt.Choices) == 0 {
		return
	}
	choice := evt.Choices[0]
	if len(choice.Message.ToolCalls) > 0 {
		if s.showTools {
			for _, tc := range choice.Message.ToolCalls {
				fmt.Fprintf(s.out, "\n  %s %s %s", toolColor("->"), tc.Function.Name, string(tc.Function.Arguments))
			}
			fmt.Fprintln(s.out)
		}
		return
	}
	if choice.Message.Role == model.RoleTool {
		if s.showTools {
			fmt.Fprintf(s.out, "  %s %s\n", toolColor("<-"), strings.TrimSpace(choice.Message.Content))
		}
		return
	}
	content := choice.Message.Content
	if s.streaming {
		content = choice.Delta.Content
	}
	if content == "" {
		return
	}
	fmt.Fprint(s.out, content)
}
