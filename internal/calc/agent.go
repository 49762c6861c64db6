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
	"time"

	"trpc.group/trpc-go/trpc-agent-go/agent"
	"trpc.group/trpc-go/trpc-agent-go/event"
	"trpc.group/trpc-go/trpc-agent-go/model"
	"trpc.group/trpc-go/trpc-agent-go/tool"
)

// AgentName is the name the calculation agent is registered under.
const AgentName = "calculation_agent"

const agentDescription = "Performs arithmetic by writing Python code and executing it. " +
	"Send the full calculation task; the reply holds the executed code and its output."

// Agent exposes an Engine as a framework agent so it can be mounted as an
// agent tool. Its reply is the executed code and its output, nothing else.
type Agent struct {
	name        string
	description string
	engine      *Engine
}

// NewAgent creates the calculation agent.
func NewAgent(engine *Engine) *Agent {
	return &Agent{
		name:        AgentName,
		description: agentDescription,
		engine:      engine,
	}
}

// Info implements agent.Agent.
func (a *Agent) Info() agent.Info {
	return agent.Info{Name: a.name, Description: a.description}
}

// Tools implements agent.Agent.
func (a *Agent) Tools() []tool.Tool { return nil }

// SubAgents implements agent.Agent.
func (a *Agent) SubAgents() []agent.Agent { return nil }

// FindSubAgent implements agent.Agent.
func (a *Agent) FindSubAgent(string) agent.Agent { return nil }

// Run implements agent.Agent. The invocation message is the task.
func (a *Agent) Run(ctx context.Context, inv *agent.Invocation) (<-chan *event.Event, error) {
	ch := make(chan *event.Event, 1)
	go func() {
		defer close(ch)
		rsp := a.respond(ctx, strings.TrimSpace(inv.Message.Content))
		_ = agent.EmitEvent(ctx, inv, ch, event.NewResponseEvent(inv.InvocationID, a.name, rsp))
	}()
	return ch, nil
}

func (a *Agent) respond(ctx context.Context, task string) *model.Response {
	rsp := &model.Response{
		Object:    model.ObjectTypeChatCompletion,
		Created:   time.Now().Unix(),
		Timestamp: time.Now(),
		Done:      true,
	}
	if task == "" {
		rsp.Choices = []model.Choice{assistant("No calculation task was given.")}
		return rsp
	}
	res, err := a.engine.Compute(ctx, Task{Description: task})
	switch {
	case err == nil:
		rsp.Choices = []model.Choice{assistant(FormatArtifact(res))}
	case errors.Is(err, ErrNoResult):
		rsp.Choices = []model.Choice{assistant("Sorry, I could not complete the calculation.")}
	default:
		rsp.Error = &model.ResponseError{Message: err.Error()}
	}
	return rsp
}

// FormatArtifact renders the executed code and its output.
func FormatArtifact(r *Result) string {
	return fmt.Sprintf("```%s\n%s\n```\nOutput:\n%s",
		r.Language, strings.TrimSpace(r.Code), strings.TrimSpace(r.Output))
}

func assistant(content string) model.Choice {
	return model.Choice{Message: model.Message{Role: model.RoleAssistant, Content: content}}
}
