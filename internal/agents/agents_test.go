//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-agent-go/agent"
	"trpc.group/trpc-go/trpc-agent-go/codeexecutor"
	"trpc.group/trpc-go/trpc-agent-go/model"
	"trpc.group/trpc-go/trpc-agent-go/runner"
	"trpc.group/trpc-go/trpc-agent-go/session/inmemory"
	"trpc.group/trpc-go/trpc-agent-go/tool"

	"github.com/NilangJotaniya/My-adk-agent/internal/calc"
	"github.com/NilangJotaniya/My-adk-agent/internal/fee"
	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
	"github.com/NilangJotaniya/My-adk-agent/internal/worldclock"
)

type replyModel struct {
	content string
}

func (m *replyModel) GenerateContent(context.Context, *model.Request) (<-chan *model.Response, error) {
	ch := make(chan *model.Response, 1)
	ch <- &model.Response{
		Object:  model.ObjectTypeChatCompletion,
		Done:    true,
		Choices: []model.Choice{{Message: model.NewAssistantMessage(m.content)}},
	}
	close(ch)
	return ch, nil
}

func (m *replyModel) Info() model.Info { return model.Info{Name: "reply-model"} }

type noopGenerator struct{}

func (noopGenerator) Generate(context.Context, calc.Task, []calc.Feedback) (string, error) {
	return "", nil
}

type noopExecutor struct{}

func (noopExecutor) ExecuteCode(context.Context, codeexecutor.CodeExecutionInput) (codeexecutor.CodeExecutionResult, error) {
	return codeexecutor.CodeExecutionResult{}, nil
}

func testDeps(m model.Model) Deps {
	return Deps{
		RootModel:  m,
		Clock:      worldclock.New(),
		Fees:       fee.NewTable(nil),
		Rates:      rate.NewTable(nil),
		Calculator: calc.NewEngine(noopGenerator{}, noopExecutor{}),
	}
}

func toolNames(tools []tool.Tool) []string {
	var names []string
	for _, t := range tools {
		names = append(names, t.Declaration().Name)
	}
	return names
}

func TestBuild_Tree(t *testing.T) {
	root, err := Build(testDeps(&replyModel{}))
	require.NoError(t, err)
	assert.Equal(t, RootAgentName, root.Info().Name)

	names := toolNames(root.Tools())
	assert.Subset(t, names, []string{
		"get_current_time",
		"get_fee_for_payment_method",
		"get_exchange_rate",
		CurrencyAgentName,
	})

	currencyAgent := NewCurrencyAgent(testDeps(&replyModel{}))
	assert.Subset(t, toolNames(currencyAgent.Tools()), []string{
		"get_fee_for_payment_method",
		"get_exchange_rate",
		calc.AgentName,
	})
	assert.NotContains(t, toolNames(currencyAgent.Tools()), "get_current_time")
}

func TestBuild_MissingDeps(t *testing.T) {
	_, err := Build(Deps{})
	assert.Error(t, err)

	d := testDeps(&replyModel{})
	d.Calculator = nil
	_, err = Build(d)
	assert.Error(t, err)
}

func TestBuild_RunsUnderRunner(t *testing.T) {
	root, err := Build(testDeps(&replyModel{content: "Hello from the root agent."}))
	require.NoError(t, err)

	r := runner.NewRunner("agents-test", root, runner.WithSessionService(inmemory.NewSessionService()))
	defer r.Close()

	events, err := r.Run(context.Background(), "user", "session", model.NewUserMessage("hi"),
		agent.WithRequestID("req-1"))
	require.NoError(t, err)

	var final string
	for evt := range events {
		if evt.Response == nil {
			continue
		}
		if evt.Error != nil {
			t.Fatalf("unexpected error event: %s", evt.Error.Message)
		}
		if len(evt.Response.Choices) == 0 {
			continue
		}
		if c := evt.Response.Choices[0].Message.Content; c != "" {
			final = c
		}
	}
	assert.Equal(t, "Hello from the root agent.", final)
}
