//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package app assembles models, lookup tables, the calculation engine and
// the agent tree from a loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	openaiopt "github.com/openai/openai-go/option"
	"trpc.group/trpc-go/trpc-agent-go/agent"
	"trpc.group/trpc-go/trpc-agent-go/codeexecutor/local"
	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/model"
	"trpc.group/trpc-go/trpc-agent-go/model/openai"
	"trpc.group/trpc-go/trpc-agent-go/runner"
	"trpc.group/trpc-go/trpc-agent-go/session/inmemory"

	"github.com/NilangJotaniya/My-adk-agent/internal/agents"
	"github.com/NilangJotaniya/My-adk-agent/internal/calc"
	"github.com/NilangJotaniya/My-adk-agent/internal/config"
	"github.com/NilangJotaniya/My-adk-agent/internal/currency"
	"github.com/NilangJotaniya/My-adk-agent/internal/fee"
	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
	"github.com/NilangJotaniya/My-adk-agent/internal/router"
	"github.com/NilangJotaniya/My-adk-agent/internal/worldclock"
)

// App holds the assembled services. Every field is safe for concurrent use.
type App struct {
	Name      string
	Root      agent.Agent
	Router    *router.Router
	Clock     *worldclock.Clock
	Fees      *fee.Table
	Rates     *rate.Table
	Engine    *calc.Engine
	Converter *currency.Converter
}

// New builds the application. It does not contact any model.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		return nil, err
	}

	rootModel := newModel(cfg, cfg.RootModel)
	workerModel := newModel(cfg, cfg.WorkerModel)

	executor, err := newExecutor(ctx, cfg)
	if err != nil {
		return nil, err
	}
	engine := calc.NewEngine(
		calc.NewModelGenerator(workerModel),
		executor,
		calc.WithMaxAttempts(cfg.Calc.MaxAttempts),
	)

	clockOpts := []worldclock.Option{worldclock.WithAliases(worldclock.NewAliases(tables.Aliases))}
	if cfg.Time.Remote {
		clockOpts = append(clockOpts, worldclock.WithRemote(
			worldclock.NewWorldTimeAPI(cfg.Time.APIURL, worldclock.WithTimeout(cfg.Time.Timeout)),
		))
	}
	clock := worldclock.New(clockOpts...)
	fees := fee.NewTable(tables.Fees)
	rates := rate.NewTable(tables.Rates)
	converter := currency.NewConverter(fees, rates, engine)

	root, err := agents.Build(agents.Deps{
		RootModel:        rootModel,
		GenerationConfig: model.GenerationConfig{Stream: cfg.Streaming},
		Clock:            clock,
		Fees:             fees,
		Rates:            rates,
		Calculator:       engine,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("app %s assembled: %d fee methods, %d rate pairs, executor=%s",
		cfg.AppName, len(fees.Methods()), len(rates.Pairs()), cfg.Calc.Executor)

	return &App{
		Name:      cfg.AppName,
		Root:      root,
		Router:    router.New(router.NewModelClassifier(workerModel), clock, converter),
		Clock:     clock,
		Fees:      fees,
		Rates:     rates,
		Engine:    engine,
		Converter: converter,
	}, nil
}

// NewRunner returns a runner for the root agent backed by in-memory sessions.
func (a *App) NewRunner() runner.Runner {
	return runner.NewRunner(a.Name, a.Root,
		runner.WithSessionService(inmemory.NewSessionService()),
	)
}

func newModel(cfg *config.AppConfig, name string) model.Model {
	opts := []openai.Option{
		openai.WithBaseURL(cfg.Model.BaseURL),
		openai.WithOpenAIOptions(
			openaiopt.WithMaxRetries(cfg.Model.MaxRetries),
			openaiopt.WithRequestTimeout(cfg.Model.Timeout),
		),
	}
	if key := cfg.APIKey(); key != "" {
		opts = append(opts, openai.WithAPIKey(key))
	}
	return openai.New(name, opts...)
}

func newExecutor(ctx context.Context, cfg *config.AppConfig) (calc.Executor, error) {
	switch cfg.Calc.Executor {
	case config.ExecutorGemini:
		if cfg.APIKey() == "" {
			return nil, errors.New("app: the gemini executor needs MODEL_API_KEY or GOOGLE_API_KEY")
		}
		return calc.NewGeminiExecutor(ctx, cfg.APIKey(), cfg.WorkerModel)
	case config.ExecutorLocal, "":
		log.Warnf("code executor %q runs python3 on this host without a sandbox; use %q for isolation",
			config.ExecutorLocal, config.ExecutorGemini)
		opts := []local.CodeExecutorOption{local.WithTimeout(cfg.Calc.Timeout)}
		if cfg.Calc.WorkDir != "" {
			opts = append(opts, local.WithWorkDir(cfg.Calc.WorkDir))
		}
		return local.New(opts...), nil
	default:
		return nil, fmt.Errorf("app: unknown code executor %q", cfg.Calc.Executor)
	}
}
