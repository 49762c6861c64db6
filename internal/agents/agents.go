//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package agents assembles the LLM agent tree served by the hosts.
//
//	root_agent
//	├── get_current_time, get_fee_for_payment_method, get_exchange_rate
//	└── enhanced_currency_agent (agent tool)
//	    ├── get_fee_for_payment_method, get_exchange_rate
//	    └── calculation_agent (agent tool)
package agents

import (
	"errors"

	"trpc.group/trpc-go/trpc-agent-go/agent"
	"trpc.group/trpc-go/trpc-agent-go/agent/llmagent"
	"trpc.group/trpc-go/trpc-agent-go/model"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	agenttool "trpc.group/trpc-go/trpc-agent-go/tool/agent"

	"github.com/NilangJotaniya/My-adk-agent/internal/calc"
	"github.com/NilangJotaniya/My-adk-agent/internal/fee"
	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
	"github.com/NilangJotaniya/My-adk-agent/internal/worldclock"
)

// Agent names.
const (
	RootAgentName     = "root_agent"
	CurrencyAgentName = "enhanced_currency_agent"
)

const rootInstruction = `You are a helpful assistant.
- For the current time in a city or time zone, call get_current_time and report the time and the zone.
  If the tool reports an error, pass its message on.
- For any currency conversion, call enhanced_currency_agent with the amount, both currencies and the payment method.
  Relay its answer without changing any number.
- You may call get_fee_for_payment_method or get_exchange_rate directly when the user only asks for a fee or a rate.
Never do arithmetic yourself.`

const currencyInstruction = `You convert money between currencies and explain the result.
Follow these steps for every request:
1. Call get_fee_for_payment_method with the payment method. If the status is not_recognized, use a fee of 0 and tell the user.
2. Call get_exchange_rate with the base and target currency codes.
   If it returns status error, stop and tell the user the pair is not supported. Do not guess a rate.
3. Call calculation_agent with one request describing all the arithmetic: the amount converted before the fee,
   the fee amount in the base currency, the amount after the fee, and the amount after the fee converted.
   Give it the numbers from the previous steps.
4. Explain the breakdown using only numbers printed by calculation_agent: the rate used, the fee applied,
   and the converted amount before and after the fee.
Never calculate anything yourself.`

// Deps are the models and domain services the tree is built from.
type Deps struct {
	// RootModel drives root_agent and enhanced_currency_agent.
	RootModel model.Model
	// GenerationConfig applies to both LLM agents.
	GenerationConfig model.GenerationConfig
	Clock            *worldclock.Clock
	Fees             *fee.Table
	Rates            *rate.Table
	// Calculator is mounted as calculation_agent.
	Calculator *calc.Engine
}

func (d Deps) validate() error {
	switch {
	case d.RootModel == nil:
		return errors.New("agents: root model is required")
	case d.Clock == nil, d.Fees == nil, d.Rates == nil:
		return errors.New("agents: clock, fee table and rate table are required")
	case d.Calculator == nil:
		return errors.New("agents: calculator is required")
	}
	return nil
}

// Build returns root_agent.
func Build(d Deps) (agent.Agent, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	currencyAgent := NewCurrencyAgent(d)
	return llmagent.New(
		RootAgentName,
		llmagent.WithModel(d.RootModel),
		llmagent.WithDescription("Answers time questions and hands currency conversions to a specialist."),
		llmagent.WithInstruction(rootInstruction),
		llmagent.WithGenerationConfig(d.GenerationConfig),
		llmagent.WithTools([]tool.Tool{
			worldclock.NewTool(d.Clock),
			fee.NewTool(d.Fees),
			rate.NewTool(d.Rates),
			agenttool.NewTool(currencyAgent),
		}),
	), nil
}

// NewCurrencyAgent returns enhanced_currency_agent.
func NewCurrencyAgent(d Deps) agent.Agent {
	return llmagent.New(
		CurrencyAgentName,
		llmagent.WithModel(d.RootModel),
		llmagent.WithDescription("Converts an amount between currencies, applying the payment method fee, "+
			"and explains the breakdown. All arithmetic is done by executed code."),
		llmagent.WithInstruction(currencyInstruction),
		llmagent.WithGenerationConfig(d.GenerationConfig),
		llmagent.WithTools([]tool.Tool{
			fee.NewTool(d.Fees),
			rate.NewTool(d.Rates),
			agenttool.NewTool(calc.NewAgent(d.Calculator)),
		}),
	)
}
