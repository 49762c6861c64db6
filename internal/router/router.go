//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package router dispatches an utterance to the time lookup or to the
// currency converter and hands back their answer unchanged.
package router

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-agent-go/log"

	"github.com/NilangJotaniya/My-adk-agent/internal/currency"
	"github.com/NilangJotaniya/My-adk-agent/internal/worldclock"
)

// HelpText is the reply for utterances that are neither time nor currency
// questions.
const HelpText = "I can tell you the current time in a city (\"What time is it in Paris?\") " +
	"or convert money with a payment method fee (\"Convert 500 USD to EUR using my Platinum Credit Card\")."

// TimeLookup is satisfied by *worldclock.Clock.
type TimeLookup interface {
	Lookup(ctx context.Context, city string) worldclock.Result
}

// Converter is satisfied by *currency.Converter.
type Converter interface {
	Convert(ctx context.Context, req currency.Request) (*currency.Breakdown, error)
}

// Reply is the answer to one utterance. Exactly one of Time and Conversion is
// set for a handled intent. Err holds a user-facing failure such as an
// unsupported currency pair; Text always holds what to show.
type Reply struct {
	Intent     Intent
	Text       string
	Time       *worldclock.Result
	Conversion *currency.Breakdown
	Err        error
}

// Router routes utterances. It holds no per-request state.
type Router struct {
	classifier Classifier
	clock      TimeLookup
	converter  Converter
}

// New creates a Router.
func New(classifier Classifier, clock TimeLookup, converter Converter) *Router {
	return &Router{classifier: classifier, clock: clock, converter: converter}
}

// Handle classifies the utterance and dispatches it. The returned error is
// reserved for service failures (classifier or model errors); lookup and
// conversion failures are reported in the Reply.
func (r *Router) Handle(ctx context.Context, utterance string) (Reply, error) {
	c, err := r.classifier.Classify(ctx, utterance)
	if err != nil {
		return Reply{}, err
	}
	log.Debugf("router: %q classified as %+v", utterance, c)

	switch c.Intent {
	case IntentTime:
		res := r.clock.Lookup(ctx, c.Location)
		reply := Reply{Intent: IntentTime, Time: &res}
		if res.Status == worldclock.StatusSuccess {
			reply.Text = fmt.Sprintf("The current time in %s is %s (%s).", res.City, res.Time, res.Timezone)
		} else {
			reply.Text = res.Message
			reply.Err = errors.New(res.Message)
		}
		return reply, nil

	case IntentCurrency:
		b, err := r.converter.Convert(ctx, currency.Request{
			Amount: c.Amount,
			Base:   c.Base,
			Target: c.Target,
			Method: c.Method,
		})
		switch {
		case err == nil:
			return Reply{Intent: IntentCurrency, Text: b.Narrate(), Conversion: b}, nil
		case errors.Is(err, currency.ErrUnsupportedPair),
			errors.Is(err, currency.ErrInvalidRequest):
			return Reply{Intent: IntentCurrency, Text: "Sorry, I can't do that conversion: " + err.Error(), Err: err}, nil
		case errors.Is(err, currency.ErrCalculation):
			return Reply{Intent: IntentCurrency, Text: "Sorry, I could not complete the calculation.", Err: err}, nil
		default:
			return Reply{}, err
		}

	default:
		return Reply{Intent: IntentUnknown, Text: HelpText}, nil
	}
}
