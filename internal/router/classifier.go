//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/shopspring/decimal"
	"trpc.group/trpc-go/trpc-agent-go/model"
)

// Intent is what an utterance asks for.
type Intent string

// Known intents.
const (
	IntentTime     Intent = "time"
	IntentCurrency Intent = "currency"
	IntentUnknown  Intent = "unknown"
)

// Classification is the structured reading of an utterance.
type Classification struct {
	Intent   Intent          `json:"intent"`
	Location string          `json:"location,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Base     string          `json:"base,omitempty"`
	Target   string          `json:"target,omitempty"`
	Method   string          `json:"method,omitempty"`
}

// Classifier reads an utterance.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (Classification, error)
}

const classifierInstruction = `Classify the user's message and extract its parameters.
Answer with a single JSON object and nothing else, using these keys:
  "intent": "time" when the user asks for the current time somewhere,
            "currency" when the user asks to convert money, otherwise "unknown";
  "location": the city or IANA time zone for time questions;
  "amount": the amount to convert as a number;
  "base": ISO 4217 code of the source currency;
  "target": ISO 4217 code of the destination currency;
  "method": the payment method exactly as the user wrote it, or "".
Omit keys that do not apply. Never compute anything.`

// ModelClassifier classifies with a model that answers in JSON.
type ModelClassifier struct {
	model model.Model
}

// NewModelClassifier creates a classifier backed by m.
func NewModelClassifier(m model.Model) *ModelClassifier {
	return &ModelClassifier{model: m}
}

// Classify implements Classifier.
func (c *ModelClassifier) Classify(ctx context.Context, utterance string) (Classification, error) {
	temperature := 0.0
	ch, err := c.model.GenerateContent(ctx, &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage(classifierInstruction),
			model.NewUserMessage(utterance),
		},
		GenerationConfig: model.GenerationConfig{Temperature: &temperature},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}
	var content strings.Builder
	for rsp := range ch {
		if rsp == nil {
			continue
		}
		if rsp.Error != nil {
			return Classification{}, fmt.Errorf("classify: %s", rsp.Error.Message)
		}
		if len(rsp.Choices) == 0 {
			continue
		}
		if rsp.IsPartial {
			content.WriteString(rsp.Choices[0].Delta.Content)
			continue
		}
		if msg := rsp.Choices[0].Message.Content; msg != "" {
			content.Reset()
			content.WriteString(msg)
		}
	}
	return ParseClassification(content.String())
}

// ParseClassification decodes a model answer. Code fences are stripped and
// malformed JSON is repaired before giving up. Intents other than time and
// currency become unknown.
func ParseClassification(text string) (Classification, error) {
	text = stripFence(text)
	var out Classification
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(text)
		if rerr != nil {
			return Classification{}, fmt.Errorf("decode classification: %w (repair: %v)", err, rerr)
		}
		out = Classification{}
		if err := json.Unmarshal([]byte(repaired), &out); err != nil {
			return Classification{}, fmt.Errorf("decode repaired classification: %w", err)
		}
	}
	switch Intent(strings.ToLower(strings.TrimSpace(string(out.Intent)))) {
	case IntentTime:
		out.Intent = IntentTime
	case IntentCurrency:
		out.Intent = IntentCurrency
	default:
		out.Intent = IntentUnknown
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
