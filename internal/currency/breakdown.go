//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/NilangJotaniya/My-adk-agent/internal/calc"
)

const defaultScale = 2

// Breakdown is the outcome of one conversion. Every derived amount was read
// from the output of Calculation.
type Breakdown struct {
	Amount        decimal.Decimal `json:"amount"`
	Base          string          `json:"base"`
	Target        string          `json:"target"`
	Method        string          `json:"method"`
	FeeRate       decimal.Decimal `json:"fee_rate"`
	FeeRecognized bool            `json:"fee_recognized"`
	FeeNote       string          `json:"fee_note,omitempty"`
	Rate          decimal.Decimal `json:"rate"`

	FeeAmount          decimal.Decimal `json:"fee_amount"`
	AmountAfterFee     decimal.Decimal `json:"amount_after_fee"`
	ConvertedBeforeFee decimal.Decimal `json:"converted_before_fee"`
	ConvertedAfterFee  decimal.Decimal `json:"converted_after_fee"`
	FeePercent         decimal.Decimal `json:"fee_percent"`

	Calculation *calc.Result `json:"-"`
}

// Narrate renders the breakdown for a user. Amounts are rounded to the minor
// units of their currency.
func (b *Breakdown) Narrate() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Converting %s %s to %s", format(b.Amount, b.Base), b.Base, b.Target)
	if b.Method != "" {
		fmt.Fprintf(&s, " with %s", b.Method)
	}
	s.WriteString(":\n")
	fmt.Fprintf(&s, "- Exchange rate: 1 %s = %s %s\n", b.Base, b.Rate.String(), b.Target)
	if b.FeeRecognized {
		fmt.Fprintf(&s, "- Fee: %s%% of the amount = %s %s\n",
			b.FeePercent.String(), format(b.FeeAmount, b.Base), b.Base)
	} else {
		fmt.Fprintf(&s, "- Fee: none applied (%s)\n", b.FeeNote)
	}
	fmt.Fprintf(&s, "- Amount after fee: %s %s\n", format(b.AmountAfterFee, b.Base), b.Base)
	fmt.Fprintf(&s, "- Converted before fee: %s %s\n", format(b.ConvertedBeforeFee, b.Target), b.Target)
	fmt.Fprintf(&s, "- Converted after fee: %s %s", format(b.ConvertedAfterFee, b.Target), b.Target)
	return s.String()
}

// Scale returns the number of minor-unit digits of an ISO 4217 code, or two
// for codes the currency table does not know.
func Scale(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return defaultScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

func format(d decimal.Decimal, code string) string {
	return d.StringFixed(Scale(code))
}
