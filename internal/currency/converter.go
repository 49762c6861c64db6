//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package currency converts amounts between currencies with a payment fee.
//
// The Converter looks the fee and the rate up and hands every arithmetic
// step to a Calculator. It never multiplies on its own: the numbers in a
// Breakdown are the ones printed by the executed calculation.
package currency

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"trpc.group/trpc-go/trpc-agent-go/log"

	"github.com/NilangJotaniya/My-adk-agent/internal/calc"
	"github.com/NilangJotaniya/My-adk-agent/internal/fee"
	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
)

// Errors returned by Convert.
var (
	ErrInvalidRequest  = errors.New("invalid conversion request")
	ErrUnsupportedPair = errors.New("unsupported currency pair")
	ErrCalculation     = errors.New("could not complete calculation")
)

// Names of the values the calculation must print.
const (
	ValueConvertedBeforeFee = "converted_before_fee"
	ValueFeeAmount          = "fee_amount"
	ValueAmountAfterFee     = "amount_after_fee"
	ValueConvertedAfterFee  = "converted_after_fee"
	ValueFeePercent         = "fee_percent"
)

// FeeLookup is satisfied by *fee.Table.
type FeeLookup interface {
	Lookup(ctx context.Context, method string) fee.Result
}

// RateLookup is satisfied by *rate.Table.
type RateLookup interface {
	Lookup(ctx context.Context, base, target string) rate.Result
}

// Calculator is satisfied by *calc.Engine.
type Calculator interface {
	Compute(ctx context.Context, task calc.Task) (*calc.Result, error)
}

// Converter orchestrates one conversion. It is safe for concurrent use.
type Converter struct {
	fees      FeeLookup
	rates     RateLookup
	calc      Calculator
	validator *validator.Validate
}

// NewConverter creates a Converter.
func NewConverter(fees FeeLookup, rates RateLookup, calculator Calculator) *Converter {
	return &Converter{
		fees:      fees,
		rates:     rates,
		calc:      calculator,
		validator: newValidator(),
	}
}

// Convert validates req, looks the fee and the rate up and delegates the
// arithmetic. An unknown payment method means no fee; an unknown pair
// returns ErrUnsupportedPair before any calculation.
func (c *Converter) Convert(ctx context.Context, req Request) (*Breakdown, error) {
	req = req.Normalized()
	ctx, span := telemetry.StartSpan(ctx, "currency.convert",
		attribute.String("currency.base", req.Base),
		attribute.String("currency.target", req.Target),
	)
	defer span.End()

	if err := c.validate(req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	f := c.fees.Lookup(ctx, req.Method)
	if !f.Recognized() {
		log.Infof("currency: %s", f.Message)
	}

	r := c.rates.Lookup(ctx, req.Base, req.Target)
	if !r.OK() {
		span.SetStatus(codes.Error, "unsupported pair")
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedPair, req.Base, req.Target)
	}

	res, err := c.calc.Compute(ctx, calc.Task{
		Description: describe(req.Amount, req.Base, req.Target, *r.Rate, f.FeePercentage),
		Outputs: []string{
			ValueConvertedBeforeFee,
			ValueFeeAmount,
			ValueAmountAfterFee,
			ValueConvertedAfterFee,
			ValueFeePercent,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "calculation")
		if errors.Is(err, calc.ErrNoResult) {
			return nil, fmt.Errorf("%w: %w", ErrCalculation, err)
		}
		return nil, fmt.Errorf("calculate conversion: %w", err)
	}

	b := &Breakdown{
		Amount:        req.Amount,
		Base:          req.Base,
		Target:        req.Target,
		Method:        req.Method,
		FeeRate:       f.FeePercentage,
		FeeRecognized: f.Recognized(),
		FeeNote:       f.Message,
		Rate:          *r.Rate,
		Calculation:   res,
	}
	b.ConvertedBeforeFee, _ = res.Get(ValueConvertedBeforeFee)
	b.FeeAmount, _ = res.Get(ValueFeeAmount)
	b.AmountAfterFee, _ = res.Get(ValueAmountAfterFee)
	b.ConvertedAfterFee, _ = res.Get(ValueConvertedAfterFee)
	b.FeePercent, _ = res.Get(ValueFeePercent)
	return b, nil
}

func describe(amount decimal.Decimal, base, target string, r, feeRate decimal.Decimal) string {
	return fmt.Sprintf(`Convert %[1]s %[2]s to %[3]s.
The exchange rate is %[4]s %[3]s per 1 %[2]s.
The payment method charges a fee of %[5]s (a fraction of the amount), paid in %[2]s.
Compute, using amount = %[1]s, rate = %[4]s and fee_rate = %[5]s:
converted_before_fee = amount * rate
fee_amount = amount * fee_rate
amount_after_fee = amount - fee_amount
converted_after_fee = amount_after_fee * rate
fee_percent = fee_rate * 100`,
		amount.String(), base, target, r.String(), feeRate.String())
}
