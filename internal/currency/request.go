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
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
)

// Request asks for amount in Base converted to Target, paid with Method.
type Request struct {
	Amount decimal.Decimal `validate:"gt=0"`
	Base   string          `validate:"required,len=3,alpha"`
	Target string          `validate:"required,len=3,alpha"`
	Method string          `validate:"max=64"`
}

// Normalized returns a copy with trimmed upper-case codes and a trimmed method.
func (r Request) Normalized() Request {
	r.Base = rate.Normalize(r.Base)
	r.Target = rate.Normalize(r.Target)
	r.Method = strings.TrimSpace(r.Method)
	return r
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (c *Converter) validate(r Request) error {
	if err := c.validator.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
