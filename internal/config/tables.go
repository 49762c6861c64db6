//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/NilangJotaniya/My-adk-agent/internal/rate"
)

// tablesFile is the YAML layout:
//
//	aliases:
//	  berlin: Europe/Berlin
//	fees:
//	  wire transfer: "0.005"
//	rates:
//	  GBP/USD: "1.27"
type tablesFile struct {
	Aliases map[string]string `yaml:"aliases"`
	Fees    map[string]string `yaml:"fees"`
	Rates   map[string]string `yaml:"rates"`
}

// Tables are the lookup table overrides merged over the built-in tables.
type Tables struct {
	Aliases map[string]string
	Fees    map[string]decimal.Decimal
	Rates   map[rate.Pair]decimal.Decimal
}

// LoadTables reads overrides from path. An empty path yields no overrides.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return &Tables{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes YAML overrides. Currency codes are upper-cased and
// every number is checked.
func ParseTables(data []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	t := &Tables{
		Aliases: f.Aliases,
		Fees:    make(map[string]decimal.Decimal, len(f.Fees)),
		Rates:   make(map[rate.Pair]decimal.Decimal, len(f.Rates)),
	}
	for method, v := range f.Fees {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("fee %q: %w", method, err)
		}
		if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("fee %q: %s is not a fraction in [0, 1)", method, v)
		}
		t.Fees[method] = d
	}
	for pair, v := range f.Rates {
		p, err := rate.ParsePair(pair)
		if err != nil {
			return nil, err
		}
		p = rate.Pair{Base: rate.Normalize(p.Base), Target: rate.Normalize(p.Target)}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("rate %s: %w", p, err)
		}
		if !d.IsPositive() {
			return nil, fmt.Errorf("rate %s: %s is not positive", p, v)
		}
		t.Rates[p] = d
	}
	return t, nil
}
