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
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var namedLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*[=:]\s*(.+)$`)

// ParseOutput reads program output. Lines of the form "name = number" or
// "name: number" are collected by name, and the last number on any line
// (named or bare) is returned as the final value. ok is false when the
// output holds no number at all.
func ParseOutput(output string) (values map[string]decimal.Decimal, last decimal.Decimal, ok bool) {
	values = make(map[string]decimal.Decimal)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := namedLine.FindStringSubmatch(line); m != nil {
			if v, err := parseNumber(m[2]); err == nil {
				values[m[1]] = v
				last, ok = v, true
			}
			continue
		}
		if v, err := parseNumber(line); err == nil {
			last, ok = v, true
		}
	}
	return values, last, ok
}

func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	return decimal.NewFromString(s)
}
