//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package worldclock

import "strings"

// Aliases maps casual place names to IANA zone identifiers. Keys are stored
// lowercase. An Aliases value is never mutated after construction.
type Aliases map[string]string

var defaultAliases = map[string]string{
	"paris":         "Europe/Paris",
	"kolkata":       "Asia/Kolkata",
	"mumbai":        "Asia/Kolkata",
	"new york":      "America/New_York",
	"nyc":           "America/New_York",
	"london":        "Europe/London",
	"tokyo":         "Asia/Tokyo",
	"los angeles":   "America/Los_Angeles",
	"sf":            "America/Los_Angeles",
	"san francisco": "America/Los_Angeles",
}

// NewAliases returns the built-in table with overrides applied on top.
func NewAliases(overrides map[string]string) Aliases {
	a := make(Aliases, len(defaultAliases)+len(overrides))
	for k, v := range defaultAliases {
		a[k] = v
	}
	for k, v := range overrides {
		key := normalize(k)
		if key == "" || strings.TrimSpace(v) == "" {
			continue
		}
		a[key] = strings.TrimSpace(v)
	}
	return a
}

// Resolve returns the zone for name. The name is trimmed and lowercased and
// then matched exactly.
func (a Aliases) Resolve(name string) (string, bool) {
	zone, ok := a[normalize(name)]
	return zone, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
