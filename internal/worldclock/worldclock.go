//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package worldclock reports the current wall-clock time of a city or zone.
//
// Lookup first maps casual names through an alias table, then resolves the
// zone with local zone data, and only when that fails asks a remote time
// service once.
package worldclock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-agent-go/log"

	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
)

// Result status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// TimeLayout is the clock format shown to users.
const TimeLayout = "03:04 PM"

const toolName = "get_current_time"

var errLocalZone = errors.New("local zone is not a location")

// Result is the structured answer of a lookup.
type Result struct {
	Status   string `json:"status"`
	City     string `json:"city,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Time     string `json:"time,omitempty"`
	Datetime string `json:"datetime,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Remote resolves a city against a remote time service.
type Remote interface {
	Now(ctx context.Context, city string) (time.Time, string, error)
}

// Clock performs time lookups. It holds no mutable state.
type Clock struct {
	aliases      Aliases
	remote       Remote
	now          func() time.Time
	loadLocation func(string) (*time.Location, error)
}

// Option configures a Clock.
type Option func(*Clock)

// WithAliases replaces the alias table.
func WithAliases(a Aliases) Option {
	return func(c *Clock) {
		c.aliases = a
	}
}

// WithRemote sets the remote fallback. Without it local failures are final.
func WithRemote(r Remote) Option {
	return func(c *Clock) {
		c.remote = r
	}
}

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// WithLocationLoader overrides local zone resolution.
func WithLocationLoader(load func(string) (*time.Location, error)) Option {
	return func(c *Clock) {
		c.loadLocation = load
	}
}

// New creates a Clock with the built-in aliases and no remote fallback.
func New(opts ...Option) *Clock {
	c := &Clock{
		aliases:      NewAliases(nil),
		now:          time.Now,
		loadLocation: time.LoadLocation,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the current time for city, which may be a casual name
// ("Paris"), an alias ("nyc") or a zone id ("Asia/Kolkata").
func (c *Clock) Lookup(ctx context.Context, city string) Result {
	res := c.lookup(ctx, city)
	telemetry.RecordLookup(ctx, toolName, res.Status)
	return res
}

func (c *Clock) lookup(ctx context.Context, city string) Result {
	name := strings.TrimSpace(city)
	if name == "" {
		return Result{Status: StatusError, Message: "No city provided."}
	}
	zone := name
	if z, ok := c.aliases.Resolve(name); ok {
		zone = z
	}

	loc, localErr := c.local(zone)
	if localErr == nil {
		now := c.now().In(loc)
		return Result{
			Status:   StatusSuccess,
			City:     name,
			Timezone: zone,
			Time:     now.Format(TimeLayout),
			Datetime: now.Format(time.RFC3339),
			Source:   SourceLocal,
		}
	}
	if c.remote == nil {
		return c.failure(name, localErr)
	}

	log.Debugf("worldclock: local resolution of %q failed (%v), asking remote", zone, localErr)
	now, resolved, err := c.remote.Now(ctx, zone)
	if err != nil {
		log.Warnf("worldclock: remote fallback for %q failed: %v", zone, err)
		return c.failure(name, err)
	}
	return Result{
		Status:   StatusSuccess,
		City:     name,
		Timezone: resolved,
		Time:     now.Format(TimeLayout),
		Datetime: now.Format(time.RFC3339),
		Source:   SourceRemote,
	}
}

func (c *Clock) local(zone string) (*time.Location, error) {
	// LoadLocation maps "Local" to the host zone, which is not what a
	// user asking for a place means.
	if strings.EqualFold(zone, "local") {
		return nil, errLocalZone
	}
	return c.loadLocation(zone)
}

func (c *Clock) failure(name string, err error) Result {
	return Result{
		Status:  StatusError,
		City:    name,
		Message: fmt.Sprintf("Could not determine time for '%s' (%v). Try 'Paris' or 'Europe/Paris'.", name, err),
	}
}
