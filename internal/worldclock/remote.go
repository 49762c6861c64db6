//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package worldclock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeAPIURL is the public worldtimeapi service.
	DefaultTimeAPIURL = "https://worldtimeapi.org"
	// DefaultRemoteTimeout bounds the whole remote fallback.
	DefaultRemoteTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// ErrZoneNotFound is returned when the remote service knows no zone for a city.
var ErrZoneNotFound = errors.New("no matching time zone")

// WorldTimeAPI resolves the current time of a city against a
// worldtimeapi-compatible HTTP service.
type WorldTimeAPI struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// WorldTimeAPIOption configures WorldTimeAPI.
type WorldTimeAPIOption func(*WorldTimeAPI)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) WorldTimeAPIOption {
	return func(w *WorldTimeAPI) {
		w.client = c
	}
}

// WithTimeout bounds the fallback including both requests.
func WithTimeout(d time.Duration) WorldTimeAPIOption {
	return func(w *WorldTimeAPI) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// NewWorldTimeAPI creates a client for baseURL. An empty baseURL selects the
// public service.
func NewWorldTimeAPI(baseURL string, opts ...WorldTimeAPIOption) *WorldTimeAPI {
	if baseURL == "" {
		baseURL = DefaultTimeAPIURL
	}
	w := &WorldTimeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.client == nil {
		w.client = &http.Client{Timeout: w.timeout}
	}
	return w
}

type zoneTime struct {
	Datetime string `json:"datetime"`
	Timezone string `json:"timezone"`
}

// Now returns the current time for city and the zone it was resolved to.
// city may be a zone id or a city name such as "Berlin" or "Buenos Aires".
func (w *WorldTimeAPI) Now(ctx context.Context, city string) (time.Time, string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var zones []string
	if err := w.getJSON(ctx, "/api/timezone", &zones); err != nil {
		return time.Time{}, "", fmt.Errorf("list zones: %w", err)
	}
	zone, ok := matchZone(zones, city)
	if !ok {
		return time.Time{}, "", fmt.Errorf("%w for %q", ErrZoneNotFound, city)
	}

	var zt zoneTime
	if err := w.getJSON(ctx, "/api/timezone/"+escapeZone(zone), &zt); err != nil {
		return time.Time{}, "", fmt.Errorf("fetch time for %s: %w", zone, err)
	}
	t, err := time.Parse(time.RFC3339Nano, zt.Datetime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse datetime %q: %w", zt.Datetime, err)
	}
	if zt.Timezone != "" {
		zone = zt.Timezone
	}
	return t, zone, nil
}

func (w *WorldTimeAPI) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// matchZone prefers an exact zone id and then a zone whose last segment
// names the city, e.g. "Buenos Aires" -> "America/Argentina/Buenos_Aires".
func matchZone(zones []string, city string) (string, bool) {
	city = strings.TrimSpace(city)
	for _, z := range zones {
		if strings.EqualFold(z, city) {
			return z, true
		}
	}
	want := strings.ToLower(strings.ReplaceAll(city, "_", " "))
	for _, z := range zones {
		last := z[strings.LastIndex(z, "/")+1:]
		if strings.ToLower(strings.ReplaceAll(last, "_", " ")) == want {
			return z, true
		}
	}
	return "", false
}

func escapeZone(zone string) string {
	parts := strings.Split(zone, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
