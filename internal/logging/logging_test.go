//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-agent-go/log"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Format: FormatJSON, Output: &buf})
	logger.Debugf("hidden %d", 1)
	logger.Infof("rate %s", "USD/EUR")
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "rate USD/EUR", entry["message"])
	assert.Equal(t, "INFO", entry["lvl"])
}

func TestNew_ConsoleUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "chatty", Output: &buf})
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_ReplacesDefault(t *testing.T) {
	prev := log.Default
	t.Cleanup(func() { log.Default = prev })
	var buf bytes.Buffer
	flush := Setup(Options{Level: "debug", Format: FormatJSON, Output: &buf})
	log.Default.Debugf("from default")
	flush()
	assert.Contains(t, buf.String(), "from default")
}

func TestSetup_LevelAppliesToDefault(t *testing.T) {
	prev := log.Default
	t.Cleanup(func() { log.Default = prev })
	var buf bytes.Buffer
	flush := Setup(Options{Level: "warn", Format: FormatJSON, Output: &buf})
	log.Default.Infof("quiet")
	log.Default.Warnf("loud")
	flush()
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
