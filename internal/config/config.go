//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads the application configuration from the environment,
// an optional .env file and an optional YAML file of lookup table overrides.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"trpc.group/trpc-go/trpc-agent-go/log"
)

// Code executor kinds.
const (
	ExecutorLocal  = "local"
	ExecutorGemini = "gemini"
)

// ModelConfig configures the OpenAI-compatible chat client.
type ModelConfig struct {
	APIKey     string        `envconfig:"API_KEY"`
	BaseURL    string        `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai/" validate:"required,url"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"60s" validate:"gt=0"`
	MaxRetries int           `envconfig:"MAX_RETRIES" default:"2" validate:"gte=0"`
}

// CalcConfig configures the calculation engine.
type CalcConfig struct {
	Executor    string        `envconfig:"EXECUTOR" default:"local" validate:"oneof=local gemini"`
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3" validate:"gte=1,lte=10"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
	WorkDir     string        `envconfig:"WORK_DIR"`
}

// TimeConfig configures the remote clock fallback.
type TimeConfig struct {
	Remote  bool          `envconfig:"REMOTE" default:"true"`
	APIURL  string        `envconfig:"API_URL" default:"https://worldtimeapi.org" validate:"omitempty,url"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s" validate:"gt=0"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error fatal"`
	Format string `envconfig:"FORMAT" default:"console" validate:"oneof=console json"`
}

// TelemetryConfig configures OTLP export. An empty endpoint disables it.
type TelemetryConfig struct {
	Endpoint    string `envconfig:"ENDPOINT"`
	Protocol    string `envconfig:"PROTOCOL" default:"grpc" validate:"oneof=grpc http"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"my_agent"`
}

// AppConfig is the full configuration.
type AppConfig struct {
	AppName      string `envconfig:"APP_NAME" default:"my_agent" validate:"required"`
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":8000"`
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	RootModel    string `envconfig:"ROOT_MODEL" default:"gemini-2.5-flash" validate:"required"`
	WorkerModel  string `envconfig:"WORKER_MODEL" default:"gemini-2.5-flash-lite" validate:"required"`
	Streaming    bool   `envconfig:"STREAMING" default:"true"`
	TablesFile   string `envconfig:"TABLES_FILE"`

	Model     ModelConfig     `envconfig:"MODEL"`
	Calc      CalcConfig      `envconfig:"CALC"`
	Time      TimeConfig      `envconfig:"TIME"`
	Log       LogConfig       `envconfig:"LOG"`
	Telemetry TelemetryConfig `envconfig:"OTEL"`
}

// APIKey returns MODEL_API_KEY, falling back to GOOGLE_API_KEY.
func (c *AppConfig) APIKey() string {
	if c.Model.APIKey != "" {
		return c.Model.APIKey
	}
	return c.GoogleAPIKey
}

// Validate checks value ranges and enumerations.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads envFile (or ./.env when empty) if it exists, then the process
// environment. Variables already set in the environment win over the file.
func Load(envFile string) (*AppConfig, error) {
	var err error
	if envFile != "" {
		err = godotenv.Load(envFile)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Debugf("no .env file loaded (%v), using the process environment", err)
	} else {
		log.Infof("environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Infof("config loaded: app=%s root_model=%s worker_model=%s base_url=%s api_key=%s "+
		"executor=%s max_attempts=%d time_api=%s tables=%q otel=%q",
		cfg.AppName, cfg.RootModel, cfg.WorkerModel, cfg.Model.BaseURL, MaskAPIKey(cfg.APIKey()),
		cfg.Calc.Executor, cfg.Calc.MaxAttempts, cfg.Time.APIURL, cfg.TablesFile, cfg.Telemetry.Endpoint)
	return &cfg, nil
}

// MaskAPIKey keeps only enough of a key to tell keys apart in logs.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
