//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Command multitool runs the time and currency assistant as a terminal chat,
// as an ADK-web compatible debug server or as a deterministic router.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"trpc.group/trpc-go/trpc-agent-go/log"

	"github.com/NilangJotaniya/My-adk-agent/internal/app"
	"github.com/NilangJotaniya/My-adk-agent/internal/chat"
	"github.com/NilangJotaniya/My-adk-agent/internal/config"
	"github.com/NilangJotaniya/My-adk-agent/internal/logging"
	"github.com/NilangJotaniya/My-adk-agent/internal/telemetry"
	"github.com/NilangJotaniya/My-adk-agent/internal/web"
)

const (
	modeChat   = "chat"
	modeWeb    = "web"
	modeRouter = "router"
)

func main() {
	mode := flag.String("mode", modeChat, "Run mode: chat, web or router.")
	envFile := flag.String("env", "", "Path of a .env file (default ./.env).")
	addr := flag.String("addr", "", "Listen address for web mode (overrides LISTEN_ADDR).")
	userID := flag.String("user", "user", "User id for chat sessions.")
	showTools := flag.Bool("tools", true, "Print tool calls in chat mode.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	flush := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer flush()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:    cfg.Telemetry.Endpoint,
		Protocol:    cfg.Telemetry.Protocol,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warnf("telemetry shutdown: %v", err)
		}
	}()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	switch *mode {
	case modeChat:
		r := a.NewRunner()
		defer r.Close()
		err = chat.New(r, *userID,
			chat.WithStreaming(cfg.Streaming),
			chat.WithToolTrace(*showTools),
		).Run(ctx)
	case modeWeb:
		listen := cfg.ListenAddr
		if *addr != "" {
			listen = *addr
		}
		err = web.Serve(ctx, listen, web.Handler(a.Name, a.Root))
	case modeRouter:
		err = chat.NewDirect(a.Router).Run(ctx)
	default:
		log.Fatalf("unknown mode %q (want %s, %s or %s)", *mode, modeChat, modeWeb, modeRouter)
	}
	if err != nil {
		log.Errorf("%s mode: %v", *mode, err)
	}
}
