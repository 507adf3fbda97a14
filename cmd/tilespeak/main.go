// Copyright 2026 The TileSpeak Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the tilespeak suggestion engine as a msgpack IPC server
or as an interactive CLI.

TileSpeak generates next-word and sentence suggestions for AAC boards,
blending a sentence template bank with patterns learned from the user's own
utterances, and adapts its ranking from accept/ignore feedback.

# Usage

Start the IPC server with default settings:

	tilespeak

Use a custom config and database, with debug logging:

	tilespeak -config /path/to/config.toml -db /path/to/patterns.db -d

Run in CLI mode for interactive testing:

	tilespeak -c -limit 10

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run:

	[engine]
	max_suggestions = 8
	min_confidence = 0.1

	[store]
	scope = "default"
	retention_days = 180

	[server]
	max_limit = 32
	reload_interval = 100

Server mode re-reads the file periodically, so limits can change without a
restart.

# IPC Protocol

The server speaks msgpack over stdin/stdout. See pkg/server for the full
command set. A completion exchange:

	{"id": "req1", "cmd": "complete", "w": ["i", "want"], "l": 8}
	{"id": "req1", "s": [{"text": "water", ...}], "c": 1, "t": 2}

Stdout carries only protocol frames; all logging goes to stderr.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tilespeak/tilespeak/internal/cache"
	"github.com/tilespeak/tilespeak/internal/cli"
	"github.com/tilespeak/tilespeak/pkg/config"
	"github.com/tilespeak/tilespeak/pkg/patterns"
	"github.com/tilespeak/tilespeak/pkg/server"
	"github.com/tilespeak/tilespeak/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "tilespeak"
	gh      = "https://github.com/tilespeak/tilespeak"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(engine *suggest.Engine) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		if engine != nil {
			if err := engine.Close(); err != nil {
				log.Errorf("Shutdown: %v", err)
			}
		}
		os.Exit(0)
	}()
}

// main wires the engine from config and hands control to the server or
// the CLI loop. It holds no engine logic of its own.
func main() {
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	dbPath := flag.String("db", "", "Path to the pattern database (default: next to the config file)")
	scope := flag.String("scope", "", "Identity scope to load (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.Engine.MaxSuggestions, "Number of suggestions to return in CLI mode")
	noStore := flag.Bool("no-store", false, "Disable persistence, run a throwaway session")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// loggers write to stderr, stdout belongs to the IPC protocol
	log.SetOutput(os.Stderr)
	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activePath)

	storePath := *dbPath
	if storePath == "" {
		storePath = cfg.Store.Path
	}
	if storePath == "" {
		storePath = config.DefaultStorePath()
	}
	storeScope := *scope
	if storeScope == "" {
		storeScope = cfg.Store.Scope
	}

	var store *patterns.Store
	if *noStore || cfg.Store.Disabled {
		log.Debug("Persistence disabled, running ephemeral session")
		store = patterns.Disabled(storeScope)
	} else {
		log.Debugf("Opening pattern store: %s (scope %s)", storePath, storeScope)
		store = patterns.NewStore(storePath, storeScope)
	}

	fastCache := cache.New(filepath.Join(filepath.Dir(storePath), "cache.bin"))

	engine := suggest.NewEngine(cfg, store, fastCache)
	sigHandler(engine)
	if err := engine.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load engine state: %v", err)
	}
	if err := engine.Cleanup(); err != nil {
		log.Warnf("Retention sweep failed: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine, *limit, cfg.Server.MaxUtteranceLen, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(storePath, storeScope)

	srv := server.NewServer(engine, cfg, *configPath)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := engine.Close(); err != nil {
		log.Errorf("Shutdown: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ TileSpeak ] Predictive suggestions for AAC boards")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(storePath, scope string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("store: ( %s )", storePath)
	log.Infof("scope: ( %s )", scope)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
