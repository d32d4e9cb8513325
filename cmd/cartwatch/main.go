// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// cartwatch is a terminal dashboard for a smart shopping cart backend.
// It polls the backend for authoritative cart state on a fixed
// interval, simulates RFID tag scans, and drives clear and checkout —
// the same REST surface a cart-mounted display would use, operable
// from any terminal.
//
// Configuration is layered: built-in defaults, then an optional YAML
// file (--config or CARTWATCH_CONFIG), then environment variables
// (CARTWATCH_API_URL, CARTWATCH_CART_ID, with .env support), then
// flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/cartwatch/cartwatch/lib/cartclient"
	"github.com/cartwatch/cartwatch/lib/cartui"
	"github.com/cartwatch/cartwatch/lib/config"
	"github.com/cartwatch/cartwatch/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var baseURL string
	var cartID string
	var pollInterval time.Duration
	var logOutput string

	flagSet := pflag.NewFlagSet("cartwatch", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $CARTWATCH_CONFIG if set)")
	flagSet.StringVar(&baseURL, "base-url", "", "cart backend base URL (overrides config)")
	flagSet.StringVar(&cartID, "cart", "", "cart identifier to observe (overrides config)")
	flagSet.DurationVar(&pollInterval, "poll-interval", 0, "cart refresh interval (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("cartwatch")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Flags win over file and environment.
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cartID != "" {
		cfg.CartID = cartID
	}
	if pollInterval > 0 {
		cfg.PollInterval = pollInterval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cartwatch needs an interactive terminal (stdout is not a TTY)")
	}

	// The alt-screen display owns the terminal, so background log
	// records go to a file or nowhere — never stderr.
	logger := slog.New(slog.DiscardHandler)
	if logOutput != "" {
		fileHandler, fileCloser, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer fileCloser()
		logger = slog.New(fileHandler)
	}

	client, err := cartclient.NewClient(cartclient.Config{
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	poller, err := cartclient.NewPoller(cartclient.PollerConfig{
		Client:   client,
		CartID:   cfg.CartID,
		Interval: cfg.PollInterval,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	pollContext, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	polls := poller.Run(pollContext)

	model := cartui.NewModel(cartui.Config{
		Backend: client,
		CartID:  cfg.CartID,
		Polls:   polls,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cartwatch — terminal dashboard for a smart shopping cart backend.

Polls the backend every poll interval for authoritative cart state and
shows it live, with a connectivity badge that drops to OFFLINE when the
backend stops answering. Scans are simulated by typing a tag ID (s) or
with the numbered quick-scan shortcuts; c clears the cart and x checks
out, opening the receipt.

Configuration layering, lowest to highest precedence: built-in
defaults, YAML config file, environment (.env, CARTWATCH_API_URL,
CARTWATCH_CART_ID), flags.

Usage:
  cartwatch [flags]

Examples:
  # Connect to a local backend with the default cart
  cartwatch

  # Watch a specific cart on a remote backend
  cartwatch --base-url http://cart-backend:8000 --cart CART-042

  # Slow the refresh and capture logs for debugging
  cartwatch --poll-interval 5s --log-output /tmp/cartwatch.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}
