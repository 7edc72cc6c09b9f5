package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"finanzas/internal/cli"
	"finanzas/internal/log"
)

func main() {
	cli.LoadEnvFile()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	// Logs go to stderr so command output stays pipeable.
	bootstrap := cli.SetupLogger(os.Getenv("LOG_LEVEL"), os.Stderr)
	cfg := cli.LoadAndValidateConfig(bootstrap)
	logger := cli.SetupLogger(cfg.LogLevel, os.Stderr).WithComponent(log.ComponentCLI)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err)
		os.Exit(1)
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	a := &app{
		ledger:      ledger.LedgerService,
		out:         os.Stdout,
		in:          os.Stdin,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		debounce:    cfg.SearchDebounce,
	}

	os.Exit(exitCode(a.run(ctx, os.Args[1], os.Args[2:]), ledger.Close))
}

// exitCode reports err and releases the backend before the process exits.
func exitCode(err error, release func()) int {
	release()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		return 2
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
}
