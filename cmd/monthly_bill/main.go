package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsvetanka/ERP-Billing/internal/application/billing"
	"github.com/tsvetanka/ERP-Billing/internal/interfaces/cli"
)

var version = "dev"

// Códigos de salida: 1 = ejecución abortada, 2 = algún cliente no se pudo facturar.
const (
	exitAborted = 1
	exitPartial = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(version).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "monthly-bill: %v\n", err)
		stop()
		if errors.Is(err, billing.ErrPartialRun) {
			os.Exit(exitPartial)
		}
		os.Exit(exitAborted)
	}
}
