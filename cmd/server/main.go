package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mines.Log = log

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Fatal("exit reason: ", err)
	}
}
