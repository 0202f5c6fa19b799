package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// отчёт идёт в stdout, логи только предупреждения
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	exitCode := cli.NewApp().Run(ctx, os.Args[1:])
	cancel()
	os.Exit(exitCode)
}
