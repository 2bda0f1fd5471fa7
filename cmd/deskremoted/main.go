package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/deskremote/internal/devserver"
	"github.com/five82/deskremote/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", devserver.DefaultAddr, "listen address")
	allowPower := flag.Bool("allow-power", false, "execute sleep/restart/shutdown instead of logging them")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, closer, err := logging.New(logging.Config{Level: *logLevel, Console: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "deskremoted: %v\n", err)
		return 1
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := devserver.New(devserver.Options{
		Sensors: devserver.SystemSensors{},
		Power:   devserver.NewPower(*allowPower, logger),
		Logger:  logger,
	})
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return 1
	}
	return 0
}
