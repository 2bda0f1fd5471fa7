package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/deskremote/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	serverURL := flag.String("url", "", "server address, e.g. 192.168.1.20 or http://host:5001")
	poll := flag.Duration("poll", 0, "telemetry refresh interval (optional, defaults to 2s)")
	forget := flag.Bool("forget", false, "forget the saved server address")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		ServerURL:  *serverURL,
		Forget:     *forget,
	}
	if *poll > 0 {
		opts.PollEvery = *poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "deskremote: %v\n", err)
		return 1
	}
	return 0
}
