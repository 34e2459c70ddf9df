package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/jot/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	baseURL := flag.String("url", "", "todo service base URL (optional, overrides config)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: jot [-config path] [-url base] [command]  (jot help for commands)")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code, err := app.Run(ctx, app.Options{
		ConfigPath: *configPath,
		BaseURL:    *baseURL,
		Args:       flag.Args(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "jot: %v\n", err)
		return 1
	}
	return code
}
