package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/storefront/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/storefront/config.toml)")
	prefsPath := flag.String("prefs", "", "prefs file path (optional, defaults to ~/.config/storefront/prefs.toml)")
	pollSeconds := flag.Int("poll", 0, "remote poll interval in seconds for the rest driver (optional)")
	dataDir := flag.String("data", "", "local data directory (optional, overrides data_dir)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		DataDir:    *dataDir,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		return 1
	}
	return 0
}
