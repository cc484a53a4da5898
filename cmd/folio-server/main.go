package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arjunmehra/folio/internal/app"
	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/server"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to folio.toml (defaults to FOLIO_CONFIG, then the binary directory)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("folio-server %s (build %s, commit %s)\n",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.StartAlertScheduler(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to start alert scheduler")
		os.Exit(1)
	}

	srv := server.NewServer(a)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Logger.Error().Err(err).Msg("Server error")
		os.Exit(1)
	case sig := <-sigCh:
		a.Logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}
