package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MSSputnik/RVEZeitmessung/cmd"
	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/logging"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	appCtx, err := runtime.NewContext(settings)
	if err != nil {
		logging.Fatal("failed to initialize application context", "error", err)
	}

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, "zeitnahme", level)
		if err != nil {
			logging.Fatal("failed to open log file", "path", settings.Main.Log.Path, "error", err)
		}
		defer func() {
			if err := closeLogger(); err != nil {
				logging.Error("failed to close log file", "error", err)
			}
		}()
		appCtx.Log = fileLogger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, err := cmd.RootCommand(appCtx)
	if err != nil {
		logging.Fatal("failed to build command tree", "error", err)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
