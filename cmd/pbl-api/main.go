// @title         PBL Assistant API
// @version       0.1.0
// @description   Campus assistant: command classification, replies, notices and the voice bridge
// @BasePath      /api/v1

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"pbl/internal/core/version"
	"pbl/internal/modkit/repokit"
	"pbl/internal/platform/config"
	"pbl/internal/platform/logger"
	phttp "pbl/internal/platform/net/http"
	"pbl/internal/platform/store"

	"pbl/internal/services/api"
	_ "pbl/internal/services/api/docs"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	showVersion := cli.BoolP("version", "v", false, "Print version and exit")
	cli.Parse()

	if *showVersion {
		info := version.Info()
		_, _ = os.Stdout.WriteString(info.Service + " " + info.Version + " (" + info.Commit + ")\n")
		return
	}

	// .env only fills keys the environment does not already set
	envErr := godotenv.Load(*envFile)

	l := logger.Get()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		l.Panic().Err(envErr).Str("file", *envFile).Msg("env file")
	}

	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConf(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads API_PORT / API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(root)

	app, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  root.MayBool("API_SWAGGER", true),
		EnableProfiler: root.MayBool("API_PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(cctx); err != nil {
			l.Error().Err(err).Msg("telemetry flush failed")
		}
	}()

	// voice websockets are hijacked; end them as soon as draining starts
	srv.OnShutdown(app.Voice.Stop)

	l.Info().Str("addr", srv.Addr()).Str("version", version.Info().Version).Msg("pbl-api listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
