package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/config"
	"github.com/wattr-labs/wattr-demo/internal/web"
	"github.com/wattr-labs/wattr-demo/internal/web/api"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := web.New(api.New(config.APIURL()), web.Options{
		RefreshInterval: config.RefreshInterval(),
		SceneFPS:        config.SceneFPS(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}
	s.Start(ctx)

	srv := &http.Server{Addr: config.WebAddr(), Handler: s, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", srv.Addr).Str("api", config.APIURL()).Msg("web listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exit")
	}
}
