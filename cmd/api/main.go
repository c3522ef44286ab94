package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/wattr-labs/wattr-demo/internal/broker"
	"github.com/wattr-labs/wattr-demo/internal/cloud"
	"github.com/wattr-labs/wattr-demo/internal/config"
	httpHandlers "github.com/wattr-labs/wattr-demo/internal/http"
	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notifier service.Notifier
	if config.UseCloudServices() {
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client failed")
		}
		notifier = sns
		log.Info().Str("region", config.AWSRegion()).Msg("cloud notifications enabled")
	}

	controls := store.New(store.Defaults())
	svcs := service.New(controls, metrics.NewSynthesiser(), notifier)
	svcs.Overload.Start(ctx)

	if config.MQTTEnabled() {
		client, err := broker.Connect(broker.ClientConfig{Broker: config.MQTTBroker(), ClientID: config.MQTTClientID()})
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		defer client.Disconnect(250)

		if err := broker.NewControlListener(svcs.Controls).Subscribe(client, config.MQTTControlsTopic()); err != nil {
			log.Fatal().Err(err).Msg("subscribe failed")
		}
		pub := broker.NewFramePublisher(client, config.MQTTFramesTopic(), config.RefreshInterval(), svcs)
		go pub.Start(ctx)
	}

	limiter := httpHandlers.NewRateLimiter(rate.Every(time.Minute/time.Duration(config.ContactRatePerMin())), config.ContactBurst())
	go limiter.Sweep(10 * time.Minute)
	defer limiter.Stop()

	app := fiber.New(httpHandlers.AppConfig(config.TrustedProxies()))
	httpHandlers.Register(app, svcs, limiter)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
