// Command simulator publishes dashboard frames over MQTT without the API,
// drifting the workload so kiosk screens stay lively. Control updates sent to
// the controls topic are applied as usual.
package main

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/broker"
	"github.com/wattr-labs/wattr-demo/internal/config"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
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

	client, err := broker.Connect(broker.ClientConfig{
		Broker:   config.MQTTBroker(),
		ClientID: config.MQTTClientID() + "-sim",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	controls := store.New(store.Defaults())
	svcs := service.New(controls, metrics.NewSynthesiser(), nil)

	if err := broker.NewControlListener(svcs.Controls).Subscribe(client, config.MQTTControlsTopic()); err != nil {
		log.Fatal().Err(err).Msg("subscribe failed")
	}
	go broker.NewFramePublisher(client, config.MQTTFramesTopic(), config.RefreshInterval(), svcs).Start(ctx)

	ticker := time.NewTicker(4 * config.RefreshInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("simulation done")
			return
		case <-ticker.C:
			w := controls.Snapshot().Workload + (rand.Float64()-0.5)*20
			controls.SetWorkload(mathx.Round(mathx.Clamp(w, 30, 140)))
		}
	}
}
