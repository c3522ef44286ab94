package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

// Frame is one published dashboard refresh.
type Frame struct {
	Sequence uint64          `json:"seq"`
	At       time.Time       `json:"at"`
	Controls store.State     `json:"controls"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

// FramePublisher publishes a frame every interval and on every control
// change.
type FramePublisher struct {
	client   mqtt.Client
	topic    string
	interval time.Duration
	svcs     *service.Services
	clock    func() time.Time
	seq      uint64
}

func NewFramePublisher(client mqtt.Client, topic string, interval time.Duration, svcs *service.Services) *FramePublisher {
	return &FramePublisher{
		client:   client,
		topic:    topic,
		interval: interval,
		svcs:     svcs,
		clock:    time.Now,
	}
}

func (p *FramePublisher) frame() Frame {
	p.seq++
	st := p.svcs.Controls.Get()
	return Frame{
		Sequence: p.seq,
		At:       p.clock(),
		Controls: st,
		Snapshot: p.svcs.Dashboard.Snapshot(service.Overrides{}),
	}
}

func (p *FramePublisher) Publish() error {
	f := p.frame()
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish frame %d: %w", f.Sequence, token.Error())
	}
	log.Debug().Uint64("seq", f.Sequence).Str("topic", p.topic).Msg("frame published")
	return nil
}

// Start runs until ctx is cancelled.
func (p *FramePublisher) Start(ctx context.Context) {
	changes, cancel := p.svcs.Controls.Subscribe(4)
	defer cancel()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Str("topic", p.topic).Dur("interval", p.interval).Msg("frame publisher started")
	for {
		if err := p.Publish(); err != nil {
			log.Error().Err(err).Msg("frame publish failed")
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("frame publisher stopped")
			return
		case <-ticker.C:
		case <-changes:
		}
	}
}
