package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

// OverloadWatcher notifies once each time the workload rises above
// metrics.OverloadThreshold. It re-arms when the workload drops back.
type OverloadWatcher struct {
	controls *store.Controls
	notifier Notifier
	clock    func() time.Time
}

// Start subscribes to the store and watches it until ctx is done. It is a
// no-op without a notifier.
func (w *OverloadWatcher) Start(ctx context.Context) {
	if w.notifier == nil {
		return
	}
	updates, cancel := w.controls.Subscribe(8)
	over := w.controls.Snapshot().Workload > metrics.OverloadThreshold

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case st := <-updates:
				now := st.Workload > metrics.OverloadThreshold
				if now && !over {
					if err := w.notifier.SendOverloadAlert(ctx, st.Workload, w.clock()); err != nil {
						log.Error().Err(err).Float64("workload", st.Workload).Msg("overload alert failed")
					}
				}
				over = now
			}
		}
	}()
}
