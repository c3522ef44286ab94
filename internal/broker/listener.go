package broker

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

// ControlListener applies partial control updates received over MQTT.
type ControlListener struct {
	controls *service.ControlService
}

func NewControlListener(controls *service.ControlService) *ControlListener {
	return &ControlListener{controls: controls}
}

func (l *ControlListener) Apply(payload []byte) (store.State, error) {
	var u store.Update
	if err := json.Unmarshal(payload, &u); err != nil {
		return store.State{}, fmt.Errorf("decode control update: %w", err)
	}
	return l.controls.Update(u)
}

func (l *ControlListener) Handle(_ mqtt.Client, msg mqtt.Message) {
	st, err := l.Apply(msg.Payload())
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("control update rejected")
		return
	}
	log.Info().Float64("workload", st.Workload).Bool("optimisation", st.Optimisation).Msg("controls updated over mqtt")
}

func (l *ControlListener) Subscribe(client mqtt.Client, topic string) error {
	if token := client.Subscribe(topic, 1, l.Handle); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Info().Str("topic", topic).Msg("listening for control updates")
	return nil
}
