package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

type doneToken struct {
	mqtt.Token
	err error
}

func (t doneToken) Wait() bool   { return true }
func (t doneToken) Error() error { return t.err }

type published struct {
	topic   string
	payload []byte
}

// fakeClient records publishes; unused mqtt.Client methods panic.
type fakeClient struct {
	mqtt.Client
	mu     sync.Mutex
	out    []published
	sent   chan struct{}
	subs   map[string]mqtt.MessageHandler
	pubErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{sent: make(chan struct{}, 16), subs: map[string]mqtt.MessageHandler{}}
}

func (f *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	f.mu.Lock()
	f.out = append(f.out, published{topic: topic, payload: payload.([]byte)})
	f.mu.Unlock()
	select {
	case f.sent <- struct{}{}:
	default:
	}
	return doneToken{err: f.pubErr}
}

func (f *fakeClient) Subscribe(topic string, _ byte, cb mqtt.MessageHandler) mqtt.Token {
	f.subs[topic] = cb
	return doneToken{}
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m fakeMessage) Topic() string   { return m.topic }
func (m fakeMessage) Payload() []byte { return m.payload }

type midNoise struct{}

func (midNoise) Float64() float64 { return 0.5 }

func newServices() (*service.Services, *store.Controls) {
	controls := store.New(store.Defaults())
	synth := &metrics.Synthesiser{
		Noise: midNoise{},
		Clock: func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local) },
	}
	return service.New(controls, synth, nil), controls
}

func TestPublishFrame(t *testing.T) {
	svcs, _ := newServices()
	fc := newFakeClient()
	p := NewFramePublisher(fc, "wattr/frames", time.Second, svcs)

	if err := p.Publish(); err != nil {
		t.Fatal(err)
	}
	if err := p.Publish(); err != nil {
		t.Fatal(err)
	}
	if len(fc.out) != 2 || fc.out[0].topic != "wattr/frames" {
		t.Fatalf("published %+v", fc.out)
	}
	var f Frame
	if err := json.Unmarshal(fc.out[1].payload, &f); err != nil {
		t.Fatal(err)
	}
	if f.Sequence != 2 || f.Controls.Workload != 65 || len(f.Snapshot.TimeSeries) != 7 {
		t.Errorf("frame seq=%d workload=%v series=%d", f.Sequence, f.Controls.Workload, len(f.Snapshot.TimeSeries))
	}
}

func TestPublishError(t *testing.T) {
	svcs, _ := newServices()
	fc := newFakeClient()
	fc.pubErr = errors.New("not connected")
	p := NewFramePublisher(fc, "t", time.Second, svcs)
	if err := p.Publish(); !errors.Is(err, fc.pubErr) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestPublisherRepublishesOnControlChange(t *testing.T) {
	svcs, controls := newServices()
	fc := newFakeClient()
	p := NewFramePublisher(fc, "t", time.Hour, svcs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	wait := func() {
		t.Helper()
		select {
		case <-fc.sent:
		case <-time.After(time.Second):
			t.Fatal("no frame published")
		}
	}
	wait()
	// The subscription is taken before the first publish.
	controls.SetWorkload(99)
	wait()

	cancel()
	<-done

	fc.mu.Lock()
	defer fc.mu.Unlock()
	var f Frame
	if err := json.Unmarshal(fc.out[len(fc.out)-1].payload, &f); err != nil {
		t.Fatal(err)
	}
	if f.Controls.Workload != 99 {
		t.Errorf("last frame workload %v", f.Controls.Workload)
	}
}

func TestControlListener(t *testing.T) {
	svcs, controls := newServices()
	l := NewControlListener(svcs.Controls)
	fc := newFakeClient()
	if err := l.Subscribe(fc, "wattr/controls"); err != nil {
		t.Fatal(err)
	}

	cb := fc.subs["wattr/controls"]
	cb(fc, fakeMessage{topic: "wattr/controls", payload: []byte(`{"workload":120,"optimisation":false}`)})
	if st := controls.Snapshot(); st.Workload != 120 || st.Optimisation {
		t.Fatalf("state %+v", st)
	}

	cb(fc, fakeMessage{topic: "wattr/controls", payload: []byte(`{"workload":900}`)})
	cb(fc, fakeMessage{topic: "wattr/controls", payload: []byte(`not json`)})
	if st := controls.Snapshot(); st.Workload != 120 {
		t.Fatalf("rejected payloads changed state: %+v", st)
	}
}

func TestControlListenerApplyErrors(t *testing.T) {
	svcs, _ := newServices()
	l := NewControlListener(svcs.Controls)
	if _, err := l.Apply([]byte(`{"water_cost_index":-1}`)); err == nil {
		t.Error("negative cost index accepted")
	}
	if _, err := l.Apply([]byte(`{"scenario":"storm"}`)); err == nil {
		t.Error("unknown scenario accepted")
	}
	if _, err := l.Apply([]byte(`{"ai_burst":true}`)); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
}
