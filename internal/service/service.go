package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

var validate = validator.New()

// Notifier delivers out-of-band notifications. *cloud.SNSClient satisfies it.
type Notifier interface {
	SendEnquiry(ctx context.Context, id string, e domain.Enquiry) error
	SendOverloadAlert(ctx context.Context, workload float64, at time.Time) error
}

type Services struct {
	Controls  *ControlService
	Dashboard *DashboardService
	Facility  *FacilityService
	Enquiries *EnquiryService
	Overload  *OverloadWatcher
}

// New wires the services around one controls store. notifier may be nil.
func New(controls *store.Controls, synth *metrics.Synthesiser, notifier Notifier) *Services {
	return &Services{
		Controls:  &ControlService{controls: controls},
		Dashboard: &DashboardService{controls: controls, synth: synth},
		Facility:  &FacilityService{controls: controls, clock: synth.Clock},
		Enquiries: &EnquiryService{notifier: notifier, clock: synth.Clock},
		Overload:  &OverloadWatcher{controls: controls, notifier: notifier, clock: synth.Clock},
	}
}

// Overrides replace stored controls for a single read. nil means "use the store".
type Overrides struct {
	Workload     *float64 `validate:"omitempty,gte=0,lte=150"`
	Optimisation *bool
}

func (o Overrides) Validate() error { return validate.Struct(o) }

func (o Overrides) apply(s store.State) store.State {
	if o.Workload != nil {
		s.Workload = *o.Workload
	}
	if o.Optimisation != nil {
		s.Optimisation = *o.Optimisation
	}
	return s
}

// ControlService is the single write path into the store for HTTP and MQTT.
type ControlService struct {
	controls *store.Controls
}

func (s *ControlService) Get() store.State { return s.controls.Snapshot() }

func (s *ControlService) Update(u store.Update) (store.State, error) {
	if err := validate.Struct(u); err != nil {
		return s.controls.Snapshot(), err
	}
	return s.controls.Apply(u)
}

func (s *ControlService) ToggleRack(id string) store.State { return s.controls.ToggleRack(id) }

func (s *ControlService) Subscribe(buffer int) (<-chan store.State, func()) {
	return s.controls.Subscribe(buffer)
}
