package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/facility"
	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

type midNoise struct{}

func (midNoise) Float64() float64 { return 0.5 }

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

func newTestServices(n Notifier) (*Services, *store.Controls) {
	controls := store.New(store.Defaults())
	synth := &metrics.Synthesiser{Noise: midNoise{}, Clock: func() time.Time { return testNow }}
	return New(controls, synth, n), controls
}

type recordingNotifier struct {
	mu        sync.Mutex
	enquiries []string
	overloads chan float64
	err       error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{overloads: make(chan float64, 8)}
}

func (r *recordingNotifier) SendEnquiry(_ context.Context, id string, _ domain.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enquiries = append(r.enquiries, id)
	return r.err
}

func (r *recordingNotifier) SendOverloadAlert(_ context.Context, workload float64, _ time.Time) error {
	r.overloads <- workload
	return r.err
}

func ptr[T any](v T) *T { return &v }

func TestOverridesDoNotMutateStore(t *testing.T) {
	svcs, controls := newTestServices(nil)
	snap := svcs.Dashboard.Snapshot(Overrides{Workload: ptr(140.0), Optimisation: ptr(false)})
	if snap.Workload != 140 || snap.Optimisation {
		t.Fatalf("override ignored: %v %v", snap.Workload, snap.Optimisation)
	}
	if got := controls.Snapshot(); got.Workload != 65 || !got.Optimisation {
		t.Fatalf("store mutated: %+v", got)
	}
	if len(snap.Alerts) != 4 || snap.Alerts[0].ID != metrics.AlertOverload {
		t.Errorf("expected overload and offline alerts, got %+v", snap.Alerts)
	}
}

func TestOverridesValidate(t *testing.T) {
	if err := (Overrides{Workload: ptr(151.0)}).Validate(); err == nil {
		t.Error("workload above 150 should fail")
	}
	if err := (Overrides{Workload: ptr(-1.0)}).Validate(); err == nil {
		t.Error("negative workload should fail")
	}
	if err := (Overrides{Workload: ptr(0.0), Optimisation: ptr(false)}).Validate(); err != nil {
		t.Errorf("zero workload is valid: %v", err)
	}
}

func TestControlUpdate(t *testing.T) {
	svcs, _ := newTestServices(nil)
	st, err := svcs.Controls.Update(store.Update{Workload: ptr(90.0), AmbientTemp: ptr(30.0)})
	if err != nil {
		t.Fatal(err)
	}
	if st.Workload != 90 || st.AmbientTemp != 30 {
		t.Errorf("state %+v", st)
	}

	_, err = svcs.Controls.Update(store.Update{AmbientTemp: ptr(50.0)})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svcs.Controls.Get().AmbientTemp != 30 {
		t.Error("invalid update applied")
	}

	_, err = svcs.Controls.Update(store.Update{Scenario: ptr("meltdown")})
	if err == nil {
		t.Error("unknown scenario accepted")
	}
}

func TestGridAndAlertsViews(t *testing.T) {
	svcs, _ := newTestServices(nil)
	grid := svcs.Dashboard.Grid(Overrides{})
	if len(grid.Racks) != metrics.GridRows*metrics.GridColumns {
		t.Fatalf("grid size %d", len(grid.Racks))
	}
	s := grid.Summary
	if s.OK+s.Warn+s.Critical+s.Offline != len(grid.Racks) || s.Offline != 1 {
		t.Errorf("summary %+v", s)
	}

	av := svcs.Dashboard.Alerts(Overrides{})
	if len(av.Alerts) != 2 || len(av.Recommendations) != 2 {
		t.Errorf("alerts view %+v", av)
	}
}

func TestFacilityRacksAndSelect(t *testing.T) {
	svcs, _ := newTestServices(nil)
	view := svcs.Facility.Racks(Overrides{})
	if len(view.Racks) != 105 || view.Workload != 65 {
		t.Fatalf("view: %d racks at %v", len(view.Racks), view.Workload)
	}

	if _, err := svcs.Facility.Select("A-05"); err != nil {
		t.Fatal(err)
	}
	rv, err := svcs.Facility.Rack("A-05", Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if !rv.State.Selected || rv.State.Label != "Rack A5" {
		t.Errorf("rack %+v", rv.State)
	}

	if _, err := svcs.Facility.Select("Z-99"); !errors.Is(err, facility.ErrRackNotFound) {
		t.Errorf("expected ErrRackNotFound, got %v", err)
	}
	if _, err := svcs.Facility.Rack("Z-99", Overrides{}); !errors.Is(err, facility.ErrRackNotFound) {
		t.Errorf("expected ErrRackNotFound, got %v", err)
	}
}

func TestPlantUsesClock(t *testing.T) {
	svcs, _ := newTestServices(nil)
	units := svcs.Facility.Plant()
	if len(units) != 10 {
		t.Fatalf("got %d plant units", len(units))
	}
}

func TestEnquirySubmit(t *testing.T) {
	rn := newRecordingNotifier()
	svcs, _ := newTestServices(rn)

	r, err := svcs.Enquiries.Submit(context.Background(), domain.Enquiry{
		Name:    "  Grace ",
		Email:   "grace@example.com",
		Message: "Please get in touch about a pilot.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == "" || !r.Forwarded || !r.ReceivedAt.Equal(testNow) {
		t.Errorf("receipt %+v", r)
	}
	if len(rn.enquiries) != 1 || rn.enquiries[0] != r.ID {
		t.Errorf("notifier saw %v", rn.enquiries)
	}
}

func TestEnquiryValidation(t *testing.T) {
	svcs, _ := newTestServices(nil)
	_, err := svcs.Enquiries.Submit(context.Background(), domain.Enquiry{
		Name:    "G",
		Email:   "not-an-email",
		Message: "short",
	})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(verrs))
	}
}

func TestEnquiryForwardFailureStillAccepted(t *testing.T) {
	rn := newRecordingNotifier()
	rn.err = errors.New("sns down")
	svcs, _ := newTestServices(rn)
	r, err := svcs.Enquiries.Submit(context.Background(), domain.Enquiry{
		Name: "Linus", Email: "l@example.com", Message: "Hello there, interested.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Forwarded {
		t.Error("failed forward reported as forwarded")
	}
}

func TestOverloadWatcherNotifiesOnTransition(t *testing.T) {
	rn := newRecordingNotifier()
	svcs, controls := newTestServices(rn)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svcs.Overload.Start(ctx)

	expect := func(want float64) {
		t.Helper()
		select {
		case got := <-rn.overloads:
			if got != want {
				t.Errorf("alert for %v, want %v", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("no alert for %v", want)
		}
	}

	controls.SetWorkload(120)
	expect(120)
	controls.SetWorkload(130)
	controls.SetWorkload(80)
	controls.SetWorkload(101)
	expect(101)

	select {
	case got := <-rn.overloads:
		t.Errorf("unexpected extra alert %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOverloadWatcherWithoutNotifier(t *testing.T) {
	svcs, _ := newTestServices(nil)
	svcs.Overload.Start(context.Background())
}
