package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/store"
	"github.com/wattr-labs/wattr-demo/internal/web/api"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	controls, _ := s.api.Controls(ctx)
	overview, _ := s.api.Overview(ctx)
	racks, _ := s.api.Racks(ctx)

	s.render(w, http.StatusOK, "home.html", map[string]any{
		"Title":     "Wattr | Data-centre optimisation",
		"Controls":  controls,
		"Overview":  overview,
		"RacksJSON": toJSON(racks),
		"Error":     r.URL.Query().Get("error"),
		"APIStatus": s.status(ctx),
	})
}

// handleControls applies the home-page control form. Only fields present in
// the form are changed.
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?error=bad+form", http.StatusSeeOther)
		return
	}
	u, err := controlsFromForm(r.PostForm)
	if err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	if _, err := s.api.UpdateControls(ctx, u); err != nil {
		log.Warn().Err(err).Msg("control update rejected")
		http.Redirect(w, r, "/?error=update+rejected", http.StatusSeeOther)
		return
	}

	s.refreshScene(ctx)
	if stats, err := s.getStats(ctx); err == nil {
		s.publish(message{Type: "update", Data: stats})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type formValues interface {
	Has(key string) bool
	Get(key string) string
}

func controlsFromForm(f formValues) (store.Update, error) {
	var u store.Update
	floats := []struct {
		key string
		dst **float64
	}{
		{"workload", &u.Workload},
		{"ambient_temp", &u.AmbientTemp},
		{"water_cost_index", &u.WaterCostIndex},
	}
	for _, fl := range floats {
		if !f.Has(fl.key) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f.Get(fl.key)), 64)
		if err != nil {
			return u, errors.New("invalid " + fl.key)
		}
		*fl.dst = &v
	}
	bools := []struct {
		key string
		dst **bool
	}{
		{"optimisation", &u.Optimisation},
		{"ai_burst", &u.AIBurst},
	}
	for _, b := range bools {
		if !f.Has(b.key) {
			continue
		}
		v, err := strconv.ParseBool(f.Get(b.key))
		if err != nil {
			return u, errors.New("invalid " + b.key)
		}
		*b.dst = &v
	}
	if f.Has("scenario") {
		sc := f.Get("scenario")
		u.Scenario = &sc
	}
	return u, nil
}

func (s *Server) handleTechnology(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline, err := s.api.Pipeline(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("pipeline unavailable")
	}
	s.render(w, http.StatusOK, "technology.html", map[string]any{
		"Title":     "Technology | Wattr",
		"Pipeline":  pipeline,
		"APIStatus": s.status(ctx),
	})
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "contact.html", map[string]any{
		"Title": "Contact | Wattr",
	})
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	e := domain.Enquiry{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Company: r.FormValue("company"),
		Message: r.FormValue("message"),
	}
	data := map[string]any{"Title": "Contact | Wattr", "Enquiry": e}

	receipt, err := s.api.SubmitEnquiry(ctx, e, clientIP(r))
	if err != nil {
		status := http.StatusBadGateway
		data["Error"] = "Something went wrong. Please try again later."
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusBadRequest:
				status = http.StatusBadRequest
				data["Error"] = "Please check the highlighted fields."
				data["Fields"] = apiErr.Fields
			case http.StatusTooManyRequests:
				status = http.StatusTooManyRequests
				data["Error"] = "Too many enquiries. Please wait a minute and try again."
			}
		}
		s.render(w, status, "contact.html", data)
		return
	}

	data["Receipt"] = receipt
	s.render(w, http.StatusOK, "contact.html", data)
}

func (s *Server) handleNOC(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	snap, err := s.api.Dashboard(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("dashboard unavailable")
	}
	plant, _ := s.api.Plant(ctx)

	s.render(w, http.StatusOK, "noc.html", map[string]any{
		"Title":     "Operations Centre | Wattr",
		"Snapshot":  snap,
		"Plant":     plant,
		"APIStatus": s.status(ctx),
	})
}
