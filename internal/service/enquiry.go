package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

type EnquiryService struct {
	notifier Notifier
	clock    func() time.Time
}

type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Forwarded  bool      `json:"forwarded"`
}

// Submit validates a contact enquiry and forwards it when a notifier is
// configured. A failed forward is logged; the enquiry is still accepted.
func (s *EnquiryService) Submit(ctx context.Context, e domain.Enquiry) (Receipt, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Company = strings.TrimSpace(e.Company)
	e.Message = strings.TrimSpace(e.Message)
	if err := validate.Struct(e); err != nil {
		return Receipt{}, err
	}

	r := Receipt{ID: uuid.NewString(), ReceivedAt: s.clock()}
	if s.notifier != nil {
		if err := s.notifier.SendEnquiry(ctx, r.ID, e); err != nil {
			log.Error().Err(err).Str("enquiry_id", r.ID).Msg("enquiry forward failed")
		} else {
			r.Forwarded = true
		}
	}
	log.Info().Str("enquiry_id", r.ID).Bool("forwarded", r.Forwarded).Msg("enquiry received")
	return r, nil
}
