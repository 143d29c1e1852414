package booking

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/showtime/internal/models"
)

// Creator submits bookings. Satisfied by the API client.
type Creator interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest, idempotencyKey string) (*models.CreatedBooking, error)
}

// Submitter runs one submission: BeginSubmit, the API call, then Resolve. It never retries on its own.
type Submitter struct {
	api    Creator
	logger *log.Logger
}

// NewSubmitter creates a Submitter over api. A nil logger discards output.
func NewSubmitter(api Creator, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Submitter{api: api, logger: logger}
}

// Submit books the seats of sel for userID and returns the resolved selection.
//
// When BeginSubmit refuses (empty selection, already in flight) no request is made and its error is returned with
// the unchanged selection. A failed request returns the [Failed] selection along with the error.
func (s *Submitter) Submit(ctx context.Context, sel Selection, userID models.ID) (Selection, error) {
	next, attempt, err := sel.BeginSubmit(userID)
	if err != nil {
		return next, err
	}

	created, err := Send(ctx, s.api, attempt)
	resolved := next.Resolve(created, err)
	s.Report(resolved)
	return resolved, err
}

// Send issues the request of one attempt.
func Send(ctx context.Context, api Creator, attempt Attempt) (*models.CreatedBooking, error) {
	return api.CreateBooking(ctx, attempt.Request, attempt.Key)
}

// Report logs the outcome of a resolved selection.
func (s *Submitter) Report(sel Selection) {
	show := sel.Show()
	switch sel.State() {
	case Confirmed:
		s.logger.Info("booking confirmed", "booking", sel.BookingID(), "show", show.ShowID, "seats", sel.Seats(), "total", sel.Total())
		if sel.PriceMismatch() {
			s.logger.Warn("server total differs from client total",
				"booking", sel.BookingID(), "client", sel.Total(), "server", sel.ServerTotal().Decimal)
		}
	case Failed:
		s.logger.Warn("booking failed", "show", show.ShowID, "seats", sel.Seats(), "reason", sel.Message())
	}
}
