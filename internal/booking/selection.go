// package booking models one seat-booking attempt as a state machine with pure transitions
package booking

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/shared"
)

// State is the phase of a booking attempt.
type State int

const (
	Idle State = iota
	Selecting
	Submitting
	Confirmed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Submitting:
		return "submitting"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// newKey generates idempotency keys; replaced in tests.
var newKey = shared.GenerateID

// Selection is the state of one booking attempt against one [models.Show].
//
// Transitions never mutate the receiver: each returns the next Selection.
type Selection struct {
	show  models.Show
	price decimal.Decimal
	seats []string
	state State

	message string

	key    string
	keySig string

	bookingID   models.ID
	serverTotal decimal.NullDecimal
	mismatch    bool
}

// New starts an attempt for show. The show's own price wins over fallback when present.
func New(show models.Show, fallback decimal.Decimal) Selection {
	price := fallback
	if show.PricePerSeat.Valid {
		price = show.PricePerSeat.Decimal
	}
	return Selection{show: show, price: price}
}

func (s Selection) State() State { return s.state }
func (s Selection) Show() models.Show { return s.show }
func (s Selection) Price() decimal.Decimal { return s.price }
func (s Selection) Count() int { return len(s.seats) }
func (s Selection) BookingID() models.ID { return s.bookingID }
func (s Selection) PriceMismatch() bool { return s.mismatch }
func (s Selection) Key() string { return s.key }
func (s Selection) Seats() []string { return slices.Clone(s.seats) }
func (s Selection) Has(seat string) bool { return slices.Contains(s.seats, seat) }
func (s Selection) Busy() bool { return s.state == Submitting }
func (s Selection) Done() bool { return s.state == Confirmed }
func (s Selection) ServerTotal() decimal.NullDecimal { return s.serverTotal }

// Message is the error or failure reason to display, if any.
func (s Selection) Message() string { return s.message }

// Total is the number of selected seats times the per-seat price.
func (s Selection) Total() decimal.Decimal {
	return s.price.Mul(decimal.NewFromInt(int64(len(s.seats))))
}

// Toggle flips membership of seat.
//
// Booked seats are rejected with [shared.ErrSeatBooked] and the selection is kept, with the message set. Any other
// toggle clears the previous message. Toggling is refused while a submission is in flight and after confirmation.
func (s Selection) Toggle(seat string) (Selection, error) {
	switch s.state {
	case Submitting:
		return s, shared.ErrBookingInFlight
	case Confirmed:
		return s, shared.ErrBookingComplete
	}

	info, ok := s.show.Seat(seat)
	if !ok {
		return s, shared.ErrUnknownSeat
	}
	if info.Status == models.SeatBooked {
		s.message = shared.ErrSeatBooked.Error()
		return s, shared.ErrSeatBooked
	}

	next := s
	if i := slices.Index(s.seats, seat); i >= 0 {
		next.seats = slices.Delete(slices.Clone(s.seats), i, i+1)
	} else {
		next.seats = append(slices.Clone(s.seats), seat)
	}
	next.message = ""

	if len(next.seats) == 0 {
		next.state = Idle
	} else {
		next.state = Selecting
	}
	return next, nil
}

// Attempt is one submission: the request body plus its idempotency key.
type Attempt struct {
	Request models.CreateBookingRequest
	Key     string
}

// BeginSubmit moves to [Submitting] and builds the request for userID.
//
// An empty selection fails with [shared.ErrEmptySelection] and no request is built. The idempotency key is reused
// while the set of seats is unchanged since it was issued.
func (s Selection) BeginSubmit(userID models.ID) (Selection, Attempt, error) {
	switch s.state {
	case Submitting:
		return s, Attempt{}, shared.ErrBookingInFlight
	case Confirmed:
		return s, Attempt{}, shared.ErrBookingComplete
	}

	if len(s.seats) == 0 {
		s.message = shared.ErrEmptySelection.Error()
		return s, Attempt{}, shared.ErrEmptySelection
	}

	next := s
	sig := signature(s.seats)
	if next.key == "" || next.keySig != sig {
		next.key = newKey()
		next.keySig = sig
	}
	next.state = Submitting
	next.message = ""

	attempt := Attempt{
		Request: models.CreateBookingRequest{
			UserID:        userID,
			MovieID:       s.show.MovieID,
			ShowID:        s.show.ShowID,
			SelectedSeats: slices.Clone(s.seats),
			PricePerSeat:  s.price,
		},
		Key: next.key,
	}
	return next, attempt, nil
}

// Resolve applies the outcome of a submission. It is a no-op unless the attempt is [Submitting].
//
// Success confirms the booking. Any failure moves to [Failed] with a display message and keeps the seats.
func (s Selection) Resolve(created *models.CreatedBooking, err error) Selection {
	if s.state != Submitting {
		return s
	}

	next := s
	if err != nil {
		next.state = Failed
		next.message = shared.UserMessage(err, "Booking failed")
		return next
	}

	next.state = Confirmed
	next.message = ""
	if created != nil {
		next.bookingID = created.BookingID
		next.serverTotal = created.TotalAmount
		next.mismatch = created.TotalAmount.Valid && !created.TotalAmount.Decimal.Equal(s.Total())
	}
	return next
}

// ClearMessage dismisses the current message without changing state.
func (s Selection) ClearMessage() Selection {
	s.message = ""
	return s
}

func signature(seats []string) string {
	sorted := slices.Clone(seats)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}
