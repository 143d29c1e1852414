// package models defines the data exchanged with the booking API
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ID is an opaque server identifier. The API may send it as a JSON string or number.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

// Identity is the authenticated user payload issued by the API on login or signup.
//
// The payload is opaque to the client: the raw JSON is kept so that persisting and restoring it
// round-trips fields the client does not model.
type Identity struct {
	UserID ID     `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`

	raw json.RawMessage
}

type identityFields Identity

// UnmarshalJSON decodes the known fields and keeps the raw payload.
func (i *Identity) UnmarshalJSON(data []byte) error {
	var f identityFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*i = Identity(f)
	i.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the payload as it was received, or the known fields for identities built locally.
func (i Identity) MarshalJSON() ([]byte, error) {
	if len(i.raw) > 0 {
		return i.raw, nil
	}
	return json.Marshal(identityFields(i))
}

// Movie is a listed movie. Read-only, server owned.
type Movie struct {
	MovieID   ID     `json:"movieId"`
	MovieName string `json:"movieName"`
	Genre     string `json:"genre"`
	Duration  int    `json:"duration"` // minutes
	Language  string `json:"language"`
}

// SeatStatus is the server-owned availability of a seat.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatBooked    SeatStatus = "Booked"
)

// Seat is a bookable unit within a [Show].
type Seat struct {
	SeatNumber string     `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
}

// Show is a snapshot of one screening. Seats reflect inventory at fetch time only.
type Show struct {
	ShowID    ID     `json:"showId"`
	MovieID   ID     `json:"movieId"`
	TheatreID ID     `json:"theatreId"`
	ShowTime  string `json:"showTime"`
	Seats     []Seat `json:"seats"`

	// PricePerSeat is authoritative when the server sends it.
	PricePerSeat decimal.NullDecimal `json:"pricePerSeat"`
}

// AvailableSeats counts seats not marked booked.
func (s Show) AvailableSeats() int {
	n := 0
	for _, seat := range s.Seats {
		if seat.Status == SeatAvailable {
			n++
		}
	}
	return n
}

// Seat looks up a seat by number.
func (s Show) Seat(number string) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.SeatNumber == number {
			return seat, true
		}
	}
	return Seat{}, false
}

// Time parses ShowTime as RFC 3339, with or without a zone.
func (s Show) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s.ShowTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Booking is a booking record as returned by the list endpoint.
type Booking struct {
	BookingID     ID              `json:"bookingId"`
	UserID        ID              `json:"userId"`
	MovieID       ID              `json:"movieId"`
	ShowID        ID              `json:"showId"`
	SelectedSeats []string        `json:"selectedSeats"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	BookingStatus string          `json:"bookingStatus"`
}

// CreatedBooking is the data returned by a successful booking submission.
type CreatedBooking struct {
	BookingID   ID                  `json:"bookingId"`
	TotalAmount decimal.NullDecimal `json:"totalAmount"`
	Status      string              `json:"bookingStatus,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// CreateBookingRequest is the body of POST /bookings/create.
type CreateBookingRequest struct {
	UserID        ID              `json:"userId"`
	MovieID       ID              `json:"movieId"`
	ShowID        ID              `json:"showId"`
	SelectedSeats []string        `json:"selectedSeats"`
	PricePerSeat  decimal.Decimal `json:"pricePerSeat"`
}

// Envelope is the uniform API response wrapper.
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// IsEnvelope reports whether the body carried the success flag.
func (e Envelope) IsEnvelope() bool { return e.Success != nil }

// OK reports a well-formed, successful envelope.
func (e Envelope) OK() bool { return e.Success != nil && *e.Success }

// HasData reports whether data was present and not null.
func (e Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// ParseID builds an [ID] from a command-line or route parameter.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	return ID(s)
}
