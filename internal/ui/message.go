package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMoviesLoaded MsgKind = iota
	MsgShowsLoaded
	MsgShowLoaded
	MsgBookingsLoaded
	MsgAuthenticated
	MsgBookingSubmitted
)

// authResult is the payload of [MsgAuthenticated]. form identifies the form that sent the request.
type authResult struct {
	form     *authForm
	identity models.Identity
	err      error
}

// submitResult is the payload of [MsgBookingSubmitted]. page identifies the booking page that sent the request.
type submitResult struct {
	page    *pages.BookingPage
	created *models.CreatedBooking
	err     error
}

// fetchCmd runs ticket and wraps its result as a kind message.
func fetchCmd[T any](kind MsgKind, ticket pages.Ticket[T]) tea.Cmd {
	return func() tea.Msg {
		return Msg{kind: kind, data: ticket.Run()}
	}
}

// authenticatedMsg is the constructor for [MsgAuthenticated]
func authenticatedMsg(form *authForm, identity models.Identity, err error) Msg {
	return Msg{kind: MsgAuthenticated, data: authResult{form: form, identity: identity, err: err}}
}

// bookingSubmittedMsg is the constructor for [MsgBookingSubmitted]
func bookingSubmittedMsg(page *pages.BookingPage, created *models.CreatedBooking, err error) Msg {
	return Msg{kind: MsgBookingSubmitted, data: submitResult{page: page, created: created, err: err}}
}
