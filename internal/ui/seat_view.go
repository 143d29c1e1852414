package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
)

// seatCursor points into the rows of the seat map.
type seatCursor struct {
	row, col int
}

func (c seatCursor) move(rows []booking.Row, dr, dc int) seatCursor {
	if len(rows) == 0 {
		return seatCursor{}
	}
	c.row = min(max(c.row+dr, 0), len(rows)-1)
	c.col = min(max(c.col+dc, 0), len(rows[c.row].Seats)-1)
	return c
}

func (c seatCursor) seat(rows []booking.Row) (models.Seat, bool) {
	if c.row >= len(rows) || c.col >= len(rows[c.row].Seats) {
		return models.Seat{}, false
	}
	return rows[c.row].Seats[c.col], true
}

func (m *Model) handleBookingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.booking

	// esc closes a shown error before it navigates back
	if key.Matches(msg, m.keys.back) && page.HasSelection() && page.Selection().Message() != "" {
		page.DismissMessage()
		return m, nil
	}
	if key.Matches(msg, m.keys.back) {
		if show := page.Data(); show != nil {
			return m, m.navigate(router.ShowsPath(show.MovieID))
		}
		return m, m.navigate("/" + string(router.Movies))
	}
	if page.Status() == pages.Error && key.Matches(msg, m.keys.retry) {
		return m, m.spin(fetchCmd(MsgShowLoaded, page.Retry(m.ctx)))
	}
	if !page.HasSelection() {
		return m, nil
	}

	rows := booking.Rows(page.Selection().Show().Seats)
	switch {
	case key.Matches(msg, m.keys.up):
		m.cursor = m.cursor.move(rows, -1, 0)
	case key.Matches(msg, m.keys.down):
		m.cursor = m.cursor.move(rows, 1, 0)
	case key.Matches(msg, m.keys.left):
		m.cursor = m.cursor.move(rows, 0, -1)
	case key.Matches(msg, m.keys.right):
		m.cursor = m.cursor.move(rows, 0, 1)
	case key.Matches(msg, m.keys.toggle):
		if seat, ok := m.cursor.seat(rows); ok {
			if err := page.Toggle(seat.SeatNumber); err != nil {
				m.logger.Debug("seat toggle refused", "seat", seat.SeatNumber, "err", err)
			}
		}
	case key.Matches(msg, m.keys.enter):
		return m, m.submitBooking()
	}
	return m, nil
}

// submitBooking starts a submission. The result message carries the page so a late reply cannot land on another page.
func (m *Model) submitBooking() tea.Cmd {
	page := m.booking
	identity, ok := m.session.Current()
	if !ok {
		return m.navigate("/login")
	}

	attempt, err := page.BeginSubmit(identity.UserID)
	if err != nil {
		return nil
	}

	ctx, api := m.ctx, m.api
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		created, err := booking.Send(ctx, api, attempt)
		return bookingSubmittedMsg(page, created, err)
	})
}

func (m *Model) handleShowLoaded(res pages.Result[*models.Show]) (tea.Model, tea.Cmd) {
	if m.booking == nil || !m.booking.Apply(res) {
		return m, nil
	}
	m.cursor = seatCursor{}
	return m, nil
}

func (m *Model) handleBookingSubmitted(res submitResult) (tea.Model, tea.Cmd) {
	if res.page != m.booking {
		m.logger.Debug("dropping booking result for a page that is gone", "err", res.err)
		return m, nil
	}

	sel := res.page.Resolve(res.created, res.err)
	m.submitter.Report(sel)
	if sel.State() != booking.Confirmed {
		return m, nil
	}

	cmd := m.navigate("/" + string(router.MyBookings))
	m.notice = fmt.Sprintf("Booking confirmed! Booking ID: %s", sel.BookingID())
	if sel.PriceMismatch() {
		m.notice += fmt.Sprintf(" (charged %s)", formatter.Amount(m.currency, sel.ServerTotal().Decimal))
	}
	return m, cmd
}

func (m *Model) renderBooking() string {
	page := m.booking
	if s, ok := m.renderState(page, "Loading show details..."); ok {
		return s
	}

	sel := page.Selection()
	show := sel.Show()

	var b strings.Builder
	b.WriteString(styles.title.Render("Select Seats"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Show %s • Theatre %s • %s\n", show.ShowID, show.TheatreID, formatter.ShowTime(show))
	fmt.Fprintf(&b, "Price per seat: %s\n\n", formatter.Amount(m.currency, sel.Price()))

	b.WriteString(lipgloss.PlaceHorizontal(40, lipgloss.Center, styles.help.Render("SCREEN")))
	b.WriteString("\n")
	for r, row := range booking.Rows(show.Seats) {
		cells := []string{fmt.Sprintf("%-2s", row.Label)}
		for c, seat := range row.Seats {
			cells = append(cells, m.renderSeat(sel, seat, seatCursor{row: r, col: c} == m.cursor))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, cells...))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if sel.Count() > 0 {
		fmt.Fprintf(&b, "Selected: %s\n", strings.Join(sel.Seats(), ", "))
	}
	fmt.Fprintf(&b, "Total Amount: %s\n\n", formatter.Amount(m.currency, sel.Total()))

	switch {
	case sel.Busy():
		fmt.Fprintf(&b, "%s Booking...\n", m.spinner.View())
	case sel.Message() != "":
		b.WriteString(styles.err.Render(sel.Message()))
		b.WriteString("\n")
	}

	book := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "book now"))
	back := m.keys.back
	if sel.Message() != "" {
		back = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.left, m.keys.right, m.keys.toggle, book, back}))
	return b.String()
}

func (m *Model) renderSeat(sel booking.Selection, seat models.Seat, focused bool) string {
	style := styles.seat
	switch {
	case seat.Status == models.SeatBooked:
		style = styles.booked
	case sel.Has(seat.SeatNumber):
		style = styles.selected
	}
	if focused {
		style = style.Reverse(true)
	}
	return style.Render(seat.SeatNumber)
}
