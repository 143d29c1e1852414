package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/urfave/cli/v3"
)

// Book selects the requested seats, asks for confirmation, and submits the booking once.
func (r *Runner) Book(ctx context.Context, cmd *cli.Command) error {
	showID, err := idArg(cmd, "showId")
	if err != nil {
		return err
	}

	identity, err := r.identity()
	if err != nil {
		return err
	}

	page, err := r.loadBooking(ctx, showID)
	if err != nil {
		return err
	}
	if page.Status() == pages.Empty {
		return fmt.Errorf("%s", page.Message())
	}

	for _, seat := range cmd.StringSlice("seat") {
		if err := page.Toggle(strings.TrimSpace(seat)); err != nil {
			return fmt.Errorf("seat %s: %w", seat, err)
		}
	}

	sel := page.Selection()
	currency := r.config.Booking.Currency
	if sel.Count() > 0 {
		formatter.SeatMap(r.output, sel.Show(), sel.Seats())
		r.writePlain("Seats: %s\n", strings.Join(sel.Seats(), ", "))
		r.writePlain("Total: %s\n\n", formatter.Amount(currency, sel.Total()))

		if !cmd.Bool("yes") {
			ok, err := r.prompter.Confirm(fmt.Sprintf("Book %d seat(s) for %s", sel.Count(), formatter.Amount(currency, sel.Total())))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				return r.writePlain("Booking cancelled\n")
			}
		}
	}

	attempt, err := page.BeginSubmit(identity.UserID)
	if err != nil {
		return err
	}

	created, err := booking.Send(ctx, r.api, attempt)
	sel = page.Resolve(created, err)
	booking.NewSubmitter(r.api, r.logger).Report(sel)
	if err != nil {
		return fmt.Errorf("%s: %w", sel.Message(), err)
	}

	r.writePlain("✓ Booking confirmed! Booking ID: %s\n", sel.BookingID())
	if sel.PriceMismatch() {
		r.writePlain("  Charged %s (quoted %s)\n",
			formatter.Amount(currency, sel.ServerTotal().Decimal), formatter.Amount(currency, sel.Total()))
	}
	return r.writePlain("Next: showtime bookings\n")
}
