package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
	"github.com/desertthunder/showtime/internal/shared"
	"github.com/urfave/cli/v3"
)

// Bookings lists the current user's bookings from the API, or from the local cache with --cached.
func (r *Runner) Bookings(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.page("/my-bookings", router.MyBookings); err != nil {
		return err
	}
	identity, err := r.identity()
	if err != nil {
		return err
	}

	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	page := pages.NewMyBookingsPage(r.api, identity.UserID, r.cache, r.logger)

	var bookings []models.Booking
	if cmd.Bool("cached") {
		if r.cache == nil {
			return fmt.Errorf("%w: the booking cache needs session.driver = \"sqlite\"", shared.ErrMissingConfig)
		}
		cached, err := page.Cached()
		if err != nil {
			return fmt.Errorf("failed to read cached bookings: %w", err)
		}
		r.logger.Info("using cached bookings", "fetched_at", cached.FetchedAt)
		bookings = cached.Bookings
	} else {
		if err := page.Load(ctx); err != nil {
			return fmt.Errorf("%s: %w", page.Message(), err)
		}
		bookings = page.Data()
	}

	if output := cmd.String("output"); output != "" || cmd.Bool("export") {
		path, err := formatter.ExportBookings(bookings, identity.UserID, f, r.config.Booking.Currency, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d bookings to %s\n", len(bookings), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(bookings, cmd.Bool("pretty"))
	}
	if len(bookings) == 0 {
		return r.writePlain("%s\n", pages.NoBookings)
	}

	return formatter.WriteBookings(r.output, bookings, f, r.config.Booking.Currency)
}
