package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) requireCache() error {
	if r.cache == nil {
		return fmt.Errorf("%w: the booking cache needs session.driver = \"sqlite\"", shared.ErrMissingConfig)
	}
	return nil
}

// CacheShow prints the cached bookings of the current user and when they were fetched.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}
	identity, err := r.identity()
	if err != nil {
		return err
	}

	cached, err := r.cache.ListByUser(identity.UserID)
	if err != nil {
		return fmt.Errorf("failed to read cached bookings: %w", err)
	}

	r.writePlainHeader("Booking cache")
	r.writePlain("User:     %s\n", identity.UserID)
	r.writePlain("Bookings: %d\n", len(cached.Bookings))
	if cached.FetchedAt.IsZero() {
		return r.writePlain("Fetched:  never\n")
	}
	r.writePlain("Fetched:  %s\n\n", cached.FetchedAt.Local().Format("2006-01-02 15:04:05"))

	formatter.BookingsTable(r.output, cached.Bookings, r.config.Booking.Currency)
	return nil
}

// CacheClear drops the cached bookings of the current user.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}
	identity, err := r.identity()
	if err != nil {
		return err
	}

	n, err := r.cache.Clear(identity.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear cached bookings: %w", err)
	}

	r.logger.Info("cache cleared", "user", identity.UserID, "rows", n)
	return r.writePlain("✓ Removed %d cached bookings\n", n)
}
