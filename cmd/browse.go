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

// page resolves path and checks that it landed on the expected page.
func (r *Runner) page(path string, name router.Name) (router.Destination, error) {
	d, err := r.visit(path)
	if err != nil {
		return d, err
	}
	if d.Route.Name != name {
		return d, fmt.Errorf("%w: %q is not a %s page", shared.ErrInvalidArgument, path, name)
	}
	return d, nil
}

func idArg(cmd *cli.Command, name string) (models.ID, error) {
	id := models.ParseID(cmd.StringArg(name))
	if id == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return id, nil
}

// Movies lists every movie.
func (r *Runner) Movies(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.page("/movies", router.Movies); err != nil {
		return err
	}

	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	page := pages.NewMoviesPage(r.api)
	if err := page.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", page.Message(), err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page.Data(), cmd.Bool("pretty"))
	}
	if page.Status() == pages.Empty {
		return r.writePlain("%s\n", page.Message())
	}

	r.logger.Debug("movies loaded", "count", len(page.Data()))
	return formatter.WriteMovies(r.output, page.Data(), f)
}

// Shows lists the shows of a movie alongside the movie header.
func (r *Runner) Shows(ctx context.Context, cmd *cli.Command) error {
	movieID, err := idArg(cmd, "movieId")
	if err != nil {
		return err
	}

	d, err := r.page(router.ShowsPath(movieID), router.Shows)
	if err != nil {
		return err
	}

	page := pages.NewShowsPage(r.api, d.Params.ID("movieId"))
	if err := page.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", page.Message(), err)
	}

	data := page.Data()
	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}
	if page.Status() == pages.Empty {
		if data.Movie != nil {
			r.writePlain("%s\n", data.Movie.MovieName)
		}
		return r.writePlain("%s\n", page.Message())
	}

	formatter.ShowsTable(r.output, data.Movie, data.Shows)
	return r.writePlainln("Next: showtime seats <showId>")
}

// Seats prints the seat map of a show.
func (r *Runner) Seats(ctx context.Context, cmd *cli.Command) error {
	showID, err := idArg(cmd, "showId")
	if err != nil {
		return err
	}

	page, err := r.loadBooking(ctx, showID)
	if err != nil {
		return err
	}
	if page.Status() == pages.Empty {
		return r.writePlain("%s\n", page.Message())
	}

	show := page.Data()
	formatter.SeatMap(r.output, *show, nil)
	r.writePlain("%d seats available\n", show.AvailableSeats())
	return r.writePlain("Price per seat: %s\n", formatter.Amount(r.config.Booking.Currency, page.Selection().Price()))
}

func (r *Runner) loadBooking(ctx context.Context, showID models.ID) (*pages.BookingPage, error) {
	d, err := r.page(router.BookingPath(showID), router.Booking)
	if err != nil {
		return nil, err
	}

	page := pages.NewBookingPage(r.api, d.Params.ID("showId"), r.config.Booking.Price())
	if err := page.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", page.Message(), err)
	}
	return page, nil
}
