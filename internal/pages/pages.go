package pages

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/repositories"
	"github.com/desertthunder/showtime/internal/services"
)

// Messages shown for empty and failed pages.
const (
	NoMovies   = "No movies available"
	NoShows    = "No shows available"
	NoShow     = "Show not found"
	NoBookings = "No bookings yet. Start booking now!"

	MoviesFailed   = "Unable to load movies. Please check your connection."
	ShowsFailed    = "Unable to load shows. Please try again."
	ShowFailed     = "Unable to load show details. Please try again."
	BookingsFailed = "Unable to load bookings. Please try again."
)

func isEmptySlice[T any](xs []T) bool { return len(xs) == 0 }

// MoviesPage lists every movie.
type MoviesPage struct {
	*Loader[[]models.Movie]
}

// NewMoviesPage creates the movies page over api.
func NewMoviesPage(api services.CatalogAPI) *MoviesPage {
	return &MoviesPage{NewLoader(api.Movies, isEmptySlice[models.Movie], NoMovies, MoviesFailed)}
}

// ShowsData is the movie header and its shows, loaded together.
type ShowsData struct {
	Movie *models.Movie
	Shows []models.Show
}

// ShowsPage lists the shows of one movie.
type ShowsPage struct {
	*Loader[ShowsData]
	MovieID models.ID
}

// NewShowsPage creates the shows page for movieID. The movie and its shows are fetched concurrently; the first
// failure fails the page and cancels the other request.
func NewShowsPage(api services.CatalogAPI, movieID models.ID) *ShowsPage {
	fetch := func(ctx context.Context) (ShowsData, error) {
		var data ShowsData
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			movie, err := api.Movie(ctx, movieID)
			data.Movie = movie
			return err
		})
		g.Go(func() error {
			shows, err := api.ShowsForMovie(ctx, movieID)
			data.Shows = shows
			return err
		})

		if err := g.Wait(); err != nil {
			return ShowsData{}, err
		}
		return data, nil
	}

	isEmpty := func(d ShowsData) bool { return len(d.Shows) == 0 }
	return &ShowsPage{Loader: NewLoader(fetch, isEmpty, NoShows, ShowsFailed), MovieID: movieID}
}

// BookingPage shows one show's seat map and owns the booking attempt for it.
type BookingPage struct {
	*Loader[*models.Show]
	ShowID models.ID

	price     decimal.Decimal
	selection booking.Selection
	ready     bool
}

// NewBookingPage creates the booking page for showID. price is used unless the show carries its own.
func NewBookingPage(api services.CatalogAPI, showID models.ID, price decimal.Decimal) *BookingPage {
	fetch := func(ctx context.Context) (*models.Show, error) { return api.Show(ctx, showID) }
	isEmpty := func(s *models.Show) bool { return s == nil }

	return &BookingPage{
		Loader: NewLoader(fetch, isEmpty, NoShow, ShowFailed),
		ShowID: showID,
		price:  price,
	}
}

// Apply records the show and starts a fresh selection when it loaded.
func (p *BookingPage) Apply(res Result[*models.Show]) bool {
	if !p.Loader.Apply(res) {
		return false
	}
	if show := p.Data(); p.Status() == Ready && show != nil {
		p.selection = booking.New(*show, p.price)
		p.ready = true
	}
	return true
}

// Load fetches the show synchronously.
func (p *BookingPage) Load(ctx context.Context) error {
	res := p.Begin(ctx).Run()
	p.Apply(res)
	return res.Err
}

// Selection returns the current booking attempt. It is only meaningful once the show is Ready.
func (p *BookingPage) Selection() booking.Selection { return p.selection }

// HasSelection reports whether a show has loaded and a selection exists.
func (p *BookingPage) HasSelection() bool { return p.ready }

// Toggle flips a seat. Rejections leave their message on the selection.
func (p *BookingPage) Toggle(seat string) error {
	next, err := p.selection.Toggle(seat)
	p.selection = next
	return err
}

// BeginSubmit starts a submission for userID.
func (p *BookingPage) BeginSubmit(userID models.ID) (booking.Attempt, error) {
	next, attempt, err := p.selection.BeginSubmit(userID)
	p.selection = next
	return attempt, err
}

// Resolve applies a submission outcome.
func (p *BookingPage) Resolve(created *models.CreatedBooking, err error) booking.Selection {
	p.selection = p.selection.Resolve(created, err)
	return p.selection
}

// DismissMessage clears the selection's message.
func (p *BookingPage) DismissMessage() {
	p.selection = p.selection.ClearMessage()
}

// BookingCache persists fetched booking history.
type BookingCache interface {
	Replace(userID models.ID, bookings []models.Booking) error
	ListByUser(userID models.ID) (*repositories.CachedBookings, error)
}

// MyBookingsPage lists the bookings of the current user.
type MyBookingsPage struct {
	*Loader[[]models.Booking]
	UserID models.ID

	cache BookingCache
}

// NewMyBookingsPage creates the history page for userID. Every successful fetch is written to cache, which may be
// nil. Cache failures are logged and never fail the page.
func NewMyBookingsPage(api services.BookingAPI, userID models.ID, cache BookingCache, logger *log.Logger) *MyBookingsPage {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fetch := func(ctx context.Context) ([]models.Booking, error) {
		bookings, err := api.UserBookings(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			if err := cache.Replace(userID, bookings); err != nil {
				logger.Warn("failed to cache bookings", "user", userID, "err", err)
			}
		}
		return bookings, nil
	}

	return &MyBookingsPage{
		Loader: NewLoader(fetch, isEmptySlice[models.Booking], NoBookings, BookingsFailed),
		UserID: userID,
		cache:  cache,
	}
}

// Cached returns the bookings stored by the last successful fetch.
func (p *MyBookingsPage) Cached() (*repositories.CachedBookings, error) {
	if p.cache == nil {
		return &repositories.CachedBookings{}, nil
	}
	return p.cache.ListByUser(p.UserID)
}
