// package services defines the client for the remote booking API
package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/desertthunder/showtime/internal/models"
)

// AuthAPI covers the authentication endpoints.
type AuthAPI interface {
	// Login exchanges credentials for an identity.
	Login(ctx context.Context, req models.LoginRequest) (models.Identity, error)

	// Signup registers a new account and returns its identity.
	Signup(ctx context.Context, req models.SignupRequest) (models.Identity, error)
}

// CatalogAPI covers the read-only movie and show endpoints.
type CatalogAPI interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Movie(ctx context.Context, movieID models.ID) (*models.Movie, error)
	ShowsForMovie(ctx context.Context, movieID models.ID) ([]models.Show, error)
	Show(ctx context.Context, showID models.ID) (*models.Show, error)
}

// BookingAPI covers booking submission and history.
type BookingAPI interface {
	// CreateBooking submits a booking. idempotencyKey is sent as the Idempotency-Key header when not empty.
	CreateBooking(ctx context.Context, req models.CreateBookingRequest, idempotencyKey string) (*models.CreatedBooking, error)

	// UserBookings lists the bookings of userID.
	UserBookings(ctx context.Context, userID models.ID) ([]models.Booking, error)
}

// Client is the full surface of the booking API.
type Client interface {
	AuthAPI
	CatalogAPI
	BookingAPI
}

var _ Client = (*APIService)(nil)

// Login calls POST /auth/login.
func (a *APIService) Login(ctx context.Context, req models.LoginRequest) (models.Identity, error) {
	resp, err := a.PostJSON(ctx, "/auth/login", req, nil)
	if err != nil {
		return models.Identity{}, err
	}
	return decode[models.Identity](resp)
}

// Signup calls POST /auth/signup.
func (a *APIService) Signup(ctx context.Context, req models.SignupRequest) (models.Identity, error) {
	resp, err := a.PostJSON(ctx, "/auth/signup", req, nil)
	if err != nil {
		return models.Identity{}, err
	}
	return decode[models.Identity](resp)
}

// Movies calls GET /movies. A missing data field yields an empty list.
func (a *APIService) Movies(ctx context.Context) ([]models.Movie, error) {
	resp, err := a.Get(ctx, "/movies")
	if err != nil {
		return nil, err
	}
	return decode[[]models.Movie](resp)
}

// Movie calls GET /movies/:movieId. The result is nil when the server sent no data.
func (a *APIService) Movie(ctx context.Context, movieID models.ID) (*models.Movie, error) {
	resp, err := a.Get(ctx, "/movies/"+url.PathEscape(movieID.String()))
	if err != nil {
		return nil, err
	}
	return decode[*models.Movie](resp)
}

// ShowsForMovie calls GET /shows/movie/:movieId.
func (a *APIService) ShowsForMovie(ctx context.Context, movieID models.ID) ([]models.Show, error) {
	resp, err := a.Get(ctx, "/shows/movie/"+url.PathEscape(movieID.String()))
	if err != nil {
		return nil, err
	}
	return decode[[]models.Show](resp)
}

// Show calls GET /shows/:showId.
func (a *APIService) Show(ctx context.Context, showID models.ID) (*models.Show, error) {
	resp, err := a.Get(ctx, "/shows/"+url.PathEscape(showID.String()))
	if err != nil {
		return nil, err
	}
	return decode[*models.Show](resp)
}

// CreateBooking calls POST /bookings/create.
func (a *APIService) CreateBooking(ctx context.Context, req models.CreateBookingRequest, idempotencyKey string) (*models.CreatedBooking, error) {
	var header http.Header
	if idempotencyKey != "" {
		header = http.Header{IdempotencyHeader: []string{idempotencyKey}}
	}

	resp, err := a.PostJSON(ctx, "/bookings/create", req, header)
	if err != nil {
		return nil, err
	}

	created, err := decode[*models.CreatedBooking](resp)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = &models.CreatedBooking{}
	}
	return created, nil
}

// UserBookings calls GET /bookings/user/:userId.
func (a *APIService) UserBookings(ctx context.Context, userID models.ID) ([]models.Booking, error) {
	resp, err := a.Get(ctx, "/bookings/user/"+url.PathEscape(userID.String()))
	if err != nil {
		return nil, err
	}
	return decode[[]models.Booking](resp)
}
