// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/models"
)

// MockAPI is a test double for the booking API client.
//
// Each method delegates to the matching func field, returning zero values when it is unset. Calls are counted per method.
type MockAPI struct {
	LoginFn         func(ctx context.Context, req models.LoginRequest) (models.Identity, error)
	SignupFn        func(ctx context.Context, req models.SignupRequest) (models.Identity, error)
	MoviesFn        func(ctx context.Context) ([]models.Movie, error)
	MovieFn         func(ctx context.Context, id models.ID) (*models.Movie, error)
	ShowsForMovieFn func(ctx context.Context, id models.ID) ([]models.Show, error)
	ShowFn          func(ctx context.Context, id models.ID) (*models.Show, error)
	CreateBookingFn func(ctx context.Context, req models.CreateBookingRequest, key string) (*models.CreatedBooking, error)
	UserBookingsFn  func(ctx context.Context, id models.ID) ([]models.Booking, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (m *MockAPI) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockAPI) Login(ctx context.Context, req models.LoginRequest) (models.Identity, error) {
	m.record("Login")
	if m.LoginFn == nil {
		return models.Identity{}, nil
	}
	return m.LoginFn(ctx, req)
}

func (m *MockAPI) Signup(ctx context.Context, req models.SignupRequest) (models.Identity, error) {
	m.record("Signup")
	if m.SignupFn == nil {
		return models.Identity{}, nil
	}
	return m.SignupFn(ctx, req)
}

func (m *MockAPI) Movies(ctx context.Context) ([]models.Movie, error) {
	m.record("Movies")
	if m.MoviesFn == nil {
		return nil, nil
	}
	return m.MoviesFn(ctx)
}

func (m *MockAPI) Movie(ctx context.Context, id models.ID) (*models.Movie, error) {
	m.record("Movie")
	if m.MovieFn == nil {
		return nil, nil
	}
	return m.MovieFn(ctx, id)
}

func (m *MockAPI) ShowsForMovie(ctx context.Context, id models.ID) ([]models.Show, error) {
	m.record("ShowsForMovie")
	if m.ShowsForMovieFn == nil {
		return nil, nil
	}
	return m.ShowsForMovieFn(ctx, id)
}

func (m *MockAPI) Show(ctx context.Context, id models.ID) (*models.Show, error) {
	m.record("Show")
	if m.ShowFn == nil {
		return nil, nil
	}
	return m.ShowFn(ctx, id)
}

func (m *MockAPI) CreateBooking(ctx context.Context, req models.CreateBookingRequest, key string) (*models.CreatedBooking, error) {
	m.record("CreateBooking")
	if m.CreateBookingFn == nil {
		return &models.CreatedBooking{}, nil
	}
	return m.CreateBookingFn(ctx, req, key)
}

func (m *MockAPI) UserBookings(ctx context.Context, id models.ID) ([]models.Booking, error) {
	m.record("UserBookings")
	if m.UserBookingsFn == nil {
		return nil, nil
	}
	return m.UserBookingsFn(ctx, id)
}

// WriteEnvelope writes a {success, data, message} body with the given status.
func WriteEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// NewAPIServer starts an [httptest.Server] serving routes, keyed by Go 1.22 mux patterns such as "GET /api/movies".
func NewAPIServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// SampleIdentity returns the identity used across tests.
func SampleIdentity() models.Identity {
	return models.Identity{UserID: "U1", Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
}

// SampleMovies returns two movies.
func SampleMovies() []models.Movie {
	return []models.Movie{
		{MovieID: "M1", MovieName: "Inception", Genre: "Sci-Fi", Duration: 148, Language: "English"},
		{MovieID: "M2", MovieName: "Dangal", Genre: "Drama", Duration: 161, Language: "Hindi"},
	}
}

// SampleShow returns show S1 with A1 and A2 available and A3 booked.
func SampleShow() models.Show {
	return models.Show{
		ShowID:    "S1",
		MovieID:   "M1",
		TheatreID: "T1",
		ShowTime:  "2025-01-10T18:30:00",
		Seats: []models.Seat{
			{SeatNumber: "A1", Status: models.SeatAvailable},
			{SeatNumber: "A2", Status: models.SeatAvailable},
			{SeatNumber: "A3", Status: models.SeatBooked},
		},
	}
}

// SampleBookings returns one confirmed booking for U1.
func SampleBookings() []models.Booking {
	return []models.Booking{{
		BookingID:     "BK1",
		UserID:        "U1",
		MovieID:       "M1",
		ShowID:        "S1",
		SelectedSeats: []string{"A1", "A2"},
		TotalAmount:   decimal.NewFromInt(400),
		BookingStatus: "Confirmed",
	}}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
