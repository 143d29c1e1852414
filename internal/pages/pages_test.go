package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/repositories"
	"github.com/desertthunder/showtime/internal/services"
	"github.com/desertthunder/showtime/internal/session"
	"github.com/desertthunder/showtime/internal/shared"
	tu "github.com/desertthunder/showtime/internal/testing"
)

var (
	_ services.CatalogAPI = (*tu.MockAPI)(nil)
	_ services.BookingAPI = (*tu.MockAPI)(nil)
	_ services.AuthAPI    = (*tu.MockAPI)(nil)
)

func TestLoader(t *testing.T) {
	t.Run("Lifecycle", func(t *testing.T) {
		l := NewLoader(func(ctx context.Context) ([]int, error) { return []int{1}, nil }, isEmptySlice[int], "none", "failed")

		ticket := l.Begin(context.Background())
		assert.Equal(t, Loading, l.Status())
		assert.Nil(t, l.Data())

		require.True(t, l.Apply(ticket.Run()))
		assert.Equal(t, Ready, l.Status())
		assert.Equal(t, []int{1}, l.Data())
	})

	t.Run("Result Applies Once", func(t *testing.T) {
		calls := 0
		l := NewLoader(func(ctx context.Context) ([]int, error) {
			calls++
			return []int{calls}, nil
		}, isEmptySlice[int], "none", "failed")

		res := l.Begin(context.Background()).Run()
		require.True(t, l.Apply(res))

		assert.NotPanics(t, func() {
			assert.False(t, l.Apply(res))
		})
		assert.Equal(t, Ready, l.Status())
		assert.Equal(t, []int{1}, l.Data())
	})

	t.Run("Empty Payload Is Not An Error", func(t *testing.T) {
		l := NewLoader(func(ctx context.Context) ([]int, error) { return nil, nil }, isEmptySlice[int], "none", "failed")

		require.NoError(t, l.Load(context.Background()))
		assert.Equal(t, Empty, l.Status())
		assert.Equal(t, "none", l.Message())
	})

	t.Run("Error Uses Fallback", func(t *testing.T) {
		l := NewLoader(func(ctx context.Context) ([]int, error) { return nil, errors.New("x") }, isEmptySlice[int], "none", "failed")

		require.Error(t, l.Load(context.Background()))
		assert.Equal(t, Error, l.Status())
		assert.Equal(t, "failed", l.Message())
	})

	t.Run("Stale Generation Is Discarded", func(t *testing.T) {
		calls := 0
		l := NewLoader(func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		}, nil, "", "")

		first := l.Begin(context.Background())
		second := l.Begin(context.Background())

		assert.True(t, l.Apply(second.Run()))
		assert.False(t, l.Apply(first.Run()), "older ticket must not overwrite newer data")
		assert.Equal(t, 1, l.Data())
	})

	t.Run("Begin Cancels The Previous Fetch", func(t *testing.T) {
		l := NewLoader(func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		}, nil, "", "")

		first := l.Begin(context.Background())
		l.Begin(context.Background())

		res := first.Run()
		assert.ErrorIs(t, res.Err, context.Canceled)
	})

	t.Run("Results From Another Loader Never Match", func(t *testing.T) {
		fetch := func(ctx context.Context) (int, error) { return 7, nil }
		a := NewLoader(fetch, nil, "", "")
		b := NewLoader(fetch, nil, "", "")

		ta := a.Begin(context.Background())
		b.Begin(context.Background())

		assert.False(t, b.Apply(ta.Run()))
		assert.Equal(t, Loading, b.Status())
	})

	t.Run("Cancel Drops Late Results", func(t *testing.T) {
		l := NewLoader(func(ctx context.Context) (int, error) { return 3, nil }, nil, "", "")

		ticket := l.Begin(context.Background())
		l.Cancel()

		assert.False(t, l.Apply(ticket.Run()))
		assert.Equal(t, 0, l.Data())
	})

	t.Run("Cancelled Fetch Leaves No Error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := NewLoader(func(ctx context.Context) (int, error) { return 0, ctx.Err() }, nil, "", "failed")

		ticket := l.Begin(ctx)
		cancel()

		assert.False(t, l.Apply(ticket.Run()))
		assert.NotEqual(t, Error, l.Status())
	})

	t.Run("Retry", func(t *testing.T) {
		var fail atomic.Bool
		fail.Store(true)
		l := NewLoader(func(ctx context.Context) (int, error) {
			if fail.Load() {
				return 0, errors.New("down")
			}
			return 1, nil
		}, nil, "", "failed")

		l.Load(context.Background())
		require.Equal(t, Error, l.Status())
		assert.Equal(t, "Try Again", l.RetryLabel())

		fail.Store(false)
		ticket := l.Retry(context.Background())
		assert.Equal(t, Loading, l.Status())
		assert.True(t, l.Retrying())
		assert.Equal(t, "Retrying...", l.RetryLabel())

		l.Apply(ticket.Run())
		assert.Equal(t, Ready, l.Status())
		assert.False(t, l.Retrying())
	})
}

func TestMoviesPage(t *testing.T) {
	t.Run("Empty List Renders Empty State", func(t *testing.T) {
		srv := tu.NewAPIServer(t, map[string]http.HandlerFunc{
			"GET /api/movies": func(w http.ResponseWriter, r *http.Request) {
				tu.WriteEnvelope(w, http.StatusOK, true, []models.Movie{}, "")
			},
		})

		page := NewMoviesPage(services.NewAPIService(srv.URL, nil))
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Empty, page.Status())
		assert.Equal(t, "No movies available", page.Message())
	})

	t.Run("Network Failure", func(t *testing.T) {
		srv := tu.NewAPIServer(t, nil)
		url := srv.URL
		srv.Close()

		page := NewMoviesPage(services.NewAPIService(url, nil))
		require.Error(t, page.Load(context.Background()))
		assert.Equal(t, Error, page.Status())
		assert.Equal(t, shared.NetworkMessage, page.Message())
	})

	t.Run("Ready", func(t *testing.T) {
		api := &tu.MockAPI{MoviesFn: func(ctx context.Context) ([]models.Movie, error) { return tu.SampleMovies(), nil }}
		page := NewMoviesPage(api)
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Ready, page.Status())
		assert.Len(t, page.Data(), 2)
	})
}

func TestShowsPage(t *testing.T) {
	t.Run("Joins Movie And Shows", func(t *testing.T) {
		api := &tu.MockAPI{
			MovieFn: func(ctx context.Context, id models.ID) (*models.Movie, error) {
				m := tu.SampleMovies()[0]
				return &m, nil
			},
			ShowsForMovieFn: func(ctx context.Context, id models.ID) ([]models.Show, error) {
				assert.Equal(t, models.ID("M1"), id)
				return []models.Show{tu.SampleShow()}, nil
			},
		}

		page := NewShowsPage(api, "M1")
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Ready, page.Status())
		assert.Equal(t, "Inception", page.Data().Movie.MovieName)
		assert.Len(t, page.Data().Shows, 1)
	})

	t.Run("No Shows", func(t *testing.T) {
		api := &tu.MockAPI{}
		page := NewShowsPage(api, "M1")
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Empty, page.Status())
		assert.Equal(t, "No shows available", page.Message())
	})

	t.Run("Either Failure Fails The Page And Cancels The Other", func(t *testing.T) {
		sibling := make(chan error, 1)
		api := &tu.MockAPI{
			MovieFn: func(ctx context.Context, id models.ID) (*models.Movie, error) {
				return nil, errors.New("boom")
			},
			ShowsForMovieFn: func(ctx context.Context, id models.ID) ([]models.Show, error) {
				select {
				case <-ctx.Done():
					sibling <- ctx.Err()
				case <-time.After(time.Second):
					sibling <- nil
				}
				return nil, ctx.Err()
			},
		}

		page := NewShowsPage(api, "M1")
		require.Error(t, page.Load(context.Background()))
		assert.Equal(t, Error, page.Status())
		assert.Equal(t, "Unable to load shows. Please try again.", page.Message())
		assert.ErrorIs(t, <-sibling, context.Canceled)
	})
}

func TestBookingPage(t *testing.T) {
	show := tu.SampleShow()
	api := &tu.MockAPI{ShowFn: func(ctx context.Context, id models.ID) (*models.Show, error) { return &show, nil }}

	t.Run("Starts A Selection Once Loaded", func(t *testing.T) {
		page := NewBookingPage(api, "S1", decimal.NewFromInt(200))
		assert.False(t, page.HasSelection())

		require.NoError(t, page.Load(context.Background()))
		require.True(t, page.HasSelection())
		assert.Equal(t, booking.Idle, page.Selection().State())
	})

	t.Run("Submit Flow", func(t *testing.T) {
		page := NewBookingPage(api, "S1", decimal.NewFromInt(200))
		require.NoError(t, page.Load(context.Background()))

		_, err := page.BeginSubmit("U1")
		assert.ErrorIs(t, err, shared.ErrEmptySelection)

		assert.ErrorIs(t, page.Toggle("A3"), shared.ErrSeatBooked)
		assert.Equal(t, "This seat is already booked", page.Selection().Message())
		page.DismissMessage()
		assert.Empty(t, page.Selection().Message())

		require.NoError(t, page.Toggle("A1"))
		require.NoError(t, page.Toggle("A2"))
		require.NoError(t, page.Toggle("A1"))
		assert.True(t, page.Selection().Total().Equal(decimal.NewFromInt(200)))

		attempt, err := page.BeginSubmit("U1")
		require.NoError(t, err)
		assert.Equal(t, []string{"A2"}, attempt.Request.SelectedSeats)

		sel := page.Resolve(&models.CreatedBooking{BookingID: "BK123"}, nil)
		assert.Equal(t, booking.Confirmed, sel.State())
	})

	t.Run("Missing Show", func(t *testing.T) {
		page := NewBookingPage(&tu.MockAPI{}, "S9", decimal.NewFromInt(200))
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Empty, page.Status())
		assert.False(t, page.HasSelection())
	})
}

func TestMyBookingsPage(t *testing.T) {
	setupCache := func(t *testing.T) *repositories.BookingRepository {
		t.Helper()
		db, err := shared.NewDatabase(":memory:")
		require.NoError(t, err)
		shared.ConfigureDatabase(db, 1, 1)
		require.NoError(t, shared.RunMigrations(db))
		t.Cleanup(func() { db.Close() })
		return repositories.NewBookingRepository(db)
	}

	t.Run("Fetch Caches History", func(t *testing.T) {
		cache := setupCache(t)
		api := &tu.MockAPI{UserBookingsFn: func(ctx context.Context, id models.ID) ([]models.Booking, error) {
			return tu.SampleBookings(), nil
		}}

		page := NewMyBookingsPage(api, "U1", cache, nil)
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Ready, page.Status())

		cached, err := page.Cached()
		require.NoError(t, err)
		assert.Len(t, cached.Bookings, 1)
	})

	t.Run("Failure Keeps Previous Cache", func(t *testing.T) {
		cache := setupCache(t)
		require.NoError(t, cache.Replace("U1", tu.SampleBookings()))

		api := &tu.MockAPI{UserBookingsFn: func(ctx context.Context, id models.ID) ([]models.Booking, error) {
			return nil, errors.New("down")
		}}

		page := NewMyBookingsPage(api, "U1", cache, nil)
		require.Error(t, page.Load(context.Background()))
		assert.Equal(t, "Unable to load bookings. Please try again.", page.Message())

		cached, _ := page.Cached()
		assert.Len(t, cached.Bookings, 1)
	})

	t.Run("Empty History", func(t *testing.T) {
		page := NewMyBookingsPage(&tu.MockAPI{}, "U1", nil, nil)
		require.NoError(t, page.Load(context.Background()))
		assert.Equal(t, Empty, page.Status())
		assert.Equal(t, "No bookings yet. Start booking now!", page.Message())
	})
}

func TestAuth(t *testing.T) {
	t.Run("Login Validation Blocks Request", func(t *testing.T) {
		tc := []struct {
			name string
			form LoginForm
			want string
		}{
			{name: "bad email", form: LoginForm{Email: "a@b", Password: "abc"}, want: "Please enter a valid email address"},
			{name: "short password", form: LoginForm{Email: "a@b.co", Password: "ab"}, want: "Password must be at least 3 characters"},
			{name: "email checked first", form: LoginForm{}, want: "Please enter a valid email address"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				api := &tu.MockAPI{}
				auth := NewAuth(api, session.NewManager(session.NewMemoryStore(nil), nil))

				_, err := auth.Login(context.Background(), tt.form)
				assert.ErrorIs(t, err, shared.ErrValidation)
				assert.Equal(t, tt.want, shared.UserMessage(err, LoginFailed))
				assert.Equal(t, 0, api.Calls("Login"))
			})
		}
	})

	t.Run("Signup Validation Order", func(t *testing.T) {
		valid := SignupForm{Name: "Jo", Email: "jo@x.io", Phone: "9876543210", Password: "secret", Confirm: "secret"}

		tc := []struct {
			name   string
			mutate func(*SignupForm)
			want   string
		}{
			{name: "valid", mutate: func(*SignupForm) {}},
			{name: "name", mutate: func(f *SignupForm) { f.Name = " J " }, want: "Name must be at least 2 characters"},
			{name: "email", mutate: func(f *SignupForm) { f.Email = "jo" }, want: "Please enter a valid email address"},
			{name: "phone", mutate: func(f *SignupForm) { f.Phone = "98765" }, want: "Phone number must be exactly 10 digits"},
			{name: "password", mutate: func(f *SignupForm) { f.Password, f.Confirm = "abc", "abc" }, want: "Password must be at least 6 characters"},
			{name: "confirm", mutate: func(f *SignupForm) { f.Confirm = "secrex" }, want: "Passwords do not match"},
			{name: "name wins over everything", mutate: func(f *SignupForm) { *f = SignupForm{} }, want: "Name must be at least 2 characters"},
		}

		auth := NewAuth(&tu.MockAPI{}, nil)
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				f := valid
				tt.mutate(&f)
				err := auth.ValidateSignup(f)
				if tt.want == "" {
					assert.NoError(t, err)
					return
				}
				assert.Equal(t, tt.want, shared.UserMessage(err, SignupFailed))
			})
		}
	})

	t.Run("Login Persists Session", func(t *testing.T) {
		store := session.NewMemoryStore(nil)
		mgr := session.NewManager(store, nil)
		api := &tu.MockAPI{LoginFn: func(ctx context.Context, req models.LoginRequest) (models.Identity, error) {
			return tu.SampleIdentity(), nil
		}}

		id, err := NewAuth(api, mgr).Login(context.Background(), LoginForm{Email: "asha@example.com", Password: "pw1"})
		require.NoError(t, err)
		assert.Equal(t, models.ID("U1"), id.UserID)
		assert.True(t, mgr.Authenticated())

		data, _ := store.Load()
		assert.NotEmpty(t, data)
	})

	t.Run("Rejected Login Leaves Session Empty", func(t *testing.T) {
		mgr := session.NewManager(session.NewMemoryStore(nil), nil)
		api := &tu.MockAPI{LoginFn: func(ctx context.Context, req models.LoginRequest) (models.Identity, error) {
			return models.Identity{}, &services.APIError{Kind: services.KindApplication, Message: "Invalid credentials"}
		}}

		_, err := NewAuth(api, mgr).Login(context.Background(), LoginForm{Email: "asha@example.com", Password: "bad"})
		assert.Equal(t, "Invalid credentials", shared.UserMessage(err, LoginFailed))
		assert.False(t, mgr.Authenticated())
	})

	t.Run("Signup Persists Session", func(t *testing.T) {
		mgr := session.NewManager(session.NewMemoryStore(nil), nil)
		api := &tu.MockAPI{SignupFn: func(ctx context.Context, req models.SignupRequest) (models.Identity, error) {
			assert.Equal(t, "9876543210", req.Phone)
			return tu.SampleIdentity(), nil
		}}

		_, err := NewAuth(api, mgr).Signup(context.Background(), SignupForm{
			Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Password: "secret", Confirm: "secret",
		})
		require.NoError(t, err)
		assert.True(t, mgr.Authenticated())
	})

	t.Run("Reply Without User ID Is Rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		store := session.NewMemoryStore(nil)
		mgr := session.NewManager(store, nil)
		auth := NewAuth(services.NewAPIService(srv.URL, nil), mgr)

		_, err := auth.Login(context.Background(), LoginForm{Email: "asha@example.com", Password: "pw1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrApplication)
		assert.ErrorIs(t, err, session.ErrNoUserID)
		assert.Equal(t, LoginFailed, shared.UserMessage(err, LoginFailed))
		assert.False(t, mgr.Authenticated())

		_, err = auth.Signup(context.Background(), SignupForm{
			Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Password: "secret", Confirm: "secret",
		})
		assert.Equal(t, SignupFailed, shared.UserMessage(err, SignupFailed))
		assert.False(t, mgr.Authenticated())

		restored := session.NewManager(store, nil)
		require.NoError(t, restored.Restore())
		assert.False(t, restored.Authenticated())
	})
}
