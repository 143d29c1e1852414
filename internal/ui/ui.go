package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
	"github.com/desertthunder/showtime/internal/services"
	"github.com/desertthunder/showtime/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	SignupView
	MoviesView
	ShowsView
	BookingView
	MyBookingsView
)

// Options carries the dependencies of a [Model].
type Options struct {
	API      services.Client
	Session  *session.Manager
	Router   *router.Router
	Cache    pages.BookingCache // optional
	Price    decimal.Decimal    // per-seat price when a show carries none
	Currency string
	Logger   *log.Logger
	Start    string // initial path, "/" when empty
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	api       services.Client
	session   *session.Manager
	router    *router.Router
	auth      *pages.Auth
	cache     pages.BookingCache
	submitter *booking.Submitter
	price     decimal.Decimal
	currency  string
	logger    *log.Logger
	start     string

	view   ViewState
	dest   router.Destination
	notice string
	width  int
	height int

	form      *authForm
	movies    *pages.MoviesPage
	movieList list.Model
	shows     *pages.ShowsPage
	showList  list.Model
	booking   *pages.BookingPage
	cursor    seatCursor
	history   *pages.MyBookingsPage

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	start := opts.Start
	if start == "" {
		start = "/"
	}

	return &Model{
		ctx:       ctx,
		api:       opts.API,
		session:   opts.Session,
		router:    opts.Router,
		auth:      pages.NewAuth(opts.API, opts.Session),
		cache:     opts.Cache,
		submitter: booking.NewSubmitter(opts.API, logger),
		price:     opts.Price,
		currency:  opts.Currency,
		logger:    logger,
		start:     start,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init resolves the start path through the router.
func (m *Model) Init() tea.Cmd {
	return m.navigate(m.start)
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// Destination returns the last resolved route.
func (m *Model) Destination() router.Destination { return m.dest }

// navigate resolves path, cancels whatever the previous page had in flight, and starts the new page's fetch.
func (m *Model) navigate(path string) tea.Cmd {
	m.leave()
	m.dest = m.router.Resolve(path)
	m.notice = ""

	switch m.dest.Route.Name {
	case router.Login:
		m.view = LoginView
		m.form = newLoginForm()
		return nil
	case router.Signup:
		m.view = SignupView
		m.form = newSignupForm()
		return nil
	case router.Shows:
		m.view = ShowsView
		m.shows = pages.NewShowsPage(m.api, m.dest.Params.ID("movieId"))
		return m.spin(fetchCmd(MsgShowsLoaded, m.shows.Begin(m.ctx)))
	case router.Booking:
		m.view = BookingView
		m.booking = pages.NewBookingPage(m.api, m.dest.Params.ID("showId"), m.price)
		m.cursor = seatCursor{}
		return m.spin(fetchCmd(MsgShowLoaded, m.booking.Begin(m.ctx)))
	case router.MyBookings:
		m.view = MyBookingsView
		identity, _ := m.session.Current()
		m.history = pages.NewMyBookingsPage(m.api, identity.UserID, m.cache, m.logger)
		return m.spin(fetchCmd(MsgBookingsLoaded, m.history.Begin(m.ctx)))
	default:
		m.view = MoviesView
		m.movies = pages.NewMoviesPage(m.api)
		return m.spin(fetchCmd(MsgMoviesLoaded, m.movies.Begin(m.ctx)))
	}
}

// leave cancels the active page. Results still in flight are dropped when they arrive.
func (m *Model) leave() {
	if m.movies != nil {
		m.movies.Cancel()
	}
	if m.shows != nil {
		m.shows.Cancel()
	}
	if m.booking != nil {
		m.booking.Cancel()
	}
	if m.history != nil {
		m.history.Cancel()
	}
	m.movies, m.shows, m.booking, m.history, m.form = nil, nil, nil, nil, nil
}

func (m *Model) spin(cmd tea.Cmd) tea.Cmd {
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) logout() tea.Cmd {
	if err := m.session.Logout(); err != nil {
		m.logger.Error("logout failed", "err", err)
	}
	return m.navigate("/login")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movies != nil && m.movies.Status() == pages.Ready {
			m.movieList.SetSize(m.listWidth(), m.listHeight())
		}
		if m.shows != nil && m.shows.Status() == pages.Ready {
			m.showList.SetSize(m.listWidth(), m.listHeight())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgMoviesLoaded:
		return m.handleMoviesLoaded(msg.data.(pages.Result[[]models.Movie]))
	case MsgShowsLoaded:
		return m.handleShowsLoaded(msg.data.(pages.Result[pages.ShowsData]))
	case MsgShowLoaded:
		return m.handleShowLoaded(msg.data.(pages.Result[*models.Show]))
	case MsgBookingsLoaded:
		return m.handleBookingsLoaded(msg.data.(pages.Result[[]models.Booking]))
	case MsgAuthenticated:
		return m.handleAuthenticated(msg.data.(authResult))
	case MsgBookingSubmitted:
		return m.handleBookingSubmitted(msg.data.(submitResult))
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.handleAuthKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.movies):
		return m, m.navigate("/" + string(router.Movies))
	case key.Matches(msg, m.keys.bookings):
		return m, m.navigate("/" + string(router.MyBookings))
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}

	switch m.view {
	case MoviesView:
		return m.handleMoviesKeys(msg)
	case ShowsView:
		return m.handleShowsKeys(msg)
	case BookingView:
		return m.handleBookingKeys(msg)
	case MyBookingsView:
		return m.handleMyBookingsKeys(msg)
	}
	return m, nil
}

func (m *Model) loading() bool {
	switch {
	case m.movies != nil && m.movies.Status() == pages.Loading:
	case m.shows != nil && m.shows.Status() == pages.Loading:
	case m.booking != nil && (m.booking.Status() == pages.Loading || m.booking.Selection().Busy()):
	case m.history != nil && m.history.Status() == pages.Loading:
	default:
		return false
	}
	return true
}

func (m *Model) listWidth() int  { return max(m.width-4, 20) }
func (m *Model) listHeight() int { return max(m.height-10, 10) }

// View renders the navbar and the active view.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView, SignupView:
		body = m.renderAuth()
	case MoviesView:
		body = m.renderMovies()
	case ShowsView:
		body = m.renderShows()
	case BookingView:
		body = m.renderBooking()
	case MyBookingsView:
		body = m.renderMyBookings()
	}

	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(styles.ok.Render(m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	if m.form == nil {
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.movies, m.keys.bookings, m.keys.logout, m.keys.quit}))
	}
	return b.String()
}

// renderNav shows the signed-in user, or the auth links when nobody is.
func (m *Model) renderNav() string {
	identity, ok := m.session.Current()
	if !ok {
		return styles.nav.Render("Showtime  |  Login  Sign Up")
	}
	return styles.nav.Render(fmt.Sprintf("Showtime  |  Movies  My Bookings  |  Welcome, %s  Logout", identity.Name))
}
