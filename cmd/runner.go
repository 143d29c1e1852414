package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
	"github.com/desertthunder/showtime/internal/services"
	"github.com/desertthunder/showtime/internal/session"
	"github.com/desertthunder/showtime/internal/shared"
	"github.com/urfave/cli/v3"
)

// BookingStore is the local booking history cache.
type BookingStore interface {
	pages.BookingCache
	Clear(userID models.ID) (int64, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        services.Client
	raw        *services.APIService
	session    *session.Manager
	router     *router.Router
	cache      BookingStore
	prompter   Prompter
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	Client     services.Client // overrides API for the typed calls
	Session    *session.Manager
	Cache      BookingStore
	Prompter   Prompter
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.API.BaseURL, nil,
			services.WithTimeout(opts.Config.API.Timeout()),
			services.WithRateLimit(opts.Config.API.RateLimit),
			services.WithLogger(opts.Logger),
		)
	}
	if opts.Client == nil {
		opts.Client = opts.API
	}
	if opts.Session == nil {
		opts.Session = session.NewManager(session.NewMemoryStore(nil), opts.Logger)
	}
	if opts.Prompter == nil {
		opts.Prompter = promptUI{}
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.Client,
		raw:        opts.API,
		session:    opts.Session,
		cache:      opts.Cache,
		prompter:   opts.Prompter,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.router = router.NewDefault(r.session)
	r.router.Use(router.Logging(r.logger))
	return r
}

// SetLogger replaces the logger used by the runner and its router.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.router = router.NewDefault(r.session)
	r.router.Use(router.Logging(logger))
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, moviesCommand, showsCommand, seatsCommand, bookCommand, bookingsCommand,
		cacheCommand, apiCommand, openCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// visit resolves path through the router. A protected page without a session fails with [shared.ErrNotAuthenticated].
func (r *Runner) visit(path string) (router.Destination, error) {
	d := r.router.Resolve(path)
	if d.Redirected() {
		return d, fmt.Errorf("%w: run 'showtime auth login' first", shared.ErrNotAuthenticated)
	}
	return d, nil
}

// identity returns the current user, or [shared.ErrNotAuthenticated].
func (r *Runner) identity() (models.Identity, error) {
	id, ok := r.session.Current()
	if !ok {
		return models.Identity{}, fmt.Errorf("%w: run 'showtime auth login' first", shared.ErrNotAuthenticated)
	}
	return id, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
