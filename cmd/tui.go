package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/showtime/internal/shared"
	"github.com/desertthunder/showtime/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive booking client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if r.config.Logging.Level != "" {
		shared.SetLogLevel(fileLogger, r.config.Logging.Level)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.Options{
		API:      r.api,
		Session:  r.session,
		Router:   r.router,
		Cache:    r.cache,
		Price:    r.config.Booking.Price(),
		Currency: r.config.Booking.Currency,
		Logger:   fileLogger,
		Start:    cmd.String("start"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
