package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
)

// pageState is the part of a loader the views render.
type pageState interface {
	Status() pages.Status
	Message() string
	Retrying() bool
	RetryLabel() string
}

// renderState draws the Loading, Error and Empty states. It reports false when the page is Ready.
func (m *Model) renderState(p pageState, loading string) (string, bool) {
	switch p.Status() {
	case pages.Loading:
		if p.Retrying() {
			loading = p.RetryLabel()
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), loading), true
	case pages.Error:
		retry := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", p.RetryLabel()))
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(p.Message()), m.help.ShortHelpView([]key.Binding{retry})), true
	case pages.Empty:
		return styles.help.Render(p.Message()), true
	}
	return "", false
}

func (m *Model) handleMoviesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.retry) && m.movies.Status() == pages.Error:
		return m, m.spin(fetchCmd(MsgMoviesLoaded, m.movies.Retry(m.ctx)))
	case key.Matches(msg, m.keys.enter) && m.movies.Status() == pages.Ready:
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			return m, m.navigate(router.ShowsPath(item.movie.MovieID))
		}
		return m, nil
	}

	if m.movies.Status() != pages.Ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleMoviesLoaded(res pages.Result[[]models.Movie]) (tea.Model, tea.Cmd) {
	if m.movies == nil || !m.movies.Apply(res) {
		return m, nil
	}
	if m.movies.Status() == pages.Ready {
		m.movieList = newList(movieItems(m.movies.Data()), "Now Showing", m.listWidth(), m.listHeight())
	}
	return m, nil
}

func (m *Model) renderMovies() string {
	if s, ok := m.renderState(m.movies, "Loading movies..."); ok {
		return s
	}
	return m.movieList.View()
}

func (m *Model) handleShowsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.navigate("/" + string(router.Movies))
	case key.Matches(msg, m.keys.retry) && m.shows.Status() == pages.Error:
		return m, m.spin(fetchCmd(MsgShowsLoaded, m.shows.Retry(m.ctx)))
	case key.Matches(msg, m.keys.enter) && m.shows.Status() == pages.Ready:
		if item, ok := m.showList.SelectedItem().(showItem); ok {
			return m, m.navigate(router.BookingPath(item.show.ShowID))
		}
		return m, nil
	}

	if m.shows.Status() != pages.Ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.showList, cmd = m.showList.Update(msg)
	return m, cmd
}

func (m *Model) handleShowsLoaded(res pages.Result[pages.ShowsData]) (tea.Model, tea.Cmd) {
	if m.shows == nil || !m.shows.Apply(res) {
		return m, nil
	}
	if m.shows.Status() == pages.Ready {
		title := "Shows"
		if movie := m.shows.Data().Movie; movie != nil {
			title = movie.MovieName
		}
		m.showList = newList(showItems(m.shows.Data().Shows), title, m.listWidth(), m.listHeight())
	}
	return m, nil
}

func (m *Model) renderShows() string {
	if s, ok := m.renderState(m.shows, "Loading shows..."); ok {
		return s
	}
	return m.showList.View()
}

func (m *Model) handleMyBookingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.retry) && m.history.Status() == pages.Error {
		return m, m.spin(fetchCmd(MsgBookingsLoaded, m.history.Retry(m.ctx)))
	}
	return m, nil
}

func (m *Model) handleBookingsLoaded(res pages.Result[[]models.Booking]) (tea.Model, tea.Cmd) {
	if m.history != nil {
		m.history.Apply(res)
	}
	return m, nil
}

func (m *Model) renderMyBookings() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("My Bookings"))
	b.WriteString("\n")

	if s, ok := m.renderState(m.history, "Loading bookings..."); ok {
		b.WriteString(s)
		return b.String()
	}

	var table bytes.Buffer
	formatter.BookingsTable(&table, m.history.Data(), m.currency)
	b.WriteString(table.String())
	return b.String()
}
