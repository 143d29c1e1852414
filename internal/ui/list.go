package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/showtime/internal/formatter"
	"github.com/desertthunder/showtime/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = showItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.MovieName }
func (i movieItem) Title() string       { return i.movie.MovieName }
func (i movieItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", i.movie.Genre, i.movie.Language, formatter.Runtime(i.movie.Duration))
}

// showItem wraps [models.Show] to implement [list.Item].
type showItem struct {
	show models.Show
}

func (i showItem) FilterValue() string { return string(i.show.ShowID) }
func (i showItem) Title() string       { return formatter.ShowTime(i.show) }
func (i showItem) Description() string {
	return fmt.Sprintf("Theatre %s • %d seats available", i.show.TheatreID, i.show.AvailableSeats())
}

func newList(items []list.Item, title string, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}

func showItems(shows []models.Show) []list.Item {
	items := make([]list.Item, len(shows))
	for i, s := range shows {
		items[i] = showItem{show: s}
	}
	return items
}
