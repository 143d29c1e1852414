package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	nav      lipgloss.Style
	seat     lipgloss.Style
	selected lipgloss.Style
	booked   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		nav:      NewBold(t).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).MarginBottom(1),
		seat:     lipgloss.NewStyle().Padding(0, 1),
		selected: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color(s)).Foreground(lipgloss.Color("#FFFFFF")),
		booked:   NewStyle(h).Padding(0, 1).Strikethrough(true),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
