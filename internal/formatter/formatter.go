// package formatter renders movies, shows, seat maps and bookings as tables, CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/booking"
	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/shared"
)

// Format selects an output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists every accepted format name.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat maps a flag value to a [Format]. An empty value selects [FormatTable].
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatTable, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	}
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Ext returns the file extension used when exporting f.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// Amount renders d with the currency prefix, e.g. "Rs. 400".
func Amount(currency string, d decimal.Decimal) string {
	if currency == "" {
		return d.String()
	}
	return currency + " " + d.String()
}

// ShowTime renders a show's start time for display. Unparseable values are shown as sent.
func ShowTime(s models.Show) string {
	t, ok := s.Time()
	if !ok {
		return s.ShowTime
	}
	return t.Format("Mon, Jan 2 03:04 PM")
}

// Runtime renders a duration in minutes, e.g. "148 min".
func Runtime(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// MoviesTable writes movies as a table.
func MoviesTable(w io.Writer, movies []models.Movie) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title", "Genre", "Language", "Duration"})
	for _, m := range movies {
		t.AppendRow(table.Row{m.MovieID, m.MovieName, m.Genre, m.Language, Runtime(m.Duration)})
	}
	t.Render()
}

// ShowsTable writes a movie's shows with the number of seats still open.
func ShowsTable(w io.Writer, movie *models.Movie, shows []models.Show) {
	t := newTable(w)
	if movie != nil {
		t.SetTitle(movie.MovieName)
	}
	t.AppendHeader(table.Row{"Show", "Theatre", "Time", "Seats"})
	for _, s := range shows {
		t.AppendRow(table.Row{s.ShowID, s.TheatreID, ShowTime(s), fmt.Sprintf("%d seats available", s.AvailableSeats())})
	}
	t.Render()
}

// BookingsTable writes booking history as a table.
func BookingsTable(w io.Writer, bookings []models.Booking, currency string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Booking", "Movie", "Show", "Seats", "Total", "Status"})
	for _, b := range bookings {
		t.AppendRow(table.Row{
			b.BookingID, b.MovieID, b.ShowID,
			strings.Join(b.SelectedSeats, ", "),
			Amount(currency, b.TotalAmount),
			b.BookingStatus,
		})
	}
	t.Render()
}

// Seat cell markers.
const (
	seatBooked   = "xx"
	selectedMark = "*"
)

// SeatMap writes the seats of show grouped by row. Selected seats are starred and booked seats are masked.
func SeatMap(w io.Writer, show models.Show, selected []string) {
	t := newTable(w)
	t.SetTitle("SCREEN")
	t.Style().Options.SeparateRows = true

	for _, row := range booking.Rows(show.Seats) {
		cells := table.Row{row.Label}
		for _, seat := range row.Seats {
			cells = append(cells, seatCell(seat, selected))
		}
		t.AppendRow(cells)
	}
	t.Render()
	fmt.Fprintf(w, "%s available  %s%s selected  %s booked\n", "A1", "A1", selectedMark, seatBooked)
}

func seatCell(seat models.Seat, selected []string) string {
	switch {
	case seat.Status == models.SeatBooked:
		return seatBooked
	case slices.Contains(selected, seat.SeatNumber):
		return seat.SeatNumber + selectedMark
	default:
		return seat.SeatNumber
	}
}

// MoviesToCSV converts movies to CSV with columns: ID, Title, Genre, Language, Duration
func MoviesToCSV(movies []models.Movie) ([]byte, error) {
	records := make([][]string, 0, len(movies))
	for _, m := range movies {
		records = append(records, []string{
			string(m.MovieID), m.MovieName, m.Genre, m.Language, strconv.Itoa(m.Duration),
		})
	}
	return writeCSV([]string{"ID", "Title", "Genre", "Language", "Duration"}, records)
}

// BookingsToCSV converts bookings to CSV with columns: ID, Movie, Show, Seats, Total, Status.
//
// Seats are space separated within their column.
func BookingsToCSV(bookings []models.Booking) ([]byte, error) {
	records := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, []string{
			string(b.BookingID),
			string(b.MovieID),
			string(b.ShowID),
			strings.Join(b.SelectedSeats, " "),
			b.TotalAmount.String(),
			b.BookingStatus,
		})
	}
	return writeCSV([]string{"ID", "Movie", "Show", "Seats", "Total", "Status"}, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// MoviesToMarkdown renders movies as a Markdown list.
func MoviesToMarkdown(movies []models.Movie) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Movies\n\n")
	fmt.Fprintf(&buf, "**Count**: %d\n\n", len(movies))
	for i, m := range movies {
		fmt.Fprintf(&buf, "%d. **%s** (%s, %s) [%s]\n", i+1, m.MovieName, m.Genre, m.Language, Runtime(m.Duration))
	}
	return buf.Bytes()
}

// BookingsToMarkdown renders bookings as a Markdown section per booking.
func BookingsToMarkdown(bookings []models.Booking, currency string) []byte {
	var buf bytes.Buffer

	buf.WriteString("# My Bookings\n\n")
	fmt.Fprintf(&buf, "**Bookings**: %d\n\n", len(bookings))
	for _, b := range bookings {
		fmt.Fprintf(&buf, "## Booking %s\n\n", b.BookingID)
		fmt.Fprintf(&buf, "- **Movie**: %s\n", b.MovieID)
		fmt.Fprintf(&buf, "- **Show**: %s\n", b.ShowID)
		fmt.Fprintf(&buf, "- **Seats**: %s\n", strings.Join(b.SelectedSeats, ", "))
		fmt.Fprintf(&buf, "- **Total Amount**: %s\n", Amount(currency, b.TotalAmount))
		fmt.Fprintf(&buf, "- **Status**: %s\n\n", b.BookingStatus)
	}
	return buf.Bytes()
}

// MoviesToText renders movies one per line.
func MoviesToText(movies []models.Movie) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Movies: %d\n\n", len(movies))
	for i, m := range movies {
		fmt.Fprintf(&buf, "%d. %s - %s, %s (%s)\n", i+1, m.MovieName, m.Genre, m.Language, Runtime(m.Duration))
	}
	return buf.Bytes()
}

// BookingsToText renders bookings one per line.
func BookingsToText(bookings []models.Booking, currency string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Bookings: %d\n\n", len(bookings))
	for i, b := range bookings {
		fmt.Fprintf(&buf, "%d. %s - seats %s - %s - %s\n",
			i+1, b.BookingID, strings.Join(b.SelectedSeats, ", "), Amount(currency, b.TotalAmount), b.BookingStatus)
	}
	return buf.Bytes()
}

// WriteMovies renders movies to w in format f.
func WriteMovies(w io.Writer, movies []models.Movie, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatTable:
		MoviesTable(w, movies)
		return nil
	case FormatCSV:
		data, err = MoviesToCSV(movies)
	case FormatMarkdown:
		data = MoviesToMarkdown(movies)
	default:
		data = MoviesToText(movies)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteBookings renders bookings to w in format f.
func WriteBookings(w io.Writer, bookings []models.Booking, f Format, currency string) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatTable:
		BookingsTable(w, bookings, currency)
		return nil
	case FormatCSV:
		data, err = BookingsToCSV(bookings)
	case FormatMarkdown:
		data = BookingsToMarkdown(bookings, currency)
	default:
		data = BookingsToText(bookings, currency)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportBookings writes bookings to a file in format f and returns its path.
//
// Defaults to bookings_{userID}.{ext}. Tables are exported as plain text.
func ExportBookings(bookings []models.Booking, userID models.ID, f Format, currency, path string) (string, error) {
	if f == FormatTable {
		f = FormatText
	}
	if path == "" {
		path = fmt.Sprintf("bookings_%s.%s", userID, f.Ext())
	}

	var buf bytes.Buffer
	if err := WriteBookings(&buf, bookings, f, currency); err != nil {
		return "", fmt.Errorf("failed to render bookings: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
