package booking

import (
	"strings"
	"unicode"

	"github.com/desertthunder/showtime/internal/models"
)

// Row is the seats sharing one row label, in server order.
type Row struct {
	Label string
	Seats []models.Seat
}

// Rows groups seats by their leading non-digit prefix ("A12" is row "A"). Rows keep first-seen order.
func Rows(seats []models.Seat) []Row {
	var rows []Row
	index := map[string]int{}

	for _, seat := range seats {
		label := rowLabel(seat.SeatNumber)
		i, ok := index[label]
		if !ok {
			i = len(rows)
			index[label] = i
			rows = append(rows, Row{Label: label})
		}
		rows[i].Seats = append(rows[i].Seats, seat)
	}
	return rows
}

func rowLabel(seat string) string {
	label := strings.TrimRightFunc(seat, unicode.IsDigit)
	if label == "" {
		return "-"
	}
	return label
}
