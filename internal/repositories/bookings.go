package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/desertthunder/showtime/internal/models"
)

// BookingRepository caches the last booking history fetched for each user.
//
// The cache is read-only from the client's point of view: it mirrors the server and is replaced wholesale on every
// successful fetch.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new BookingRepository with the given database connection
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CachedBookings is a user's cached history and when it was fetched.
type CachedBookings struct {
	Bookings  []models.Booking
	FetchedAt time.Time
}

// Replace swaps the cached bookings of userID for bookings in a single transaction.
func (r *BookingRepository) Replace(userID models.ID, bookings []models.Booking) error {
	fetchedAt := now()

	return withTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM bookings WHERE user_id = ?`, userID.String()); err != nil {
			return fmt.Errorf("failed to clear cached bookings: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO bookings (booking_id, user_id, movie_id, show_id, seats, total_amount, status, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range bookings {
			seats, err := json.Marshal(b.SelectedSeats)
			if err != nil {
				return fmt.Errorf("failed to encode seats: %w", err)
			}

			_, err = stmt.Exec(
				b.BookingID.String(),
				userID.String(),
				b.MovieID.String(),
				b.ShowID.String(),
				string(seats),
				b.TotalAmount.String(),
				b.BookingStatus,
				fetchedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to cache booking %s: %w", b.BookingID, err)
			}
		}
		return nil
	})
}

// ListByUser returns the cached bookings of userID, ordered by booking id.
func (r *BookingRepository) ListByUser(userID models.ID) (*CachedBookings, error) {
	query := `
		SELECT booking_id, movie_id, show_id, seats, total_amount, status, fetched_at
		FROM bookings
		WHERE user_id = ?
		ORDER BY booking_id
	`

	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query cached bookings: %w", err)
	}
	defer rows.Close()

	out := &CachedBookings{Bookings: []models.Booking{}}
	for rows.Next() {
		var (
			b            models.Booking
			bookingID    string
			movieID      string
			showID       string
			seats, total string
			fetchedAt    time.Time
		)

		if err := rows.Scan(&bookingID, &movieID, &showID, &seats, &total, &b.BookingStatus, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached booking: %w", err)
		}
		if err := json.Unmarshal([]byte(seats), &b.SelectedSeats); err != nil {
			return nil, fmt.Errorf("failed to decode seats of %s: %w", bookingID, err)
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("failed to decode amount of %s: %w", bookingID, err)
		}

		b.BookingID = models.ID(bookingID)
		b.UserID = userID
		b.MovieID = models.ID(movieID)
		b.ShowID = models.ID(showID)
		b.TotalAmount = amount
		out.Bookings = append(out.Bookings, b)

		if fetchedAt.After(out.FetchedAt) {
			out.FetchedAt = fetchedAt
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached bookings: %w", err)
	}
	return out, nil
}

// Clear drops the cached bookings of userID and reports how many were removed.
func (r *BookingRepository) Clear(userID models.ID) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM bookings WHERE user_id = ?`, userID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to clear cached bookings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared bookings: %w", err)
	}
	return n, nil
}
