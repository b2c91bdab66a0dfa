// internal/actions/forms/restaurant-form/recorder.go
package restaurantform

import (
	"context"
	"database/sql"
	"fmt"
)

// Recorder stores completed reservations.
type Recorder interface {
	Record(ctx context.Context, r Reservation) error
}

const insertReservationSQL = `
	INSERT INTO restaurant_reservations (
		id, sender_id, cuisine, party_size, outdoor_seating,
		preferences, comments, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// PostgresRecorder appends one row per completed form.
type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (r *PostgresRecorder) Record(ctx context.Context, res Reservation) error {
	_, err := r.db.ExecContext(ctx, insertReservationSQL,
		res.ID,
		res.SenderID,
		res.Cuisine,
		res.PartySize,
		res.OutdoorSeating,
		res.Preferences,
		res.Comments,
		res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation %s: %w", res.ID, err)
	}
	return nil
}
