package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripmap/internal/trip"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrTripNotFound = errors.New("trip not found")

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// FetchTrip loads and validates the trip document stored under id. The
// returned time is the row's updated_at, used to detect edits.
func FetchTrip(ctx context.Context, db *sql.DB, id string) (*trip.Trip, time.Time, error) {
	q := `SELECT document::text, COALESCE(updated_at, now()) FROM trips WHERE id = $1`
	var doc string
	var updated time.Time
	if err := db.QueryRowContext(ctx, q, id).Scan(&doc, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, fmt.Errorf("%w: %q", ErrTripNotFound, id)
		}
		return nil, time.Time{}, fmt.Errorf("query trip %q: %w", id, err)
	}
	t, err := trip.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("trip %q: %w", id, err)
	}
	return t, updated, nil
}

// TripUpdatedAt returns the last modification time of the trip row.
func TripUpdatedAt(ctx context.Context, db *sql.DB, id string) (time.Time, error) {
	var updated time.Time
	err := db.QueryRowContext(ctx, `SELECT COALESCE(updated_at, now()) FROM trips WHERE id = $1`, id).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrTripNotFound, id)
	}
	return updated, err
}
