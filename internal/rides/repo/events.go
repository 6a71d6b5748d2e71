package repo

import (
	"context"
	"fmt"
	"time"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/apperrors"
)

// EventsSince fetches every event newer than since for the given rides in a
// single query, grouped by ride. Every requested id is present in the
// result, mapping to an empty slice when the ride has no qualifying events.
// Ordering within a ride is by creation time ascending.
func (r *RideRepo) EventsSince(ctx context.Context, rideIDs []int64, since time.Time) (map[int64][]domain.RideEvent, error) {
	grouped := make(map[int64][]domain.RideEvent, len(rideIDs))
	for _, id := range rideIDs {
		grouped[id] = []domain.RideEvent{}
	}
	if len(rideIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, id_ride, description, created_at
		FROM ride_events
		WHERE id_ride = ANY($1) AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`, rideIDs, since)
	if err != nil {
		return nil, fmt.Errorf("load ride events failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev domain.RideEvent
		if err := rows.Scan(&ev.ID, &ev.RideID, &ev.Description, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ride event failed: %w", err)
		}
		grouped[ev.RideID] = append(grouped[ev.RideID], ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ride events failed: %w", err)
	}

	return grouped, nil
}

// AddEvent appends an immutable log entry to a ride.
func (r *RideRepo) AddEvent(ctx context.Context, rideID int64, description string) (*domain.RideEvent, error) {
	ev := domain.RideEvent{RideID: rideID, Description: description}
	err := r.db.QueryRow(ctx, `
		INSERT INTO ride_events (id_ride, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, rideID, description).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("insert ride event failed: %w", err)
	}
	return &ev, nil
}
