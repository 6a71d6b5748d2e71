package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/apperrors"
)

type RideRepo struct {
	db *pgxpool.Pool
}

func NewRideRepo(db *pgxpool.Pool) *RideRepo {
	return &RideRepo{db: db}
}

const rideColumns = `
	r.id, r.status, r.id_rider, r.id_driver,
	r.pickup_latitude, r.pickup_longitude,
	r.dropoff_latitude, r.dropoff_longitude,
	r.pickup_time, r.created_at, r.updated_at,
	rider.id, rider.first_name, rider.last_name, rider.email, rider.phone_number,
	driver.id, driver.first_name, driver.last_name, driver.email, driver.phone_number
`

const rideJoins = `
	FROM rides r
	JOIN users rider ON rider.id = r.id_rider
	JOIN users driver ON driver.id = r.id_driver
`

// Empty filter values are passed as '' so one prepared statement serves all
// filter combinations.
const rideFilter = `
	WHERE ($1 = '' OR r.status = $1)
	  AND ($2 = '' OR rider.email = $2)
`

// Haversine over the pickup point, fully parameterized ($3 = latitude,
// $4 = longitude). The least/greatest pair clamps the intermediate into
// [0,1] so nearly-antipodal reference points cannot yield NULL through
// float rounding. Ties break on id so repeated queries over unchanged data
// return identical pages.
const distanceOrder = `
	ORDER BY 2 * 6371 * asin(sqrt(least(1.0, greatest(0.0,
		power(sin(radians(r.pickup_latitude - $3) / 2), 2) +
		cos(radians($3)) * cos(radians(r.pickup_latitude)) *
		power(sin(radians(r.pickup_longitude - $4) / 2), 2))))) ASC,
		r.id ASC
`

const pickupTimeOrder = `
	ORDER BY r.pickup_time ASC, r.id ASC
`

// List returns one page of rides matching the query plus the total count of
// matches across all pages. Rows carry rider and driver snapshots from a
// single joined query.
func (r *RideRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Ride, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)`+rideJoins+rideFilter,
		q.Status, q.RiderEmail,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count rides failed: %w", err)
	}

	var rows pgx.Rows
	if q.Sort == domain.SortByDistance {
		rows, err = r.db.Query(ctx,
			`SELECT `+rideColumns+rideJoins+rideFilter+distanceOrder+` LIMIT $5 OFFSET $6`,
			q.Status, q.RiderEmail, q.RefLat, q.RefLng, q.PageSize, q.Offset(),
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+rideColumns+rideJoins+rideFilter+pickupTimeOrder+` LIMIT $3 OFFSET $4`,
			q.Status, q.RiderEmail, q.PageSize, q.Offset(),
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list rides failed: %w", err)
	}
	defer rows.Close()

	rides := []domain.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ride failed: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list rides failed: %w", err)
	}

	return rides, total, nil
}

func (r *RideRepo) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+rideColumns+rideJoins+` WHERE r.id = $1`, id)

	ride, err := scanRide(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get ride failed: %w", err)
	}
	return &ride, nil
}

func (r *RideRepo) Create(ctx context.Context, in domain.CreateRideInput) (*domain.Ride, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO rides (status, id_rider, id_driver,
			pickup_latitude, pickup_longitude,
			dropoff_latitude, dropoff_longitude, pickup_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		in.Status, in.RiderID, in.DriverID,
		in.PickupLat, in.PickupLng,
		in.DropoffLat, in.DropoffLng, in.PickupTime,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUnknownUser
		}
		return nil, fmt.Errorf("insert ride failed: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update; nil fields keep their stored value.
// updated_at always refreshes, created_at is never touched.
func (r *RideRepo) Update(ctx context.Context, id int64, in domain.UpdateRideInput) (*domain.Ride, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE rides
		SET status            = COALESCE($2, status),
		    id_rider          = COALESCE($3, id_rider),
		    id_driver         = COALESCE($4, id_driver),
		    pickup_latitude   = COALESCE($5, pickup_latitude),
		    pickup_longitude  = COALESCE($6, pickup_longitude),
		    dropoff_latitude  = COALESCE($7, dropoff_latitude),
		    dropoff_longitude = COALESCE($8, dropoff_longitude),
		    pickup_time       = COALESCE($9, pickup_time),
		    updated_at        = NOW()
		WHERE id = $1
	`,
		id, in.Status, in.RiderID, in.DriverID,
		in.PickupLat, in.PickupLng,
		in.DropoffLat, in.DropoffLng, in.PickupTime,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUnknownUser
		}
		return nil, fmt.Errorf("update ride failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a ride; its events go with it via the cascade FK.
func (r *RideRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ride failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func scanRide(row pgx.Row) (domain.Ride, error) {
	var ride domain.Ride
	var riderFirst, riderLast, driverFirst, driverLast string

	err := row.Scan(
		&ride.ID, &ride.Status, &ride.RiderID, &ride.DriverID,
		&ride.PickupLat, &ride.PickupLng,
		&ride.DropoffLat, &ride.DropoffLng,
		&ride.PickupTime, &ride.CreatedAt, &ride.UpdatedAt,
		&ride.Rider.ID, &riderFirst, &riderLast, &ride.Rider.Email, &ride.Rider.Phone,
		&ride.Driver.ID, &driverFirst, &driverLast, &ride.Driver.Email, &ride.Driver.Phone,
	)
	if err != nil {
		return domain.Ride{}, err
	}

	ride.Rider.Name = fullName(riderFirst, riderLast)
	ride.Driver.Name = fullName(driverFirst, driverLast)
	return ride, nil
}

func fullName(first, last string) string {
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
