package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"ride-tracker/internal/geo"
	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/util"
	"ride-tracker/internal/shared/validation"
)

// eventWindow is the trailing window of events attached to every ride view.
const eventWindow = 24 * time.Hour

// Repository is the storage surface the service needs. The pgx
// implementation lives in internal/rides/repo; tests substitute a fake.
type Repository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Ride, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Ride, error)
	Create(ctx context.Context, in domain.CreateRideInput) (*domain.Ride, error)
	Update(ctx context.Context, id int64, in domain.UpdateRideInput) (*domain.Ride, error)
	Delete(ctx context.Context, id int64) error
	EventsSince(ctx context.Context, rideIDs []int64, since time.Time) (map[int64][]domain.RideEvent, error)
	AddEvent(ctx context.Context, rideID int64, description string) (*domain.RideEvent, error)
}

// Notifier receives every recorded ride event. Implementations must not
// block the request path.
type Notifier interface {
	EventRecorded(ctx context.Context, event domain.RideEvent)
}

type RideService struct {
	repo     Repository
	notifier Notifier
	logger   *util.Logger
	now      func() time.Time
}

func NewRideService(repo Repository, notifier Notifier, logger *util.Logger) *RideService {
	return &RideService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ListParams is the raw query surface of GET /rides. Latitude and Longitude
// stay unparsed so validation failures can be reported against the exact
// parameter the caller sent.
type ListParams struct {
	Status     string
	RiderEmail string
	SortBy     string
	Latitude   string
	Longitude  string
	Page       int
	PageSize   int
}

type refPoint struct {
	lat float64
	lng float64
}

// ListRides validates the raw query, fetches the matching page, annotates
// distances when a reference point was supplied, and attaches each ride's
// events from the trailing 24h window with one bulk fetch.
func (s *RideService) ListRides(ctx context.Context, p ListParams) (*domain.Page, error) {
	instance := "RideService.ListRides"

	if p.Status != "" {
		if err := validation.ValidateRideStatus(p.Status); err != nil {
			return nil, err
		}
	}

	sort := domain.SortByPickupTime
	var ref *refPoint
	if p.SortBy == domain.SortByDistance {
		// Distance ordering needs a complete, valid reference point.
		pt, err := parseReference(p.Latitude, p.Longitude, true)
		if err != nil {
			return nil, err
		}
		ref = pt
		sort = domain.SortByDistance
	} else {
		// Any other sort_by falls back to pickup time. A reference point is
		// still honored for per-ride distance annotation; an unusable one is
		// ignored.
		ref, _ = parseReference(p.Latitude, p.Longitude, false)
	}

	page, pageSize := validation.ClampPagination(p.Page, p.PageSize)

	q := domain.ListQuery{
		Status:     p.Status,
		RiderEmail: p.RiderEmail,
		Sort:       sort,
		Page:       page,
		PageSize:   pageSize,
	}
	if ref != nil {
		q.RefLat = ref.lat
		q.RefLng = ref.lng
	}

	rides, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error(instance, err)
		return nil, err
	}

	views, err := s.assembleViews(ctx, rides, ref)
	if err != nil {
		s.logger.Error(instance, err)
		return nil, err
	}

	return &domain.Page{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  views,
	}, nil
}

// GetRide returns a single ride view assembled the same way as a one-item
// page. latStr/lngStr come straight off the query string; an unusable pair
// just means no distance annotation.
func (s *RideService) GetRide(ctx context.Context, id int64, latStr, lngStr string) (*domain.RideView, error) {
	ride, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !apperrors.IsClientError(err) {
			s.logger.Error("RideService.GetRide", err)
		}
		return nil, err
	}
	ref, _ := parseReference(latStr, lngStr, false)
	return s.assembleOne(ctx, ride, ref)
}

// assembleViews turns ride rows into API views: distance annotation against
// ref (when present) and a single bulk event fetch keyed by the page's ride
// ids. Rides with no qualifying events carry an empty list, never null.
func (s *RideService) assembleViews(ctx context.Context, rides []domain.Ride, ref *refPoint) ([]domain.RideView, error) {
	ids := make([]int64, 0, len(rides))
	for _, ride := range rides {
		ids = append(ids, ride.ID)
	}

	events, err := s.repo.EventsSince(ctx, ids, s.now().Add(-eventWindow))
	if err != nil {
		return nil, err
	}

	views := make([]domain.RideView, 0, len(rides))
	for _, ride := range rides {
		views = append(views, buildView(ride, ref, events[ride.ID]))
	}
	return views, nil
}

func (s *RideService) assembleOne(ctx context.Context, ride *domain.Ride, ref *refPoint) (*domain.RideView, error) {
	views, err := s.assembleViews(ctx, []domain.Ride{*ride}, ref)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildView(ride domain.Ride, ref *refPoint, events []domain.RideEvent) domain.RideView {
	view := domain.RideView{
		ID:     ride.ID,
		Status: ride.Status,
		Rider: domain.UserView{
			ID:    ride.Rider.ID,
			Name:  ride.Rider.Name,
			Email: ride.Rider.Email,
			Phone: ride.Rider.Phone,
		},
		Driver: domain.UserView{
			ID:    ride.Driver.ID,
			Name:  ride.Driver.Name,
			Email: ride.Driver.Email,
			Phone: ride.Driver.Phone,
		},
		Pickup:           domain.PointView{Lat: ride.PickupLat, Lon: ride.PickupLng},
		Dropoff:          domain.PointView{Lat: ride.DropoffLat, Lon: ride.DropoffLng},
		PickupTime:       ride.PickupTime,
		TodaysRideEvents: []domain.EventView{},
	}

	for _, ev := range events {
		view.TodaysRideEvents = append(view.TodaysRideEvents, domain.EventView{
			ID:          ev.ID,
			Description: ev.Description,
			CreatedAt:   ev.CreatedAt,
		})
	}

	if ref != nil {
		d := geo.Distance(ref.lat, ref.lng, ride.PickupLat, ride.PickupLng)
		view.DistanceToPickup = &d
	}

	return view
}

// parseReference parses an optional latitude/longitude pair. When required,
// a missing, non-numeric, non-finite or out-of-range value is an
// InvalidCoordinates error scoped to the offending parameter. When not
// required, an unusable pair is simply absent.
func parseReference(latStr, lngStr string, required bool) (*refPoint, error) {
	if latStr == "" && lngStr == "" {
		if required {
			return nil, apperrors.NewFieldError("latitude,longitude", apperrors.ErrInvalidCoordinates)
		}
		return nil, nil
	}

	lat, err := parseCoordinate(latStr, validation.ValidateLatitude)
	if err != nil {
		if required {
			return nil, apperrors.NewFieldError("latitude", apperrors.ErrInvalidCoordinates)
		}
		return nil, nil
	}
	lng, err := parseCoordinate(lngStr, validation.ValidateLongitude)
	if err != nil {
		if required {
			return nil, apperrors.NewFieldError("longitude", apperrors.ErrInvalidCoordinates)
		}
		return nil, nil
	}

	return &refPoint{lat: lat, lng: lng}, nil
}

func parseCoordinate(raw string, validate func(float64) error) (float64, error) {
	if raw == "" {
		return 0, errors.New("missing coordinate")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("coordinate is not finite")
	}
	if err := validate(v); err != nil {
		return 0, err
	}
	return v, nil
}
