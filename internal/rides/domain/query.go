package domain

// Sort modes accepted by the listing query.
const (
	SortByPickupTime = "pickup_time"
	SortByDistance   = "distance"
)

// ListQuery is the validated form of a listing request handed to the
// repository. When Sort is SortByDistance, RefLat/RefLng hold the reference
// point the ordering is computed against.
type ListQuery struct {
	Status     string
	RiderEmail string
	Sort       string
	RefLat     float64
	RefLng     float64
	Page       int
	PageSize   int
}

// Offset returns the row offset for the query's page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
