package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ride-tracker/internal/rides/app"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/util"
)

type Handler struct {
	service *app.RideService
	logger  *util.Logger
}

func NewHandler(service *app.RideService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) ListRides(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()

	params := app.ListParams{
		Status:     query.Get("status"),
		RiderEmail: query.Get("rider_email"),
		SortBy:     query.Get("sort_by"),
		Latitude:   query.Get("latitude"),
		Longitude:  query.Get("longitude"),
		Page:       atoiOrZero(query.Get("page")),
		PageSize:   atoiOrZero(query.Get("page_size")),
	}

	page, err := h.service.ListRides(r.Context(), params)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	util.ResponseInJson(w, http.StatusOK, page)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.Host, r.Method, r.URL.Path)
}

func (h *Handler) GetRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseRideID(r)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	query := r.URL.Query()
	view, err := h.service.GetRide(r.Context(), id, query.Get("latitude"), query.Get("longitude"))
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	util.ResponseInJson(w, http.StatusOK, view)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.Host, r.Method, r.URL.Path)
}

func (h *Handler) CreateRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req createRideRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	query := r.URL.Query()
	view, err := h.service.CreateRide(r.Context(), app.CreateParams{
		Status:       req.Status,
		RiderID:      req.RiderID,
		DriverID:     req.DriverID,
		PickupLat:    req.PickupLatitude,
		PickupLng:    req.PickupLongitude,
		DropoffLat:   req.DropoffLatitude,
		DropoffLng:   req.DropoffLongitude,
		PickupTime:   req.PickupTime,
		RefLatitude:  query.Get("latitude"),
		RefLongitude: query.Get("longitude"),
	})
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	util.ResponseInJson(w, http.StatusCreated, view)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.Host, r.Method, r.URL.Path)
}

func (h *Handler) UpdateRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseRideID(r)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	var req updateRideRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	query := r.URL.Query()
	view, err := h.service.UpdateRide(r.Context(), id, app.UpdateParams{
		Status:       req.Status,
		RiderID:      req.RiderID,
		DriverID:     req.DriverID,
		PickupLat:    req.PickupLatitude,
		PickupLng:    req.PickupLongitude,
		DropoffLat:   req.DropoffLatitude,
		DropoffLng:   req.DropoffLongitude,
		PickupTime:   req.PickupTime,
		RefLatitude:  query.Get("latitude"),
		RefLongitude: query.Get("longitude"),
	})
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	util.ResponseInJson(w, http.StatusOK, view)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.Host, r.Method, r.URL.Path)
}

func (h *Handler) DeleteRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseRideID(r)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	if err := h.service.DeleteRide(r.Context(), id); err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.logger.HTTP(http.StatusNoContent, time.Since(start), r.Host, r.Method, r.URL.Path)
}

// parseRideID reads the {id} path segment. A non-numeric id cannot name a
// ride, so it surfaces as not found rather than a parse error.
func parseRideID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
