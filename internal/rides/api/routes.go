package api

import (
	"net/http"

	"ride-tracker/internal/rides/notify"
)

// RegisterRoutes mounts the ride endpoints behind the admin gate. The live
// event feed is only mounted when a websocket hub is wired.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, gate func(http.Handler) http.Handler, hub *notify.Hub) {
	mux.Handle("GET /rides", gate(http.HandlerFunc(h.ListRides)))
	mux.Handle("POST /rides", gate(http.HandlerFunc(h.CreateRide)))
	mux.Handle("GET /rides/{id}", gate(http.HandlerFunc(h.GetRide)))
	mux.Handle("PATCH /rides/{id}", gate(http.HandlerFunc(h.UpdateRide)))
	mux.Handle("DELETE /rides/{id}", gate(http.HandlerFunc(h.DeleteRide)))

	if hub != nil {
		mux.Handle("GET /rides/events/live", gate(http.HandlerFunc(hub.ServeWS)))
	}
}
