package api

import "net/http"

// RegisterRoutes mounts the open auth endpoints; no gate runs in front of
// them.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
}
