package api

import (
	"encoding/json"
	"net/http"
	"time"

	"ride-tracker/internal/auth/app"
	"ride-tracker/internal/auth/domain"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/util"
)

type Handler struct {
	service *app.AuthService
	logger  *util.Logger
}

func NewHandler(service *app.AuthService, logger *util.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	resp := map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	}
	util.ResponseInJson(w, http.StatusCreated, resp)
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.Host, r.Method, r.URL.Path)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		util.ErrResponseInJson(w, err)
		h.logger.HTTP(apperrors.StatusCode(err), time.Since(start), r.Host, r.Method, r.URL.Path)
		return
	}

	resp := map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.service.TokenTTL().Seconds()),
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	}
	util.ResponseInJson(w, http.StatusOK, resp)
	h.logger.HTTP(http.StatusOK, time.Since(start), r.Host, r.Method, r.URL.Path)
}
