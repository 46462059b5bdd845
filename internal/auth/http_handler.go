package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"booksapi/internal/httpx"

	"github.com/rs/zerolog"
)

type HTTPHandler struct {
	service *Service
	log     zerolog.Logger
}

func NewHTTPHandler(service *Service, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResp struct {
	Token string `json:"token"`
}

// Login handles POST /login
// @Summary Log in
// @Description Exchange the account credentials for a bearer token valid for one hour
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Credentials"
// @Success 200 {object} LoginResp
// @Failure 400 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.MessageResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if httpx.IsBodyTooLarge(err) {
			httpx.JSONBodyTooLarge(w)
			return
		}
		httpx.JSONValidationError(w, httpx.NewValidationError("body", "request body must be a JSON object"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("login failed")
		httpx.JSONInternalError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, LoginResp{Token: token})
}
