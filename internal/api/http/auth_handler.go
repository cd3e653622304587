package http

import (
	"net/http"
	"time"

	"recruitment-tracker/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	IsAdmin   bool      `json:"isAdmin"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /auth
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, session)
}

// Session handles GET /auth/session. The page asks here instead of trusting
// anything stored client side.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		ErrorResponse(w, http.StatusUnauthorized, "No token provided")
		return
	}
	resp := sessionResponse{IsAdmin: claims.IsAdmin}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	JSONResponse(w, http.StatusOK, resp)
}
