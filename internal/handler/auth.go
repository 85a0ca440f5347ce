package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegister creates an account. Business accounts also get a store.
// POST /api/register
// Request:  {"username","email","password","accountKind","name","bio","storeName",...}
// Response: 201 {"message","userId"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	user, _, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully.",
		"userId":  user.ID,
	})
}

// HandleLogin checks credentials and issues a token, both in the body and as
// the auth_token cookie.
// POST /api/login
// Request:  {"email":"...","password":"..."}
// Response: {"message","userId","username","accountKind","token"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		writeServiceError(w, "login user", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Login successful.",
		"userId":      user.ID,
		"username":    user.Username,
		"accountKind": string(user.AccountKind),
		"token":       token,
	})
}

// HandleLogout clears the auth cookie.
// POST /api/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}
