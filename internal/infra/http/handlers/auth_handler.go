package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/xavierca1/qrleads/internal/auth"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
)

const adminHome = "/admin"

type AuthHandler struct {
	Credentials auth.Credentials
	Tokens      *auth.Tokens
	// Secure marks the session cookie Secure; off only in development.
	Secure bool
}

func NewAuthHandler(creds auth.Credentials, tokens *auth.Tokens, secure bool) *AuthHandler {
	return &AuthHandler{Credentials: creds, Tokens: tokens, Secure: secure}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginView struct {
	Email string
	From  string
	Error string
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}
	if !h.Credentials.Verify(req.Email, req.Password) {
		slog.Warn("admin login rejected", "email", req.Email)
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	if !h.startSession(w, r, req.Email) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "", "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": claims.Email, "role": claims.Role})
}

// LoginPage handles GET /admin/login. A visitor who is already signed in
// goes straight to the dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.AdminFromRequest(r, h.Tokens); ok {
		http.Redirect(w, r, adminHome, http.StatusFound)
		return
	}
	renderView(w, http.StatusOK, "login.html", loginView{From: safeRedirect(r.URL.Query().Get("from"))})
}

// LoginForm handles the HTML form post to /admin/login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	from := safeRedirect(r.PostForm.Get("from"))
	if !h.Credentials.Verify(email, r.PostForm.Get("password")) {
		slog.Warn("admin login rejected", "email", email)
		renderView(w, http.StatusUnauthorized, "login.html", loginView{
			Email: email,
			From:  from,
			Error: "Invalid email or password",
		})
		return
	}
	if !h.startSession(w, r, email) {
		return
	}
	http.Redirect(w, r, from, http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, email string) bool {
	token, err := h.Tokens.Issue(email)
	if err != nil {
		writeError(w, r, err)
		return false
	}
	http.SetCookie(w, h.cookie(token, int(auth.TokenTTL.Seconds())))
	slog.Info("admin signed in", "email", email)
	return true
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// safeRedirect keeps redirects on this host.
func safeRedirect(from string) string {
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return adminHome
	}
	return from
}
