package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/flash"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/service"
	"github.com/templui/diary/internal/ui"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.Login(ui.AuthForm{}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Info("login failed", "username", username)
			flash.Redirect(w, r, model.ErrorFlash(msgInvalidLogin), "/login")
			return
		}
		slog.Error("login error", "error", err, "username", username)
		flash.Redirect(w, r, model.ErrorFlash(msgGenericError), "/login")
		return
	}

	err = h.authService.StartSession(w, user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		flash.Redirect(w, r, model.ErrorFlash(msgGenericError), "/login")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	// unverified users are bounced on to /verify by the diary guard
	http.Redirect(w, r, "/diary", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.Register(ui.AuthForm{}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.authService.Register(r.Context(), username, email, password)
	if err != nil {
		flash.Redirect(w, r, model.ErrorFlash(registerErrorMessage(err)), "/register")
		return
	}

	err = h.authService.StartSession(w, user)
	if err != nil {
		slog.Error("failed to start session after register", "error", err, "user_id", user.ID)
		flash.Redirect(w, r, model.ErrorFlash(msgGenericError), "/login")
		return
	}

	flash.Redirect(w, r, model.SuccessFlash(msgRegistered), "/diary")
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists), errors.Is(err, service.ErrUsernameTaken):
		return msgAccountExists
	case errors.Is(err, service.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, service.ErrInvalidUsername):
		return msgInvalidUsername
	case errors.Is(err, service.ErrInvalidPassword):
		return msgInvalidPassword
	default:
		slog.Error("registration failed", "error", err)
		return msgGenericError
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	flash.Redirect(w, r, model.SuccessFlash(msgLoggedOut), "/")
}
