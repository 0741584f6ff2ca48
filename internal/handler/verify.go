package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/flash"
	"github.com/templui/diary/internal/middleware"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/service"
	"github.com/templui/diary/internal/ui"
)

type VerifyHandler struct {
	verificationService *service.VerificationService
}

func NewVerifyHandler(verificationService *service.VerificationService) *VerifyHandler {
	return &VerifyHandler{verificationService: verificationService}
}

func (h *VerifyHandler) VerifyPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	ui.Render(w, r, ui.Verify(user.Email))
}

func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.verificationService.Verify(r.Context(), user.ID, r.FormValue("verifyId"))
	switch {
	case err == nil:
		flash.Redirect(w, r, model.SuccessFlash(msgVerified), "/diary")
	case errors.Is(err, service.ErrWrongCode):
		flash.Redirect(w, r, model.ErrorFlash(msgWrongCode), "/verify")
	case errors.Is(err, service.ErrUserNotFound):
		flash.Redirect(w, r, model.ErrorFlash(middleware.MsgLoginRequired), "/login")
	default:
		slog.Error("verification failed", "error", err, "user_id", user.ID)
		flash.Redirect(w, r, model.ErrorFlash(msgGenericError), "/verify")
	}
}
