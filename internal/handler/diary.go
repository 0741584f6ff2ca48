package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/flash"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/service"
	"github.com/templui/diary/internal/ui"
)

type DiaryHandler struct {
	diaryService *service.DiaryService
}

func NewDiaryHandler(diaryService *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

// List shows every entry from every user.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.diaryService.List(r.Context())
	if err != nil {
		slog.Error("failed to list diary entries", "error", err)
		http.Error(w, "Failed to load diary", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, ui.DiaryList(entries))
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entry, err := h.diaryService.Create(r.Context(), user, r.FormValue("content"))
	if errors.Is(err, service.ErrEmptyContent) {
		flash.Redirect(w, r, model.ErrorFlash(msgEmptyContent), "/diary")
		return
	}
	if err != nil {
		slog.Error("failed to create diary entry", "error", err, "user_id", user.ID)
		flash.Redirect(w, r, model.ErrorFlash(msgCreateFailed), "/diary")
		return
	}

	slog.Info("diary entry created", "diary_id", entry.ID, "user_id", user.ID)
	flash.Redirect(w, r, model.SuccessFlash(msgCreated), "/diary")
}

// EditPage expects the ownership guard to have loaded the entry.
func (h *DiaryHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	entry := ctxkeys.Diary(r.Context())
	if entry == nil {
		flash.Redirect(w, r, model.ErrorFlash(msgDiaryNotFound), "/diary")
		return
	}

	ui.Render(w, r, ui.DiaryEdit(entry))
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	entry := ctxkeys.Diary(r.Context())
	if entry == nil {
		flash.Redirect(w, r, model.ErrorFlash(msgDiaryNotFound), "/diary")
		return
	}

	err := h.diaryService.Update(r.Context(), entry.ID, r.FormValue("content"))
	switch {
	case err == nil:
		slog.Info("diary entry updated", "diary_id", entry.ID)
		flash.Redirect(w, r, model.SuccessFlash(msgUpdated), "/diary")
	case errors.Is(err, service.ErrEmptyContent):
		flash.Redirect(w, r, model.ErrorFlash(msgEmptyContent), "/diary")
	case errors.Is(err, service.ErrDiaryNotFound):
		flash.Redirect(w, r, model.ErrorFlash(msgDiaryNotFound), "/diary")
	default:
		slog.Error("failed to update diary entry", "error", err, "diary_id", entry.ID)
		flash.Redirect(w, r, model.ErrorFlash(msgUpdateFailed), "/diary")
	}
}

// Delete removes the entry for any verified caller. There is deliberately no
// ownership guard on this route.
func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user := ctxkeys.User(r.Context())

	err := h.diaryService.Delete(r.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrDiaryNotFound) {
			slog.Error("failed to delete diary entry", "error", err, "diary_id", id)
		}
		flash.Redirect(w, r, model.ErrorFlash(msgDeleteFailed), "/diary")
		return
	}

	slog.Info("diary entry deleted", "diary_id", id, "user_id", user.ID)
	flash.Redirect(w, r, model.SuccessFlash(msgDeleted), "/diary")
}
