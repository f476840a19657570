package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

func (h *Handler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	details, err := h.repository.GetUserProgressDetails(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取进度成功", details)
}

// nextProgressState 根据翻转前的完成状态推导翻转后的状态：
// 完成时写入时间戳，取消完成时清空。连续翻转两次会还原到初始状态。
func nextProgressState(preToggle bool, now time.Time) (bool, *time.Time) {
	completed := !preToggle
	if !completed {
		return false, nil
	}
	return true, &now
}

// ToggleMilestone 翻转某个里程碑的完成状态。
// 约定：调用方总是传翻转之前的 completed 值，服务端写入取反后的状态，
// 完成时写入 completedAt，取消完成时清空。
func (h *Handler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	milestoneIDParam := chi.URLParam(r, "milestoneID")
	milestoneID, err := strconv.ParseInt(milestoneIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "里程碑ID无效")
		return
	}

	var req struct {
		Completed *bool `json:"completed" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	completed, completedAt := nextProgressState(*req.Completed, time.Now())

	if err := h.repository.UpdateProgressCompletion(myInfo.ID, milestoneID, completed, completedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "进度记录不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新进度成功", map[string]any{
		"milestoneId": milestoneID,
		"completed":   completed,
		"completedAt": completedAt,
	})
}

func (h *Handler) GetMilestoneTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repository.GetAllMilestoneTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取里程碑目录成功", templates)
}
