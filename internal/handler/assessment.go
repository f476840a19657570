package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/provision"
)

// SubmitAssessment 处理评估提交：
// 先追加一条不可变的评估快照，再整体覆盖用户档案，
// 最后在一个事务里重建该用户的进度记录。
// 重复提交会重置清单，不保留之前的完成状态。
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Role      string   `json:"role" validate:"required,oneof=engineering design product marketing"`
		Seniority string   `json:"seniority" validate:"required,oneof=junior mid senior"`
		Skills    []string `json:"skills"`
		Goals     string   `json:"goals"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 追加评估快照
	assessment := &domain.Assessment{
		UserID:    myInfo.ID,
		Role:      domain.Role(req.Role),
		Seniority: domain.Seniority(req.Seniority),
		Skills:    req.Skills,
		Goals:     req.Goals,
	}
	if err := h.repository.InsertAssessment(assessment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 整体覆盖用户档案
	now := time.Now()
	myInfo.Role = domain.Role(req.Role)
	myInfo.Seniority = domain.Seniority(req.Seniority)
	myInfo.OnboardingStartDate = &now
	if err := h.repository.UpdateUserOnboardingProfile(myInfo); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 从目录中选出适用的里程碑并重建进度记录
	templates, err := h.repository.GetAllMilestoneTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	selected := provision.ApplicableTemplates(templates, myInfo.Role, req.Skills)
	templateIDs := make([]int64, 0, len(selected))
	for _, template := range selected {
		templateIDs = append(templateIDs, template.ID)
	}

	if err := h.repository.ReplaceUserProgress(myInfo.ID, templateIDs); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 清单已生成，通知邮件发不出去也不影响本次提交
	if err := h.publishMailMessage(domain.MailMessage{
		Type: "assessment_submitted",
		To:   myInfo.Email,
		Data: domain.AssessmentSubmittedMailData{
			FullName:       myInfo.FullName,
			Role:           string(myInfo.Role),
			MilestoneCount: len(selected),
		},
	}); err != nil {
		slog.Warn("评估完成通知邮件投递失败", "error", err)
	}

	h.successResponse(w, r, "评估提交成功", map[string]any{
		"milestoneCount": len(selected),
	})
}

func (h *Handler) GetMyAssessments(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	assessments, err := h.repository.GetAssessmentsByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取评估记录成功", assessments)
}
