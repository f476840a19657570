package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// GetDocuments 返回按分类分组的知识库文档，
// 带 query 参数时先按标题/正文/分类做子串过滤
func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	var documents []*domain.Document
	var err error
	if query != "" {
		documents, err = h.repository.SearchDocuments(query)
	} else {
		documents, err = h.repository.GetAllDocuments()
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	grouped := make(map[string][]*domain.Document)
	for _, document := range documents {
		grouped[document.Category] = append(grouped[document.Category], document)
	}

	h.successResponse(w, r, "获取文档列表成功", grouped)
}
