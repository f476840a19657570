package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/llm"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/retriever"
)

// Chat 处理一轮对话：取最后一条用户消息做上下文检索，
// 把检索结果拼进系统指令后把模型的增量回复以 SSE 的形式转发给客户端。
// 检索失败不会中断对话，只是没有上下文；
// 客户端断开连接时通过请求上下文终止对模型的调用。
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []llm.Message `json:"messages" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 找到最后一条用户消息作为检索输入
	utterance := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			utterance = req.Messages[i].Content
			break
		}
	}
	if utterance == "" {
		h.badRequest(w, r, errors.New("消息列表中没有用户消息"))
		return
	}

	// 单轮对话的总时长上限
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.OpenAI.ChatTimeout)*time.Second)
	defer cancel()

	documents := h.retriever.Retrieve(ctx, utterance)
	system := retriever.BuildSystemPrompt(documents)

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.internalServerError(w, r, errors.New("响应流不支持 flush"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	_, err := h.llmClient.StreamChat(ctx, system, req.Messages, func(delta string) {
		payload, marshalErr := json.Marshal(map[string]string{"delta": delta})
		if marshalErr != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	})
	if err != nil {
		// 响应头已经发出，只能以流内事件的形式报告错误
		h.logInternalServerError(r, err)
		fmt.Fprint(w, "data: {\"error\":\"对话失败\"}\n\n")
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
