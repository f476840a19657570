// Package retriever 实现对话端点使用的轻量级上下文检索：
// 对文档正文做关键词子串匹配，完全没有命中时退回到固定的分类兜底。
// 不做语义检索，不做相关度排序。
package retriever

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

const (
	// 关键词命中最多返回 5 篇文档，分类兜底最多返回 3 篇
	maxKeywordDocuments  = 5
	maxFallbackDocuments = 3

	// 长度小于该值的 token 会被丢弃
	minTokenLength = 4
)

var punctuationReplacer = strings.NewReplacer("?", "", ".", "", ",", "", "!", "")

var stopWords = map[string]bool{
	"what":      true,
	"where":     true,
	"when":      true,
	"which":     true,
	"how":       true,
	"should":    true,
	"would":     true,
	"could":     true,
	"with":      true,
	"your":      true,
	"this":      true,
	"that":      true,
	"those":     true,
	"these":     true,
	"most":      true,
	"important": true,
	"about":     true,
	"have":      true,
	"does":      true,
	"need":      true,
	"please":    true,
}

type DocumentStore interface {
	SearchDocumentsByKeywords(ctx context.Context, keywords []string, limit int) ([]*domain.Document, error)
	GetDocumentsByCategories(ctx context.Context, categories []string, limit int) ([]*domain.Document, error)
}

type Retriever struct {
	store DocumentStore
}

func New(store DocumentStore) *Retriever {
	return &Retriever{
		store: store,
	}
}

// Keywords 把用户消息规范化成检索关键词：
// 小写、去掉固定的标点、按空白切分，丢弃过短的 token 和停用词
func Keywords(utterance string) []string {
	normalized := punctuationReplacer.Replace(strings.ToLower(utterance))

	keywords := make([]string, 0)
	for _, token := range strings.Fields(normalized) {
		if len(token) < minTokenLength {
			continue
		}
		if stopWords[token] {
			continue
		}
		keywords = append(keywords, token)
	}

	return keywords
}

// Retrieve 为一条用户消息返回待注入的文档。
// 优先返回正文子串命中的文档，完全没有命中时才应用分类兜底，
// 这个先后顺序不能改变，下游根据文档数量决定是否注入上下文段落。
// 任何内部错误都不向调用方传播，检索失败时对话在没有上下文的情况下继续。
func (rt *Retriever) Retrieve(ctx context.Context, utterance string) []*domain.Document {
	keywords := Keywords(utterance)

	if len(keywords) > 0 {
		documents, err := rt.store.SearchDocumentsByKeywords(ctx, keywords, maxKeywordDocuments)
		if err != nil {
			slog.Warn("关键词检索失败，跳过上下文注入", "error", err)
			return []*domain.Document{}
		}
		if len(documents) > 0 {
			return documents
		}
	}

	categories := fallbackCategories(utterance)
	if len(categories) == 0 {
		return []*domain.Document{}
	}

	documents, err := rt.store.GetDocumentsByCategories(ctx, categories, maxFallbackDocuments)
	if err != nil {
		slog.Warn("分类兜底检索失败，跳过上下文注入", "error", err)
		return []*domain.Document{}
	}

	return documents
}

func fallbackCategories(utterance string) []string {
	normalized := punctuationReplacer.Replace(strings.ToLower(utterance))

	switch {
	case strings.Contains(normalized, "connect") || strings.Contains(normalized, "who"):
		return []string{domain.DocumentCategoryPeople}
	case strings.Contains(normalized, "doc") || strings.Contains(normalized, "important"):
		return []string{domain.DocumentCategoryEngineering, domain.DocumentCategoryIT}
	default:
		return nil
	}
}

// 对话助手的固定系统指令，检索到的文档会被原样追加在后面
const systemInstruction = `You are a Smart Onboarding Companion for a new team member.
Your goal is to help them get productive fast, understand the codebase, and find the right people.
Be encouraging, concise, and technical when appropriate.
If you don't know something, ask them to check with their onboarding buddy.`

// BuildSystemPrompt 把检索结果拼接到系统指令之后。
// 没有检索到文档时不追加任何段落，系统指令保持原样。
func BuildSystemPrompt(documents []*domain.Document) string {
	if len(documents) == 0 {
		return systemInstruction
	}

	blocks := make([]string, 0, len(documents))
	for _, document := range documents {
		blocks = append(blocks, "### "+document.Title+"\n"+document.Content)
	}

	return systemInstruction + "\n\nRelevant Context:\n\n" + strings.Join(blocks, "\n\n")
}
