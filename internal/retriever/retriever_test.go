package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// fakeStore 在内存中模拟文档表的检索语义
type fakeStore struct {
	documents []*domain.Document
	err       error

	keywordCalls  int
	categoryCalls int
}

func (s *fakeStore) SearchDocumentsByKeywords(_ context.Context, keywords []string, limit int) ([]*domain.Document, error) {
	s.keywordCalls++
	if s.err != nil {
		return nil, s.err
	}

	matched := make([]*domain.Document, 0)
	for _, document := range s.documents {
		content := strings.ToLower(document.Content)
		for _, keyword := range keywords {
			if strings.Contains(content, strings.ToLower(keyword)) {
				matched = append(matched, document)
				break
			}
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (s *fakeStore) GetDocumentsByCategories(_ context.Context, categories []string, limit int) ([]*domain.Document, error) {
	s.categoryCalls++
	if s.err != nil {
		return nil, s.err
	}

	matched := make([]*domain.Document, 0)
	for _, document := range s.documents {
		for _, category := range categories {
			if document.Category == category {
				matched = append(matched, document)
				break
			}
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func knowledgeBase() []*domain.Document {
	return []*domain.Document{
		{ID: 1, Title: "VPN Configuration Guide", Content: "To connect to the corporate network, download the VPN client and apply the standard configuration profile. Contact IT support via #it-help for activation issues.", Category: "it"},
		{ID: 2, Title: "Auth Service Architecture", Content: "The Auth Service handles JWT authentication and OAuth2. It uses Redis for session caching and PostgreSQL for user persistence.", Category: "engineering"},
		{ID: 3, Title: "Engineering Team Directory", Content: "Meet the team! Sarah Chen (Lead Engineer), Marcus Thorne (Product Manager), Elena Rodriguez (Lead Designer).", Category: "people"},
		{ID: 4, Title: "Who to Talk to for What", Content: "Backend: Sarah Chen. Design System: Elena Rodriguez. Roadmap: Marcus Thorne. HR: Jamie Loo.", Category: "people"},
	}
}

func TestKeywordsDropShortTokensAndStopWords(t *testing.T) {
	assert.Empty(t, Keywords("how are you"))
	assert.Empty(t, Keywords("What should I do?"))
	assert.Equal(t, []string{"config"}, Keywords("Where is the VPN config?"))
	assert.Equal(t, []string{"authentication", "works"}, Keywords("how authentication works"))
}

func TestRetrieveBySubstringMatch(t *testing.T) {
	store := &fakeStore{documents: knowledgeBase()}
	rt := New(store)

	documents := rt.Retrieve(context.Background(), "Where is the VPN config?")

	require.Len(t, documents, 1)
	assert.Equal(t, "VPN Configuration Guide", documents[0].Title)
	// 子串命中后不应该再走分类兜底
	assert.Equal(t, 0, store.categoryCalls)
}

func TestRetrieveStopWordsOnlyReturnsNothing(t *testing.T) {
	store := &fakeStore{documents: knowledgeBase()}
	rt := New(store)

	documents := rt.Retrieve(context.Background(), "how are you")

	assert.Empty(t, documents)
	assert.Equal(t, 0, store.keywordCalls)
	assert.Equal(t, 0, store.categoryCalls)
}

func TestRetrievePeopleFallback(t *testing.T) {
	store := &fakeStore{documents: knowledgeBase()}
	rt := New(store)

	documents := rt.Retrieve(context.Background(), "who can I talk to")

	require.Len(t, documents, 2)
	for _, document := range documents {
		assert.Equal(t, "people", document.Category)
	}
}

func TestRetrieveDocsFallback(t *testing.T) {
	store := &fakeStore{documents: knowledgeBase()}
	rt := New(store)

	// "docs" 没有任何正文命中，但包含 "doc"，应该兜底到 engineering/it 分类
	documents := rt.Retrieve(context.Background(), "most important docs")

	require.NotEmpty(t, documents)
	for _, document := range documents {
		assert.Contains(t, []string{"engineering", "it"}, document.Category)
	}
}

func TestRetrieveSwallowsStoreErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	rt := New(store)

	documents := rt.Retrieve(context.Background(), "Where is the VPN config?")

	assert.NotNil(t, documents)
	assert.Empty(t, documents)
}

func TestBuildSystemPromptWithoutDocuments(t *testing.T) {
	prompt := BuildSystemPrompt(nil)

	assert.NotContains(t, prompt, "Relevant Context")
}

func TestBuildSystemPromptWithDocuments(t *testing.T) {
	documents := []*domain.Document{
		{Title: "VPN Configuration Guide", Content: "Download the VPN client."},
		{Title: "Git Workflow", Content: "Trunk-based development."},
	}

	prompt := BuildSystemPrompt(documents)

	assert.Contains(t, prompt, "Relevant Context:")
	assert.Contains(t, prompt, "### VPN Configuration Guide\nDownload the VPN client.")
	assert.Contains(t, prompt, "### Git Workflow\nTrunk-based development.")
}
