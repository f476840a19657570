package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// fakeCatalogStore 模拟 title 唯一约束下 ON CONFLICT DO NOTHING 的插入语义
type fakeCatalogStore struct {
	templates []*domain.MilestoneTemplate
	documents []*domain.Document
}

func (s *fakeCatalogStore) CreateMilestoneTemplate(template *domain.MilestoneTemplate) error {
	for _, existing := range s.templates {
		if existing.Title == template.Title {
			return nil
		}
	}
	copied := *template
	copied.ID = int64(len(s.templates) + 1)
	s.templates = append(s.templates, &copied)
	return nil
}

func (s *fakeCatalogStore) CreateDocument(document *domain.Document) error {
	for _, existing := range s.documents {
		if existing.Title == document.Title {
			return nil
		}
	}
	copied := *document
	copied.ID = int64(len(s.documents) + 1)
	s.documents = append(s.documents, &copied)
	return nil
}

func TestSeedMilestoneTemplatesIsRerunnable(t *testing.T) {
	store := &fakeCatalogStore{}

	SeedMilestoneTemplates(store)
	require.Len(t, store.templates, len(defaultMilestoneTemplates))

	// 重复执行不会使目录翻倍，后续 provisioning 也就不会出现重复标题的清单项
	SeedMilestoneTemplates(store)
	assert.Len(t, store.templates, len(defaultMilestoneTemplates))

	seen := make(map[string]int)
	for _, template := range store.templates {
		seen[template.Title]++
	}
	for title, count := range seen {
		assert.Equal(t, 1, count, "template %q", title)
	}
}

func TestSeedDocumentsIsRerunnable(t *testing.T) {
	store := &fakeCatalogStore{}

	SeedDocuments(store)
	require.Len(t, store.documents, len(defaultDocuments))

	SeedDocuments(store)
	assert.Len(t, store.documents, len(defaultDocuments))
}
