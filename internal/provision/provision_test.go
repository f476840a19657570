package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func catalog() []*domain.MilestoneTemplate {
	return []*domain.MilestoneTemplate{
		{ID: 1, Title: "HR Onboarding", Week: 1},
		{ID: 2, Title: "Team Intro", Week: 1},
		{ID: 3, Title: "Complete System Setup", Week: 1, RoleTarget: strPtr("engineering")},
		{ID: 4, Title: "First PR Merged", Week: 1, RoleTarget: strPtr("engineering")},
		{ID: 5, Title: "Figma Setup", Week: 1, RoleTarget: strPtr("design")},
		{ID: 6, Title: "Product Vision", Week: 1, RoleTarget: strPtr("product")},
		{ID: 7, Title: "Brand Voice Guide", Week: 1, RoleTarget: strPtr("marketing")},
		{ID: 8, Title: "React Codebase Tour", Week: 2, SkillTarget: strPtr("React")},
		{ID: 9, Title: "Docker Deep Dive", Week: 2, SkillTarget: strPtr("Docker")},
	}
}

func titles(templates []*domain.MilestoneTemplate) []string {
	result := make([]string, 0, len(templates))
	for _, template := range templates {
		result = append(result, template.Title)
	}
	return result
}

func TestEveryRoleGetsRoleAgnosticTemplates(t *testing.T) {
	roles := []domain.Role{domain.RoleEngineering, domain.RoleDesign, domain.RoleProduct, domain.RoleMarketing}

	for _, role := range roles {
		selected := titles(ApplicableTemplates(catalog(), role, nil))
		assert.Contains(t, selected, "HR Onboarding", "role %s", role)
		assert.Contains(t, selected, "Team Intro", "role %s", role)
	}
}

func TestUnknownRoleStillGetsRoleAgnosticTemplates(t *testing.T) {
	selected := ApplicableTemplates(catalog(), domain.Role("sales"), nil)

	require.Len(t, selected, 2)
	assert.Equal(t, []string{"HR Onboarding", "Team Intro"}, titles(selected))
}

func TestEngineeringWithReactSkill(t *testing.T) {
	selected := ApplicableTemplates(catalog(), domain.RoleEngineering, []string{"React"})

	assert.Equal(t, []string{
		"HR Onboarding",
		"Team Intro",
		"Complete System Setup",
		"First PR Merged",
		"React Codebase Tour",
	}, titles(selected))
}

func TestSkillTemplatesAreRoleAgnostic(t *testing.T) {
	selected := titles(ApplicableTemplates(catalog(), domain.RoleDesign, []string{"Docker"}))

	assert.Contains(t, selected, "Docker Deep Dive")
	assert.NotContains(t, selected, "Complete System Setup")
}

func TestEmptySkillsYieldNoSkillTemplates(t *testing.T) {
	selected := titles(ApplicableTemplates(catalog(), domain.RoleProduct, []string{}))

	assert.NotContains(t, selected, "React Codebase Tour")
	assert.NotContains(t, selected, "Docker Deep Dive")
}

func TestNoDuplicateTemplates(t *testing.T) {
	// 同一个模板既匹配职位又匹配技能时只出现一次
	templates := []*domain.MilestoneTemplate{
		{ID: 1, Title: "Staging Deploy", RoleTarget: strPtr("engineering"), SkillTarget: strPtr("Docker")},
	}

	selected := ApplicableTemplates(templates, domain.RoleEngineering, []string{"Docker"})
	require.Len(t, selected, 1)

	seen := make(map[int64]int)
	for _, template := range selected {
		seen[template.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "template %d", id)
	}
}

func TestSkillMatchIsCaseInsensitive(t *testing.T) {
	selected := titles(ApplicableTemplates(catalog(), domain.RoleEngineering, []string{"react"}))

	assert.Contains(t, selected, "React Codebase Tour")
}
