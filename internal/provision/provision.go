// Package provision 根据用户的评估结果从里程碑目录中推导出
// 应该出现在该用户清单上的里程碑集合。
package provision

import (
	"strings"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// ApplicableTemplates 从目录中选出适用于该用户的模板：
//   - role_target 为空的模板对所有职位生效
//   - role_target 等于提交的职位的模板
//   - skill_target 出现在提交的技能集合中的模板（与职位无关）
//
// 相同模板只返回一次，返回顺序与目录顺序一致。
// 未知的职位仍然会得到所有职位通用的模板，空技能集合不是错误。
func ApplicableTemplates(templates []*domain.MilestoneTemplate, role domain.Role, skills []string) []*domain.MilestoneTemplate {
	selected := make([]*domain.MilestoneTemplate, 0)
	seen := make(map[int64]bool)

	for _, template := range templates {
		if !matchesRole(template, role) && !matchesSkill(template, skills) {
			continue
		}
		if seen[template.ID] {
			continue
		}
		seen[template.ID] = true
		selected = append(selected, template)
	}

	return selected
}

func matchesRole(template *domain.MilestoneTemplate, role domain.Role) bool {
	// 技能任务只通过技能匹配选中，即使它不限定职位
	if template.SkillTarget != nil {
		return false
	}
	if template.RoleTarget == nil {
		return true
	}
	return *template.RoleTarget == string(role)
}

func matchesSkill(template *domain.MilestoneTemplate, skills []string) bool {
	if template.SkillTarget == nil {
		return false
	}
	for _, skill := range skills {
		if strings.EqualFold(skill, *template.SkillTarget) {
			return true
		}
	}
	return false
}
