package seed

import (
	"log/slog"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/config"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/utils"
)

// 插入依赖按 title 去重的存储语义（ON CONFLICT DO NOTHING），
// 因此重复执行 seed 不会使目录翻倍
type TemplateStore interface {
	CreateMilestoneTemplate(template *domain.MilestoneTemplate) error
}

type DocumentStore interface {
	CreateDocument(document *domain.Document) error
}

type UserStore interface {
	CreateUser(user *domain.User) error
}

func strPtr(s string) *string {
	return &s
}

// 全局里程碑目录。role_target 为 nil 的模板适用于所有职位，
// skill_target 不为 nil 的模板只分配给声明了对应技能的用户。
var defaultMilestoneTemplates = []domain.MilestoneTemplate{
	// 所有职位通用
	{Title: "HR Onboarding", Description: "Complete HR paperwork", Week: 1, EstimatedTime: 60},
	{Title: "Team Intro", Description: "Introduce yourself in Slack", Week: 1, EstimatedTime: 15},

	// engineering
	{Title: "Complete System Setup", Description: "Install VS Code, Docker, and Node.js", Week: 1, EstimatedTime: 120, RoleTarget: strPtr("engineering")},
	{Title: "First PR Merged", Description: "Fix a small bug or add documentation", Week: 1, EstimatedTime: 240, RoleTarget: strPtr("engineering")},
	{Title: "Architecture Overview", Description: "Read the system architecture docs", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("engineering")},
	{Title: "Deploy to Staging", Description: "Deploy your first change to staging", Week: 2, EstimatedTime: 180, RoleTarget: strPtr("engineering")},

	// design
	{Title: "Figma Setup", Description: "Get access to Figma organization", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("design")},
	{Title: "Design System 101", Description: "Review the components library", Week: 1, EstimatedTime: 120, RoleTarget: strPtr("design")},
	{Title: "Shadow Session", Description: "Shadow a senior designer", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("design")},

	// product
	{Title: "Product Vision", Description: "Read the 3-year vision doc", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("product")},
	{Title: "Customer Interviews", Description: "Watch 3 recorded interviews", Week: 1, EstimatedTime: 90, RoleTarget: strPtr("product")},
	{Title: "Backlog Review", Description: "Review the current sprint backlog", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("product")},

	// marketing
	{Title: "Brand Voice Guide", Description: "Read the brand voice and tone guide", Week: 1, EstimatedTime: 60, RoleTarget: strPtr("marketing")},
	{Title: "Campaign Archive Review", Description: "Review last quarter's campaigns", Week: 1, EstimatedTime: 90, RoleTarget: strPtr("marketing")},
	{Title: "Analytics Dashboard Tour", Description: "Get familiar with the analytics dashboards", Week: 2, EstimatedTime: 60, RoleTarget: strPtr("marketing")},

	// 技能任务，与职位无关
	{Title: "React Codebase Tour", Description: "Walk through the shared React component packages", Week: 2, EstimatedTime: 90, SkillTarget: strPtr("React")},
	{Title: "Docker Deep Dive", Description: "Review the local container setup and compose files", Week: 2, EstimatedTime: 60, SkillTarget: strPtr("Docker")},
	{Title: "Figma Handoff Workflow", Description: "Learn how specs move from Figma to tickets", Week: 2, EstimatedTime: 45, SkillTarget: strPtr("Figma")},
}

// 知识库初始文档，对话检索和文档页共用
var defaultDocuments = []domain.Document{
	{
		Title:    "VPN Configuration Guide",
		Content:  "To connect to the corporate network, download the Engineering-US VPN client and apply the standard configuration profile. Use your SSO credentials and ensure your MFA is active. Contact IT support via #it-help for activation issues.",
		Category: domain.DocumentCategoryIT,
		URL:      "https://notion.so/vpn-setup",
	},
	{
		Title:    "Auth Service Architecture",
		Content:  "The Auth Service is a microservice handling JWT authentication and OAuth2. It uses Redis for session caching and PostgreSQL for user persistence. Source code: github.com/company/auth-service",
		Category: domain.DocumentCategoryEngineering,
		URL:      "https://notion.so/auth-service",
	},
	{
		Title:    "Git Workflow & PR Guidelines",
		Content:  "We use a trunk-based development model. All PRs require at least 2 approvals and a green build. Use 'feature/' or 'fix/' prefixes for branches.",
		Category: domain.DocumentCategoryEngineering,
		URL:      "https://notion.so/git-workflow",
	},
	{
		Title:    "Engineering Onboarding Buddy Program",
		Content:  "Every new hire is assigned a buddy. Buddies help with technical setup, code reviews, and navigating team culture during the first 4 weeks.",
		Category: domain.DocumentCategoryHR,
		URL:      "https://notion.so/buddy-program",
	},
	{
		Title:    "Engineering Team Directory",
		Content:  "Meet the team! Sarah Chen (Lead Engineer), Marcus Thorne (Product Manager), Elena Rodriguez (Lead Designer). Most team discussions happen in #product-engineering.",
		Category: domain.DocumentCategoryPeople,
		URL:      "https://notion.so/team-directory",
	},
	{
		Title:    "Who to Talk to for What",
		Content:  "Backend/Architecture: Sarah Chen. UI/Design System: Elena Rodriguez. Product Roadmap/Prd: Marcus Thorne. HR/Admin: Jamie Loo.",
		Category: domain.DocumentCategoryPeople,
		URL:      "https://notion.so/who-to-talk-to",
	},
}

func SeedMilestoneTemplates(r TemplateStore) {
	for i := range defaultMilestoneTemplates {
		template := defaultMilestoneTemplates[i]
		if err := r.CreateMilestoneTemplate(&template); err != nil {
			slog.Error("插入里程碑模板失败", "title", template.Title, "error", err)
			return
		}
	}
	slog.Info("里程碑目录插入完成", "count", len(defaultMilestoneTemplates))
}

func SeedDocuments(r DocumentStore) {
	for i := range defaultDocuments {
		document := defaultDocuments[i]
		if err := r.CreateDocument(&document); err != nil {
			slog.Error("插入知识库文档失败", "title", document.Title, "error", err)
			return
		}
	}
	slog.Info("知识库文档插入完成", "count", len(defaultDocuments))
}

func SeedRandomUsers(cfg *config.Config, r UserStore, n int) {
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("生成随机用户失败", "error", err)
			return
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("插入随机用户失败", "username", user.Username, "error", err)
			return
		}
	}
	slog.Info("随机用户插入完成", "count", n)
}
