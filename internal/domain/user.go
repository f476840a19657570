package domain

import (
	"time"
)

type Role string

const (
	RoleEngineering Role = "engineering"
	RoleDesign      Role = "design"
	RoleProduct     Role = "product"
	RoleMarketing   Role = "marketing"
)

type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Role 和 Seniority 在用户第一次提交入职评估之前为空字符串
type User struct {
	ID                  int64      `json:"id"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	FullName            string     `json:"fullName"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	Seniority           Seniority  `json:"seniority"`
	OnboardingStartDate *time.Time `json:"onboardingStartDate"`
	IsAdmin             bool       `json:"isAdmin"`
	IsActive            bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
	Version             int32      `json:"-"`
}
