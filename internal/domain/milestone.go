package domain

import (
	"time"
)

// MilestoneTemplate 是全局只读的里程碑目录项。
// RoleTarget 为 nil 表示适用于所有职位，SkillTarget 为 nil 表示不限技能。
type MilestoneTemplate struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Week          int32   `json:"week"`
	EstimatedTime int32   `json:"estimatedTime"`
	RoleTarget    *string `json:"roleTarget"`
	SkillTarget   *string `json:"skillTarget"`
}

// UserProgress 记录某个用户对某个里程碑的完成情况，
// 每个 (user, milestone) 对至多存在一行
type UserProgress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	MilestoneID int64      `json:"milestoneId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// UserProgressDetail 是 dashboard 使用的联表视图
type UserProgressDetail struct {
	UserProgress
	Milestone MilestoneTemplate `json:"milestone"`
}
