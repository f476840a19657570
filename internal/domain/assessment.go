package domain

import (
	"time"
)

// Assessment 是一次评估提交的不可变快照，只追加不修改
type Assessment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Role      Role      `json:"role"`
	Seniority Seniority `json:"seniority"`
	Skills    []string  `json:"skills"`
	Goals     string    `json:"goals"`
	CreatedAt time.Time `json:"createdAt"`
}
