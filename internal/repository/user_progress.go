package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// ReplaceUserProgress 在单个事务中删除用户已有的全部进度记录，
// 并为每个模板重建一条未完成的进度记录。
// 评估重新提交总是重置清单，不保留之前的完成状态。
func (r *Repository) ReplaceUserProgress(userID int64, templateIDs []int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先把原先的记录删除再插入
	query := `DELETE FROM user_progress WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return err
	}

	for _, templateID := range templateIDs {
		query = `
			INSERT INTO user_progress (user_id, milestone_id, completed)
			VALUES ($1, $2, FALSE)
		`
		if _, err := tx.ExecContext(ctx, query, userID, templateID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserProgressDetails(userID int64) ([]*domain.UserProgressDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			up.id,
			up.milestone_id,
			up.completed,
			up.completed_at,
			mt.title,
			mt.description,
			mt.week,
			mt.estimated_time,
			mt.role_target,
			mt.skill_target
		FROM user_progress up
		JOIN milestone_templates mt ON up.milestone_id = mt.id
		WHERE up.user_id = $1
		ORDER BY mt.week, mt.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.UserProgressDetail, 0)
	for rows.Next() {
		detail := &domain.UserProgressDetail{}
		detail.UserID = userID

		var completedAt sql.NullTime
		var roleTarget, skillTarget sql.NullString

		dst := []any{
			&detail.ID,
			&detail.MilestoneID,
			&detail.Completed,
			&completedAt,
			&detail.Milestone.Title,
			&detail.Milestone.Description,
			&detail.Milestone.Week,
			&detail.Milestone.EstimatedTime,
			&roleTarget,
			&skillTarget,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		detail.Milestone.ID = detail.MilestoneID
		if completedAt.Valid {
			t := completedAt.Time
			detail.CompletedAt = &t
		}
		if roleTarget.Valid {
			s := roleTarget.String
			detail.Milestone.RoleTarget = &s
		}
		if skillTarget.Valid {
			s := skillTarget.String
			detail.Milestone.SkillTarget = &s
		}

		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// UpdateProgressCompletion 设置某条进度记录的完成状态，
// completedAt 在完成时写入时间戳，在取消完成时清空
func (r *Repository) UpdateProgressCompletion(userID int64, milestoneID int64, completed bool, completedAt *time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE user_progress
		SET completed = $1, completed_at = $2
		WHERE user_id = $3 AND milestone_id = $4
	`

	result, err := r.dbpool.ExecContext(ctx, query, completed, completedAt, userID, milestoneID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
