package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

// InsertAssessment 追加一条评估快照，作为永久的审计记录，不会被修改或删除
func (r *Repository) InsertAssessment(assessment *domain.Assessment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if assessment.Skills == nil {
		assessment.Skills = make([]string, 0)
	}

	skills, err := json.Marshal(assessment.Skills)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assessments (user_id, role, seniority, skills, goals)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	args := []any{assessment.UserID, string(assessment.Role), string(assessment.Seniority), skills, assessment.Goals}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assessment.ID, &assessment.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAssessmentsByUserID(userID int64) ([]*domain.Assessment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, role, seniority, skills, goals, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := make([]*domain.Assessment, 0)
	for rows.Next() {
		assessment := &domain.Assessment{
			UserID: userID,
		}

		var skills []byte
		dst := []any{&assessment.ID, &assessment.Role, &assessment.Seniority, &skills, &assessment.Goals, &assessment.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(skills, &assessment.Skills); err != nil {
			return nil, err
		}

		assessments = append(assessments, assessment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}
