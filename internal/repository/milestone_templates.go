package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

func scanMilestoneTemplate(rows *sql.Rows, template *domain.MilestoneTemplate) error {
	var roleTarget, skillTarget sql.NullString

	dst := []any{&template.ID, &template.Title, &template.Description, &template.Week, &template.EstimatedTime, &roleTarget, &skillTarget}
	if err := rows.Scan(dst...); err != nil {
		return err
	}

	if roleTarget.Valid {
		s := roleTarget.String
		template.RoleTarget = &s
	}
	if skillTarget.Valid {
		s := skillTarget.String
		template.SkillTarget = &s
	}

	return nil
}

func (r *Repository) GetAllMilestoneTemplates() ([]*domain.MilestoneTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, title, description, week, estimated_time, role_target, skill_target
		FROM milestone_templates
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.MilestoneTemplate, 0)
	for rows.Next() {
		template := &domain.MilestoneTemplate{}
		if err := scanMilestoneTemplate(rows, template); err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) CreateMilestoneTemplate(template *domain.MilestoneTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO milestone_templates (title, description, week, estimated_time, role_target, skill_target)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (title) DO NOTHING
		RETURNING id
	`

	args := []any{template.Title, template.Description, template.Week, template.EstimatedTime, template.RoleTarget, template.SkillTarget}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&template.ID); err != nil {
		// 模板已存在时 RETURNING 不产生行，视为成功
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}

	return nil
}
