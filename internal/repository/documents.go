package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/onboarding-companion/backend/internal/domain"
)

func scanDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	documents := make([]*domain.Document, 0)
	for rows.Next() {
		document := &domain.Document{}
		dst := []any{&document.ID, &document.Title, &document.Content, &document.Category, &document.URL}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}

func (r *Repository) GetAllDocuments() ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, title, content, category, url
		FROM documents
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// SearchDocuments 按标题、正文或分类的子串匹配过滤文档，供文档列表页使用
func (r *Repository) SearchDocuments(keyword string) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, title, content, category, url
		FROM documents
		WHERE title ILIKE $1 OR content ILIKE $1 OR category ILIKE $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// SearchDocumentsByKeywords 返回正文包含任一关键词（不区分大小写的子串匹配）的文档，
// 按存储顺序返回，最多 limit 条
func (r *Repository) SearchDocumentsByKeywords(ctx context.Context, keywords []string, limit int) ([]*domain.Document, error) {
	if len(keywords) == 0 {
		return []*domain.Document{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, len(keywords)+1)
	for i, keyword := range keywords {
		conditions = append(conditions, fmt.Sprintf("content ILIKE $%d", i+1))
		args = append(args, "%"+keyword+"%")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, title, content, category, url
		FROM documents
		WHERE %s
		ORDER BY id
		LIMIT $%d
	`, strings.Join(conditions, " OR "), len(keywords)+1)

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// GetDocumentsByCategories 返回分类属于给定集合的文档，按存储顺序返回，最多 limit 条
func (r *Repository) GetDocumentsByCategories(ctx context.Context, categories []string, limit int) ([]*domain.Document, error) {
	if len(categories) == 0 {
		return []*domain.Document{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	placeholders := make([]string, 0, len(categories))
	args := make([]any, 0, len(categories)+1)
	for i, category := range categories {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, category)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, title, content, category, url
		FROM documents
		WHERE category IN (%s)
		ORDER BY id
		LIMIT $%d
	`, strings.Join(placeholders, ", "), len(categories)+1)

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *Repository) CreateDocument(document *domain.Document) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO documents (title, content, category, url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title) DO NOTHING
		RETURNING id
	`

	args := []any{document.Title, document.Content, document.Category, document.URL}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&document.ID); err != nil {
		// 文档已存在时 RETURNING 不产生行，视为成功
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}

	return nil
}
