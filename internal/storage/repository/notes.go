package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/notes-saas/internal/models"
)

// CreateNote сохраняет новую заметку и возвращает её ID.
// tenant_id и author_id заметки задаёт сервисный слой из принципала,
// клиентские значения сюда не попадают.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (string, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO notes (id, title, content, tenant_id, author_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Content, note.TenantID, note.AuthorID,
		note.CreatedAt, note.UpdatedAt).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetNote возвращает заметку арендатора по ID. Заметка чужого арендатора
// и несуществующая заметка дают один и тот же результат — sql.ErrNoRows.
func (s *Storage) GetNote(ctx context.Context, tenantID, noteID string) (*models.Note, error) {
	const op = "storage.GetNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT n.id, n.title, n.content, n.tenant_id, n.author_id,
			      u.email, n.created_at, n.updated_at
			  FROM notes n
			  JOIN users u ON u.id = n.author_id
			  WHERE n.id = $1 AND n.tenant_id = $2`
	n := &models.Note{}
	row := s.DB.QueryRowContext(ctx, query, noteID, tenantID)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.AuthorID,
		&n.AuthorEmail, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListNotes возвращает заметки арендатора, новые впереди, с пагинацией.
func (s *Storage) ListNotes(ctx context.Context, tenantID string, limit, offset int) ([]*models.Note, error) {
	const op = "storage.ListNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT n.id, n.title, n.content, n.tenant_id, n.author_id,
			      u.email, n.created_at, n.updated_at
			  FROM notes n
			  JOIN users u ON u.id = n.author_id
			  WHERE n.tenant_id = $1
			  ORDER BY n.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		var n models.Note
		if err = rows.Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.AuthorID,
			&n.AuthorEmail, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateNote обновляет заголовок и текст заметки арендатора.
// Возвращает количество обновлённых строк: 0 означает, что заметки
// в пределах арендатора нет.
func (s *Storage) UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (int64, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes
			  SET title = $1, content = $2, updated_at = now()
			  WHERE id = $3 AND tenant_id = $4`
	res, err := s.DB.ExecContext(ctx, query, title, content, noteID, tenantID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// RemoveNote удаляет заметку арендатора по ID и возвращает количество
// удалённых строк.
func (s *Storage) RemoveNote(ctx context.Context, tenantID, noteID string) (int64, error) {
	const op = "storage.RemoveNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes
			  WHERE id = $1 AND tenant_id = $2`
	res, err := s.DB.ExecContext(ctx, query, noteID, tenantID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// CountNotes возвращает текущее количество заметок арендатора.
func (s *Storage) CountNotes(ctx context.Context, tenantID string) (int, error) {
	const op = "storage.CountNotes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
