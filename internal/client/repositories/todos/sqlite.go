package todos

import (
	"context"
	"fmt"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ListByUser returns the owner's tasks newest-first. Insertion order breaks
// same-timestamp ties so the list matches prepend semantics exactly.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	query := `SELECT id, user_id, text, completed, created_at FROM todos
			WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	var result []models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.UserID, &item.Text, &item.Completed, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, todo *models.Todo) error {
	query := `INSERT INTO todos (id, user_id, text, completed, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Text, todo.Completed, todo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	query := `UPDATE todos SET completed = ? WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, completed, id, userID); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteCompleted(ctx context.Context, userID string) error {
	query := `DELETE FROM todos WHERE user_id = ? AND completed = 1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete completed todos: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM todos WHERE user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete user's todos: %w", err)
	}
	return nil
}
