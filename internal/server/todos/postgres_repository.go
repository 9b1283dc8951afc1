package todos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/todovault/todovault/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Todo, error) {
	query :=
		`SELECT id, user_id, text, completed, created_at
		 FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*Todo
	for rows.Next() {
		t := &Todo{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *Todo) (*Todo, error) {
	query :=
		`INSERT INTO todos (id, user_id, text, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Text, todo.Completed).Scan(&todo.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return todo, nil
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	query :=
		`UPDATE todos
		 SET completed = $1
		 WHERE id = $2 AND user_id = $3
		 `
	res, err := r.db.ExecContext(ctx, query, completed, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE user_id = $1 AND completed`, userID)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error getting rows affected: %w", err)
	}
	return ra, nil
}
