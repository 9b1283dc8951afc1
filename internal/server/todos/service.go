package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/todovault/todovault/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's todos, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Todo, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add creates a todo for the user. Text that is blank after trimming is
// common.ErrValidation; otherwise the text is stored as submitted.
func (s *Service) Add(ctx context.Context, userID, text string) (*Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrValidation
	}

	todo := &Todo{
		ID:     uuid.NewString(),
		UserID: userID,
		Text:   text,
	}
	todo, err := s.repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}
	return todo, nil
}

// SetCompleted flips the done flag. An id outside the user's rows is a
// silent no-op.
func (s *Service) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	err := s.repo.SetCompleted(ctx, userID, id, completed)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

// Delete removes one todo. An id outside the user's rows is a silent no-op.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

// ClearCompleted removes the user's done todos and reports how many went.
func (s *Service) ClearCompleted(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteCompleted(ctx, userID)
}
