// Package tasks implements the task store: per-user task CRUD scoped to the
// active session, plus the derived filter view.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/logging"
)

// Store is the durable backend for tasks. The local sqlite repository and
// the remote HTTP API both satisfy it. Every call is scoped to one owner.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	Delete(ctx context.Context, userID, id string) error
	DeleteCompleted(ctx context.Context, userID string) error
}

// Service keeps the active user's task list in memory and writes every
// mutation through to the store before applying it. A failed write leaves
// the in-memory list untouched.
type Service struct {
	store  Store
	logger logging.Logger

	userID string
	todos  []models.Todo
	filter Filter
}

// NewService constructs a task service over the given store.
func NewService(store Store, logger logging.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("module", "tasks"),
		filter: FilterAll,
	}
}

// SetUser switches the service to the given user, loading their tasks.
// A nil user clears the list (logout).
func (s *Service) SetUser(ctx context.Context, user *models.User) error {
	if user == nil {
		s.userID = ""
		s.todos = nil
		return nil
	}

	loaded, err := s.store.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	s.userID = user.ID
	s.todos = loaded
	return nil
}

// Add creates a task and prepends it (newest-first). Text that is blank
// after trimming is rejected with common.ErrValidation and nothing changes;
// the stored text keeps its original spacing.
func (s *Service) Add(ctx context.Context, text string) error {
	if s.userID == "" {
		return common.ErrNoSession
	}
	if strings.TrimSpace(text) == "" {
		return common.ErrValidation
	}

	todo := models.Todo{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		Text:      text,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, &todo); err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	s.todos = append([]models.Todo{todo}, s.todos...)
	return nil
}

// Toggle flips the completed flag of the task with the given id.
// Unknown ids are a silent no-op.
func (s *Service) Toggle(ctx context.Context, id string) error {
	if s.userID == "" {
		return common.ErrNoSession
	}

	for i := range s.todos {
		if s.todos[i].ID != id {
			continue
		}
		flipped := !s.todos[i].Completed
		if err := s.store.SetCompleted(ctx, s.userID, id, flipped); err != nil {
			return fmt.Errorf("toggle task: %w", err)
		}
		s.todos[i].Completed = flipped
		return nil
	}
	return nil
}

// Delete removes the task with the given id. Unknown ids are a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.userID == "" {
		return common.ErrNoSession
	}

	for i := range s.todos {
		if s.todos[i].ID != id {
			continue
		}
		if err := s.store.Delete(ctx, s.userID, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		s.todos = append(s.todos[:i], s.todos[i+1:]...)
		return nil
	}
	return nil
}

// ClearCompleted removes exactly the completed tasks, preserving the
// relative order of the rest.
func (s *Service) ClearCompleted(ctx context.Context) error {
	if s.userID == "" {
		return common.ErrNoSession
	}

	if err := s.store.DeleteCompleted(ctx, s.userID); err != nil {
		return fmt.Errorf("clear completed: %w", err)
	}

	kept := s.todos[:0:0]
	for _, t := range s.todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.todos = kept
	return nil
}

// All returns a copy of the full task list, newest-first.
func (s *Service) All() []models.Todo {
	out := make([]models.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// SetFilter switches the active filter mode.
func (s *Service) SetFilter(f Filter) {
	s.filter = f
}

// Filter returns the active filter mode.
func (s *Service) Filter() Filter {
	return s.filter
}

// Filtered returns the visible subset under the active filter.
func (s *Service) Filtered() []models.Todo {
	return ApplyFilter(s.All(), s.filter)
}

// ActiveCount returns the number of tasks not yet completed.
func (s *Service) ActiveCount() int {
	return CountActive(s.todos)
}
