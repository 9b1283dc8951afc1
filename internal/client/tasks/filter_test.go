package tasks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/todovault/todovault/internal/client/models"
)

func list() []models.Todo {
	return []models.Todo{
		{ID: "t-1", Text: "newest", Completed: false},
		{ID: "t-2", Text: "done", Completed: true},
		{ID: "t-3", Text: "open", Completed: false},
		{ID: "t-4", Text: "also done", Completed: true},
	}
}

func TestParseFilter(t *testing.T) {
	for _, valid := range []string{"all", "active", "completed"} {
		f, ok := ParseFilter(valid)
		require.True(t, ok)
		require.Equal(t, Filter(valid), f)
	}

	_, ok := ParseFilter("bogus")
	require.False(t, ok)
}

func TestApplyFilter_All(t *testing.T) {
	in := list()
	require.Equal(t, in, ApplyFilter(in, FilterAll))
}

func TestApplyFilter_Active(t *testing.T) {
	got := ApplyFilter(list(), FilterActive)
	require.Len(t, got, 2)
	for _, todo := range got {
		require.False(t, todo.Completed)
	}
	require.Equal(t, "t-1", got[0].ID, "order preserved")
	require.Equal(t, "t-3", got[1].ID)
}

func TestApplyFilter_Completed(t *testing.T) {
	got := ApplyFilter(list(), FilterCompleted)
	require.Len(t, got, 2)
	for _, todo := range got {
		require.True(t, todo.Completed)
	}
}

func TestApplyFilter_Empty(t *testing.T) {
	require.Empty(t, ApplyFilter(nil, FilterActive))
	require.Empty(t, ApplyFilter(nil, FilterAll))
}

func TestCountActive(t *testing.T) {
	require.Equal(t, 2, CountActive(list()))
	require.Equal(t, 0, CountActive(nil))
	require.Equal(t, 0, CountActive([]models.Todo{{Completed: true}}))
}
