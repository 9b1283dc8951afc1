// Package todos implements per-user todo storage for the TodoVault server.
// Every operation is scoped to the owning user id in SQL, so one user can
// never read or mutate another user's rows.
package todos

import "time"

// Todo is a row in the todos table.
type Todo struct {
	ID        string
	UserID    string
	Text      string
	Completed bool
	CreatedAt time.Time
}
