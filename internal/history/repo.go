package history

import "context"

// Repo persists match outcomes.
type Repo interface {
	Create(ctx context.Context, record Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}
