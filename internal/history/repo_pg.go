package history

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new match record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO match_results (id, vacancy, percentage, full_name, email, phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.Vacancy,
		record.Percentage,
		record.FullName,
		record.Email,
		record.Phone,
		record.CreatedAt,
	)
	return err
}

// ListRecent returns up to limit records ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT id, vacancy, percentage, full_name, email, phone, created_at
FROM match_results
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Vacancy,
			&rec.Percentage,
			&rec.FullName,
			&rec.Email,
			&rec.Phone,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
