package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// personTable holds the statements lecturers and students share
type personTable struct {
	db       *pgxpool.Pool
	table    string
	resource string
}

func (p personTable) insert(ctx context.Context, id uuid.UUID, name, phone, email string) error {
	_, err := p.db.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, name, phone_number, email) VALUES ($1, $2, $3, $4)`, p.table),
		id, name, phone, email)
	return mapError(err, p.resource, id)
}
