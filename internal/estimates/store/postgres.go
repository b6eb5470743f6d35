package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const schemaSQL = `
create table if not exists projects (
	id            text primary key,
	user_id       text not null,
	name          text not null,
	items         jsonb not null default '[]'::jsonb,
	ai_advice     text,
	created_at    bigint not null,
	last_modified bigint not null
);
create index if not exists projects_user_last_modified_idx
	on projects (user_id, last_modified desc);
`

// PostgresStore keeps one row per project with items stored as JSONB.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the projects table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) List(ctx context.Context, ownerID string) ([]domain.RenovationProject, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	const q = `
select id, name, items, coalesce(ai_advice, ''), created_at, last_modified
from projects
where user_id = $1
order by last_modified desc;
`
	rows, err := s.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RenovationProject, 0, 16)
	for rows.Next() {
		var (
			p     domain.RenovationProject
			items []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &items, &p.AIAdvice, &p.CreatedAt, &p.LastModified); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, fmt.Errorf("decode items of project %s: %w", p.ID, err)
		}
		p.Normalize()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Upsert(ctx context.Context, ownerID string, p domain.RenovationProject) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	var advice *string
	if p.AIAdvice != "" {
		advice = &p.AIAdvice
	}

	// The where clause keeps another owner's row untouched.
	const q = `
insert into projects (id, user_id, name, items, ai_advice, created_at, last_modified)
values ($1, $2, $3, $4::jsonb, $5, $6, $7)
on conflict (id) do update
set name = excluded.name,
    items = excluded.items,
    ai_advice = excluded.ai_advice,
    last_modified = excluded.last_modified
where projects.user_id = excluded.user_id;
`
	ct, err := s.db.Exec(ctx, q, p.ID, ownerID, p.Name, string(items), advice, p.CreatedAt, p.LastModified)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotOwner
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, ownerID, projectID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	const q = `delete from projects where user_id = $1 and id = $2;`
	_, err := s.db.Exec(ctx, q, ownerID, projectID)
	return err
}
