package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGProfiles reads the profiles table.
type PGProfiles struct {
	db Querier
}

func NewPGProfiles(db Querier) *PGProfiles {
	return &PGProfiles{db: db}
}

func (p *PGProfiles) ListProfileIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := p.db.Query(ctx, `SELECT id FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}
	return ids, nil
}
