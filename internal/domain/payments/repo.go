package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

var ErrNilPayment = errors.New("payments: zero payment id")

// Store — журнал оплат. Реализации: Postgres (Repo) и память (MemoryRepo).
type Store interface {
	Save(ctx context.Context, p Payment) error
	Recent(ctx context.Context, limit int) ([]Payment, error)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Save(ctx context.Context, p Payment) error {
	if p.ID == uuid.Nil {
		return ErrNilPayment
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments
		(id, card_id, light_cost, gas_cost, water_cost, light_usage, gas_usage, water_usage, total, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO NOTHING
	`, p.ID, p.CardID, p.Cost.Light, p.Cost.Gas, p.Cost.Water,
		p.Usage.Light, p.Usage.Gas, p.Usage.Water, p.Total, p.PaidAt)
	return err
}

// Recent — последние оплаты, новые первыми.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, card_id, light_cost, gas_cost, water_cost,
		       light_usage, gas_usage, water_usage, total, paid_at
		FROM payments
		ORDER BY paid_at DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payment{}
	for rows.Next() {
		var p Payment
		var cost, usage meter.Amounts
		if err := rows.Scan(&p.ID, &p.CardID, &cost.Light, &cost.Gas, &cost.Water,
			&usage.Light, &usage.Gas, &usage.Water, &p.Total, &p.PaidAt); err != nil {
			return nil, err
		}
		p.Cost, p.Usage = cost, usage
		out = append(out, p)
	}
	return out, rows.Err()
}
