package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// PostgresStore keeps each session blob as one keyed JSONB row. It
// carries the same corrupt-payload semantics as the file store: bad
// JSON loads as empty state.
type PostgresStore struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

const createStateTable = `
    CREATE TABLE IF NOT EXISTS session_state (
        key        TEXT PRIMARY KEY,
        payload    JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
`

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createStateTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating session_state table: %w", err)
	}
	return &PostgresStore{pool: pool, ctx: ctx}, nil
}

func (p *PostgresStore) load(key string, out interface{}) bool {
	var payload []byte
	query := `SELECT payload FROM session_state WHERE key = $1`
	err := p.pool.QueryRow(p.ctx, query, key).Scan(&payload)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logrus.Warnf("reading state %s: %v, starting empty", key, err)
		}
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		logrus.Warnf("corrupt state %s: %v, starting empty", key, err)
		return false
	}
	return true
}

func (p *PostgresStore) save(key string, in interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding state %s: %w", key, err)
	}
	query := `
        INSERT INTO session_state (key, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET payload = $2, updated_at = now()
    `
	if _, err := p.pool.Exec(p.ctx, query, key, payload); err != nil {
		return fmt.Errorf("writing state %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) LoadCart() ([]models.OrderItem, error) {
	var env cartEnvelope
	if !p.load(CartKey, &env) {
		return nil, nil
	}
	return env.Items, nil
}

func (p *PostgresStore) SaveCart(items []models.OrderItem) error {
	return p.save(CartKey, cartEnvelope{SchemaVersion: SchemaVersion, Items: items})
}

func (p *PostgresStore) LoadOrders() ([]models.Order, error) {
	var env ordersEnvelope
	if !p.load(OrdersKey, &env) {
		return nil, nil
	}
	return env.Orders, nil
}

func (p *PostgresStore) SaveOrders(orders []models.Order) error {
	return p.save(OrdersKey, ordersEnvelope{SchemaVersion: SchemaVersion, Orders: orders})
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
