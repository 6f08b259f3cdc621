// Package state is the persistence boundary for session state: the
// live cart and the order list. Stores are fire-and-forget — the
// storefront saves after every committed mutation and a crash loses at
// most the latest change.
package state

import (
	"context"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// SchemaVersion is embedded in every persisted blob so a future
// migration can tell old payloads apart.
const SchemaVersion = 1

const (
	CartKey   = "habeeb-kitchen-cart"
	OrdersKey = "habeeb-kitchen-orders"
)

type cartEnvelope struct {
	SchemaVersion int                `json:"schema_version"`
	Items         []models.OrderItem `json:"items"`
}

// Orders are kept most-recent-first, matching the order tracking view.
type ordersEnvelope struct {
	SchemaVersion int            `json:"schema_version"`
	Orders        []models.Order `json:"orders"`
}

// Store persists the session state between runs.
type Store interface {
	LoadCart() ([]models.OrderItem, error)
	SaveCart(items []models.OrderItem) error
	LoadOrders() ([]models.Order, error)
	SaveOrders(orders []models.Order) error
	Close() error
}

// Open picks the backend from config: Postgres when a DSN is set,
// JSON files otherwise.
func Open(ctx context.Context, cfg *models.Config) (Store, error) {
	if cfg.PostgresDSN != "" {
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	}
	return NewFileStore(cfg.StateDir)
}
