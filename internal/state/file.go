package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// FileStore keeps one JSON file per key under a state directory. A
// missing or corrupt file loads as empty state rather than failing
// startup.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// load reads and decodes one key. Unreadable or unparsable payloads
// are logged and treated as absent.
func (f *FileStore) load(key string, out interface{}) bool {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("reading state %s: %v, starting empty", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logrus.Warnf("corrupt state %s: %v, starting empty", key, err)
		return false
	}
	return true
}

func (f *FileStore) save(key string, in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state %s: %w", key, err)
	}
	if err := os.WriteFile(f.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing state %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) LoadCart() ([]models.OrderItem, error) {
	var env cartEnvelope
	if !f.load(CartKey, &env) {
		return nil, nil
	}
	return env.Items, nil
}

func (f *FileStore) SaveCart(items []models.OrderItem) error {
	return f.save(CartKey, cartEnvelope{SchemaVersion: SchemaVersion, Items: items})
}

func (f *FileStore) LoadOrders() ([]models.Order, error) {
	var env ordersEnvelope
	if !f.load(OrdersKey, &env) {
		return nil, nil
	}
	return env.Orders, nil
}

func (f *FileStore) SaveOrders(orders []models.Order) error {
	return f.save(OrdersKey, ordersEnvelope{SchemaVersion: SchemaVersion, Orders: orders})
}

func (f *FileStore) Close() error {
	return nil
}
