// Package storefront wires the catalog, cart, order simulation and
// reservation flow into one owned application state object. All
// mutations run under its lock and persist before returning, so a
// crash loses at most the in-flight change.
package storefront

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/cart"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/catalog"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/reservations"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/state"
)

// Clock abstracts wall time so scheduled transitions are testable
// without real delays.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock follows wall time.
func SystemClock() Clock { return systemClock{} }

type Storefront struct {
	Config  *models.Config
	Catalog *catalog.Catalog

	mu        sync.Mutex
	cart      *cart.Cart
	orders    []models.Order // most-recent-first
	tasks     *models.TaskQueue
	store     state.Store
	output    OutputDestination
	validator *reservations.Validator
	clock     Clock
}

// New restores persisted session state and returns a ready storefront.
func New(cfg *models.Config, cat *catalog.Catalog, store state.Store, output OutputDestination, clock Clock) (*Storefront, error) {
	if clock == nil {
		clock = systemClock{}
	}
	if output == nil {
		output = &ConsoleOutput{}
	}

	savedCart, err := store.LoadCart()
	if err != nil {
		return nil, err
	}
	savedOrders, err := store.LoadOrders()
	if err != nil {
		return nil, err
	}

	s := &Storefront{
		Config:    cfg,
		Catalog:   cat,
		cart:      cart.Restore(savedCart, cfg),
		orders:    savedOrders,
		tasks:     models.NewTaskQueue(),
		store:     store,
		output:    output,
		validator: reservations.New(cat, cfg.ReservationTimeSlots),
		clock:     clock,
	}
	return s, nil
}

// AddToCart adds one unit of a catalog item to the cart.
func (s *Storefront) AddToCart(menuItemID string) error {
	item, ok := s.Catalog.MenuItem(menuItemID)
	if !ok {
		return ErrUnknownMenuItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(item)
	s.persistCart()
	s.emitCartEvent("item_added", item.ID)
	return nil
}

// UpdateCartQuantity sets the quantity for a cart line; zero or less
// removes the line. Unknown IDs are a no-op.
func (s *Storefront) UpdateCartQuantity(menuItemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(menuItemID, quantity)
	s.persistCart()
	s.emitCartEvent("quantity_updated", menuItemID)
}

// RemoveFromCart deletes a cart line if present.
func (s *Storefront) RemoveFromCart(menuItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(menuItemID)
	s.persistCart()
	s.emitCartEvent("item_removed", menuItemID)
}

// CustomizeCartItem appends a free-text customization to a cart line.
func (s *Storefront) CustomizeCartItem(menuItemID, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Customize(menuItemID, note)
	s.persistCart()
}

func (s *Storefront) CartItems() []models.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Storefront) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Storefront) CartSubtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

func (s *Storefront) CartDeliveryFee() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.DeliveryFee()
}

func (s *Storefront) CartTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Orders returns the order list, most recent first.
func (s *Storefront) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order{}, s.orders...)
}

// Order looks up a placed order by ID.
func (s *Storefront) Order(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.Order{}, false
}

// persistCart and persistOrders are fire-and-forget: persistence
// failures are logged, never surfaced to the gesture that caused them.
func (s *Storefront) persistCart() {
	if err := s.store.SaveCart(s.cart.Items()); err != nil {
		logrus.Errorf("persisting cart: %v", err)
	}
}

func (s *Storefront) persistOrders() {
	if err := s.store.SaveOrders(s.orders); err != nil {
		logrus.Errorf("persisting orders: %v", err)
	}
}
