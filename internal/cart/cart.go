package cart

import (
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// Cart holds the in-progress selection: an ordered list of lines, at
// most one per menu item. No line ever has quantity below one; a
// request to drop to zero or less removes the line instead.
type Cart struct {
	items     []models.OrderItem
	threshold int
	fee       int
}

func New(cfg *models.Config) *Cart {
	return &Cart{
		threshold: cfg.FreeDeliveryThreshold,
		fee:       cfg.DeliveryFee,
	}
}

// Restore rebuilds a cart from persisted lines. Lines with a
// non-positive quantity are dropped and subtotals recomputed, so a
// tampered or stale state file cannot violate cart invariants.
func Restore(items []models.OrderItem, cfg *models.Config) *Cart {
	c := New(cfg)
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		line := item.Clone()
		line.SetQuantity(item.Quantity)
		c.items = append(c.items, line)
	}
	return c
}

// AddItem increments the line for the given menu item, appending a new
// quantity-one line if the item is not in the cart yet.
func (c *Cart) AddItem(item models.MenuItem) {
	for i := range c.items {
		if c.items[i].MenuItem.ID == item.ID {
			c.items[i].SetQuantity(c.items[i].Quantity + 1)
			return
		}
	}
	c.items = append(c.items, models.NewOrderItem(item))
}

// UpdateQuantity sets the quantity for the matching line. A quantity
// of zero or less removes the line. Unknown IDs are a silent no-op.
func (c *Cart) UpdateQuantity(menuItemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuItemID)
		return
	}
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItemID {
			c.items[i].SetQuantity(quantity)
			return
		}
	}
}

// RemoveItem deletes the matching line if present.
func (c *Cart) RemoveItem(menuItemID string) {
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Customize appends a free-text customization to the matching line.
func (c *Cart) Customize(menuItemID, note string) {
	for i := range c.items {
		if c.items[i].MenuItem.ID == menuItemID {
			c.items[i].Customizations = append(c.items[i].Customizations, note)
			return
		}
	}
}

// Subtotal is the sum of all line subtotals.
func (c *Cart) Subtotal() int {
	sum := 0
	for _, item := range c.items {
		sum += item.Subtotal
	}
	return sum
}

// DeliveryFeeFor returns the fee owed on a given subtotal: waived when
// the subtotal is strictly greater than the free-delivery threshold,
// the flat fee otherwise. An empty cart still attracts the fee.
func (c *Cart) DeliveryFeeFor(subtotal int) int {
	if subtotal > c.threshold {
		return 0
	}
	return c.fee
}

func (c *Cart) DeliveryFee() int {
	return c.DeliveryFeeFor(c.Subtotal())
}

func (c *Cart) Total() int {
	subtotal := c.Subtotal()
	return subtotal + c.DeliveryFeeFor(subtotal)
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns an independent copy of the cart lines.
func (c *Cart) Items() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item.Clone())
	}
	return items
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
