package models

import "time"

// OrderItem is one line in a cart or a placed order. Subtotal is always
// Quantity times the unit price; SetQuantity keeps the two in lockstep.
type OrderItem struct {
	MenuItem       MenuItem `json:"menu_item"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations"`
	Subtotal       int      `json:"subtotal"`
}

func NewOrderItem(item MenuItem) OrderItem {
	return OrderItem{
		MenuItem:       item,
		Quantity:       1,
		Customizations: []string{},
		Subtotal:       item.Price,
	}
}

func (oi *OrderItem) SetQuantity(quantity int) {
	oi.Quantity = quantity
	oi.Subtotal = quantity * oi.MenuItem.Price
}

// Clone returns an independent copy, so a placed order is unaffected
// by later mutations of the live cart.
func (oi OrderItem) Clone() OrderItem {
	clone := oi
	clone.Customizations = append([]string{}, oi.Customizations...)
	return clone
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Order is an immutable-after-creation checkout snapshot. Only the
// simulator advances Status and EstimatedDelivery.
type Order struct {
	ID                string       `json:"id"`
	Items             []OrderItem  `json:"items"`
	Total             int          `json:"total"`
	Status            string       `json:"status"`
	EstimatedDelivery string       `json:"estimated_delivery"`
	CustomerInfo      CustomerInfo `json:"customer_info"`
	PaymentMethod     string       `json:"payment_method"`
	CreatedAt         time.Time    `json:"created_at"`
}
