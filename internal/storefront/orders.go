package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/format"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

var (
	ErrUnknownMenuItem = errors.New("menu item not in catalog")
	ErrEmptyCart       = errors.New("cart is empty")
)

// orderTransition is the payload of a scheduled status change.
type orderTransition struct {
	OrderID  string
	Status   string
	Estimate string // empty leaves the current estimate untouched
}

// PlaceOrder snapshots the cart into a new pending order, clears the
// cart, and schedules the two simulated backend transitions. Both
// delays run from placement time, so a short confirm delay can never
// reorder the sequence. There is no failure path after this point:
// every simulated transition succeeds, none can be cancelled.
func (s *Storefront) PlaceOrder(paymentMethod string, info models.CustomerInfo) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return models.Order{}, ErrEmptyCart
	}

	now := s.clock.Now()
	order := models.Order{
		ID:                format.GenerateOrderID(),
		Items:             s.cart.Items(),
		Total:             s.cart.Total(),
		Status:            models.OrderStatusPending,
		EstimatedDelivery: s.Config.InitialEstimateMinutes,
		CustomerInfo:      info,
		PaymentMethod:     paymentMethod,
		CreatedAt:         now,
	}

	s.orders = append([]models.Order{order}, s.orders...)
	s.persistOrders()

	s.cart.Clear()
	s.persistCart()
	s.emitCartEvent("cart_cleared", "")

	s.tasks.Schedule(&models.Task{
		Due:  now.Add(s.Config.ConfirmDelay),
		Type: models.TaskConfirmOrder,
		Data: orderTransition{OrderID: order.ID, Status: models.OrderStatusConfirmed},
	})
	s.tasks.Schedule(&models.Task{
		Due:  now.Add(s.Config.PreparingDelay),
		Type: models.TaskPrepareOrder,
		Data: orderTransition{
			OrderID:  order.ID,
			Status:   models.OrderStatusPreparing,
			Estimate: s.Config.PreparingEstimateMinutes,
		},
	})

	s.emitOrderEvent("order_events", order)
	logrus.Infof("Order %s placed, total %s, estimated delivery %s",
		order.ID, format.FormatPrice(order.Total), format.FormatDeliveryTime(atoiOr(order.EstimatedDelivery, 0)))

	return order, nil
}

// Advance applies every scheduled transition due at or before now and
// returns how many fired. Transitions for one order apply in the
// order scheduled; orders are independent of each other.
func (s *Storefront) Advance(now time.Time) int {
	fired := 0
	for {
		task := s.tasks.PopDue(now)
		if task == nil {
			return fired
		}
		s.applyTask(task)
		fired++
	}
}

// Run drains due transitions against the wall clock until the context
// is done. The UI-facing operations stay callable concurrently.
func (s *Storefront) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance(s.clock.Now())
		}
	}
}

func (s *Storefront) applyTask(task *models.Task) {
	switch task.Type {
	case models.TaskConfirmOrder, models.TaskPrepareOrder:
		transition := task.Data.(orderTransition)
		s.applyOrderTransition(transition)
	case models.TaskConfirmReservation:
		ack := task.Data.(reservationAck)
		s.confirmReservation(ack)
	default:
		logrus.Warnf("dropping unknown task type %q", task.Type)
	}
}

func (s *Storefront) applyOrderTransition(transition orderTransition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != transition.OrderID {
			continue
		}
		s.orders[i].Status = transition.Status
		if transition.Estimate != "" {
			s.orders[i].EstimatedDelivery = transition.Estimate
		}
		s.persistOrders()
		s.emitOrderEvent("order_status_events", s.orders[i])
		logrus.Infof("Order %s is now %s", transition.OrderID, transition.Status)
		return
	}
	logrus.Warnf("transition for unknown order %s dropped", transition.OrderID)
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return fallback
	}
	return n
}
