package storefront

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/catalog"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// fakeClock lets tests drive scheduled transitions without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Tick(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// memStore is an in-memory state.Store for tests.
type memStore struct {
	cart   []models.OrderItem
	orders []models.Order
}

func (m *memStore) LoadCart() ([]models.OrderItem, error) { return m.cart, nil }
func (m *memStore) SaveCart(i []models.OrderItem) error   { m.cart = i; return nil }
func (m *memStore) LoadOrders() ([]models.Order, error)   { return m.orders, nil }
func (m *memStore) SaveOrders(o []models.Order) error     { m.orders = o; return nil }
func (m *memStore) Close() error                          { return nil }

// captureOutput records emitted events per topic.
type captureOutput struct {
	mu       sync.Mutex
	messages map[string][]map[string]interface{}
}

func newCaptureOutput() *captureOutput {
	return &captureOutput{messages: make(map[string][]map[string]interface{})}
}

func (c *captureOutput) WriteMessage(topic string, msg []byte) error {
	var decoded map[string]interface{}
	if err := json.Unmarshal(msg, &decoded); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[topic] = append(c.messages[topic], decoded)
	return nil
}

func (c *captureOutput) byTopic(topic string) []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]interface{}{}, c.messages[topic]...)
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]models.MenuItem{
			{ID: "n1", Name: "Premium Jollof Rice", Price: 3500, Category: models.CategoryNigerian, Popular: true},
			{ID: "n4", Name: "Premium Suya Platter", Price: 2800, Category: models.CategoryNigerian, Popular: true},
		},
		nil,
		[]models.Location{{ID: "lag1", Name: "Victoria Island", City: "Lagos"}},
	)
}

func newTestStorefront(t *testing.T) (*Storefront, *fakeClock, *memStore, *captureOutput) {
	t.Helper()
	clock := newFakeClock()
	store := &memStore{}
	output := newCaptureOutput()
	shop, err := New(models.DefaultConfig(), testCatalog(), store, output, clock)
	require.NoError(t, err)
	return shop, clock, store, output
}

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Adunni Okafor", Phone: "08012345678", Email: "adunni@example.com", Address: "Lekki Phase 1", City: "Lagos"}
}

func TestAddToCartUnknownItem(t *testing.T) {
	shop, _, _, _ := newTestStorefront(t)
	assert.ErrorIs(t, shop.AddToCart("zz"), ErrUnknownMenuItem)
}

func TestCartMutationsPersist(t *testing.T) {
	shop, _, store, _ := newTestStorefront(t)

	require.NoError(t, shop.AddToCart("n1"))
	require.Len(t, store.cart, 1)

	shop.UpdateCartQuantity("n1", 3)
	assert.Equal(t, 3, store.cart[0].Quantity)

	shop.RemoveFromCart("n1")
	assert.Empty(t, store.cart)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	shop, _, _, _ := newTestStorefront(t)
	_, err := shop.PlaceOrder("card", testCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderLifecycle(t *testing.T) {
	shop, clock, store, _ := newTestStorefront(t)

	require.NoError(t, shop.AddToCart("n1")) // 3500
	require.NoError(t, shop.AddToCart("n4")) // 2800

	order, err := shop.PlaceOrder("card", testCustomer())
	require.NoError(t, err)

	// subtotal 6300 > 5000, so delivery is free
	assert.Equal(t, 6300, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "35", order.EstimatedDelivery)
	assert.Regexp(t, `^HK`, order.ID)

	// cart cleared and persisted immediately
	assert.Equal(t, 0, shop.CartItemCount())
	assert.Empty(t, store.cart)

	// nothing due before the confirm delay
	assert.Equal(t, 0, shop.Advance(clock.Tick(2*time.Second)))
	got, _ := shop.Order(order.ID)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	// confirmed after D1, estimate untouched
	assert.Equal(t, 1, shop.Advance(clock.Tick(2*time.Second)))
	got, _ = shop.Order(order.ID)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	assert.Equal(t, "35", got.EstimatedDelivery)

	// preparing after D2 (from placement), estimate drops to 25
	assert.Equal(t, 1, shop.Advance(clock.Tick(5*time.Second)))
	got, _ = shop.Order(order.ID)
	assert.Equal(t, models.OrderStatusPreparing, got.Status)
	assert.Equal(t, "25", got.EstimatedDelivery)

	// status changes were persisted
	require.NotEmpty(t, store.orders)
	assert.Equal(t, models.OrderStatusPreparing, store.orders[0].Status)
}

func TestPlacedOrderUnaffectedByCartMutations(t *testing.T) {
	shop, clock, _, _ := newTestStorefront(t)

	require.NoError(t, shop.AddToCart("n1"))
	order, err := shop.PlaceOrder("cash", testCustomer())
	require.NoError(t, err)

	require.NoError(t, shop.AddToCart("n1"))
	shop.UpdateCartQuantity("n1", 7)
	shop.Advance(clock.Tick(10 * time.Second))

	got, ok := shop.Order(order.ID)
	require.True(t, ok)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestOrdersAreIndependent(t *testing.T) {
	shop, clock, _, _ := newTestStorefront(t)

	require.NoError(t, shop.AddToCart("n1"))
	first, err := shop.PlaceOrder("card", testCustomer())
	require.NoError(t, err)

	clock.Tick(2 * time.Second)
	require.NoError(t, shop.AddToCart("n4"))
	second, err := shop.PlaceOrder("transfer", testCustomer())
	require.NoError(t, err)

	// most-recent-first
	orders := shop.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	// at +4s the first order is confirmed, the second still pending
	shop.Advance(clock.Tick(2 * time.Second))
	got, _ := shop.Order(first.ID)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
	got, _ = shop.Order(second.ID)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	// both finish preparing eventually
	shop.Advance(clock.Tick(10 * time.Second))
	got, _ = shop.Order(first.ID)
	assert.Equal(t, models.OrderStatusPreparing, got.Status)
	got, _ = shop.Order(second.ID)
	assert.Equal(t, models.OrderStatusPreparing, got.Status)
}

func TestOrderEventsEmitted(t *testing.T) {
	shop, clock, _, output := newTestStorefront(t)

	require.NoError(t, shop.AddToCart("n1"))
	order, err := shop.PlaceOrder("card", testCustomer())
	require.NoError(t, err)
	shop.Advance(clock.Tick(10 * time.Second))

	placed := output.byTopic("order_events")
	require.Len(t, placed, 1)
	assert.Equal(t, order.ID, placed[0]["orderId"])
	assert.Equal(t, "pending", placed[0]["status"])

	transitions := output.byTopic("order_status_events")
	require.Len(t, transitions, 2)
	assert.Equal(t, "confirmed", transitions[0]["status"])
	assert.Equal(t, "preparing", transitions[1]["status"])
	assert.Equal(t, "25", transitions[1]["estimatedDelivery"])
}

func TestSubmitReservationRejectsInvalidForm(t *testing.T) {
	shop, clock, _, output := newTestStorefront(t)

	ackID, errs := shop.SubmitReservation(models.ReservationForm{})
	assert.Empty(t, ackID)
	assert.NotEmpty(t, errs)

	// nothing scheduled, nothing emitted
	shop.Advance(clock.Tick(time.Minute))
	assert.Empty(t, output.byTopic("reservation_events"))
}

func TestSubmitReservationConfirmsAfterDelay(t *testing.T) {
	shop, clock, _, output := newTestStorefront(t)

	form := models.ReservationForm{
		CustomerName: "Chidi Emeka",
		Phone:        "08012345678",
		Email:        "chidi@example.com",
		Date:         time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Time:         "7:00 PM",
		Guests:       2,
		Location:     "lag1",
	}
	ackID, errs := shop.SubmitReservation(form)
	require.Empty(t, errs)
	require.NotEmpty(t, ackID)

	// not yet due
	assert.Equal(t, 0, shop.Advance(clock.Tick(time.Second)))

	require.Equal(t, 1, shop.Advance(clock.Tick(time.Second)))
	events := output.byTopic("reservation_events")
	require.Len(t, events, 1)
	assert.Equal(t, ackID, events[0]["ackId"])
	assert.Equal(t, "Chidi Emeka", events[0]["customer"])
}

func TestNewRestoresPersistedState(t *testing.T) {
	clock := newFakeClock()
	item, _ := testCatalog().MenuItem("n1")
	store := &memStore{
		cart: []models.OrderItem{{MenuItem: item, Quantity: 2, Subtotal: 7000, Customizations: []string{}}},
		orders: []models.Order{{
			ID:     "HK123456ABC",
			Status: models.OrderStatusPreparing,
		}},
	}

	shop, err := New(models.DefaultConfig(), testCatalog(), store, newCaptureOutput(), clock)
	require.NoError(t, err)

	assert.Equal(t, 2, shop.CartItemCount())
	assert.Equal(t, 7000, shop.CartSubtotal())

	restored, ok := shop.Order("HK123456ABC")
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPreparing, restored.Status)
}
