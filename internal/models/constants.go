package models

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
)

// The simulator only drives the first three statuses; ready and
// delivered are valid values reserved for kitchen-side tooling.
var OrderStatusSequence = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
}

func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatusSequence {
		if status == s {
			return true
		}
	}
	return false
}
