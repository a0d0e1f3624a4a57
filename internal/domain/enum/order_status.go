package enum

// OrderStatus represents the status of an order fact in the ledger
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CountsAsRevenue returns true when the order contributes to revenue totals
func (s OrderStatus) CountsAsRevenue() bool {
	return s == OrderStatusCompleted
}
