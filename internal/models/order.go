package models

// CartLine represents one product-and-quantity entry in a cart or a placed
// order. Name and price are copied from the menu item at add time, so later
// catalog edits never reach back into carts or order history.
type CartLine struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// LineTotal returns price × qty for this line.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Qty)
}

// OrderUser is the purchaser stamp frozen onto an order at placement.
type OrderUser struct {
	RollNo string `json:"rollNo"`
	Mobile string `json:"mobile"`
}

// Order represents a placed order in the ledger. Status is the only field
// that changes after creation.
type Order struct {
	OrderID   int         `json:"orderId"`
	User      OrderUser   `json:"user"`
	Items     []CartLine  `json:"items"`
	Status    OrderStatus `json:"status"`
	Timestamp string      `json:"timestamp"`
	Total     float64     `json:"total"`
}

// OrderStatus represents the possible states of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusRejected  OrderStatus = "Rejected"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// ValidOrderStatus reports whether s is a member of the status enumeration.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected,
		OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}

// Next returns the forward step in the fulfilment workflow:
// Pending → Accepted → Preparing → Ready → Delivered. The second return is
// false for Rejected, Delivered, and unknown statuses, which have no next
// step.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusAccepted, true
	case OrderStatusAccepted:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusDelivered, true
	}
	return "", false
}

// IsTerminal reports whether no transition is defined out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDelivered
}
