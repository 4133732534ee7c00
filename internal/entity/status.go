package entity

type BasketStatus string

const (
	BasketActive  BasketStatus = "ACTIVE"
	BasketExpired BasketStatus = "EXPIRED"
)

// BasketStatuses lists the values offered by the basket status selector.
var BasketStatuses = []BasketStatus{BasketActive, BasketExpired}

func (s BasketStatus) Valid() bool {
	for _, v := range BasketStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderNew       OrderStatus = "NEW"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{OrderNew, OrderCompleted, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}
