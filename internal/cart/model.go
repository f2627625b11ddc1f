package cart

import (
	"errors"
	"time"
)

// ErrNotFound indicates no cart exists for the customer.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrItemNotFound indicates the referenced line is not in the cart.
var ErrItemNotFound = errors.New("cart item not found")

// Item is a single bookable service line in a cart. UnitPrice is in øre.
type Item struct {
	ServiceID   string `json:"serviceId"`
	StylistID   string `json:"stylistId"`
	ServiceName string `json:"serviceName"`
	UnitPrice   int64  `json:"unitPrice"`
	Qty         int32  `json:"qty"`
}

// Cart aggregates the services a customer intends to book. All items belong
// to the same stylist; adding a service from another stylist replaces the
// cart contents, and only after the customer confirms.
type Cart struct {
	CustomerID string    `json:"customerId"`
	StylistID  string    `json:"stylistId,omitempty"`
	Items      []Item    `json:"items"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool { return len(c.Items) == 0 }

// TotalItems sums the quantities across all lines.
func (c Cart) TotalItems() int32 {
	var n int32
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

// TotalPrice sums line subtotals in øre.
func (c Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.Items {
		total += int64(it.Qty) * it.UnitPrice
	}
	return total
}

// add merges the item into the cart. The caller has already established that
// the item's stylist matches the cart's.
func (c *Cart) add(item Item) {
	for i := range c.Items {
		if c.Items[i].ServiceID == item.ServiceID {
			c.Items[i].Qty += item.Qty
			c.Items[i].UnitPrice = item.UnitPrice
			return
		}
	}
	c.StylistID = item.StylistID
	c.Items = append(c.Items, item)
}

// removeService drops the line for the service. Clearing the last line also
// clears the stylist so the next add starts fresh.
func (c *Cart) removeService(serviceID string) bool {
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			if len(c.Items) == 0 {
				c.StylistID = ""
			}
			return true
		}
	}
	return false
}

func (c *Cart) setQty(serviceID string, qty int32) bool {
	for i := range c.Items {
		if c.Items[i].ServiceID == serviceID {
			c.Items[i].Qty = qty
			return true
		}
	}
	return false
}
