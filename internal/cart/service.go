package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glowbook/backend-glowbook/internal/obs"
)

// AddResult reports the outcome of an add attempt. When NeedsConfirmation is
// set the cart was left untouched: the item belongs to a different stylist
// than the one the cart is bound to, and the customer must confirm the
// replacement before the add goes through.
type AddResult struct {
	Cart              Cart `json:"cart"`
	NeedsConfirmation bool `json:"needsConfirmation"`
}

// Resolver supplies the authoritative line for a bookable service. The cart
// never trusts prices or names from the client.
type Resolver interface {
	ResolveService(ctx context.Context, serviceID string) (Item, error)
}

// Service encapsulates cart domain operations on top of the Redis store.
type Service struct {
	Store   Store
	Catalog Resolver
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get loads the customer's cart. Customers without one get an empty cart
// rather than an error.
func (s *Service) Get(ctx context.Context, customerID string) (Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return Cart{}, err
	}
	c, err := s.Store.Load(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cart{CustomerID: customerID, Items: []Item{}}, nil
		}
		return Cart{}, err
	}
	return c, nil
}

// AddItem adds a service to the cart. Price, name and stylist are resolved
// from the catalog, never taken from the client. Adding a service from a
// stylist other than the cart's current one requires confirm=true, which
// replaces the cart contents with that single service at quantity one.
func (s *Service) AddItem(ctx context.Context, customerID, serviceID string, qty int32, confirm bool) (AddResult, error) {
	if err := requireCustomer(customerID); err != nil {
		return AddResult{}, err
	}
	if s == nil || s.Catalog == nil {
		return AddResult{}, errors.New("cart service not configured")
	}
	if strings.TrimSpace(serviceID) == "" {
		return AddResult{}, fmt.Errorf("service id is required: %w", ErrInvalidInput)
	}

	item, err := s.Catalog.ResolveService(ctx, serviceID)
	if err != nil {
		return AddResult{}, err
	}
	item.Qty = qty
	if item.Qty <= 0 {
		item.Qty = 1
	}

	c, err := s.Get(ctx, customerID)
	if err != nil {
		return AddResult{}, err
	}

	if !c.Empty() && c.StylistID != item.StylistID {
		if !confirm {
			if obs.CartStylistConflictTotal != nil {
				obs.CartStylistConflictTotal.Inc()
			}
			return AddResult{Cart: c, NeedsConfirmation: true}, nil
		}
		c.Items = nil
		c.StylistID = ""
		item.Qty = 1
	}

	c.add(item)
	c.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, c); err != nil {
		return AddResult{}, err
	}
	return AddResult{Cart: c}, nil
}

// UpdateQuantity sets the quantity for a service line. Zero or negative
// removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, serviceID string, qty int32) (Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return Cart{}, err
	}
	c, err := s.Store.Load(ctx, customerID)
	if err != nil {
		return Cart{}, err
	}
	if qty <= 0 {
		if !c.removeService(serviceID) {
			return Cart{}, ErrItemNotFound
		}
	} else if !c.setQty(serviceID, qty) {
		return Cart{}, ErrItemNotFound
	}
	c.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// RemoveItem drops a service line from the cart.
func (s *Service) RemoveItem(ctx context.Context, customerID, serviceID string) (Cart, error) {
	return s.UpdateQuantity(ctx, customerID, serviceID, 0)
}

// Clear removes the customer's cart entirely.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	if err := requireCustomer(customerID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, customerID)
}

func requireCustomer(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return fmt.Errorf("customer id is required: %w", ErrInvalidInput)
	}
	return nil
}
