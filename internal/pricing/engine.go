package pricing

// Money represents a monetary value stored in øre (minor units).
type Money = int64

// Item describes a booked service line used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// TrialSession represents an optional trial appointment charged on top of the services.
type TrialSession struct {
	Price Money
}

// Totals aggregates computed booking price components.
type Totals struct {
	ServiceSubtotal        Money `json:"serviceSubtotal"`
	TrialSessionAmount     Money `json:"trialSessionAmount"`
	SubtotalBeforeDiscount Money `json:"subtotalBeforeDiscount"`
	Discount               Money `json:"discountAmount"`
	Total                  Money `json:"finalTotal"`
}

// Compute calculates booking totals given the provided inputs. The discount is
// treated as already computed upstream; it is clamped so the payable total can
// never go negative regardless of what the caller supplies.
func Compute(items []Item, trial *TrialSession, discount Money) Totals {
	var subtotal Money
	for _, it := range items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		subtotal += Money(qty) * it.UnitPrice
	}
	var trialAmount Money
	if trial != nil && trial.Price > 0 {
		trialAmount = trial.Price
	}
	before := subtotal + trialAmount
	if discount < 0 {
		discount = 0
	}
	if discount > before {
		discount = before
	}
	return Totals{
		ServiceSubtotal:        subtotal,
		TrialSessionAmount:     trialAmount,
		SubtotalBeforeDiscount: before,
		Discount:               discount,
		Total:                  before - discount,
	}
}
