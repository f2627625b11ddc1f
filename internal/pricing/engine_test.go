package pricing

import "testing"

func TestComputeWithTrialAndDiscount(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 300}}
	totals := Compute(items, &TrialSession{Price: 100}, 150)
	if totals.ServiceSubtotal != 600 {
		t.Fatalf("expected service subtotal 600, got %d", totals.ServiceSubtotal)
	}
	if totals.SubtotalBeforeDiscount != 700 {
		t.Fatalf("expected subtotal before discount 700, got %d", totals.SubtotalBeforeDiscount)
	}
	if totals.Total != 550 {
		t.Fatalf("expected total 550, got %d", totals.Total)
	}
}

func TestComputeZeroQtyCountsAsOne(t *testing.T) {
	totals := Compute([]Item{{Qty: 0, UnitPrice: 500}}, nil, 0)
	if totals.ServiceSubtotal != 500 {
		t.Fatalf("expected subtotal 500, got %d", totals.ServiceSubtotal)
	}
}

func TestComputeClampsOversizedDiscount(t *testing.T) {
	totals := Compute([]Item{{Qty: 1, UnitPrice: 200}}, nil, 1_000)
	if totals.Discount != 200 {
		t.Fatalf("expected discount clamped to 200, got %d", totals.Discount)
	}
	if totals.Total != 0 {
		t.Fatalf("expected total floored at 0, got %d", totals.Total)
	}
}

func TestComputeNegativeDiscountIgnored(t *testing.T) {
	totals := Compute([]Item{{Qty: 1, UnitPrice: 200}}, nil, -50)
	if totals.Discount != 0 || totals.Total != 200 {
		t.Fatalf("expected discount 0 and total 200, got %d and %d", totals.Discount, totals.Total)
	}
}
