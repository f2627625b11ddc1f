package discount

import (
	"testing"
	"time"
)

func int32Ptr(v int32) *int32 { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCalculateAmountPercent(t *testing.T) {
	rule := Rule{Percent: int32Ptr(20)}
	if got := CalculateAmount(rule, 100_000); got != 20_000 {
		t.Fatalf("expected 20000, got %d", got)
	}
}

func TestCalculateAmountPercentWithCap(t *testing.T) {
	rule := Rule{Percent: int32Ptr(20), MaxOrderAmount: int64Ptr(50_000)}
	if got := CalculateAmount(rule, 100_000); got != 10_000 {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestCalculateAmountFixedNeverExceedsOrder(t *testing.T) {
	rule := Rule{Amount: int64Ptr(5_000)}
	if got := CalculateAmount(rule, 3_000); got != 3_000 {
		t.Fatalf("expected 3000, got %d", got)
	}
	if got := CalculateAmount(rule, 10_000); got != 5_000 {
		t.Fatalf("expected 5000, got %d", got)
	}
}

func TestCalculateAmountFixedCappedByMaxOrder(t *testing.T) {
	rule := Rule{Amount: int64Ptr(8_000), MaxOrderAmount: int64Ptr(6_000)}
	if got := CalculateAmount(rule, 10_000); got != 6_000 {
		t.Fatalf("expected 6000, got %d", got)
	}
}

func TestCalculateAmountRoundsHalfUp(t *testing.T) {
	// 12.5% of 100 øre = 12.5 → rounds away from zero to 13.
	rule := Rule{Percent: int32Ptr(25)}
	if got := CalculateAmount(rule, 50); got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
}

func TestCalculateAmountEmptyRule(t *testing.T) {
	if got := CalculateAmount(Rule{}, 10_000); got != 0 {
		t.Fatalf("expected 0 for empty rule, got %d", got)
	}
	if got := CalculateAmount(Rule{Percent: int32Ptr(10)}, 0); got != 0 {
		t.Fatalf("expected 0 for zero order, got %d", got)
	}
}

func TestCalculateAmountIdempotent(t *testing.T) {
	rule := Rule{Percent: int32Ptr(15), MaxOrderAmount: int64Ptr(20_000)}
	first := CalculateAmount(rule, 35_000)
	second := CalculateAmount(rule, 35_000)
	if first != second {
		t.Fatalf("expected identical results, got %d and %d", first, second)
	}
}

func TestValidateWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	rule := Rule{Active: true, ValidFrom: &past, ValidTo: &future}
	if err := rule.Validate(now); err != nil {
		t.Fatalf("expected valid rule, got %v", err)
	}

	rule.ValidFrom = &future
	if err := rule.Validate(now); err != ErrNotStarted {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}

	rule.ValidFrom = &past
	rule.ValidTo = &past
	if err := rule.Validate(now); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	rule = Rule{Active: false}
	if err := rule.Validate(now); err != ErrInactive {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}
