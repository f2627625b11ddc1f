package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Record is the stored representation of a discount code.
type Record struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	Description    string     `json:"description,omitempty"`
	Percent        *int32     `json:"percent,omitempty"`
	Amount         *int64     `json:"amount,omitempty"`
	MaxOrderAmount *int64     `json:"maxOrderAmount,omitempty"`
	ValidFrom      *time.Time `json:"validFrom,omitempty"`
	ValidTo        *time.Time `json:"validTo,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Rule converts the stored record into the calculation rule.
func (r Record) Rule() Rule {
	return Rule{
		Code:           r.Code,
		Description:    r.Description,
		Percent:        r.Percent,
		Amount:         r.Amount,
		MaxOrderAmount: r.MaxOrderAmount,
		ValidFrom:      r.ValidFrom,
		ValidTo:        r.ValidTo,
		Active:         r.Active,
	}
}

// Input captures payload for creating or updating a discount code.
type Input struct {
	Code           string
	Description    string
	Percent        *int32
	Amount         *int64
	MaxOrderAmount *int64
	ValidFrom      *time.Time
	ValidTo        *time.Time
	Active         *bool
}

// Store defines the persistence operations required by the discount service.
type Store interface {
	GetByCode(ctx context.Context, code string) (Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context, limit, offset int32) ([]Record, error)
}

// Quote describes the outcome of evaluating a code against an order amount.
type Quote struct {
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	OrderAmount    int64  `json:"orderAmount"`
	DiscountAmount int64  `json:"discountAmount"`
}

// Service encapsulates discount code management and evaluation.
type Service struct {
	Store Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Quote validates the code and computes the discount for the given order amount.
func (s *Service) Quote(ctx context.Context, code string, orderAmount int64) (Quote, error) {
	if s == nil || s.Store == nil {
		return Quote{}, errors.New("discount service not configured")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Quote{}, fmt.Errorf("code is required: %w", ErrInvalidInput)
	}
	if orderAmount < 0 {
		return Quote{}, fmt.Errorf("order amount must not be negative: %w", ErrInvalidInput)
	}
	rec, err := s.Store.GetByCode(ctx, code)
	if err != nil {
		return Quote{}, err
	}
	rule := rec.Rule()
	if err := rule.Validate(s.now()); err != nil {
		return Quote{}, err
	}
	return Quote{
		Code:           rec.Code,
		Description:    rec.Description,
		OrderAmount:    orderAmount,
		DiscountAmount: CalculateAmount(rule, orderAmount),
	}, nil
}

// Create inserts a new discount code.
func (s *Service) Create(ctx context.Context, in Input) (Record, error) {
	if s == nil || s.Store == nil {
		return Record{}, errors.New("discount service not configured")
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return Record{}, fmt.Errorf("code is required: %w", ErrInvalidInput)
	}
	if in.Percent == nil && in.Amount == nil {
		return Record{}, fmt.Errorf("either percent or amount is required: %w", ErrInvalidInput)
	}
	if err := validateInput(in); err != nil {
		return Record{}, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := s.now()
	rec := Record{
		ID:             uuid.New(),
		Code:           code,
		Description:    strings.TrimSpace(in.Description),
		Percent:        in.Percent,
		Amount:         in.Amount,
		MaxOrderAmount: in.MaxOrderAmount,
		ValidFrom:      in.ValidFrom,
		ValidTo:        in.ValidTo,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.Store.Insert(ctx, rec)
}

// Update mutates an existing discount code identified by its code.
func (s *Service) Update(ctx context.Context, code string, in Input) (Record, error) {
	if s == nil || s.Store == nil {
		return Record{}, errors.New("discount service not configured")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Record{}, fmt.Errorf("code is required: %w", ErrInvalidInput)
	}
	if err := validateInput(in); err != nil {
		return Record{}, err
	}
	rec, err := s.Store.GetByCode(ctx, code)
	if err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(in.Description) != "" {
		rec.Description = strings.TrimSpace(in.Description)
	}
	if in.Percent != nil || in.Amount != nil {
		// A new value kind replaces the old one entirely.
		rec.Percent = in.Percent
		rec.Amount = in.Amount
	}
	if in.MaxOrderAmount != nil {
		rec.MaxOrderAmount = in.MaxOrderAmount
	}
	if in.ValidFrom != nil {
		rec.ValidFrom = in.ValidFrom
	}
	if in.ValidTo != nil {
		rec.ValidTo = in.ValidTo
	}
	if in.Active != nil {
		rec.Active = *in.Active
	}
	rec.UpdatedAt = s.now()
	return s.Store.Update(ctx, rec)
}

// List returns a page of discount codes.
func (s *Service) List(ctx context.Context, limit, offset int32) ([]Record, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("discount service not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.List(ctx, limit, offset)
}

func validateInput(in Input) error {
	if in.Percent != nil && in.Amount != nil {
		return fmt.Errorf("percent and amount are mutually exclusive: %w", ErrInvalidInput)
	}
	if in.Percent != nil && (*in.Percent <= 0 || *in.Percent > 100) {
		return fmt.Errorf("percent must be within 1-100: %w", ErrInvalidInput)
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	if in.MaxOrderAmount != nil && *in.MaxOrderAmount <= 0 {
		return fmt.Errorf("maximum order amount must be positive: %w", ErrInvalidInput)
	}
	if in.ValidFrom != nil && in.ValidTo != nil && in.ValidTo.Before(*in.ValidFrom) {
		return fmt.Errorf("valid window is inverted: %w", ErrInvalidInput)
	}
	return nil
}
