package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type storeProvider interface {
	ListStylists(ctx context.Context, city string, limit, offset int32) ([]Stylist, error)
	GetStylistBySlug(ctx context.Context, slug string) (Stylist, error)
	ListServicesByStylist(ctx context.Context, stylistID uuid.UUID) ([]BookableService, error)
	GetService(ctx context.Context, id uuid.UUID) (BookableService, error)
}

// StylistDetail is the stylist profile together with the treatments offered.
type StylistDetail struct {
	Stylist
	Services []BookableService `json:"services"`
}

// Service orchestrates catalog reads and caching.
type Service struct {
	Store storeProvider
	Cache *Cache
}

// ListStylists returns active stylists, read through the cache.
func (s *Service) ListStylists(ctx context.Context, city string, limit, offset int32) ([]Stylist, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("glowbook:catalog:stylists:%s:%d:%d", city, limit, offset)

	var stylists []Stylist
	if hit, err := s.Cache.Get(ctx, key, &stylists); err == nil && hit {
		return stylists, nil
	}
	stylists, err := s.Store.ListStylists(ctx, city, limit, offset)
	if err != nil {
		return nil, err
	}
	if stylists == nil {
		stylists = []Stylist{}
	}
	_ = s.Cache.Put(ctx, key, stylists)
	return stylists, nil
}

// GetStylist returns a stylist profile with its treatments.
func (s *Service) GetStylist(ctx context.Context, slug string) (StylistDetail, error) {
	if s == nil || s.Store == nil {
		return StylistDetail{}, errors.New("catalog service not configured")
	}
	key := "glowbook:catalog:stylist:" + slug

	var detail StylistDetail
	if hit, err := s.Cache.Get(ctx, key, &detail); err == nil && hit {
		return detail, nil
	}
	stylist, err := s.Store.GetStylistBySlug(ctx, slug)
	if err != nil {
		return StylistDetail{}, err
	}
	services, err := s.Store.ListServicesByStylist(ctx, stylist.ID)
	if err != nil {
		return StylistDetail{}, err
	}
	if services == nil {
		services = []BookableService{}
	}
	detail = StylistDetail{Stylist: stylist, Services: services}
	_ = s.Cache.Put(ctx, key, detail)
	return detail, nil
}

// GetService loads a single treatment, bypassing the cache. Checkout uses it
// to re-read authoritative prices.
func (s *Service) GetService(ctx context.Context, id uuid.UUID) (BookableService, error) {
	if s == nil || s.Store == nil {
		return BookableService{}, errors.New("catalog service not configured")
	}
	return s.Store.GetService(ctx, id)
}
