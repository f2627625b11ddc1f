package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/glowbook/backend-glowbook/internal/catalog"
)

// CatalogResolver resolves cart lines against the service catalog, so the
// stored price and name always match the stylist's current offering.
type CatalogResolver struct {
	Catalog *catalog.Service
}

func (r CatalogResolver) ResolveService(ctx context.Context, serviceID string) (Item, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return Item{}, fmt.Errorf("invalid service id: %w", ErrInvalidInput)
	}
	svc, err := r.Catalog.GetService(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if !svc.Active {
		return Item{}, fmt.Errorf("service %s is not bookable: %w", svc.Name, ErrInvalidInput)
	}
	return Item{
		ServiceID:   svc.ID.String(),
		StylistID:   svc.StylistID.String(),
		ServiceName: svc.Name,
		UnitPrice:   svc.Price,
	}, nil
}
