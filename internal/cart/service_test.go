package cart_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/backend-glowbook/internal/cart"
	"github.com/glowbook/backend-glowbook/internal/catalog"
)

type stubResolver map[string]cart.Item

func (s stubResolver) ResolveService(_ context.Context, serviceID string) (cart.Item, error) {
	item, ok := s[serviceID]
	if !ok {
		return cart.Item{}, catalog.ErrNotFound
	}
	return item, nil
}

func testCatalog() stubResolver {
	return stubResolver{
		"svc-cut":   {ServiceID: "svc-cut", StylistID: "sty-1", ServiceName: "Klipp", UnitPrice: 30_000},
		"svc-color": {ServiceID: "svc-color", StylistID: "sty-1", ServiceName: "Farge", UnitPrice: 50_000},
		"svc-nails": {ServiceID: "svc-nails", StylistID: "sty-2", ServiceName: "Manikyr", UnitPrice: 40_000},
	}
}

func newService(t *testing.T) (*cart.Service, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := &cart.Service{
		Store:   cart.Store{R: client, Prefix: "glowbook:cart", TTL: time.Hour},
		Catalog: testCatalog(),
		Now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, mr
}

func TestGetReturnsEmptyCartForNewCustomer(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.Get(context.Background(), "cust-1")
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Equal(t, "cust-1", c.CustomerID)
	require.Zero(t, c.TotalPrice())
}

func TestAddItemSameStylistAccumulates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)
	require.False(t, res.NeedsConfirmation)

	res, err = svc.AddItem(ctx, "cust-1", "svc-color", 2, false)
	require.NoError(t, err)
	require.Len(t, res.Cart.Items, 2)
	require.Equal(t, int32(3), res.Cart.TotalItems())
	require.Equal(t, int64(130_000), res.Cart.TotalPrice())
}

func TestAddItemDuplicateServiceIncrementsQty(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)

	res, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)
	require.Len(t, res.Cart.Items, 1)
	require.Equal(t, int32(2), res.Cart.Items[0].Qty)
}

func TestAddItemResolvesLineFromCatalog(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.AddItem(context.Background(), "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)
	require.Equal(t, "sty-1", res.Cart.StylistID)
	require.Equal(t, "Klipp", res.Cart.Items[0].ServiceName)
	require.Equal(t, int64(30_000), res.Cart.Items[0].UnitPrice)
}

func TestAddItemUnknownServiceRejected(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddItem(context.Background(), "cust-1", "svc-missing", 1, false)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAddItemCrossStylistRequiresConfirmation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)

	res, err := svc.AddItem(ctx, "cust-1", "svc-nails", 1, false)
	require.NoError(t, err)
	require.True(t, res.NeedsConfirmation)
	// The cart is untouched until the customer confirms.
	require.Equal(t, "sty-1", res.Cart.StylistID)
	require.Len(t, res.Cart.Items, 1)

	res, err = svc.AddItem(ctx, "cust-1", "svc-nails", 1, true)
	require.NoError(t, err)
	require.False(t, res.NeedsConfirmation)
	require.Equal(t, "sty-2", res.Cart.StylistID)
	require.Len(t, res.Cart.Items, 1)
	require.Equal(t, "svc-nails", res.Cart.Items[0].ServiceID)
}

func TestConfirmedReplaceYieldsSingleItemQtyOne(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 2, false)
	require.NoError(t, err)

	res, err := svc.AddItem(ctx, "cust-1", "svc-nails", 3, true)
	require.NoError(t, err)
	require.Len(t, res.Cart.Items, 1)
	require.Equal(t, int32(1), res.Cart.Items[0].Qty)
	require.Equal(t, int64(40_000), res.Cart.TotalPrice())
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "cust-1", "svc-cut", 3)
	require.NoError(t, err)
	require.Equal(t, int64(90_000), c.TotalPrice())

	c, err = svc.RemoveItem(ctx, "cust-1", "svc-cut")
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Empty(t, c.StylistID)

	_, err = svc.UpdateQuantity(ctx, "cust-1", "svc-cut", 1)
	require.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestZeroQuantityRemovesLine(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 2, false)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "cust-1", "svc-cut", 0)
	require.NoError(t, err)
	require.True(t, c.Empty())
}

func TestClearDeletesKey(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)
	require.True(t, mr.Exists("glowbook:cart:cust-1"))

	require.NoError(t, svc.Clear(ctx, "cust-1"))
	require.False(t, mr.Exists("glowbook:cart:cust-1"))
}

func TestCartExpiresWithTTL(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "cust-1", "svc-cut", 1, false)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	c, err := svc.Get(ctx, "cust-1")
	require.NoError(t, err)
	require.True(t, c.Empty())
}

func TestAddItemDefaultsQtyToOne(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.AddItem(context.Background(), "cust-1", "svc-cut", 0, false)
	require.NoError(t, err)
	require.Equal(t, int32(1), res.Cart.TotalItems())
}
