package orders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type memoryRepo struct {
	nextID int64
	orders map[int64]*Order
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, orders: make(map[int64]*Order)}
}

func (m *memoryRepo) List(_ context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		if req.Status != "" && o.Status != req.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryRepo) Create(_ context.Context, o Order) (int64, error) {
	id := m.nextID
	m.nextID++
	o.ID = id
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	m.orders[id] = &o
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, updates map[string]any) error {
	o, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["title"]; ok {
		o.Title = v.(string)
	}
	if v, ok := updates["status"]; ok {
		o.Status = v.(Status)
	}
	if v, ok := updates["vendor_id"]; ok {
		vid := v.(int64)
		o.VendorID = &vid
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func createOrder(t *testing.T, svc *Service) *Order {
	t.Helper()
	o, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		WorkTypeID: 1,
		Title:      "Trademark renewal for Acme",
	}, nil)
	require.NoError(t, err)
	return o
}

func TestCreateAssignsOrderNumberAndNewStatus(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	o := createOrder(t, svc)
	assert.Equal(t, StatusNew, o.Status)
	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))

	other := createOrder(t, svc)
	assert.NotEqual(t, o.OrderNumber, other.OrderNumber)
}

func TestStatusLifecycle(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()
	o := createOrder(t, svc)

	o, err := svc.UpdateStatus(ctx, o.ID, StatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, o.Status)

	o, err = svc.UpdateStatus(ctx, o.ID, StatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, o.Status)
}

func TestStatusRejectsIllegalTransitions(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	o := createOrder(t, svc)
	_, err := svc.UpdateStatus(ctx, o.ID, StatusCompleted, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict), "new cannot jump to completed")

	o, err = svc.UpdateStatus(ctx, o.ID, StatusCancelled, nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, o.ID, StatusInProgress, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict), "cancelled is terminal")
}

func TestStatusRejectsUnknownValue(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	o := createOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), o.ID, Status("archived"), nil)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestAssignVendor(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()
	o := createOrder(t, svc)

	o, err := svc.AssignVendor(ctx, o.ID, 42, nil)
	require.NoError(t, err)
	require.NotNil(t, o.VendorID)
	assert.Equal(t, int64(42), *o.VendorID)
}

func TestAssignVendorRejectsTerminalOrder(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()
	o := createOrder(t, svc)

	_, err := svc.UpdateStatus(ctx, o.ID, StatusCancelled, nil)
	require.NoError(t, err)

	_, err = svc.AssignVendor(ctx, o.ID, 42, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}
