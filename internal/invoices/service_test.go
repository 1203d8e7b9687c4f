package invoices

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innoventory/innoventory/internal/orders"
	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/jobs"
)

type memoryRepo struct {
	nextID   int64
	invoices map[int64]*Invoice
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, invoices: make(map[int64]*Invoice)}
}

func (m *memoryRepo) List(_ context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if req.Status != "" && inv.Status != req.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memoryRepo) Create(_ context.Context, inv Invoice) (int64, error) {
	id := m.nextID
	m.nextID++
	inv.ID = id
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	m.invoices[id] = &inv
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, updates map[string]any) error {
	inv, ok := m.invoices[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["status"]; ok {
		inv.Status = v.(Status)
	}
	if v, ok := updates["issued_at"]; ok {
		t := v.(time.Time)
		inv.IssuedAt = &t
	}
	if v, ok := updates["paid_at"]; ok {
		t := v.(time.Time)
		inv.PaidAt = &t
	}
	if v, ok := updates["amount"]; ok {
		inv.Amount = v.(float64)
	}
	if v, ok := updates["tax"]; ok {
		inv.Tax = v.(float64)
	}
	if v, ok := updates["total"]; ok {
		inv.Total = v.(float64)
	}
	return nil
}

type stubOrderRepo struct {
	order *orders.Order
	err   error
}

func (s *stubOrderRepo) List(context.Context, orders.ListOrdersRequest) ([]orders.Order, int, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) Get(context.Context, int64) (*orders.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderRepo) Create(context.Context, orders.Order) (int64, error) { return 0, nil }

func (s *stubOrderRepo) Update(context.Context, int64, map[string]any) error { return nil }

func (s *stubOrderRepo) Delete(context.Context, int64) error { return nil }

type captureMailer struct {
	sent []jobs.SendEmailPayload
	err  error
}

func (c *captureMailer) EnqueueSendEmail(_ context.Context, p jobs.SendEmailPayload) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, p)
	return nil
}

func newTestService(mailer Mailer) (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	orderRepo := &stubOrderRepo{order: &orders.Order{ID: 7, Status: orders.StatusInProgress}}
	return NewService(repo, orderRepo, mailer, nil, nil), repo
}

func email(s string) *string { return &s }

func TestCreateComputesTotal(t *testing.T) {
	svc, _ := newTestService(nil)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		OrderID: 7,
		Amount:  1000.55,
		Tax:     180.11,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, inv.Status)
	assert.InDelta(t, 1000.55, inv.Amount, 0.001)
	assert.InDelta(t, 1180.66, inv.Total, 0.001)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "INV-"))
}

func TestCreateRejectsCancelledOrder(t *testing.T) {
	repo := newMemoryRepo()
	orderRepo := &stubOrderRepo{order: &orders.Order{ID: 7, Status: orders.StatusCancelled}}
	svc := NewService(repo, orderRepo, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{OrderID: 7, Amount: 100}, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreateRejectsMissingOrder(t *testing.T) {
	repo := newMemoryRepo()
	orderRepo := &stubOrderRepo{err: httpx.ErrNotFound}
	svc := NewService(repo, orderRepo, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{OrderID: 99, Amount: 100}, nil)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestIssueEnqueuesMail(t *testing.T) {
	mailer := &captureMailer{}
	svc, _ := newTestService(mailer)
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInvoiceRequest{
		OrderID:       7,
		CustomerEmail: email("billing@acme.test"),
		Amount:        500,
	}, nil)
	require.NoError(t, err)

	inv, err = svc.Issue(ctx, inv.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, inv.Status)
	require.NotNil(t, inv.IssuedAt)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "billing@acme.test", mailer.sent[0].To)
}

func TestIssueSurvivesQueueFailure(t *testing.T) {
	mailer := &captureMailer{err: errors.New("queue down")}
	svc, _ := newTestService(mailer)
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInvoiceRequest{
		OrderID:       7,
		CustomerEmail: email("billing@acme.test"),
		Amount:        500,
	}, nil)
	require.NoError(t, err)

	inv, err = svc.Issue(ctx, inv.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, inv.Status)
}

func TestMarkPaidRecordsPaidAt(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInvoiceRequest{OrderID: 7, Amount: 250}, nil)
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, inv.ID, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict), "draft cannot be marked paid")

	inv, err = svc.Issue(ctx, inv.ID, nil)
	require.NoError(t, err)

	inv, err = svc.MarkPaid(ctx, inv.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
}

func TestVoidRejectsPaidInvoice(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInvoiceRequest{OrderID: 7, Amount: 250}, nil)
	require.NoError(t, err)
	inv, err = svc.Issue(ctx, inv.ID, nil)
	require.NoError(t, err)
	inv, err = svc.MarkPaid(ctx, inv.ID, nil)
	require.NoError(t, err)

	_, err = svc.Void(ctx, inv.ID, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestUpdateOnlyDraft(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInvoiceRequest{OrderID: 7, Amount: 100, Tax: 10}, nil)
	require.NoError(t, err)

	newAmount := 200.0
	inv, err = svc.Update(ctx, inv.ID, UpdateInvoiceRequest{Amount: &newAmount}, nil)
	require.NoError(t, err)
	assert.Equal(t, 210.0, inv.Total)

	inv, err = svc.Issue(ctx, inv.ID, nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, inv.ID, UpdateInvoiceRequest{Amount: &newAmount}, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInvoiceRequest{OrderID: 7, Amount: 1234.5, Tax: 100}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, ListInvoicesRequest{}, &buf))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "invoice_number")
	assert.Contains(t, lines[1], `"1,234.50"`)
}
