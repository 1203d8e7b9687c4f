package invoices

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/innoventory/innoventory/internal/orders"
	"github.com/innoventory/innoventory/internal/platform/httpx"
	"github.com/innoventory/innoventory/internal/shared"
	"github.com/innoventory/innoventory/jobs"
)

// Mailer enqueues outbound mail. Satisfied by jobs.Client.
type Mailer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) error
}

type Service struct {
	repo     Repository
	orders   orders.Repository
	mailer   Mailer
	activity *shared.ActivityLogger
	logger   *slog.Logger
}

func NewService(repo Repository, orderRepo orders.Repository, mailer Mailer, activity *shared.ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, orders: orderRepo, mailer: mailer, activity: activity, logger: logger}
}

func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 20
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest, actor *shared.Claims) (*Invoice, error) {
	order, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order not found", httpx.ErrValidation)
	}
	if order.Status == orders.StatusCancelled {
		return nil, fmt.Errorf("%w: cannot invoice a cancelled order", httpx.ErrConflict)
	}

	inv := Invoice{
		InvoiceNumber: newInvoiceNumber(time.Now()),
		OrderID:       order.ID,
		CustomerEmail: req.CustomerEmail,
		Amount:        round2(req.Amount),
		Tax:           round2(req.Tax),
		Status:        StatusDraft,
		Notes:         req.Notes,
	}
	inv.Total = round2(inv.Amount + inv.Tax)
	if actor != nil && !actor.Demo && actor.AccountID > 0 {
		id := actor.AccountID
		inv.CreatedBy = &id
	}

	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "invoice.create", id, map[string]any{"invoice_number": inv.InvoiceNumber, "order_id": order.ID})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest, actor *shared.Claims) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be edited", httpx.ErrConflict)
	}

	updates := make(map[string]any)
	amount, tax := inv.Amount, inv.Tax
	if req.Amount != nil {
		amount = round2(*req.Amount)
		updates["amount"] = amount
	}
	if req.Tax != nil {
		tax = round2(*req.Tax)
		updates["tax"] = tax
	}
	if req.Amount != nil || req.Tax != nil {
		updates["total"] = round2(amount + tax)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	s.record(ctx, actor, "invoice.update", id, nil)
	return s.repo.Get(ctx, id)
}

// Issue moves a draft invoice to issued and enqueues the customer email.
// The mail enqueue is best-effort; a queue failure never rolls back the
// status change.
func (s *Service) Issue(ctx context.Context, id int64, actor *shared.Claims) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be issued", httpx.ErrConflict)
	}

	now := time.Now()
	if err := s.repo.Update(ctx, id, map[string]any{"status": StatusIssued, "issued_at": now}); err != nil {
		return nil, err
	}

	if s.mailer != nil && inv.CustomerEmail != nil {
		payload := jobs.SendEmailPayload{
			To:      *inv.CustomerEmail,
			Subject: fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
			Body:    fmt.Sprintf("Invoice %s for %.2f has been issued.", inv.InvoiceNumber, inv.Total),
		}
		if err := s.mailer.EnqueueSendEmail(ctx, payload); err != nil {
			s.logger.Warn("enqueue invoice mail", slog.Any("error", err), slog.Int64("invoice_id", id))
		}
	}

	s.record(ctx, actor, "invoice.issue", id, map[string]any{"invoice_number": inv.InvoiceNumber})
	return s.repo.Get(ctx, id)
}

func (s *Service) MarkPaid(ctx context.Context, id int64, actor *shared.Claims) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusIssued {
		return nil, fmt.Errorf("%w: only issued invoices can be marked paid", httpx.ErrConflict)
	}

	now := time.Now()
	if err := s.repo.Update(ctx, id, map[string]any{"status": StatusPaid, "paid_at": now}); err != nil {
		return nil, err
	}
	s.record(ctx, actor, "invoice.paid", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) Void(ctx context.Context, id int64, actor *shared.Claims) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == StatusPaid || inv.Status == StatusVoid {
		return nil, fmt.Errorf("%w: cannot void a %s invoice", httpx.ErrConflict, inv.Status)
	}

	if err := s.repo.Update(ctx, id, map[string]any{"status": StatusVoid}); err != nil {
		return nil, err
	}
	s.record(ctx, actor, "invoice.void", id, nil)
	return s.repo.Get(ctx, id)
}

func (s *Service) record(ctx context.Context, actor *shared.Claims, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		Actor:    actor,
		Action:   action,
		Entity:   "invoice",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
}
