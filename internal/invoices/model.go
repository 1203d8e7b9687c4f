// Package invoices bills completed or in-flight service orders. An invoice
// starts as a draft, gets issued to the customer, and is then either paid
// or voided.
package invoices

import "time"

type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return true
	}
	return false
}

type Invoice struct {
	ID            int64      `json:"id" db:"id"`
	InvoiceNumber string     `json:"invoice_number" db:"invoice_number"`
	OrderID       int64      `json:"order_id" db:"order_id"`
	CustomerEmail *string    `json:"customer_email,omitempty" db:"customer_email"`
	Amount        float64    `json:"amount" db:"amount"`
	Tax           float64    `json:"tax" db:"tax"`
	Total         float64    `json:"total" db:"total"`
	Status        Status     `json:"status" db:"status"`
	IssuedAt      *time.Time `json:"issued_at,omitempty" db:"issued_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	CreatedBy     *int64     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateInvoiceRequest struct {
	OrderID       int64   `json:"order_id" validate:"required,gt=0"`
	CustomerEmail *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Tax           float64 `json:"tax" validate:"gte=0"`
	Notes         *string `json:"notes,omitempty"`
}

type UpdateInvoiceRequest struct {
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Tax    *float64 `json:"tax,omitempty" validate:"omitempty,gte=0"`
	Notes  *string  `json:"notes,omitempty"`
}

type ListInvoicesRequest struct {
	Status  Status
	OrderID *int64
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}
