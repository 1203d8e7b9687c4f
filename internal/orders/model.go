// Package orders manages IP service orders: the unit of work a customer
// commissions, optionally assigned to a vendor, classified by work type,
// and moved through a small status lifecycle.
package orders

import "time"

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions holds the allowed status moves. Completed and cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          int64      `json:"id" db:"id"`
	OrderNumber string     `json:"order_number" db:"order_number"`
	CustomerID  int64      `json:"customer_id" db:"customer_id"`
	VendorID    *int64     `json:"vendor_id,omitempty" db:"vendor_id"`
	WorkTypeID  int64      `json:"work_type_id" db:"work_type_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      Status     `json:"status" db:"status"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateOrderRequest struct {
	CustomerID  int64      `json:"customer_id" validate:"required,gt=0"`
	VendorID    *int64     `json:"vendor_id,omitempty" validate:"omitempty,gt=0"`
	WorkTypeID  int64      `json:"work_type_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,max=300"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateOrderRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=300"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type AssignVendorRequest struct {
	VendorID int64 `json:"vendor_id" validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type ListOrdersRequest struct {
	Status     Status
	CustomerID *int64
	VendorID   *int64
	Search     string
	Page       int
	PerPage    int
}
