package vendors

import "time"

// Vendor is an external service provider that order work is assigned to.
type Vendor struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialization *string   `json:"specialization,omitempty" db:"specialization"`
	Email          *string   `json:"email,omitempty" db:"email"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Address        *string   `json:"address,omitempty" db:"address"`
	Country        *string   `json:"country,omitempty" db:"country"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedBy      *int64    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreateVendorRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Specialization *string `json:"specialization,omitempty" validate:"omitempty,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes          *string `json:"notes,omitempty"`
}

type UpdateVendorRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Specialization *string `json:"specialization,omitempty" validate:"omitempty,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=100"`
	IsActive       *bool   `json:"is_active,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type ListVendorsRequest struct {
	IsActive *bool
	Search   string
	Page     int
	PerPage  int
}
