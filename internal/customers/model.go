package customers

import "time"

type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Company   *string   `json:"company,omitempty" db:"company"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	City      *string   `json:"city,omitempty" db:"city"`
	Country   *string   `json:"country,omitempty" db:"country"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedBy *int64    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
