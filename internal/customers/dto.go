package customers

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes   *string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country  *string `json:"country,omitempty" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type ListCustomersRequest struct {
	IsActive *bool
	Search   string
	Page     int
	PerPage  int
}
