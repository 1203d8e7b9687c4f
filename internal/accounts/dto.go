package accounts

type CreateAccountRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Name        string   `json:"name" validate:"required,max=200"`
	Role        string   `json:"role" validate:"required,oneof=admin delegate"`
	Permissions []string `json:"permissions"`
}

type UpdateAccountRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Password    *string  `json:"password,omitempty" validate:"omitempty,min=8"`
	Role        *string  `json:"role,omitempty" validate:"omitempty,oneof=admin delegate"`
	IsActive    *bool    `json:"is_active,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type ListAccountsRequest struct {
	IsActive *bool
	Search   string
	Page     int
	PerPage  int
}
