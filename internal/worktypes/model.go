// Package worktypes manages the two-level work-type taxonomy used to
// classify service orders. A work type with a nil ParentID is a top-level
// category; one with a ParentID is a sub-type of that category.
package worktypes

import "time"

type WorkType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ParentID    *int64    `json:"parent_id,omitempty" db:"parent_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateWorkTypeRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateWorkTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ListWorkTypesRequest struct {
	ParentID *int64
	IsActive *bool
	Search   string
}
