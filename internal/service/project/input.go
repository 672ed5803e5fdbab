package project

import (
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateProjectInput holds the parameters for creating a project.
type CreateProjectInput struct {
	NodeID    uuid.UUID
	Title     string
	Summary   *string
	SortOrder int
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	var errs []domain.FieldError

	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 150 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 150 characters"})
	}

	if i.Summary != nil && len(strings.TrimSpace(*i.Summary)) > 2000 {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProjectInput holds the parameters for updating a project.
type UpdateProjectInput struct {
	ProjectID uuid.UUID
	Title     *string
	Summary   *string // nil = don't change; ptr("") = clear
	Active    *bool
	SortOrder *int
}

// Validate checks all fields and collects all errors.
func (i UpdateProjectInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Title == nil && i.Summary == nil && i.Active == nil && i.SortOrder == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > 150 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 150 characters"})
		}
	}
	if i.Summary != nil && len(*i.Summary) > 2000 {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteProjectInput holds the parameters for deleting a project.
type DeleteProjectInput struct {
	ProjectID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteProjectInput) Validate() error {
	if i.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}
	return nil
}
