package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateNamespaceInput holds the parameters for creating a namespace.
type CreateNamespaceInput struct {
	Title string
}

// Validate checks all fields and collects all errors.
func (i CreateNamespaceInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 100 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateNamespaceInput holds the parameters for updating a namespace.
type UpdateNamespaceInput struct {
	NamespaceID uuid.UUID
	Title       *string
	Active      *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateNamespaceInput) Validate() error {
	var errs []domain.FieldError

	if i.NamespaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "namespace_id", Message: "required"})
	}
	if i.Title == nil && i.Active == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > 100 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 100 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteNamespaceInput holds the parameters for deleting a namespace.
type DeleteNamespaceInput struct {
	NamespaceID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteNamespaceInput) Validate() error {
	if i.NamespaceID == uuid.Nil {
		return domain.NewValidationError("namespace_id", "required")
	}
	return nil
}
