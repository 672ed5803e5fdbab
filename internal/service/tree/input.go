package tree

import (
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateNodeInput holds the parameters for creating a node.
// A nil ParentID creates a namespace root. A nil Active defaults to true.
type CreateNodeInput struct {
	NamespaceID uuid.UUID
	ParentID    *uuid.UUID
	Title       string
	Description *string
	Active      *bool
	SortOrder   int
}

// Validate checks all fields and collects all errors.
func (i CreateNodeInput) Validate() error {
	var errs []domain.FieldError

	if i.NamespaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "namespace_id", Message: "required"})
	}

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 150 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 150 characters"})
	}

	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReparentNodeInput holds the parameters for moving a node to a new parent.
// A nil NewParentID promotes the node to a namespace root.
type ReparentNodeInput struct {
	NodeID      uuid.UUID
	NewParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ReparentNodeInput) Validate() error {
	if i.NodeID == uuid.Nil {
		return domain.NewValidationError("node_id", "required")
	}
	return nil
}

// UpdateNodeInput holds the parameters for updating node attributes.
// Structural fields (parent, level) are not updatable here; use reparenting.
type UpdateNodeInput struct {
	NodeID      uuid.UUID
	Title       *string
	Description *string // nil = don't change; ptr("") = clear
	Active      *bool
	SortOrder   *int
}

// Validate checks all fields and collects all errors.
func (i UpdateNodeInput) Validate() error {
	var errs []domain.FieldError

	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}
	if i.Title == nil && i.Description == nil && i.Active == nil && i.SortOrder == nil {
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
	if i.Description != nil && len(*i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteNodeInput holds the parameters for deleting a node.
// Force must be set to delete a node that still has children.
type DeleteNodeInput struct {
	NodeID uuid.UUID
	Force  bool
}

// Validate checks all fields and collects all errors.
func (i DeleteNodeInput) Validate() error {
	if i.NodeID == uuid.Nil {
		return domain.NewValidationError("node_id", "required")
	}
	return nil
}

// GetTreeInput holds the parameters for reading a namespace hierarchy.
type GetTreeInput struct {
	NamespaceID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GetTreeInput) Validate() error {
	if i.NamespaceID == uuid.Nil {
		return domain.NewValidationError("namespace_id", "required")
	}
	return nil
}

// ListLeavesInput holds the parameters for listing leaf nodes.
// A nil NamespaceID lists leaves across all namespaces.
type ListLeavesInput struct {
	NamespaceID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ListLeavesInput) Validate() error {
	if i.NamespaceID != nil && *i.NamespaceID == uuid.Nil {
		return domain.NewValidationError("namespace_id", "must not be the zero id")
	}
	return nil
}
