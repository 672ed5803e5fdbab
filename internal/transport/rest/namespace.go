package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/edustack/catalog-backend/internal/domain"
	"github.com/edustack/catalog-backend/internal/service/catalog"
	"github.com/google/uuid"
)

// catalogService defines the minimal interface needed by NamespaceHandler.
type catalogService interface {
	CreateNamespace(ctx context.Context, input catalog.CreateNamespaceInput) (*domain.Namespace, error)
	UpdateNamespace(ctx context.Context, input catalog.UpdateNamespaceInput) (*domain.Namespace, error)
	DeleteNamespace(ctx context.Context, input catalog.DeleteNamespaceInput) error
	ListNamespaces(ctx context.Context) ([]*domain.Namespace, error)
	GetNamespace(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error)
}

// NamespaceHandler serves namespace REST endpoints.
type NamespaceHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewNamespaceHandler creates a NamespaceHandler.
func NewNamespaceHandler(svc catalogService, logger *slog.Logger) *NamespaceHandler {
	return &NamespaceHandler{svc: svc, log: logger.With("handler", "namespace")}
}

type createNamespaceRequest struct {
	Title string `json:"title"`
}

type updateNamespaceRequest struct {
	Title  *string `json:"title"`
	Active *bool   `json:"active"`
}

type namespaceResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Create handles POST /api/v1/namespaces.
func (h *NamespaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNamespaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ns, err := h.svc.CreateNamespace(r.Context(), catalog.CreateNamespaceInput{
		Title: req.Title,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNamespaceResponse(ns))
}

// List handles GET /api/v1/namespaces.
func (h *NamespaceHandler) List(w http.ResponseWriter, r *http.Request) {
	namespaces, err := h.svc.ListNamespaces(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := make([]namespaceResponse, 0, len(namespaces))
	for _, ns := range namespaces {
		resp = append(resp, toNamespaceResponse(ns))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/namespaces/{id}.
func (h *NamespaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid namespace id")
		return
	}

	ns, err := h.svc.GetNamespace(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNamespaceResponse(ns))
}

// Update handles PATCH /api/v1/namespaces/{id}.
func (h *NamespaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid namespace id")
		return
	}

	var req updateNamespaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ns, err := h.svc.UpdateNamespace(r.Context(), catalog.UpdateNamespaceInput{
		NamespaceID: id,
		Title:       req.Title,
		Active:      req.Active,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNamespaceResponse(ns))
}

// Delete handles DELETE /api/v1/namespaces/{id}.
func (h *NamespaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid namespace id")
		return
	}

	if err := h.svc.DeleteNamespace(r.Context(), catalog.DeleteNamespaceInput{
		NamespaceID: id,
	}); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toNamespaceResponse(ns *domain.Namespace) namespaceResponse {
	return namespaceResponse{
		ID:        ns.ID.String(),
		Title:     ns.Title,
		Slug:      ns.Slug,
		Active:    ns.Active,
		CreatedAt: ns.CreatedAt,
		UpdatedAt: ns.UpdatedAt,
	}
}
