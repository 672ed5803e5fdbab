package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/edustack/catalog-backend/internal/domain"
	"github.com/edustack/catalog-backend/internal/service/tree"
	"github.com/google/uuid"
)

// treeService defines the minimal interface needed by NodeHandler.
type treeService interface {
	CreateNode(ctx context.Context, input tree.CreateNodeInput) (*domain.Node, error)
	ReparentNode(ctx context.Context, input tree.ReparentNodeInput) (*domain.Node, error)
	UpdateNode(ctx context.Context, input tree.UpdateNodeInput) (*domain.Node, error)
	DeleteNode(ctx context.Context, input tree.DeleteNodeInput) (*tree.DeleteNodeResult, error)
	GetNode(ctx context.Context, nodeID uuid.UUID) (*domain.Node, error)
	GetTree(ctx context.Context, input tree.GetTreeInput) ([]*domain.TreeNode, error)
	ListLeaves(ctx context.Context, input tree.ListLeavesInput) ([]*domain.Node, error)
}

// NodeHandler serves node and hierarchy REST endpoints.
type NodeHandler struct {
	svc treeService
	log *slog.Logger
}

// NewNodeHandler creates a NodeHandler.
func NewNodeHandler(svc treeService, logger *slog.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, log: logger.With("handler", "node")}
}

type createNodeRequest struct {
	NamespaceID string  `json:"namespaceId"`
	ParentID    *string `json:"parentId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	SortOrder   int     `json:"sortOrder"`
}

type updateNodeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	SortOrder   *int    `json:"sortOrder"`
}

type reparentNodeRequest struct {
	NewParentID *string `json:"newParentId"`
}

type nodeResponse struct {
	ID          string    `json:"id"`
	NamespaceID string    `json:"namespaceId"`
	ParentID    *string   `json:"parentId,omitempty"`
	Level       int       `json:"level"`
	IsLeaf      bool      `json:"isLeaf"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type treeNodeResponse struct {
	nodeResponse
	Children []treeNodeResponse `json:"children"`
}

type deleteNodeResponse struct {
	DeletedNodes    int      `json:"deletedNodes"`
	DeletedProjects int      `json:"deletedProjects"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Create handles POST /api/v1/nodes.
func (h *NodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	namespaceID, err := uuid.Parse(req.NamespaceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid namespace id")
		return
	}
	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parent id")
		return
	}

	node, err := h.svc.CreateNode(r.Context(), tree.CreateNodeInput{
		NamespaceID: namespaceID,
		ParentID:    parentID,
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// Get handles GET /api/v1/nodes/{id}.
func (h *NodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid node id")
		return
	}

	node, err := h.svc.GetNode(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// Update handles PATCH /api/v1/nodes/{id}.
func (h *NodeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid node id")
		return
	}

	var req updateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	node, err := h.svc.UpdateNode(r.Context(), tree.UpdateNodeInput{
		NodeID:      id,
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// Reparent handles POST /api/v1/nodes/{id}/reparent.
func (h *NodeHandler) Reparent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid node id")
		return
	}

	var req reparentNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newParentID, err := parseOptionalUUID(req.NewParentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parent id")
		return
	}

	node, err := h.svc.ReparentNode(r.Context(), tree.ReparentNodeInput{
		NodeID:      id,
		NewParentID: newParentID,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// Delete handles DELETE /api/v1/nodes/{id}. The "force" query parameter
// enables cascade deletion of non-empty subtrees.
func (h *NodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid node id")
		return
	}

	force := r.URL.Query().Get("force") == "true"

	result, err := h.svc.DeleteNode(r.Context(), tree.DeleteNodeInput{
		NodeID: id,
		Force:  force,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteNodeResponse{
		DeletedNodes:    result.DeletedNodes,
		DeletedProjects: result.DeletedProjects,
		Warnings:        result.MediaWarnings,
	})
}

// Tree handles GET /api/v1/namespaces/{id}/tree.
func (h *NodeHandler) Tree(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid namespace id")
		return
	}

	roots, err := h.svc.GetTree(r.Context(), tree.GetTreeInput{NamespaceID: id})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := make([]treeNodeResponse, 0, len(roots))
	for _, root := range roots {
		resp = append(resp, toTreeNodeResponse(root))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Leaves handles GET /api/v1/leaves with an optional namespaceId query
// parameter.
func (h *NodeHandler) Leaves(w http.ResponseWriter, r *http.Request) {
	var namespaceID *uuid.UUID
	if raw := r.URL.Query().Get("namespaceId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid namespace id")
			return
		}
		namespaceID = &id
	}

	leaves, err := h.svc.ListLeaves(r.Context(), tree.ListLeavesInput{NamespaceID: namespaceID})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := make([]nodeResponse, 0, len(leaves))
	for _, leaf := range leaves {
		resp = append(resp, toNodeResponse(leaf))
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toNodeResponse(node *domain.Node) nodeResponse {
	var parentID *string
	if node.ParentID != nil {
		s := node.ParentID.String()
		parentID = &s
	}
	return nodeResponse{
		ID:          node.ID.String(),
		NamespaceID: node.NamespaceID.String(),
		ParentID:    parentID,
		Level:       node.Level,
		IsLeaf:      node.IsLeaf,
		Title:       node.Title,
		Slug:        node.Slug,
		Description: node.Description,
		Active:      node.Active,
		SortOrder:   node.SortOrder,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
	}
}

func toTreeNodeResponse(node *domain.TreeNode) treeNodeResponse {
	children := make([]treeNodeResponse, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, toTreeNodeResponse(child))
	}
	return treeNodeResponse{
		nodeResponse: toNodeResponse(&node.Node),
		Children:     children,
	}
}
