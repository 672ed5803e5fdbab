package rest

import (
	"net/http"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Namespace *NamespaceHandler
	Node      *NodeHandler
	Project   *ProjectHandler
}

// NewRouter builds the HTTP route table. Middleware is applied by the
// caller around the returned handler.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/namespaces", h.Namespace.Create)
	mux.HandleFunc("GET /api/v1/namespaces", h.Namespace.List)
	mux.HandleFunc("GET /api/v1/namespaces/{id}", h.Namespace.Get)
	mux.HandleFunc("PATCH /api/v1/namespaces/{id}", h.Namespace.Update)
	mux.HandleFunc("DELETE /api/v1/namespaces/{id}", h.Namespace.Delete)
	mux.HandleFunc("GET /api/v1/namespaces/{id}/tree", h.Node.Tree)

	mux.HandleFunc("POST /api/v1/nodes", h.Node.Create)
	mux.HandleFunc("GET /api/v1/nodes/{id}", h.Node.Get)
	mux.HandleFunc("PATCH /api/v1/nodes/{id}", h.Node.Update)
	mux.HandleFunc("POST /api/v1/nodes/{id}/reparent", h.Node.Reparent)
	mux.HandleFunc("DELETE /api/v1/nodes/{id}", h.Node.Delete)
	mux.HandleFunc("GET /api/v1/nodes/{id}/projects", h.Project.ListByNode)
	mux.HandleFunc("GET /api/v1/leaves", h.Node.Leaves)

	mux.HandleFunc("POST /api/v1/projects", h.Project.Create)
	mux.HandleFunc("GET /api/v1/projects/{id}", h.Project.Get)
	mux.HandleFunc("PATCH /api/v1/projects/{id}", h.Project.Update)
	mux.HandleFunc("DELETE /api/v1/projects/{id}", h.Project.Delete)

	return mux
}
