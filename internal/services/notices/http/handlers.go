// Package http provides the http transport for the notice board
package http

import (
	stdhttp "net/http"

	"pbl/internal/modkit/httpkit"
	"pbl/internal/services/notices/domain"
)

// Register mounts the notice endpoints on r. Writes sit behind AdminOnly
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.AdminOnly(r, func(ar httpkit.Router) {
		httpkit.PostJSON(ar, "/", h.create)
		httpkit.Delete(ar, "/{id}", h.delete)
	})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Notices visible to the acting user, newest first
// @Tags Notices
// @Produce json
// @Param filter query string false "all, my or a department code"
// @Param q query string false "Case-insensitive search over title, content and author"
// @Success 200 {array} domain.Notice "ok"
// @Router /notices [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	qs := r.URL.Query()
	return h.svc.Query(r.Context(), httpkit.Identity(r), domain.QueryInput{
		Filter: qs.Get("filter"),
		Search: qs.Get("q"),
	})
}

// @Summary Post a notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Notice"
// @Success 201 {object} domain.Notice "created"
// @Router /notices [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	n, err := h.svc.Create(r.Context(), httpkit.Identity(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(n), nil
}

// @Summary Delete a notice
// @Tags Notices
// @Param id path string true "Notice id"
// @Success 204 "deleted"
// @Router /notices/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Identity(r), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
