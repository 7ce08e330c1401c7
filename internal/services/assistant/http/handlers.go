// Package http provides the http transport for the assistant
package http

import (
	stdhttp "net/http"

	"pbl/internal/modkit/httpkit"
	"pbl/internal/services/assistant/domain"
)

// Register mounts the assistant endpoints on r
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/ask", h.ask)
	httpkit.PostJSON(r, "/classify", h.classify)
	httpkit.Post(r, "/quick/{name}", h.quick)
	httpkit.Get(r, "/reminders", h.reminders)
}

type handlers struct{ svc domain.ServicePort }

func user(r *stdhttp.Request) *domain.User { return domain.UserFrom(httpkit.Identity(r)) }

// swagger:route POST /assistant/ask Assistant assistantAsk
// @Summary Classify a command and generate the reply
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Command"
// @Success 200 {object} domain.AskResult "ok"
// @Router /assistant/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Ask(r.Context(), user(r), in)
}

// @Summary Classify a command and list every keyword hit
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Command"
// @Success 200 {object} domain.ClassifyResult "ok"
// @Router /assistant/classify [post]
func (h *handlers) classify(r *stdhttp.Request, in domain.AskInput) (any, error) {
	return h.svc.Classify(r.Context(), in)
}

// @Summary Run a canned quick command
// @Tags Assistant
// @Produce json
// @Param name path string true "Quick command" Enums(reminder, notices, assignments, help)
// @Success 200 {object} domain.QuickResult "ok"
// @Router /assistant/quick/{name} [post]
func (h *handlers) quick(r *stdhttp.Request) (any, error) {
	return h.svc.Quick(r.Context(), user(r), httpkit.Param(r, "name"))
}

// @Summary Reminders of the acting user in the order they were set
// @Tags Assistant
// @Produce json
// @Success 200 {array} domain.Reminder "ok"
// @Router /assistant/reminders [get]
func (h *handlers) reminders(r *stdhttp.Request) (any, error) {
	return h.svc.Reminders(r.Context(), user(r))
}
