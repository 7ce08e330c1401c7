// Package service implements the notice board: department filtered queries,
// admin writes and feed imports
package service

import (
	"context"
	"slices"
	"strings"

	"pbl/internal/core/department"
	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"
	pnet "pbl/internal/platform/net"
	"pbl/internal/platform/net/http/bind"
	pstrings "pbl/internal/platform/strings"
	"pbl/internal/services/notices/domain"
	"pbl/internal/services/notices/repo"
)

// Service is the notice service contract
type Service interface{ domain.ServicePort }

// Svc implements Service over a notice repository
type Svc struct {
	r repo.Repo
}

// New returns a notice service. It panics on a nil repository
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("notices.New requires a repository")
	}
	return &Svc{r: r}
}

func init() {
	_ = bind.RegisterValidation("notice_department", func(fl bind.FieldLevel) bool {
		return validTarget(fl.Field().String())
	}, "{0} must be all or a department code")
}

// validTarget accepts all and any casing of a department code
func validTarget(code string) bool {
	if code == department.All {
		return true
	}
	_, ok := department.Canonical(code)
	return ok
}

// Query returns the notices visible to who under in.Filter, newest first.
// Anonymous callers see nothing
func (s *Svc) Query(ctx context.Context, who pnet.Identity, in domain.QueryInput) ([]domain.Notice, error) {
	if who.Anonymous() {
		return []domain.Notice{}, nil
	}
	want, err := filterDepartment(who, in.Filter)
	if err != nil {
		return nil, err
	}
	all, err := s.r.List(ctx)
	if err != nil {
		return nil, perr.ExternalStoref(err, "list notices")
	}

	q := strings.TrimSpace(in.Search)
	out := make([]domain.Notice, 0, len(all))
	for _, n := range all {
		if want != "" && n.Department != department.All && n.Department != want {
			continue
		}
		if q != "" && !matches(n, q) {
			continue
		}
		out = append(out, withColor(n))
	}
	slices.SortStableFunc(out, func(a, b domain.Notice) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// filterDepartment resolves a filter to a department code, "" meaning every
// department
func filterDepartment(who pnet.Identity, filter string) (string, error) {
	switch f := strings.TrimSpace(filter); f {
	case "", domain.FilterAll:
		return "", nil
	case domain.FilterMy:
		if code, ok := department.Canonical(who.Department); ok {
			return code, nil
		}
		return who.Department, nil
	default:
		code, ok := department.Canonical(f)
		if !ok {
			return "", perr.WithField(perr.InvalidArgf("unknown filter %q", f), "filter")
		}
		return code, nil
	}
}

func matches(n domain.Notice, q string) bool {
	return pstrings.ContainsFold(n.Title, q) ||
		pstrings.ContainsFold(n.Content, q) ||
		pstrings.ContainsFold(n.Author, q)
}

func withColor(n domain.Notice) domain.Notice {
	n.Color = department.Color(n.Department)
	return n
}

// Create stores a notice authored by who. Only admins may post
func (s *Svc) Create(ctx context.Context, who pnet.Identity, in domain.CreateInput) (domain.Notice, error) {
	if who.Anonymous() {
		return domain.Notice{}, perr.Unauthorizedf("authentication required")
	}
	if !who.IsAdmin() {
		return domain.Notice{}, perr.Forbiddenf("only administrators can post notices")
	}
	if err := bind.Validate(in); err != nil {
		return domain.Notice{}, err
	}
	dept := department.All
	if in.Department != department.All {
		dept, _ = department.Canonical(in.Department)
	}
	n, err := s.r.Insert(ctx, domain.Notice{
		Title:      strings.TrimSpace(in.Title),
		Content:    strings.TrimSpace(in.Content),
		Department: dept,
		Priority:   strings.ToLower(pstrings.FirstNonEmpty(in.Priority, domain.PriorityMedium)),
		Author:     who.Name,
		AuthorID:   who.ID,
	})
	if err != nil {
		return domain.Notice{}, perr.ExternalStoref(err, "store notice")
	}
	logger.C(ctx).Info().Str("notice", n.ID).Str("department", n.Department).Msg("notice posted")
	return withColor(n), nil
}

// Delete removes a notice by id. Only admins may delete
func (s *Svc) Delete(ctx context.Context, who pnet.Identity, id string) error {
	if who.Anonymous() {
		return perr.Unauthorizedf("authentication required")
	}
	if !who.IsAdmin() {
		return perr.Forbiddenf("only administrators can delete notices")
	}
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return perr.ExternalStoref(err, "delete notice")
	}
	if !ok {
		return perr.NotFoundf("notice %s not found", id)
	}
	return nil
}

// ListNotices returns every notice in store order with colors filled in
func (s *Svc) ListNotices(ctx context.Context) ([]domain.Notice, error) {
	all, err := s.r.List(ctx)
	if err != nil {
		return nil, perr.ExternalStoref(err, "list notices")
	}
	for i := range all {
		all[i] = withColor(all[i])
	}
	return all, nil
}

// Import stores items that are not already on the board, matched by title
// and department, and returns how many were added
func (s *Svc) Import(ctx context.Context, items []domain.Notice) (int, error) {
	added := 0
	for _, n := range items {
		if strings.TrimSpace(n.Title) == "" || !validTarget(n.Department) {
			continue
		}
		if n.Department != department.All {
			n.Department, _ = department.Canonical(n.Department)
		}
		if n.Priority == "" {
			n.Priority = domain.PriorityMedium
		}
		dup, err := s.r.Exists(ctx, n.Title, n.Department)
		if err != nil {
			return added, perr.ExternalStoref(err, "check notice")
		}
		if dup {
			continue
		}
		if _, err := s.r.Insert(ctx, n); err != nil {
			return added, perr.ExternalStoref(err, "import notice")
		}
		added++
	}
	return added, nil
}
