package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
)

type listRow struct {
	Cells        []string
	ViewHref     string
	EditHref     string
	DeleteAction string
}

type listContent struct {
	CreateHref   string
	SearchAction string
	Search       string
	Filters      map[string]string
	Columns      []string
	Rows         []listRow
	Total        int
	PrevHref     string
	NextHref     string
}

type detailRow struct {
	Label string
	Value string
	Href  string
}

type detailContent struct {
	Rows     []detailRow
	EditHref string
	BackHref string
	Links    []crumb
}

// listQuery reads the paging, ordering and search parameters of a list page.
func listQuery(r *http.Request) models.GetQuery {
	// malformed paging values decode as zero and fall back to the defaults
	d := form.NewDecoder(r.URL.Query())

	return models.GetQuery{
		SearchTerm: d.String("q"),
		OrderBy:    d.String("order"),
		Order:      models.SortDirection(d.String("dir")),
		Limit:      d.Int("limit"),
		Offset:     d.Int("offset"),
	}
}

// pageLinks returns previous/next hrefs for the current list request.
func pageLinks(r *http.Request, total int) (string, string) {
	q := r.URL.Query()
	page := listQuery(r).Normalize(map[string]string{}, "")

	link := func(offset int) string {
		values := url.Values{}
		for k, v := range q {
			values[k] = v
		}
		values.Set("offset", strconv.Itoa(offset))
		values.Set("limit", strconv.Itoa(page.Limit))
		return r.URL.Path + "?" + values.Encode()
	}

	var prev, next string
	if page.Offset > 0 {
		prev = link(max(page.Offset-page.Limit, 0))
	}
	if page.Offset+page.Limit < total {
		next = link(page.Offset + page.Limit)
	}
	return prev, next
}

func (s *Server) can(r *http.Request, entity string, op access.Operation) bool {
	p, _ := access.FromContext(r.Context())
	return s.Authorizer.Can(p, capability(entity, op))
}

func (s *Server) yesNo(r *http.Request, b bool) string {
	if b {
		return s.Translator.T(r.Context(), "common.yes")
	}
	return s.Translator.T(r.Context(), "common.no")
}

// respondSubmit turns a finished submission into a response: one redirect
// to the list page on success, otherwise the form again with its errors.
func respondSubmit[T any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	def form.Definition[T],
	in *form.Instance[T],
	action, title string,
	crumbs []crumb,
) {
	status := http.StatusUnprocessableEntity
	switch {
	case in.State == form.StateSuccess, errors.Is(in.Err, form.ErrAlreadySubmitted):
		http.Redirect(w, r, def.ListPath, http.StatusSeeOther)
		return
	case in.Err != nil:
		status = statusFor(in.Err)
	}

	content := newFormContent(r.Context(), s.Translator, def, in, action)
	if s.ShowErrorDetail && in.Err != nil {
		content.ErrorDetail = in.Err.Error()
	}
	s.render(w, r, status, "form", s.newView(r, title, crumbs, content))
}

// deleteRecord runs a delete submission and records its outcome.
func (s *Server) deleteRecord(
	w http.ResponseWriter,
	r *http.Request,
	entity, listPath string,
	del func(ctx context.Context, id string) error,
) {
	op := string(access.OperationDelete)
	if err := del(r.Context(), r.PathValue("id")); err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, repository.ErrNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		s.Metrics.ObserveSubmission(entity, op, outcome)
		s.renderLookupError(w, r, err, listPath)
		return
	}
	s.Metrics.ObserveSubmission(entity, op, metrics.OutcomeSuccess)
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// forbiddenFor answers denied requests for entity, counting denied submissions.
func (s *Server) forbiddenFor(entity string, op access.Operation) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			s.Metrics.ObserveSubmission(entity, string(op), metrics.OutcomeForbidden)
		}
		s.forbiddenPage(w, r)
	})
}

// renderLookupError answers a failed load or delete; a missing record is a 404.
func (s *Server) renderLookupError(w http.ResponseWriter, r *http.Request, err error, backHref string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Log.ErrorContext(r.Context(), "backend call failed", "path", r.URL.Path, sl.Err(err))
	}
	s.renderError(w, r, status, errorMessageID(err), backHref)
}
