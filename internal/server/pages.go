package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/appconfig"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/i18n"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "list", "form", "view", "error"}

type pages struct {
	byName map[string]*template.Template
}

func newPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

type crumb struct {
	Label string
	Href  string
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

// view is the data every page template receives.
type view struct {
	ctx context.Context
	tr  *i18n.Translator

	Title       string
	AppName     string
	Tenant      string
	Locale      string
	Principal   *access.Principal
	Nav         []navItem
	Breadcrumbs []crumb
	Content     any

	AddOns   []string
	QuoteURL string

	appConfig *appconfig.AppConfig
}

// HasAddOn gates add-on markup on the tenant configuration.
func (v *view) HasAddOn(name string) bool {
	return v.appConfig != nil && v.appConfig.HasAddOn(name)
}

// T translates a message ID. Extra arguments are key/value template data.
func (v *view) T(id string, kv ...any) string {
	if len(kv) == 0 {
		return v.tr.T(v.ctx, id)
	}
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			data[key] = kv[i+1]
		}
	}
	return v.tr.T(v.ctx, id, data)
}

func (s *Server) newView(r *http.Request, title string, crumbs []crumb, content any) *view {
	ctx := r.Context()
	v := &view{
		ctx:         ctx,
		tr:          s.Translator,
		Title:       s.Translator.T(ctx, title),
		AppName:     s.AppConfig.ApplicationName(),
		Tenant:      s.AppConfig.TenantName(),
		Locale:      i18n.LocaleFromContext(ctx),
		Breadcrumbs: crumbs,
		Content:     content,
		AddOns:      s.AppConfig.AddOns(),
		QuoteURL:    s.AppConfig.GetQuoteURL(),
		appConfig:   s.AppConfig,
	}

	p, ok := access.FromContext(ctx)
	if !ok {
		return v
	}
	v.Principal = p

	for _, item := range []struct {
		entity, label, href string
	}{
		{access.EntitySickLeave, "nav.sick_leaves", "/sick-leaves"},
		{access.EntityEmployee, "nav.employees", "/employees"},
	} {
		if s.Authorizer.Can(p, capability(item.entity, access.OperationRead)) {
			v.Nav = append(v.Nav, navItem{
				Label:  s.Translator.T(ctx, item.label),
				Href:   item.href,
				Active: strings.HasPrefix(r.URL.Path, item.href),
			})
		}
	}
	return v
}

// render writes page with status; template errors become a plain 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, v *view) {
	tmpl, ok := s.pages.byName[page]
	if !ok {
		s.Log.ErrorContext(r.Context(), "unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		s.Log.ErrorContext(r.Context(), "failed to render page", "page", page, sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.Log.WarnContext(r.Context(), "failed to write page", "page", page, sl.Err(err))
	}
}

type errorContent struct {
	Message  string
	BackHref string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, messageID, backHref string) {
	v := s.newView(r, "error.title", nil, errorContent{
		Message:  s.Translator.T(r.Context(), messageID),
		BackHref: backHref,
	})
	s.render(w, r, status, "error", v)
}

// forbiddenPage is shown instead of a page the principal may not use.
// It never includes the form or its submit control.
func (s *Server) forbiddenPage(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusForbidden, "error.forbidden", "")
}

// formContent is the data of the form template.
type formContent struct {
	Action      string
	Token       string
	TokenField  string
	Fields      []fieldContent
	Busy        bool
	Error       string
	ErrorDetail string
	CancelHref  string
	SubmitLabel string
}

type fieldContent struct {
	form.Field

	ID         string
	LabelText  string
	Value      string
	LabelValue string
	Checked    bool
	Error      string
}

func newFormContent[T any](
	ctx context.Context,
	tr *i18n.Translator,
	def form.Definition[T],
	in *form.Instance[T],
	action string,
) formContent {
	fc := formContent{
		Action:      action,
		Token:       in.Token,
		TokenField:  form.TokenField,
		Busy:        in.State.Busy(),
		CancelHref:  def.ListPath,
		SubmitLabel: tr.T(ctx, "form.submit"),
	}
	if fc.Busy {
		fc.SubmitLabel = tr.T(ctx, "form.submitting")
	}
	if in.Err != nil {
		fc.Error = tr.T(ctx, errorMessageID(in.Err))
	}

	for _, f := range def.Fields {
		value := in.Value(f.Name)
		fc.Fields = append(fc.Fields, fieldContent{
			Field:      f,
			ID:         "field-" + f.Name,
			LabelText:  tr.T(ctx, f.Label),
			Value:      value,
			LabelValue: in.Value(form.LabelKey(f.Name)),
			Checked:    f.Kind == form.KindSwitch && form.Truthy(value),
			Error:      in.Errors[f.Name],
		})
	}
	return fc
}
