// Package i18n renders user-facing messages from embedded locale bundles.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is used when neither the request nor the configuration names a locale.
const DefaultLocale = "en"

// LocaleCookie lets a user pin a locale regardless of Accept-Language.
const LocaleCookie = "lang"

type ctxKey struct{}

// Translator resolves message IDs for a locale.
type Translator struct {
	bundle        *i18n.Bundle
	matcher       language.Matcher
	defaultLocale string
}

// New loads every embedded locale file. defLocale falls back to DefaultLocale when empty.
func New(defLocale string) (*Translator, error) {
	if defLocale == "" {
		defLocale = DefaultLocale
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, readErr := localeFS.ReadFile("locales/" + e.Name())
		if readErr != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", e.Name(), readErr)
		}
		if _, parseErr := bundle.ParseMessageFileBytes(data, e.Name()); parseErr != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", e.Name(), parseErr)
		}
	}

	return &Translator{
		bundle:        bundle,
		matcher:       language.NewMatcher(bundle.LanguageTags()),
		defaultLocale: defLocale,
	}, nil
}

// Locales lists the loaded locales.
func (tr *Translator) Locales() []string {
	tags := tr.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// WithLocale returns a context carrying the given locale (e.g. "uk", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from ctx, or "" when none was set.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// T translates messageID using the locale carried by ctx. Unknown IDs are returned as-is.
func (tr *Translator) T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	locale := LocaleFromContext(ctx)
	if locale == "" {
		locale = tr.defaultLocale
	}
	l := i18n.NewLocalizer(tr.bundle, locale, tr.defaultLocale)

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}

// Match picks the best loaded locale for an Accept-Language header value.
func (tr *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return tr.defaultLocale
	}
	tag, _, confidence := tr.matcher.Match(tags...)
	if confidence == language.No {
		return tr.defaultLocale
	}
	base, _ := tag.Base()
	return base.String()
}

// Middleware stores the request locale in the request context. The lang
// cookie wins over Accept-Language.
func (tr *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept-Language")
		if c, err := r.Cookie(LocaleCookie); err == nil && c.Value != "" {
			accept = c.Value
		}
		ctx := WithLocale(r.Context(), tr.Match(accept))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
