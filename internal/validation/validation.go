// Package validation holds the declarative per-entity validation schemas.
// Schemas run synchronously and never perform I/O.
package validation

import (
	"context"
	"errors"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/UnknownOlympus/athena/internal/models"
)

// FieldErrors maps a field name (its JSON name) to a human-readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Merge copies other into fe without overwriting messages already present.
func (fe FieldErrors) Merge(other FieldErrors) FieldErrors {
	if fe == nil {
		fe = FieldErrors{}
	}
	for k, v := range other {
		if _, ok := fe[k]; !ok {
			fe[k] = v
		}
	}
	return fe
}

// Translator renders message IDs. *i18n.Translator satisfies it.
type Translator interface {
	T(ctx context.Context, messageID string, templateData ...map[string]any) string
}

// Message IDs understood by the bundles in internal/i18n.
const (
	MsgRequired  = "validation.required"
	MsgUUID      = "validation.uuid"
	MsgEmail     = "validation.email"
	MsgMax       = "validation.max"
	MsgPhone     = "validation.phone"
	MsgDate      = "validation.date"
	MsgBool      = "validation.bool"
	MsgNumber    = "validation.number"
	MsgDateOrder = "validation.date_order"
	MsgInvalid   = "validation.invalid"
)

var tagMessages = map[string]string{
	"required":   MsgRequired,
	"uuid":       MsgUUID,
	"email":      MsgEmail,
	"max":        MsgMax,
	"phone":      MsgPhone,
	"date_order": MsgDateOrder,
	"date":       MsgDate,
	"bool":       MsgBool,
	"number":     MsgNumber,
}

var e164Regex = regexp.MustCompile(`^\+?[0-9]\d{1,14}$`)

// IsValidPhoneNumber checks a phone number against an E.164-like format,
// ignoring spaces and dashes.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")

	return e164Regex.MatchString(phone)
}

// Schema validates records of type T.
type Schema[T any] struct {
	validate *validator.Validate
	tr       Translator
}

// NewEngine builds the validator shared by every schema: JSON field names,
// the phone rule and the sick leave date-order rule.
func NewEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhoneNumber(fl.Field().String())
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		leave, ok := sl.Current().Interface().(models.SickLeave)
		if !ok {
			return
		}
		if leave.StartDate != nil && leave.EndDate != nil && leave.EndDate.Before(*leave.StartDate) {
			sl.ReportError(leave.EndDate, "end_date", "EndDate", "date_order", "")
		}
	}, models.SickLeave{})

	return v
}

// NewSchema returns a schema for T using engine v and translator tr.
func NewSchema[T any](v *validator.Validate, tr Translator) *Schema[T] {
	return &Schema[T]{validate: v, tr: tr}
}

// Validate returns the accepted record, or the per-field messages when rules fail.
func (s *Schema[T]) Validate(ctx context.Context, rec T) (T, FieldErrors) {
	err := s.validate.StructCtx(ctx, rec)
	if err == nil {
		return rec, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return rec, FieldErrors{"_": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = s.Message(ctx, field, fe.Tag(), fe.Param())
	}
	return rec, out
}

// Message renders the message for a failed rule on field.
func (s *Schema[T]) Message(ctx context.Context, field, tag, param string) string {
	id, ok := tagMessages[tag]
	if !ok {
		id = MsgInvalid
	}
	return s.tr.T(ctx, id, map[string]any{
		"Field": s.tr.T(ctx, "field."+field),
		"Param": param,
	})
}
