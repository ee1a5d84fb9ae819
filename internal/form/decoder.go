package form

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
)

// Decode error tags, rendered through the validation messages.
const (
	TagDate   = "date"
	TagBool   = "bool"
	TagNumber = "number"
)

// Decoder reads typed values out of submitted form data and records
// a tag per field whose raw value cannot be parsed.
type Decoder struct {
	values url.Values
	errs   map[string]string
}

func NewDecoder(values url.Values) *Decoder {
	return &Decoder{values: values, errs: map[string]string{}}
}

// String returns the trimmed value of name.
func (d *Decoder) String(name string) string {
	return strings.TrimSpace(d.values.Get(name))
}

// Date parses name as a calendar date; empty means unset.
func (d *Decoder) Date(name string) *time.Time {
	raw := d.String(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		d.errs[name] = TagDate
		return nil
	}
	return &t
}

// Bool parses a switch; an absent checkbox is false.
func (d *Decoder) Bool(name string) bool {
	switch strings.ToLower(d.String(name)) {
	case "", "false", "off", "0":
		return false
	case "true", "on", "1":
		return true
	default:
		d.errs[name] = TagBool
		return false
	}
}

// Int parses name as an integer; empty means zero.
func (d *Decoder) Int(name string) int {
	raw := d.String(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		d.errs[name] = TagNumber
		return 0
	}
	return n
}

// Errors returns field name to failed tag.
func (d *Decoder) Errors() map[string]string {
	return d.errs
}

// FormatDate renders an optional date for a date input.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

// Truthy reports whether a raw switch value means on.
func Truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}

// FormatBool renders a switch value.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return ""
}
