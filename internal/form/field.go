package form

import "github.com/UnknownOlympus/athena/internal/models"

// Kind selects the input component rendered for a field.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindDate        Kind = "date"
	KindSelect      Kind = "select"
	KindAsyncSelect Kind = "async-select"
	KindSwitch      Kind = "switch"
)

// Field declares one input of an entity form.
type Field struct {
	Name     string
	Label    string // message ID
	Kind     Kind
	Required bool

	// Select choices.
	Options []models.Option
	// Async select: endpoint returning {"data":[{"value","label"}]}.
	OptionsURL string
	// Async select: record field shown as the option label.
	LabelField string
	// Async select: options fetched per search.
	OptionsLimit int
}

// LabelKey is the value key holding the display label of an async select.
func LabelKey(name string) string {
	return name + "_label"
}
