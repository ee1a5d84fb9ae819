package models

// Option is one choice offered by a select or async-select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
