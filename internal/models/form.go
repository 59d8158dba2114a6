package models

// FieldErrors maps a form field name to its ordered validation messages
type FieldErrors map[string][]string

// Add appends a message for field
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether field has at least one message
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// FormState is what a form submission reports back to the caller.
// Errors is set only for validation failures; Message carries the summary.
type FormState struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}
