// Package apperr defines the application error taxonomy and the single
// response pipeline that turns any classified failure into the wire shape
//
//	{ "success": false, "errors": [ { "code": "...", ... }, ... ] }
//
// Every error the API can surface (validation, decoding, rate limiting,
// feature-specific failures, database errors) flows through this package so
// clients see one stable contract regardless of which layer failed.
package apperr

// Message is a single client-visible error datum.
//
// Code is always present and is the stable, machine-readable identifier a
// client should branch on. Message is an optional human-readable description;
// when absent, Code is the canonical contract. Field names the input field
// that triggered the error (validation only), and Details carries structured
// context such as constraint parameters or the offending resource id.
//
// Absent optional fields are omitted from the JSON encoding, never emitted
// as null.
type Message struct {
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// New returns a Message carrying only the given code.
func New(code string) Message {
	return Message{Code: code}
}

// WithMessage returns a copy of m with the human-readable text set.
func (m Message) WithMessage(text string) Message {
	m.Message = text
	return m
}

// WithField returns a copy of m naming the input field that failed.
func (m Message) WithField(field string) Message {
	m.Field = field
	return m
}

// WithDetail returns a copy of m with key set in the details map.
// The receiver's map is never mutated, so Messages stay value-safe.
func (m Message) WithDetail(key string, value any) Message {
	details := make(map[string]any, len(m.Details)+1)
	for k, v := range m.Details {
		details[k] = v
	}
	details[key] = value
	m.Details = details
	return m
}
