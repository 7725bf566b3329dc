package entity

import "time"

// SubmissionInput holds the raw values of one form submission keyed by field
// name. Missing keys read as empty.
type SubmissionInput map[string]string

// Get returns the raw value for field, or "" when absent.
func (in SubmissionInput) Get(field string) string {
	if in == nil {
		return ""
	}
	return in[field]
}

// Subscription is an accepted, normalized registration. It is never mutated
// after creation.
type Subscription struct {
	ID        int64
	Name      string
	CPF       string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// ValidationResult carries either a Record or Errors, never both.
type ValidationResult struct {
	Record *Subscription
	Errors FieldErrors
}

// OK reports whether the submission was accepted.
func (r ValidationResult) OK() bool {
	return r.Record != nil && len(r.Errors) == 0
}
