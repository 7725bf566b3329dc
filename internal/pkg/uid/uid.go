// Package uid generates identifiers: snowflake numbers for primary keys and
// UUIDv7 strings for correlation IDs.
package uid

// NumberID produces unique, roughly time-ordered int64 IDs.
type NumberID interface {
	Generate() int64
}

// StringID produces unique string IDs.
type StringID interface {
	Generate() string
}
