package validator

// Validator validates structs and single values.
type Validator interface {
	// Validate checks struct tags on data.
	Validate(data any) error

	// Var checks value against a comma-separated rule tag such as "required,email".
	Var(value any, tag string) error
}

var _ Validator = (*V10Validator)(nil)
