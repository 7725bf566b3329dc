// Package validator checks subscriber input and module wiring.
//
// Messages are translated to Brazilian Portuguese. Struct validation reports
// failing fields under snake_case keys, and Var checks one value against a
// rule string such as "required,cpf".
package validator
