// Package hash signs and verifies short strings with a server-side secret.
//
// It backs stateless tokens such as the CSRF value carried in forms: the
// server signs a nonce, hands out nonce+signature, and later verifies the
// pair without storing anything.
package hash
