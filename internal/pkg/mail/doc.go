// Package mail sends transactional email through a pluggable provider.
//
// Use cases depend on the Mail interface and build a Message; the delivery
// backend (SMTP relay, Amazon SES, or a log sink for development) is picked
// by NewFromDriver at startup.
package mail
