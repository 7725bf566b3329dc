// Package messaging publishes domain events to a broker without tying use
// cases to a specific client library.
package messaging
