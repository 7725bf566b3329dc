// Package clock provides a tiny time abstraction.
//
// Code that stamps records takes a Clocker so tests can pin the time with
// Fixed instead of racing time.Now.
package clock
