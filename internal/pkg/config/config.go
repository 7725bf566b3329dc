package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetSecond retrieves the value associated with key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value associated with key as minutes.
	GetMinute(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys resolve to the zero value of the requested type.
type Config interface {
	io.Closer
	TimeConfig

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value associated with key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value associated with key as an int64.
	GetInt64(key string) int64

	// GetUint64 retrieves the value associated with key as a uint64.
	GetUint64(key string) uint64

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetStringDefault behaves like GetString but falls back to def when the
	// key is unset or blank.
	GetStringDefault(key, def string) string

	// GetArray retrieves the value associated with key as a slice of strings.
	// Configuration value is stored with format <element1>,<element2>,...
	// Blank elements are dropped.
	GetArray(key string) []string
}
