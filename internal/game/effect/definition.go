package effect

import (
	"strconv"
)

// Definition is the immutable template an effect instance is built from.
// Shared across every instance; do not modify after loading.
type Definition struct {
	ID        string
	Kind      string
	Duration  float64 // seconds; 0 with Permanent=false means instant
	Permanent bool
	Stackable bool
	Params    map[string]string // kind-specific parameters
}

// Float returns the named parameter as float64, or fallback when absent or
// malformed.
func (d Definition) Float(key string, fallback float64) float64 {
	raw, ok := d.Params[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Bool returns the named parameter as bool, or fallback.
func (d Definition) Bool(key string, fallback bool) bool {
	raw, ok := d.Params[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// String returns the named parameter, or fallback when absent.
func (d Definition) String(key, fallback string) string {
	if v, ok := d.Params[key]; ok && v != "" {
		return v
	}
	return fallback
}
