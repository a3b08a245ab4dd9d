// Package finance is the Pengeplan calculation engine.
//
// Every function here is pure: inputs are never mutated, nothing is cached,
// and malformed values are normalised to zero instead of producing errors.
// Callers may share inputs across goroutines freely.
package finance

import (
	"encoding/json"
	"math"

	"pengeplan/internal/core"
)

// ValidateAmount returns v when it is a finite, non-negative number and 0
// otherwise.
func ValidateAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// CoerceAmount converts loosely typed input (decoded JSON, query values) to a
// validated amount. Unsupported types yield 0.
func CoerceAmount(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return ValidateAmount(x)
	case float32:
		return ValidateAmount(float64(x))
	case int:
		return ValidateAmount(float64(x))
	case int8:
		return ValidateAmount(float64(x))
	case int16:
		return ValidateAmount(float64(x))
	case int32:
		return ValidateAmount(float64(x))
	case int64:
		return ValidateAmount(float64(x))
	case uint:
		return ValidateAmount(float64(x))
	case uint8:
		return ValidateAmount(float64(x))
	case uint16:
		return ValidateAmount(float64(x))
	case uint32:
		return ValidateAmount(float64(x))
	case uint64:
		return ValidateAmount(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return ValidateAmount(f)
	case string:
		f, err := core.ParseAmount(x)
		if err != nil {
			return 0
		}
		return ValidateAmount(f)
	}
	return 0
}

// rate normalises an interest rate. Unlike amounts, rates are not clamped
// at zero; only non-finite values are dropped.
func rate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
