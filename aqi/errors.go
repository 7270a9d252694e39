package aqi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConcentration is returned for NaN and infinite readings
	ErrInvalidConcentration = errors.New("aqi: concentration is not a finite number")

	// ErrBelowRange is returned when the truncated reading sits below the
	// first breakpoint of its table, which only happens for negative values.
	ErrBelowRange = errors.New("aqi: concentration below lowest breakpoint")

	// ErrAboveRange is returned under the Strict policy when the truncated
	// reading is past the last breakpoint of its table.
	ErrAboveRange = errors.New("aqi: concentration above highest breakpoint")
)

// ConcentrationError reports which reading could not be turned into an AQI
type ConcentrationError struct {
	Pollutant Pollutant
	Value     float64
	Err       error
}

func (e *ConcentrationError) Error() string {
	return fmt.Sprintf("%s reading %g %s: %v", e.Pollutant, e.Value, e.Pollutant.Unit(), e.Err)
}

func (e *ConcentrationError) Unwrap() error {
	return e.Err
}
