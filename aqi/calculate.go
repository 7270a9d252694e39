package aqi

import (
	"fmt"
	"math"
	"strings"
)

// RangePolicy decides what happens to a reading above the last breakpoint
type RangePolicy int

const (
	// Extrapolate continues the slope of the last segment, so the AQI can
	// go past 500.
	Extrapolate RangePolicy = iota
	// Strict fails with ErrAboveRange.
	Strict
)

func (r RangePolicy) String() string {
	switch r {
	case Extrapolate:
		return "extrapolate"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("RangePolicy(%d)", int(r))
}

// ParseRangePolicy accepts "extrapolate" or "strict", case-insensitive.
// An empty string selects Extrapolate.
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "extrapolate":
		return Extrapolate, nil
	case "strict":
		return Strict, nil
	}
	return Extrapolate, fmt.Errorf("aqi: unknown range policy %q", s)
}

// Option configures a Calculator
type Option func(*Calculator)

// WithRangePolicy sets how readings above the tables are handled
func WithRangePolicy(p RangePolicy) Option {
	return func(c *Calculator) {
		c.policy = p
	}
}

// Calculator computes AQI values. It holds no mutable state once built and
// may be shared between goroutines.
type Calculator struct {
	policy RangePolicy
}

// New builds a Calculator. Without options it extrapolates above range.
func New(opts ...Option) *Calculator {
	c := &Calculator{policy: Extrapolate}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy reports the range policy in use
func (c *Calculator) Policy() RangePolicy {
	return c.policy
}

var defaultCalculator = New()

// decimal places kept before lookup
var precision = [...]int{
	PM25:       1,
	PM10:       0,
	Ozone8Hour: 3,
	Ozone1Hour: 3,
	CO:         1,
	SO2:        0,
	NO2:        0,
}

// truncNudge lifts a product such as 0.29*100 = 28.999999999999996 back over
// the integer it represents before truncating.
const truncNudge = 1e-9

// truncate drops every digit past places decimals, toward zero
func truncate(val float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Trunc(val*scale+math.Copysign(truncNudge, val)) / scale
}

// lowIndex finds the highest segment whose low bound is <= val, or -1
func lowIndex(val float64, t *Table) int {
	for i := BreakCount - 1; i >= 0; i-- {
		if t[i].Lo <= val {
			return i
		}
	}
	return -1
}

// highIndex finds the lowest segment whose high bound is >= val, or
// BreakCount when val is past the table.
func highIndex(val float64, t *Table) int {
	for i := 0; i < BreakCount; i++ {
		if t[i].Hi >= val {
			return i
		}
	}
	return BreakCount
}

func (c *Calculator) interpolate(val float64, t *Table) (int, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, ErrInvalidConcentration
	}

	lowIdx := lowIndex(val, t)
	if lowIdx < 0 {
		return 0, ErrBelowRange
	}
	highIdx := highIndex(val, t)
	if highIdx >= BreakCount {
		if c.policy == Strict {
			return 0, ErrAboveRange
		}
		highIdx = BreakCount - 1
	}

	concLo := t[lowIdx].Lo
	concHi := t[highIdx].Hi
	aqiLo := aqiBreaks[lowIdx].Lo
	aqiHi := aqiBreaks[highIdx].Hi

	return int(math.Round((aqiHi-aqiLo)/(concHi-concLo)*(val-concLo) + aqiLo)), nil
}

// Calculate interpolates an already truncated concentration over t. Errors
// are the bare sentinels since t is not tied to a pollutant.
func (c *Calculator) Calculate(val float64, t Table) (int, error) {
	return c.interpolate(val, &t)
}

// Calculate uses the default calculator
func Calculate(val float64, t Table) (int, error) {
	return defaultCalculator.Calculate(val, t)
}

// ozone8HourCeiling is the top of the 8-hour ozone standard in ppm
const ozone8HourCeiling = 0.2

// tableFor picks the table for a truncated reading of p
func tableFor(p Pollutant, val float64) *Table {
	if p == Ozone8Hour && val > ozone8HourCeiling {
		return &o3OneHourBreaks
	}
	return pollutantTables[p]
}

// Index truncates raw as required for p and returns its AQI
func (c *Calculator) Index(p Pollutant, raw float64) (int, error) {
	if !p.valid() {
		return 0, fmt.Errorf("aqi: unknown pollutant %d", int(p))
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &ConcentrationError{Pollutant: p, Value: raw, Err: ErrInvalidConcentration}
	}

	val := truncate(raw, precision[p])
	aqi, err := c.interpolate(val, tableFor(p, val))
	if err != nil {
		return 0, &ConcentrationError{Pollutant: p, Value: raw, Err: err}
	}
	return aqi, nil
}

// Index uses the default calculator
func Index(p Pollutant, raw float64) (int, error) {
	return defaultCalculator.Index(p, raw)
}
