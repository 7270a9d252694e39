package aqi

import (
	"errors"
	"testing"
)

func TestPollutantFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) (int, error)
		raw  float64
		want int
	}{
		{name: "pm2.5 top of moderate", fn: PM25ToAQI, raw: 35.4, want: 100},
		{name: "pm2.5 truncates", fn: PM25ToAQI, raw: 35.49, want: 100},
		{name: "pm2.5 next band", fn: PM25ToAQI, raw: 35.5, want: 101},
		{name: "pm10 truncates", fn: PM10ToAQI, raw: 54.9, want: 50},
		{name: "pm10", fn: PM10ToAQI, raw: 55, want: 51},
		{name: "co top of good", fn: COToAQI, raw: 4.4, want: 50},
		{name: "co next band", fn: COToAQI, raw: 4.5, want: 51},
		{name: "so2", fn: SO2ToAQI, raw: 75, want: 100},
		{name: "no2", fn: NO2ToAQI, raw: 53.7, want: 50},
		{name: "ozone 8h", fn: Ozone8HourToAQI, raw: 0.075, want: 115},
		{name: "ozone 1h", fn: Ozone1HourToAQI, raw: 0.085, want: 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.raw)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AQI(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestZeroReadingIsZero(t *testing.T) {
	fns := map[string]func(float64) (int, error){
		"pm2.5": PM25ToAQI,
		"pm10":  PM10ToAQI,
		"o3_8h": Ozone8HourToAQI,
		"o3_1h": Ozone1HourToAQI,
		"co":    COToAQI,
		"so2":   SO2ToAQI,
		"no2":   NO2ToAQI,
	}
	for name, fn := range fns {
		got, err := fn(0)
		if err != nil {
			t.Fatalf("%s(0) error = %v", name, err)
		}
		if got != 0 {
			t.Errorf("%s(0) = %d, want 0", name, got)
		}
	}
}

func TestOzone8HourSwitchesTable(t *testing.T) {
	below, err := Ozone8HourToAQI(0.199)
	if err != nil {
		t.Fatalf("Ozone8HourToAQI(0.199) error = %v", err)
	}
	want, _ := Calculate(0.199, o3EightHourBreaks)
	if below != want || below != 299 {
		t.Errorf("Ozone8HourToAQI(0.199) = %d, want %d from the 8-hour table", below, want)
	}

	above, err := Ozone8HourToAQI(0.201)
	if err != nil {
		t.Fatalf("Ozone8HourToAQI(0.201) error = %v", err)
	}
	want, _ = Calculate(0.201, o3OneHourBreaks)
	if above != want || above != 196 {
		t.Errorf("Ozone8HourToAQI(0.201) = %d, want %d from the 1-hour table", above, want)
	}

	// 0.2009 truncates to 0.200 and stays on the 8-hour table
	if got, _ := Ozone8HourToAQI(0.2009); got != 300 {
		t.Errorf("Ozone8HourToAQI(0.2009) = %d, want 300", got)
	}
}

func TestOzone1HourComputesBelowFloor(t *testing.T) {
	got, err := Ozone1HourToAQI(0.1)
	if err != nil {
		t.Fatalf("Ozone1HourToAQI(0.1) error = %v", err)
	}
	if got != 83 {
		t.Errorf("Ozone1HourToAQI(0.1) = %d, want 83", got)
	}
}

func TestOzoneTakesWorseWindow(t *testing.T) {
	got, err := OzoneToAQI(0.075, 0.085)
	if err != nil {
		t.Fatalf("OzoneToAQI error = %v", err)
	}
	a8, _ := Ozone8HourToAQI(0.075)
	a1, _ := Ozone1HourToAQI(0.085)
	if got != max(a8, a1) || got != 115 {
		t.Errorf("OzoneToAQI(0.075, 0.085) = %d, want %d", got, max(a8, a1))
	}

	got, _ = OzoneToAQI(0.03, 0.3)
	if want, _ := Ozone1HourToAQI(0.3); got != want {
		t.Errorf("OzoneToAQI(0.03, 0.3) = %d, want the 1-hour value %d", got, want)
	}
}

func TestOzonePropagatesErrors(t *testing.T) {
	_, err := OzoneToAQI(0.05, -1)
	var cerr *ConcentrationError
	if !errors.As(err, &cerr) {
		t.Fatalf("OzoneToAQI error = %v, want *ConcentrationError", err)
	}
	if cerr.Pollutant != Ozone1Hour {
		t.Errorf("Pollutant = %s, want o3_1h", cerr.Pollutant)
	}
}

func TestCalculatorMethodsMatchDefaults(t *testing.T) {
	c := New()
	got, err := c.PM25ToAQI(35.4)
	if err != nil || got != 100 {
		t.Errorf("c.PM25ToAQI(35.4) = %d, %v, want 100, nil", got, err)
	}
	got, err = c.OzoneToAQI(0.075, 0.085)
	if err != nil || got != 115 {
		t.Errorf("c.OzoneToAQI = %d, %v, want 115, nil", got, err)
	}
}
