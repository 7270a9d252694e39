package aqi

import "testing"

func TestTablesAreOrdered(t *testing.T) {
	tables := map[string]Table{"aqi": aqiBreaks}
	for _, p := range Pollutants() {
		tables[p.String()], _ = Breakpoints(p)
	}
	for name, table := range tables {
		if table[0].Lo != 0 {
			t.Errorf("%s starts at %v, want 0", name, table[0].Lo)
		}
		for i, bp := range table {
			if bp.Lo > bp.Hi {
				t.Errorf("%s[%d] = %+v is inverted", name, i, bp)
			}
			if i > 0 && bp.Lo <= table[i-1].Hi {
				t.Errorf("%s[%d] overlaps %s[%d]", name, i, name, i-1)
			}
		}
	}
}

func TestBreakpointsReturnsCopy(t *testing.T) {
	table, _ := Breakpoints(PM25)
	table[0].Hi = 99
	if pm25Breaks[0].Hi != 12 {
		t.Fatalf("pm25 table mutated through copy")
	}
	a := AQIBreakpoints()
	a[6].Hi = 1
	if aqiBreaks[6].Hi != 500 {
		t.Fatalf("aqi table mutated through copy")
	}
}

func TestBreakpointsUnknown(t *testing.T) {
	if _, ok := Breakpoints(Pollutant(-1)); ok {
		t.Error("Breakpoints(-1) ok = true, want false")
	}
}

func TestPollutantMetadata(t *testing.T) {
	tests := []struct {
		p      Pollutant
		name   string
		unit   string
		window string
	}{
		{PM25, "pm2.5", "µg/m³", "24h"},
		{PM10, "pm10", "µg/m³", "24h"},
		{Ozone8Hour, "o3_8h", "ppm", "8h"},
		{Ozone1Hour, "o3_1h", "ppm", "1h"},
		{CO, "co", "ppm", "8h"},
		{SO2, "so2", "ppb", "1h"},
		{NO2, "no2", "ppb", "1h"},
		{Pollutant(99), "unknown", "", ""},
	}
	for _, tt := range tests {
		if tt.p.String() != tt.name || tt.p.Unit() != tt.unit || tt.p.Window() != tt.window {
			t.Errorf("%d = (%s, %s, %s), want (%s, %s, %s)", int(tt.p),
				tt.p.String(), tt.p.Unit(), tt.p.Window(), tt.name, tt.unit, tt.window)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		aqi  int
		want Category
	}{
		{0, Good},
		{50, Good},
		{51, Moderate},
		{150, UnhealthyForSensitiveGroups},
		{151, Unhealthy},
		{300, VeryUnhealthy},
		{301, Hazardous},
		{500, Hazardous},
		{566, BeyondIndex},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.aqi); got != tt.want {
			t.Errorf("CategoryOf(%d) = %v, want %v", tt.aqi, got, tt.want)
		}
	}
	if s := Category(42).String(); s != "Category(42)" {
		t.Errorf("Category(42).String() = %q", s)
	}
}
