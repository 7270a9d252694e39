// Package aqi converts pollutant concentrations into US EPA Air Quality Index
// values using the breakpoint tables of the AirNow technical assistance
// document (September 2018):
// https://www.airnow.gov/sites/default/files/2020-05/aqi-technical-assistance-document-sept2018.pdf
//
// Every function in this package is pure and safe for concurrent use.
package aqi

// BreakCount is the number of segments in every breakpoint table
const BreakCount = 7

// Breakpoint is one (low, high) segment of a concentration or AQI range
type Breakpoint struct {
	Lo float64
	Hi float64
}

// Table holds the seven segments of a pollutant, index-aligned with the
// AQI breakpoints so that segment i of any table belongs to category i.
type Table [BreakCount]Breakpoint

// Pollutant identifies a pollutant and averaging window pair
type Pollutant int

const (
	PM25 Pollutant = iota
	PM10
	Ozone8Hour
	Ozone1Hour
	CO
	SO2
	NO2
)

var pollutantNames = [...]string{
	PM25:       "pm2.5",
	PM10:       "pm10",
	Ozone8Hour: "o3_8h",
	Ozone1Hour: "o3_1h",
	CO:         "co",
	SO2:        "so2",
	NO2:        "no2",
}

var pollutantUnits = [...]string{
	PM25:       "µg/m³",
	PM10:       "µg/m³",
	Ozone8Hour: "ppm",
	Ozone1Hour: "ppm",
	CO:         "ppm",
	SO2:        "ppb",
	NO2:        "ppb",
}

var pollutantWindows = [...]string{
	PM25:       "24h",
	PM10:       "24h",
	Ozone8Hour: "8h",
	Ozone1Hour: "1h",
	CO:         "8h",
	SO2:        "1h",
	NO2:        "1h",
}

// Pollutants lists every pollutant in table order
func Pollutants() []Pollutant {
	return []Pollutant{PM25, PM10, Ozone8Hour, Ozone1Hour, CO, SO2, NO2}
}

func (p Pollutant) valid() bool {
	return p >= PM25 && p <= NO2
}

func (p Pollutant) String() string {
	if !p.valid() {
		return "unknown"
	}
	return pollutantNames[p]
}

// MarshalText encodes the pollutant by name
func (p Pollutant) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Unit is the concentration unit callers must supply
func (p Pollutant) Unit() string {
	if !p.valid() {
		return ""
	}
	return pollutantUnits[p]
}

// Window is the averaging window callers must apply before calling
func (p Pollutant) Window() string {
	if !p.valid() {
		return ""
	}
	return pollutantWindows[p]
}

var aqiBreaks = Table{
	{0, 50},
	{51, 100},
	{101, 150},
	{151, 200},
	{201, 300},
	{301, 400},
	{401, 500},
}

// PM2.5, µg/m³ 24-hour
var pm25Breaks = Table{
	{0, 12},
	{12.1, 35.4},
	{35.5, 55.4},
	{55.5, 150.4},
	{150.5, 250.4},
	{250.5, 350.4},
	{350.5, 500.4},
}

// PM10, µg/m³ 24-hour
var pm10Breaks = Table{
	{0, 54},
	{55, 154},
	{155, 254},
	{255, 354},
	{355, 424},
	{425, 504},
	{505, 604},
}

// O3, ppm 8-hour. The 8-hour standard stops at 0.200 ppm; the last two
// segments are undefined there and carry the 1-hour values on purpose.
// Ozone8Hour switches to the 1-hour table above 0.2 ppm anyway.
var o3EightHourBreaks = Table{
	{0.000, 0.054},
	{0.055, 0.070},
	{0.071, 0.085},
	{0.086, 0.105},
	{0.106, 0.200},
	{0.405, 0.504},
	{0.505, 0.604},
}

// O3, ppm 1-hour. The first two segments are undefined for the 1-hour
// standard and carry the 8-hour values.
var o3OneHourBreaks = Table{
	{0.000, 0.054},
	{0.055, 0.124},
	{0.125, 0.164},
	{0.165, 0.204},
	{0.205, 0.404},
	{0.405, 0.504},
	{0.505, 0.604},
}

// CO, ppm 8-hour
var coBreaks = Table{
	{0.0, 4.4},
	{4.5, 9.4},
	{9.5, 12.4},
	{12.5, 15.4},
	{15.5, 30.4},
	{30.5, 40.4},
	{40.5, 50.4},
}

// SO2, ppb 1-hour
var so2Breaks = Table{
	{0, 35},
	{36, 75},
	{76, 185},
	{186, 304},
	{305, 604},
	{605, 804},
	{805, 1004},
}

// NO2, ppb 1-hour
var no2Breaks = Table{
	{0, 53},
	{54, 100},
	{101, 360},
	{361, 649},
	{650, 1249},
	{1250, 1649},
	{1650, 2049},
}

var pollutantTables = [...]*Table{
	PM25:       &pm25Breaks,
	PM10:       &pm10Breaks,
	Ozone8Hour: &o3EightHourBreaks,
	Ozone1Hour: &o3OneHourBreaks,
	CO:         &coBreaks,
	SO2:        &so2Breaks,
	NO2:        &no2Breaks,
}

// AQIBreakpoints returns a copy of the AQI breakpoint table shared by all
// pollutants.
func AQIBreakpoints() Table {
	return aqiBreaks
}

// Breakpoints returns a copy of the concentration table for p
func Breakpoints(p Pollutant) (Table, bool) {
	if !p.valid() {
		return Table{}, false
	}
	return *pollutantTables[p], true
}
