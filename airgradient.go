package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pridkett/aqi2mqtt/aqi"
)

// AirGradient data structure, plus the AQI values computed from it. The
// mqtt, hass and influx tags decide how each field is published.
type airGradientStatus struct {
	Wifi            int     `json:"wifi" mqtt:"-" hass:"-" influx:"wifi"`
	Serialno        string  `json:"serialno" mqtt:"-" hass:"-" influx:"-"`
	Rco2            int     `json:"rco2" mqtt:"rco2" hass:"rco2,ppm,carbon_dioxide" influx:"rco2"`
	Pm01            float64 `json:"pm01" mqtt:"pm01" hass:"pm01,µg/m³,pm1" influx:"pm01"`
	Pm02            float64 `json:"pm02" mqtt:"pm02" hass:"pm02,µg/m³,pm25" influx:"pm02"`
	Pm10            float64 `json:"pm10" mqtt:"pm10" hass:"pm10,µg/m³,pm10" influx:"pm10"`
	Pm003count      int     `json:"pm003count" mqtt:"pm003count" hass:"pm003count,particles/0.1L" influx:"pm003_count"`
	Atmp            float64 `json:"atmp" mqtt:"atmp" hass:"atmp,°C,temperature" influx:"atmp"`
	AtmpCompensated float64 `json:"atmpCompensated" mqtt:"atmpCompensated" hass:"atmpCompensated,°C,temperature" influx:"atmp_compensated"`
	Rhum            float64 `json:"rhum" mqtt:"rhum" hass:"rhum,%,humidity" influx:"rhum"`
	RhumCompensated float64 `json:"rhumCompensated" mqtt:"rhumCompensated" hass:"rhumCompensated,%,humidity" influx:"rhum_compensated"`
	Pm02Compensated float64 `json:"pm02Compensated" mqtt:"pm02Compensated" hass:"pm02Compensated,µg/m³,pm25" influx:"pm02_compensated"`
	TvocIndex       int     `json:"tvocIndex" mqtt:"tvocIndex" hass:"tvocIndex" influx:"tvoc_index"`
	TvocRaw         int     `json:"tvocRaw" mqtt:"tvocRaw" hass:"tvocRaw" influx:"tvoc_raw"`
	NoxIndex        int     `json:"noxIndex" mqtt:"noxIndex" hass:"noxIndex" influx:"nox_index"`
	NoxRaw          int     `json:"noxRaw" mqtt:"noxRaw" hass:"noxRaw" influx:"nox_raw"`
	Boot            int     `json:"boot" mqtt:"-" hass:"-" influx:"boot"`
	BootCount       int     `json:"bootCount" mqtt:"-" hass:"-" influx:"boot_count"`
	LedMode         string  `json:"ledMode" mqtt:"-" hass:"-" influx:"led_mode"`
	Firmware        string  `json:"firmware" mqtt:"-" hass:"-" influx:"firmware"`
	Model           string  `json:"model" mqtt:"-" hass:"-" influx:"-"`

	AQI         int    `json:"-" mqtt:"aqi" hass:"aqi,-,aqi" influx:"aqi"`
	AQIPm02     int    `json:"-" mqtt:"aqiPm02" hass:"aqiPm02,-,aqi" influx:"aqi_pm02"`
	AQIPm10     int    `json:"-" mqtt:"aqiPm10" hass:"aqiPm10,-,aqi" influx:"aqi_pm10"`
	AQICategory string `json:"-" mqtt:"aqiCategory" hass:"aqiCategory" influx:"aqi_category"`
}

var errNoSerial = errors.New("response has no serial number")

// pollSensor fetches the current status from the AirGradient local API
func pollSensor(ctx context.Context, client *http.Client, url string) (*airGradientStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	r, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()

	if r.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, r.Status)
	}

	status := new(airGradientStatus)
	if err := json.NewDecoder(r.Body).Decode(status); err != nil {
		return nil, fmt.Errorf("decoding AirGradient status: %w", err)
	}
	if status.Serialno == "" {
		return status, errNoSerial
	}
	return status, nil
}

// readingsFrom maps the particulate channels of the sensor onto AQI
// readings. The humidity compensated PM2.5 value is preferred; firmware
// that does not compensate reports it as 0. Channels the sensor lacks
// stay at 0.
func readingsFrom(status *airGradientStatus) aqi.Readings {
	pm25 := status.Pm02Compensated
	if pm25 == 0 {
		pm25 = status.Pm02
	}
	return aqi.Readings{
		PM25: pm25,
		PM10: status.Pm10,
	}
}

// applyReport copies the computed AQI values into the status so they are
// published alongside the raw readings.
func (s *airGradientStatus) applyReport(rep aqi.Report) {
	s.AQI = rep.AQI
	s.AQIPm02 = rep.PM25
	s.AQIPm10 = rep.PM10
	s.AQICategory = rep.Category.String()
}
