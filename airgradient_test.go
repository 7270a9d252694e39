package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pridkett/aqi2mqtt/aqi"
)

const sampleStatus = `{
  "wifi": -51,
  "serialno": "84fce60a1b2c",
  "rco2": 512,
  "pm01": 9,
  "pm02": 38.2,
  "pm10": 154,
  "pm003count": 1500,
  "atmp": 22.1,
  "rhum": 41,
  "pm02Compensated": 35.4,
  "tvocIndex": 100,
  "noxIndex": 1,
  "firmware": "3.1.1",
  "model": "I-9PSL"
}`

func serveStatus(t *testing.T, code int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPollSensorDecodesStatus(t *testing.T) {
	srv := serveStatus(t, http.StatusOK, sampleStatus)

	status, err := pollSensor(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("pollSensor error: %v", err)
	}
	if status.Serialno != "84fce60a1b2c" || status.Model != "I-9PSL" {
		t.Errorf("status identity = %q %q", status.Serialno, status.Model)
	}
	if status.Pm02 != 38.2 || status.Pm02Compensated != 35.4 || status.Pm10 != 154 {
		t.Errorf("particulates = %v %v %v", status.Pm02, status.Pm02Compensated, status.Pm10)
	}
}

func TestPollSensorErrors(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   string
		target error
	}{
		{name: "server error", code: http.StatusInternalServerError, body: "oops"},
		{name: "bad json", code: http.StatusOK, body: "{"},
		{name: "no serial", code: http.StatusOK, body: `{"pm02": 3}`, target: errNoSerial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveStatus(t, tt.code, tt.body)
			_, err := pollSensor(context.Background(), srv.Client(), srv.URL)
			if err == nil {
				t.Fatal("pollSensor error = nil, want non-nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("pollSensor error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestReadingsFromPrefersCompensated(t *testing.T) {
	got := readingsFrom(&airGradientStatus{Pm02: 40, Pm02Compensated: 35.4, Pm10: 20})
	want := aqi.Readings{PM25: 35.4, PM10: 20}
	if got != want {
		t.Errorf("readingsFrom = %+v, want %+v", got, want)
	}

	got = readingsFrom(&airGradientStatus{Pm02: 40, Pm10: 20})
	if got.PM25 != 40 {
		t.Errorf("readingsFrom PM25 = %v, want raw pm02 40", got.PM25)
	}
}

func TestApplyReport(t *testing.T) {
	rep, err := aqi.Evaluate(aqi.Readings{PM25: 35.4, PM10: 20})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	s := &airGradientStatus{}
	s.applyReport(rep)
	if s.AQI != 100 || s.AQIPm02 != 100 || s.AQIPm10 != 19 || s.AQICategory != "Moderate" {
		t.Errorf("applyReport = %d %d %d %q", s.AQI, s.AQIPm02, s.AQIPm10, s.AQICategory)
	}
}
