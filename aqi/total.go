package aqi

// Readings holds one concentration per channel, in the unit and averaging
// window of its pollutant. Zero marks a channel with no sensor: every table
// starts at 0, so it always maps to AQI 0.
type Readings struct {
	PM25       float64 `json:"pm2_5"`
	PM10       float64 `json:"pm10"`
	Ozone1Hour float64 `json:"o3_1h"`
	Ozone8Hour float64 `json:"o3_8h"`
	CO         float64 `json:"co"`
	SO2        float64 `json:"so2"`
	NO2        float64 `json:"no2"`
}

// Report is the outcome of evaluating a set of Readings
type Report struct {
	PM25       int `json:"pm2_5"`
	PM10       int `json:"pm10"`
	Ozone8Hour int `json:"o3_8h"`
	Ozone1Hour int `json:"o3_1h"`
	Ozone      int `json:"o3"`
	CO         int `json:"co"`
	SO2        int `json:"so2"`
	NO2        int `json:"no2"`

	// AQI is the highest sub-index
	AQI      int         `json:"aqi"`
	Category Category    `json:"category"`
	Dominant []Pollutant `json:"dominant,omitempty"`
}

// Indices returns each sub-index keyed by pollutant
func (r Report) Indices() map[Pollutant]int {
	return map[Pollutant]int{
		PM25:       r.PM25,
		PM10:       r.PM10,
		Ozone8Hour: r.Ozone8Hour,
		Ozone1Hour: r.Ozone1Hour,
		CO:         r.CO,
		SO2:        r.SO2,
		NO2:        r.NO2,
	}
}

// Evaluate computes every sub-index and the overall AQI, which is the
// worst of them. The first failing channel aborts the evaluation.
func (c *Calculator) Evaluate(r Readings) (Report, error) {
	var (
		rep Report
		err error
	)
	channels := []struct {
		p   Pollutant
		raw float64
		out *int
	}{
		{PM25, r.PM25, &rep.PM25},
		{PM10, r.PM10, &rep.PM10},
		{Ozone8Hour, r.Ozone8Hour, &rep.Ozone8Hour},
		{Ozone1Hour, r.Ozone1Hour, &rep.Ozone1Hour},
		{CO, r.CO, &rep.CO},
		{SO2, r.SO2, &rep.SO2},
		{NO2, r.NO2, &rep.NO2},
	}
	for _, ch := range channels {
		if *ch.out, err = c.Index(ch.p, ch.raw); err != nil {
			return Report{}, err
		}
	}
	rep.Ozone = max(rep.Ozone8Hour, rep.Ozone1Hour)

	rep.AQI = max(rep.PM25, rep.PM10, rep.Ozone, rep.CO, rep.SO2, rep.NO2)
	rep.Category = CategoryOf(rep.AQI)
	if rep.AQI > 0 {
		for _, ch := range channels {
			if *ch.out == rep.AQI {
				rep.Dominant = append(rep.Dominant, ch.p)
			}
		}
	}
	return rep, nil
}

// Total returns the overall AQI. Pass 0 for channels without a sensor.
func (c *Calculator) Total(pm25, pm10, o3OneHour, o3EightHour, co, so2, no2 float64) (int, error) {
	rep, err := c.Evaluate(Readings{
		PM25:       pm25,
		PM10:       pm10,
		Ozone1Hour: o3OneHour,
		Ozone8Hour: o3EightHour,
		CO:         co,
		SO2:        so2,
		NO2:        no2,
	})
	if err != nil {
		return 0, err
	}
	return rep.AQI, nil
}

// Evaluate uses the default calculator
func Evaluate(r Readings) (Report, error) {
	return defaultCalculator.Evaluate(r)
}

// Total uses the default calculator
func Total(pm25, pm10, o3OneHour, o3EightHour, co, so2, no2 float64) (int, error) {
	return defaultCalculator.Total(pm25, pm10, o3OneHour, o3EightHour, co, so2, no2)
}
