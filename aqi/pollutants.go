package aqi

// PM25ToAQI returns the AQI for a 24-hour PM2.5 average in µg/m³
func (c *Calculator) PM25ToAQI(raw float64) (int, error) {
	return c.Index(PM25, raw)
}

// PM10ToAQI returns the AQI for a 24-hour PM10 average in µg/m³
func (c *Calculator) PM10ToAQI(raw float64) (int, error) {
	return c.Index(PM10, raw)
}

// Ozone8HourToAQI returns the AQI for an 8-hour ozone average in ppm. This is the
// generally required ozone value. Above 0.2 ppm the 8-hour standard is
// undefined and the 1-hour table is used instead.
func (c *Calculator) Ozone8HourToAQI(raw float64) (int, error) {
	return c.Index(Ozone8Hour, raw)
}

// Ozone1HourToAQI returns the AQI for a 1-hour ozone average in ppm.
//
// Officially the 1-hour ozone AQI is undefined below 0.125 ppm. It is
// computed anyway from the borrowed 8-hour segments, so low readings give a
// number instead of nothing.
func (c *Calculator) Ozone1HourToAQI(raw float64) (int, error) {
	return c.Index(Ozone1Hour, raw)
}

// OzoneToAQI returns the worse of the 8-hour and 1-hour ozone AQIs
func (c *Calculator) OzoneToAQI(raw8h, raw1h float64) (int, error) {
	aqi8h, err := c.Ozone8HourToAQI(raw8h)
	if err != nil {
		return 0, err
	}
	aqi1h, err := c.Ozone1HourToAQI(raw1h)
	if err != nil {
		return 0, err
	}
	return max(aqi8h, aqi1h), nil
}

// COToAQI returns the AQI for an 8-hour carbon monoxide average in ppm
func (c *Calculator) COToAQI(raw float64) (int, error) {
	return c.Index(CO, raw)
}

// SO2ToAQI returns the AQI for a 1-hour sulfur dioxide average in ppb
func (c *Calculator) SO2ToAQI(raw float64) (int, error) {
	return c.Index(SO2, raw)
}

// NO2ToAQI returns the AQI for a 1-hour nitrogen dioxide average in ppb
func (c *Calculator) NO2ToAQI(raw float64) (int, error) {
	return c.Index(NO2, raw)
}

// PM25ToAQI uses the default calculator
func PM25ToAQI(raw float64) (int, error) { return defaultCalculator.PM25ToAQI(raw) }

// PM10ToAQI uses the default calculator
func PM10ToAQI(raw float64) (int, error) { return defaultCalculator.PM10ToAQI(raw) }

// Ozone8HourToAQI uses the default calculator
func Ozone8HourToAQI(raw float64) (int, error) { return defaultCalculator.Ozone8HourToAQI(raw) }

// Ozone1HourToAQI uses the default calculator
func Ozone1HourToAQI(raw float64) (int, error) { return defaultCalculator.Ozone1HourToAQI(raw) }

// OzoneToAQI uses the default calculator
func OzoneToAQI(raw8h, raw1h float64) (int, error) { return defaultCalculator.OzoneToAQI(raw8h, raw1h) }

// COToAQI uses the default calculator
func COToAQI(raw float64) (int, error) { return defaultCalculator.COToAQI(raw) }

// SO2ToAQI uses the default calculator
func SO2ToAQI(raw float64) (int, error) { return defaultCalculator.SO2ToAQI(raw) }

// NO2ToAQI uses the default calculator
func NO2ToAQI(raw float64) (int, error) { return defaultCalculator.NO2ToAQI(raw) }
