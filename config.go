package main

import (
	"fmt"
	"os"

	"github.com/naoina/toml"

	"github.com/pridkett/aqi2mqtt/aqi"
)

// MQTT settings for overall configuration
type tomlConfigMQTT struct {
	BrokerHost     string
	BrokerPort     int
	BrokerUsername string
	BrokerPassword string
	ClientId       string
	TopicPrefix    string
	Topic          string
}

type tomlConfigHass struct {
	Discovery       bool
	DiscoveryPrefix string
	ObjectId        string
	DeviceModel     string
	DeviceName      string
	Manufacturer    string
}

type tomlConfigInflux struct {
	Hostname    string
	Port        int
	Database    string
	Username    string
	Password    string
	Measurement string
}

type tomlConfigAirGradient struct {
	Url      string
	PollRate int
	Timeout  int
}

// how readings past the breakpoint tables are handled
type tomlConfigAqi struct {
	RangePolicy string
}

type tomlConfigPrometheus struct {
	Listen string
}

type tomlConfig struct {
	Debug       bool
	AirGradient tomlConfigAirGradient
	Aqi         tomlConfigAqi
	Mqtt        tomlConfigMQTT
	Hass        tomlConfigHass
	Influx      tomlConfigInflux
	Prometheus  tomlConfigPrometheus
}

const (
	defaultPollRate        = 60
	defaultTimeout         = 10
	defaultTopicPrefix     = "aqi2mqtt"
	defaultDiscoveryPrefix = "homeassistant"
	defaultMeasurement     = "airgradient"
	defaultBrokerPort      = 1883
	defaultInfluxPort      = 8086
)

func loadConfig(filename string) (tomlConfig, error) {
	var cfg tomlConfig

	f, err := os.Open(filename)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", filename, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults fills in the blanks of sections that are in use. Empty
// sections stay empty so they keep meaning "disabled".
func (c *tomlConfig) applyDefaults() {
	if c.AirGradient.PollRate <= 0 {
		c.AirGradient.PollRate = defaultPollRate
	}
	if c.AirGradient.Timeout <= 0 {
		c.AirGradient.Timeout = defaultTimeout
	}
	if c.Mqtt != (tomlConfigMQTT{}) {
		if c.Mqtt.TopicPrefix == "" {
			c.Mqtt.TopicPrefix = defaultTopicPrefix
		}
		if c.Mqtt.BrokerPort == 0 {
			c.Mqtt.BrokerPort = defaultBrokerPort
		}
	}
	if c.Hass != (tomlConfigHass{}) && c.Hass.DiscoveryPrefix == "" {
		c.Hass.DiscoveryPrefix = defaultDiscoveryPrefix
	}
	if c.Influx != (tomlConfigInflux{}) {
		if c.Influx.Measurement == "" {
			c.Influx.Measurement = defaultMeasurement
		}
		if c.Influx.Port == 0 {
			c.Influx.Port = defaultInfluxPort
		}
	}
}

func (c *tomlConfig) validate() error {
	if c.AirGradient.Url == "" {
		return fmt.Errorf("AirGradient.Url is required")
	}
	if _, err := aqi.ParseRangePolicy(c.Aqi.RangePolicy); err != nil {
		return err
	}
	if c.Hass != (tomlConfigHass{}) && c.Mqtt == (tomlConfigMQTT{}) {
		return fmt.Errorf("Hass configuration found but no MQTT configuration found - please configure MQTT broker")
	}
	if c.Mqtt != (tomlConfigMQTT{}) && c.Mqtt.BrokerHost == "" {
		return fmt.Errorf("Mqtt.BrokerHost is required when MQTT is configured")
	}
	if c.Influx != (tomlConfigInflux{}) && (c.Influx.Hostname == "" || c.Influx.Database == "") {
		return fmt.Errorf("Influx.Hostname and Influx.Database are required when InfluxDB is configured")
	}
	return nil
}

func (c *tomlConfig) rangePolicy() aqi.RangePolicy {
	p, _ := aqi.ParseRangePolicy(c.Aqi.RangePolicy)
	return p
}
