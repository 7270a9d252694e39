package main

import (
	"encoding/json"
	"fmt"
)

// Types for Home Assistant MQTT Discovery
type hassMqttConfigDevice struct {
	Identifiers  []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Name         string   `json:"name"`
	SWVersion    string   `json:"sw_version,omitempty"`
}

type hassMqttConfig struct {
	AvailabilityTopic string               `json:"availability_topic"`
	ConfigTopic       string               `json:"-"`
	Device            hassMqttConfigDevice `json:"device"`
	DeviceClass       string               `json:"device_class,omitempty"`
	Name              string               `json:"name"`
	Qos               int                  `json:"qos"`
	StateTopic        string               `json:"state_topic"`
	UniqueId          string               `json:"unique_id"`
	Icon              string               `json:"icon,omitempty"`
	UnitOfMeasurement string               `json:"unit_of_measurement,omitempty"`
	Platform          string               `json:"-"`
}

// hassTagValue treats "-" as an empty hass tag part
func hassTagValue(tags map[string]string, label string) string {
	if v := tags[label]; v != "-" {
		return v
	}
	return ""
}

func publishHass(client mqttPublisher, cfg tomlConfigHass, status interface{}, identifier string, swversion string) error {
	for _, f := range taggedFields(status, "hass", HASS_TAG_LABELS) {
		// generate the topic name
		topic := fmt.Sprintf("%s/%s/%s/%s", cfg.DiscoveryPrefix, "sensor", cfg.DeviceName, f.Name)

		// send the availabilty message
		if err := waitToken(client.Publish(topic+"/availability", 0, false, "online"), topic+"/availability"); err != nil {
			return err
		}

		// send the state message
		if err := waitToken(client.Publish(topic+"/state", 0, false, fmt.Sprintf("%v", f.Value)), topic+"/state"); err != nil {
			return err
		}

		if !cfg.Discovery {
			continue
		}

		// send the config message
		hassConfig := hassMqttConfig{
			AvailabilityTopic: topic + "/availability",
			ConfigTopic:       topic + "/config",
			Device: hassMqttConfigDevice{
				Identifiers:  []string{identifier},
				Manufacturer: cfg.Manufacturer,
				Model:        cfg.DeviceModel,
				Name:         cfg.DeviceName,
				SWVersion:    swversion,
			},
			DeviceClass:       hassTagValue(f.Tags, "class"),
			Name:              f.Field,
			Qos:               0,
			StateTopic:        topic + "/state",
			UniqueId:          fmt.Sprintf("%s_%s", identifier, f.Name),
			UnitOfMeasurement: hassTagValue(f.Tags, "unit"),
		}

		configPayload, err := json.Marshal(hassConfig)
		if err != nil {
			logger.Errorf("Error marshalling hassConfig to JSON: %v", err)
			continue
		}
		if err := waitToken(client.Publish(hassConfig.ConfigTopic, 0, false, configPayload), hassConfig.ConfigTopic); err != nil {
			return err
		}
	}
	return nil
}
