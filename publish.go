package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	_ "github.com/influxdata/influxdb1-client" // this is important because of the bug in go mod
	influxclient "github.com/influxdata/influxdb1-client/v2"

	"github.com/pridkett/aqi2mqtt/aqi"
)

var MQTT_TAG_LABELS = []string{"name"}
var INFLUX_TAG_LABELS = []string{"name"}
var HASS_TAG_LABELS = []string{"name", "unit", "class"}

const publishTimeout = 5 * time.Second

// mqttPublisher is the part of mqtt.Client the publishers need
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// pointWriter is the part of the InfluxDB client the publisher needs
type pointWriter interface {
	Write(bp influxclient.BatchPoints) error
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	r := client.OptionsReader()
	logger.Infof("Connected to MQTT at %s", r.Servers())
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	logger.Errorf("MQTT Connection lost: %v", err)
}

func mqttConnect(cfg tomlConfigMQTT) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.BrokerHost, cfg.BrokerPort))
	if cfg.BrokerPassword != "" && cfg.BrokerUsername != "" {
		opts.SetUsername(cfg.BrokerUsername)
		opts.SetPassword(cfg.BrokerPassword)
	}
	opts.SetClientID(cfg.ClientId)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}
	return client, nil
}

func influxConnect(cfg tomlConfigInflux) (influxclient.Client, error) {
	httpConfig := influxclient.HTTPConfig{
		Addr: fmt.Sprintf("http://%s:%d", cfg.Hostname, cfg.Port),
	}
	if cfg.Username != "" && cfg.Password != "" {
		httpConfig.Username = cfg.Username
		httpConfig.Password = cfg.Password
	}

	c, err := influxclient.NewHTTPClient(httpConfig)
	if err != nil {
		return nil, fmt.Errorf("creating InfluxDB client: %w", err)
	}
	return c, nil
}

func waitToken(token mqtt.Token, topic string) error {
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing %s: %w", topic, err)
	}
	return nil
}

func getFieldTags(field reflect.StructField, lookupKey string, defaultLabels []string) map[string]string {
	tags := make(map[string]string)
	labellessTagsValid := true

	if tag, ok := field.Tag.Lookup(lookupKey); ok {
		tagParts := strings.Split(tag, ",")
		for i, tag := range tagParts {
			splitTag := strings.Split(tag, ":")
			if len(splitTag) == 1 {
				if labellessTagsValid {
					if i < len(defaultLabels) {
						tags[defaultLabels[i]] = splitTag[0]
					} else {
						logger.Errorf("Invalid tag - too many labelless tags: %s", tag)
					}
				} else {
					logger.Errorf("Invalid tag - labelless tags not allowed after labeled tag: %s", tag)
				}
			} else if len(splitTag) == 2 {
				labellessTagsValid = false
				tags[splitTag[0]] = splitTag[1]
			} else {
				logger.Errorf("Invalid tag - too many parts: %s", tag)
			}
		}
	}
	return tags
}

// taggedField is a struct field resolved against one of the publish tags
type taggedField struct {
	Field string
	Name  string
	Tags  map[string]string
	Value interface{}
}

// taggedFields walks the fields of a struct pointer, skipping those tagged
// "-" for lookupKey. Untagged fields are published under their Go name.
func taggedFields(status interface{}, lookupKey string, defaultLabels []string) []taggedField {
	v := reflect.ValueOf(status).Elem()
	typeOfStatus := v.Type()

	fields := make([]taggedField, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := typeOfStatus.Field(i)
		name := field.Name

		tags := getFieldTags(field, lookupKey, defaultLabels)
		if tagName, ok := tags["name"]; ok {
			if tagName == "-" {
				logger.Debugf("Ignoring field %s for %s", field.Name, lookupKey)
				continue
			}
			name = tagName
		}

		fields = append(fields, taggedField{
			Field: field.Name,
			Name:  name,
			Tags:  tags,
			Value: v.Field(i).Interface(),
		})
	}
	return fields
}

// publishMQTT sends every tagged field to its own topic, then the complete
// AQI report as JSON under <prefix>/<topic>/report.
func publishMQTT(client mqttPublisher, cfg tomlConfigMQTT, topic string, status interface{}, rep aqi.Report) error {
	logger.Debugf("Type of status: %v", reflect.TypeOf(status))

	for _, f := range taggedFields(status, "mqtt", MQTT_TAG_LABELS) {
		fieldTopic := fmt.Sprintf("%s/%s/%s", cfg.TopicPrefix, topic, f.Name)
		logger.Debugf("field[%s] = [%v]", f.Field, f.Value)
		logger.Debugf("topic = %s", fieldTopic)
		if err := waitToken(client.Publish(fieldTopic, 0, false, fmt.Sprintf("%v", f.Value)), fieldTopic); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshalling AQI report: %w", err)
	}
	reportTopic := fmt.Sprintf("%s/%s/report", cfg.TopicPrefix, topic)
	return waitToken(client.Publish(reportTopic, 0, false, payload), reportTopic)
}

func publishInflux(c pointWriter, cfg tomlConfigInflux, status interface{}, tags map[string]string, now time.Time) error {
	bp, err := influxclient.NewBatchPoints(influxclient.BatchPointsConfig{
		Database:  cfg.Database,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("creating batchpoints: %w", err)
	}

	values := map[string]interface{}{}
	for _, f := range taggedFields(status, "influx", INFLUX_TAG_LABELS) {
		values[f.Name] = f.Value
	}

	point, err := influxclient.NewPoint(cfg.Measurement, tags, values, now)
	if err != nil {
		return fmt.Errorf("creating new point: %w", err)
	}
	bp.AddPoint(point)

	if err := c.Write(bp); err != nil {
		return fmt.Errorf("writing to InfluxDB: %w", err)
	}
	logger.Infof("Record published to InfluxDB")
	return nil
}
