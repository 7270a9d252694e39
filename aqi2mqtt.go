package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	influxclient "github.com/influxdata/influxdb1-client/v2"
	"github.com/withmandala/go-log"

	"github.com/pridkett/aqi2mqtt/aqi"
)

// set up a global logger...
// see: https://stackoverflow.com/a/43827612/57626
var logger = log.New(os.Stderr)

// bridge polls one sensor and fans the readings and their AQI out to the
// configured sinks. Nil sinks are disabled.
type bridge struct {
	cfg     tomlConfig
	calc    *aqi.Calculator
	http    *http.Client
	mqtt    mqttPublisher
	influx  pointWriter
	metrics *metrics
	now     func() time.Time
}

func main() {
	configFile := flag.String("config", "", "Filename with configuration")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger = log.New(os.Stderr).WithColor()

	if *configFile == "" {
		logger.Fatal("Must specify configuration file with -config FILENAME")
	}
	cfg, err := loadConfig(*configFile)
	if err != nil {
		logger.Fatalf("Unable to load configuration: %v", err)
	}
	if *debug || cfg.Debug {
		logger = logger.WithDebug()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bridge{
		cfg:  cfg,
		calc: aqi.New(aqi.WithRangePolicy(cfg.rangePolicy())),
		http: &http.Client{Timeout: time.Duration(cfg.AirGradient.Timeout) * time.Second},
		now:  time.Now,
	}
	logger.Infof("AQI range policy: %s", b.calc.Policy())

	if cfg.Mqtt != (tomlConfigMQTT{}) {
		var client mqtt.Client
		client, err = mqttConnect(cfg.Mqtt)
		if err != nil {
			logger.Fatal(err)
		}
		defer client.Disconnect(250)
		b.mqtt = client
	} else {
		logger.Info("No MQTT configuration found - not publishing to MQTT broker")
	}

	if cfg.Influx != (tomlConfigInflux{}) {
		var c influxclient.Client
		c, err = influxConnect(cfg.Influx)
		if err != nil {
			logger.Fatal(err)
		}
		defer c.Close()
		b.influx = c
	}

	if cfg.Prometheus.Listen != "" {
		b.metrics = newMetrics()
		go func() {
			if err := serveMetrics(ctx, cfg.Prometheus.Listen, b.metrics, os.Stdout); err != nil {
				logger.Errorf("Metrics server failed: %v", err)
			}
		}()
	}

	logger.Infof("HTTP Target: %s", cfg.AirGradient.Url)
	b.run(ctx)
	logger.Info("Shutting down")
}

// run polls immediately and then every PollRate seconds until ctx ends
func (b *bridge) run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(b.cfg.AirGradient.PollRate) * time.Second)
	defer ticker.Stop()

	for {
		if err := b.pollOnce(ctx); err != nil {
			logger.Warnf("Poll failed: %v", err)
		}
		logger.Debugf("Sleeping for %d seconds", b.cfg.AirGradient.PollRate)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pollOnce reads the sensor, computes the AQI and publishes to every sink.
// Publishing failures are logged per sink and do not stop the others.
func (b *bridge) pollOnce(ctx context.Context) error {
	agstatus, err := pollSensor(ctx, b.http, b.cfg.AirGradient.Url)
	if errors.Is(err, errNoSerial) {
		b.metrics.poll("skipped")
		return fmt.Errorf("got a strange response from the AirGradient API - skipping this poll: %w", err)
	}
	if err != nil {
		b.metrics.poll("error")
		return err
	}

	rep, err := b.calc.Evaluate(readingsFrom(agstatus))
	if err != nil {
		b.metrics.poll("invalid")
		return fmt.Errorf("computing AQI: %w", err)
	}
	agstatus.applyReport(rep)
	b.metrics.observe(rep)
	b.metrics.poll("ok")
	logger.Debugf("AQI %d (%s) dominant %v", rep.AQI, rep.Category, rep.Dominant)

	if b.influx != nil {
		tags := map[string]string{
			"mac":   agstatus.Serialno,
			"model": agstatus.Model,
		}
		if err := publishInflux(b.influx, b.cfg.Influx, agstatus, tags, b.now()); err != nil {
			b.metrics.publishError("influx")
			logger.Errorf("InfluxDB publish failed: %v", err)
		}
	}

	if b.mqtt != nil {
		topic := b.cfg.Mqtt.Topic
		if topic == "" {
			topic = "airgradient-" + agstatus.Serialno
		}
		if err := publishMQTT(b.mqtt, b.cfg.Mqtt, topic, agstatus, rep); err != nil {
			b.metrics.publishError("mqtt")
			logger.Errorf("MQTT publish failed: %v", err)
		}

		if b.cfg.Hass != (tomlConfigHass{}) {
			if err := publishHass(b.mqtt, b.cfg.Hass, agstatus, agstatus.Serialno, agstatus.Firmware); err != nil {
				b.metrics.publishError("hass")
				logger.Errorf("Home Assistant publish failed: %v", err)
			}
		}
	}
	return nil
}
