// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package exporter samples an AHT20 periodically and publishes the readings
// as prometheus metrics.
package exporter

import (
	"context"
	"errors"
	"time"

	"github.com/GermanBionicSystems/aht20/aht20"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Sensor is the part of *aht20.Initialized the exporter needs.
type Sensor interface {
	MeasureRaw(s aht20.Sleeper) (aht20.RawMeasurement, error)
}

// Exporter owns the metrics of one sensor.
type Exporter struct {
	sensor  Sensor
	sleeper aht20.Sleeper
	log     *log.Logger

	temperature prometheus.Gauge
	humidity    prometheus.Gauge
	reads       prometheus.Counter
	failures    *prometheus.CounterVec
}

// New registers the metrics on reg. s can be nil to use the sensor's
// default Sleeper.
func New(sensor Sensor, s aht20.Sleeper, reg prometheus.Registerer, logger *log.Logger) (*Exporter, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := &Exporter{
		sensor:  sensor,
		sleeper: s,
		log:     logger,
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aht20_temperature_celsius",
			Help: "Air Temperature (units: degrees Celsius)",
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aht20_humidity_percent",
			Help: "Humidity (units: % of relative Humidity)",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aht20_reads_total",
			Help: "Successful measurements",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aht20_read_errors_total",
			Help: "Failed measurements by error kind",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{e.temperature, e.humidity, e.reads, e.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Sample measures once and updates the metrics. On error the gauges keep
// their previous value.
func (e *Exporter) Sample() (aht20.RawMeasurement, error) {
	r, err := e.sensor.MeasureRaw(e.sleeper)
	if err != nil {
		kind := Kind(err)
		e.failures.WithLabelValues(kind).Inc()
		e.log.WithField("kind", kind).Errorf("failed to read from sensor: %s", err)
		return r, err
	}
	m := r.Float()
	e.reads.Inc()
	e.temperature.Set(float64(m.Temperature))
	e.humidity.Set(float64(m.Humidity))
	e.log.WithFields(log.Fields{"temperature": m.Temperature, "humidity": m.Humidity}).Debug("received")
	return r, nil
}

// Run samples every interval until ctx is done. f, if not nil, is called
// with every successful measurement.
func (e *Exporter) Run(ctx context.Context, interval time.Duration, f func(aht20.RawMeasurement)) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if r, err := e.Sample(); err == nil && f != nil {
			f(r)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Kind returns the metric label of an aht20 error.
func Kind(err error) string {
	var (
		bus  *aht20.BusError
		busy *aht20.BusyTimeoutError
		cal  *aht20.CalibrationError
		crc  *aht20.ChecksumError
		nr   *aht20.NotReadyError
	)
	switch {
	case errors.As(err, &bus):
		return "bus"
	case errors.As(err, &busy):
		return "busy_timeout"
	case errors.As(err, &cal):
		return "calibration"
	case errors.As(err, &crc):
		return "checksum"
	case errors.As(err, &nr):
		return "not_ready"
	case errors.Is(err, aht20.ErrReleased):
		return "released"
	default:
		return "other"
	}
}
