// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Sense implements physic.SenseEnv. It returns the current temperature and
// humidity, the pressure is not modified since the AHT20 does not measure
// pressure. It blocks like Measure with Opts.Sleeper.
func (d *Initialized) Sense(e *physic.Env) error {
	r, err := d.MeasureRaw(nil)
	if err != nil {
		return err
	}
	r.Env(e)
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel that will
// receive a measurement every interval. It is the caller's responsibility to
// call Halt() when done. Failed measurements are skipped.
func (d *Initialized) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == nil {
		return nil, ErrReleased
	}
	if d.stop != nil {
		return nil, errors.New("aht20: SenseContinuous already running")
	}
	if interval < d.seq.opts.MeasurementDelay {
		return nil, errors.New("aht20: sample interval is < measurement duration")
	}
	sensing := make(chan physic.Env)
	d.stop = make(chan struct{})
	d.wg.Add(1)
	go d.senseContinuous(interval, sensing, d.stop)
	return sensing, nil
}

func (d *Initialized) senseContinuous(interval time.Duration, sensing chan<- physic.Env, stop <-chan struct{}) {
	defer d.wg.Done()
	defer close(sensing)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			var e physic.Env
			if err := d.Sense(&e); err != nil {
				continue
			}
			select {
			case sensing <- e:
			case <-stop:
				return
			}
		}
	}
}

// Precision implements physic.SenseEnv.
func (d *Initialized) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Humidity = 24 * physic.MilliRH
}

// Halt stops the AHT20 from acquiring measurements as initiated by
// SenseContinuous(). It is a no-op otherwise.
func (d *Initialized) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	d.wg.Wait()
	return nil
}

var _ physic.SenseEnv = &Initialized{}
