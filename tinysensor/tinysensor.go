// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinysensor exposes the aht20 driver to code written against the
// tinygo.org/x/drivers interfaces, e.g. a machine.I2C on a microcontroller.
//
// Conversions are done with integer arithmetic only.
package tinysensor

import (
	"errors"

	"github.com/GermanBionicSystems/aht20/aht20"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Bus adapts a drivers.I2C to an i2c.Bus.
type Bus struct {
	I2C drivers.I2C
}

func (b *Bus) String() string {
	return "tinygo-i2c"
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.I2C.Tx(addr, w, r)
}

// SetSpeed implements i2c.Bus. The speed is set when configuring the
// machine.I2C, not here.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return errors.New("tinysensor: SetSpeed is not supported, configure the I2C peripheral instead")
}

// Sensor is a calibrated AHT20 implementing drivers.Sensor.
type Sensor struct {
	dev     *aht20.Initialized
	sleeper aht20.Sleeper

	temperature int32
	humidity    int32
}

// New calibrates the AHT20 at aht20.DefaultAddress on bus. s can be nil to
// use aht20.StdSleeper.
func New(bus drivers.I2C, s aht20.Sleeper) (*Sensor, error) {
	if s == nil {
		s = aht20.StdSleeper
	}
	dev, err := aht20.New(&Bus{I2C: bus}, aht20.DefaultAddress, &aht20.Opts{Sleeper: s}).Init(s)
	if err != nil {
		return nil, err
	}
	return &Sensor{dev: dev, sleeper: s}, nil
}

// Update implements drivers.Sensor. One measurement serves both
// drivers.Temperature and drivers.Humidity.
func (s *Sensor) Update(which drivers.Measurement) error {
	if which&(drivers.Temperature|drivers.Humidity) == 0 {
		return nil
	}
	r, err := s.dev.MeasureRaw(s.sleeper)
	if err != nil {
		return err
	}
	s.temperature = milliCelsius(r.Temperature)
	s.humidity = centiPercent(r.Humidity)
	return nil
}

// Temperature returns the temperature read by the last Update in milli °C.
func (s *Sensor) Temperature() int32 {
	return s.temperature
}

// Humidity returns the relative humidity read by the last Update in
// hundredths of %RH.
func (s *Sensor) Humidity() int32 {
	return s.humidity
}

// Reset soft resets the sensor and calibrates it again. On failure s is no
// longer usable, create a new Sensor.
func (s *Sensor) Reset() error {
	d, err := s.dev.Reset(s.sleeper)
	if err != nil {
		return err
	}
	dev, err := d.Init(s.sleeper)
	if err != nil {
		return err
	}
	s.dev = dev
	return nil
}

// Release returns the periph connection. s must not be used afterward.
func (s *Sensor) Release() (*i2c.Dev, error) {
	return s.dev.Release()
}

func milliCelsius(count uint32) int32 {
	return int32((uint64(count&0xFFFFF)*200000+1<<19)>>20) - 50000
}

func centiPercent(count uint32) int32 {
	return int32((uint64(count&0xFFFFF)*10000 + 1<<19) >> 20)
}

var _ drivers.Sensor = &Sensor{}
var _ drivers.I2C = &Bus{}
var _ i2c.Bus = &Bus{}
