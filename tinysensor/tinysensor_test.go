// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinysensor

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/aht20/aht20"
	"github.com/GermanBionicSystems/aht20/aht20/aht20test"
	"tinygo.org/x/drivers"
)

var noSleep = aht20.SleepFunc(func(time.Duration) {})

func TestSensor(t *testing.T) {
	sim := aht20test.New(25, 37.5)
	s, err := New(sim, noSleep)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Update(drivers.Temperature | drivers.Humidity); err != nil {
		t.Fatal(err)
	}
	if got := s.Temperature(); got != 25000 {
		t.Errorf("Temperature() = %d", got)
	}
	if got := s.Humidity(); got != 3750 {
		t.Errorf("Humidity() = %d", got)
	}
	if sim.Triggers != 1 {
		t.Errorf("%d measurements", sim.Triggers)
	}
	// Nothing this sensor can measure.
	if err := s.Update(drivers.Pressure); err != nil {
		t.Fatal(err)
	}
	if sim.Triggers != 1 {
		t.Errorf("Update(Pressure) triggered a measurement")
	}
}

func TestSensor_UpdateError(t *testing.T) {
	sim := aht20test.New(25, 37.5)
	s, err := New(sim, noSleep)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Update(drivers.AllMeasurements); err != nil {
		t.Fatal(err)
	}
	sim.CorruptCRC = true
	err = s.Update(drivers.Temperature)
	var e *aht20.ChecksumError
	if !errors.As(err, &e) {
		t.Fatalf("expected *aht20.ChecksumError, got %v", err)
	}
	if got := s.Temperature(); got != 25000 {
		t.Errorf("Temperature() = %d after a failed Update", got)
	}
}

func TestSensor_Reset(t *testing.T) {
	sim := aht20test.New(-10, 80)
	s, err := New(sim, noSleep)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if sim.Resets != 3 || sim.Inits != 2 {
		t.Errorf("resets=%d inits=%d", sim.Resets, sim.Inits)
	}
	if err := s.Update(drivers.Temperature); err != nil {
		t.Fatal(err)
	}
	if got := s.Temperature(); got != -10000 {
		t.Errorf("Temperature() = %d", got)
	}
	c, err := s.Release()
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := c.Bus.(*Bus); !ok || b.I2C != sim {
		t.Errorf("Release() = %v", c)
	}
}

func TestNew_Uncalibrated(t *testing.T) {
	sim := aht20test.New(25, 50)
	sim.NeverCalibrates = true
	if _, err := New(sim, noSleep); err == nil {
		t.Fatal("expected error")
	}
}

func TestBus(t *testing.T) {
	sim := aht20test.New(25, 50)
	b := &Bus{I2C: sim}
	if err := b.Tx(aht20test.Address, []byte{0xBA}, nil); err != nil {
		t.Fatal(err)
	}
	if sim.Resets != 1 {
		t.Errorf("%d resets", sim.Resets)
	}
	if err := b.SetSpeed(0); err == nil {
		t.Error("expected SetSpeed() error")
	}
	if b.String() == "" {
		t.Error("empty String()")
	}
}

func TestConversions(t *testing.T) {
	var tests = []struct {
		count  uint32
		milliC int32
		centiP int32
	}{
		{0, -50000, 0},
		{0x80000, 50000, 5000},
		{0xFFFFF, 150000, 10000},
		{393216, 25000, 3750},
	}
	for _, test := range tests {
		if got := milliCelsius(test.count); got != test.milliC {
			t.Errorf("milliCelsius(%d) = %d", test.count, got)
		}
		if got := centiPercent(test.count); got != test.centiP {
			t.Errorf("centiPercent(%d) = %d", test.count, got)
		}
	}
}
