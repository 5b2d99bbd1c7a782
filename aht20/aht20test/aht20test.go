// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aht20test implements a simulated AHT20 on a fake I²C bus.
//
// Unlike i2ctest.Playback, which replays an exact transaction script, Sim
// answers each command the way the sensor does, so tests can assert how many
// status polls and frame reads a driver issued.
package aht20test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/GermanBionicSystems/aht20/common"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Address is the address the simulated sensor answers to.
const Address uint16 = 0x38

var (
	cmdStatus     = []byte{0x71}
	cmdInitialize = []byte{0xBE, 0x08, 0x00}
	cmdMeasure    = []byte{0xAC, 0x33, 0x00}
	cmdSoftReset  = []byte{0xBA}
)

// ErrNoAck is returned for a transaction to another address.
var ErrNoAck = errors.New("aht20test: no ack")

// Sim is a simulated AHT20. It implements i2c.Bus.
//
// The exported fields may be changed between transactions. Counters are
// updated by Tx.
type Sim struct {
	mu sync.Mutex

	// BusyPolls is the number of status reads answering busy after each
	// initialization or measurement command.
	BusyPolls int
	// Stuck keeps the busy bit set forever.
	Stuck bool
	// NeverCalibrates leaves the calibration flag clear after the
	// initialization command.
	NeverCalibrates bool
	// CorruptCRC flips the CRC byte of every frame.
	CorruptCRC bool
	// Err is returned by every Tx when set.
	Err error

	// Humidity and Temperature are the 20 bits counts returned by the next
	// frame reads.
	Humidity    uint32
	Temperature uint32

	// Counters.
	Resets      int
	Inits       int
	Triggers    int
	StatusReads int
	FrameReads  int

	calibrated bool
	busyLeft   int
}

// New returns a Sim reporting the given temperature in °C and humidity in
// %RH.
func New(celsius, rh float64) *Sim {
	h, t := Counts(celsius, rh)
	return &Sim{Humidity: h, Temperature: t}
}

// Calibrated returns the simulated calibration flag.
func (s *Sim) Calibrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calibrated
}

func (s *Sim) String() string {
	return "aht20test.Sim"
}

// SetSpeed implements i2c.Bus.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if addr != Address {
		return ErrNoAck
	}
	switch {
	case bytes.Equal(w, cmdSoftReset) && len(r) == 0:
		s.Resets++
		s.calibrated = false
		s.busyLeft = 0
	case bytes.Equal(w, cmdInitialize) && len(r) == 0:
		s.Inits++
		s.busyLeft = s.BusyPolls
		if !s.NeverCalibrates {
			s.calibrated = true
		}
	case bytes.Equal(w, cmdMeasure) && len(r) == 0:
		s.Triggers++
		s.busyLeft = s.BusyPolls
	case bytes.Equal(w, cmdStatus) && len(r) == 1:
		s.StatusReads++
		r[0] = s.status()
		if s.busyLeft > 0 {
			s.busyLeft--
		}
	case len(w) == 0 && len(r) == 7:
		s.FrameReads++
		copy(r, Frame(s.status(), s.Humidity, s.Temperature))
		if s.CorruptCRC {
			r[6] ^= 0xFF
		}
	default:
		return fmt.Errorf("aht20test: unexpected Tx(%#v, %d bytes)", w, len(r))
	}
	return nil
}

func (s *Sim) status() byte {
	var b byte = 0x10
	if s.Stuck || s.busyLeft > 0 {
		b |= 0x80
	}
	if s.calibrated {
		b |= 0x08
	}
	return b
}

// Frame returns a 7 bytes measurement frame with a valid CRC.
func Frame(status byte, humidity, temperature uint32) []byte {
	f := []byte{
		status,
		byte(humidity >> 12),
		byte(humidity >> 4),
		byte(humidity<<4) | byte(temperature>>16)&0x0F,
		byte(temperature >> 8),
		byte(temperature),
		0,
	}
	f[6] = common.CRC8(f[:6])
	return f
}

// Counts returns the 20 bits counts closest to the given temperature in °C
// and humidity in %RH.
func Counts(celsius, rh float64) (humidity, temperature uint32) {
	const maxCount = 1<<20 - 1
	h := math.Round(rh / 100 * (1 << 20))
	t := math.Round((celsius + 50) / 200 * (1 << 20))
	return uint32(math.Max(0, math.Min(maxCount, h))), uint32(math.Max(0, math.Min(maxCount, t)))
}

var _ i2c.Bus = &Sim{}
