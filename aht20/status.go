// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import "fmt"

// Status is the AHT20 status byte. All bits but busy and calibrated are
// reserved.
type Status byte

const (
	statusBusy       Status = 1 << 7
	statusCalibrated Status = 1 << 3
)

// State is the classification of a Status byte.
type State uint8

const (
	// StateBusy means a conversion or the calibration is still running. The
	// data registers must not be read.
	StateBusy State = iota
	// StateIdle means the sensor is idle but its calibration flag is clear.
	StateIdle
	// StateCalibrated means the sensor is idle and calibrated.
	StateCalibrated
)

func (s State) String() string {
	switch s {
	case StateBusy:
		return "busy"
	case StateIdle:
		return "idle"
	case StateCalibrated:
		return "calibrated"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Busy returns true when bit 7 is set.
func (s Status) Busy() bool {
	return s&statusBusy != 0
}

// Calibrated returns true when bit 3 is set.
func (s Status) Calibrated() bool {
	return s&statusCalibrated != 0
}

// State classifies the status byte. The busy bit wins over everything else.
func (s Status) State() State {
	switch {
	case s.Busy():
		return StateBusy
	case s.Calibrated():
		return StateCalibrated
	default:
		return StateIdle
	}
}

func (s Status) String() string {
	return fmt.Sprintf("%s(0x%02x)", s.State(), byte(s))
}
