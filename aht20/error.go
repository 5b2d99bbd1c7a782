// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"errors"
	"fmt"
)

// ErrReleased is returned when a handle is used after Init, Reset or Release
// handed its bus connection over.
var ErrReleased = errors.New("aht20: device handle already consumed")

// BusError is returned when the I²C bus reported a failure. Err is the bus
// error, unmodified.
type BusError struct {
	// Op is the step that failed: "reset", "initialize", "measure", "status"
	// or "read".
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return "aht20: " + e.Op + ": " + e.Err.Error()
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// BusyTimeoutError is returned when the sensor still reported busy after
// Opts.PollAttempts status reads. Reset and initialize the sensor again.
type BusyTimeoutError struct {
	// Op is "initialize" or "measure".
	Op       string
	Attempts int
	// Status is the last status read.
	Status Status
}

func (e *BusyTimeoutError) Error() string {
	return fmt.Sprintf("aht20: %s: sensor still busy after %d status reads", e.Op, e.Attempts)
}

// CalibrationError is returned by Init when the sensor became idle without
// setting its calibration flag.
type CalibrationError struct {
	Status Status
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("aht20: sensor idle but not calibrated (status 0x%02x)", byte(e.Status))
}

// ChecksumError is returned when the CRC8 of a measurement frame did not
// match. The frame is discarded.
type ChecksumError struct {
	Got  byte
	Want byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("aht20: data is corrupt, crc8 0x%02x != 0x%02x", e.Got, e.Want)
}

// NotReadyError is returned when a measurement frame passed its CRC but its
// status byte still reports busy. The frame is discarded.
type NotReadyError struct {
	Status Status
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("aht20: read: frame reports busy (status 0x%02x)", byte(e.Status))
}
