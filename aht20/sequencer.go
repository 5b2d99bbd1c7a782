// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"time"

	"github.com/GermanBionicSystems/aht20/common"
	"periph.io/x/conn/v3/i2c"
)

const (
	cmdStatus     byte = 0x71
	cmdInitialize byte = 0xBE
	cmdMeasure    byte = 0xAC
	cmdSoftReset  byte = 0xBA
)

var (
	argsStatus     = []byte{cmdStatus}
	argsInitialize = []byte{cmdInitialize, 0x08, 0x00}
	argsMeasure    = []byte{cmdMeasure, 0x33, 0x00}
	argsSoftReset  = []byte{cmdSoftReset}
)

// sequencer runs the command sequences on the bus. It holds no state besides
// the connection; every status is read fresh.
type sequencer struct {
	d    *i2c.Dev
	opts Opts
}

func (s *sequencer) sleeper(sl Sleeper) Sleeper {
	if sl == nil {
		return s.opts.Sleeper
	}
	return sl
}

func (s *sequencer) write(op string, w []byte) error {
	if err := s.d.Tx(w, nil); err != nil {
		return &BusError{Op: op, Err: err}
	}
	return nil
}

func (s *sequencer) status() (Status, error) {
	var r [1]byte
	if err := s.d.Tx(argsStatus, r[:]); err != nil {
		return 0, &BusError{Op: "status", Err: err}
	}
	return Status(r[0]), nil
}

// reset sends the soft reset command and waits for the sensor to reboot.
func (s *sequencer) reset(sl Sleeper) error {
	if err := s.write("reset", argsSoftReset); err != nil {
		return err
	}
	s.sleeper(sl).Sleep(s.opts.ResetDelay)
	return nil
}

// calibrate sends the initialization command and waits for the calibration
// flag.
func (s *sequencer) calibrate(sl Sleeper) error {
	sl = s.sleeper(sl)
	if err := s.write("initialize", argsInitialize); err != nil {
		return err
	}
	st, err := s.poll("initialize", sl, s.opts.PollInterval)
	if err != nil {
		return err
	}
	if !st.Calibrated() {
		return &CalibrationError{Status: st}
	}
	return nil
}

// measure triggers a conversion, waits for it and reads the frame. The
// frame's own status byte must not be busy; the calibration flag is not
// checked again.
func (s *sequencer) measure(sl Sleeper) (RawMeasurement, error) {
	sl = s.sleeper(sl)
	if err := s.write("measure", argsMeasure); err != nil {
		return RawMeasurement{}, err
	}
	if _, err := s.poll("measure", sl, s.opts.MeasurementDelay); err != nil {
		return RawMeasurement{}, err
	}
	var f frame
	if err := s.d.Tx(nil, f[:]); err != nil {
		return RawMeasurement{}, &BusError{Op: "read", Err: err}
	}
	if !f.valid() {
		return RawMeasurement{}, &ChecksumError{Got: f[frameSize-1], Want: common.CRC8(f[:frameSize-1])}
	}
	if st := Status(f[0]); st.Busy() {
		return RawMeasurement{}, &NotReadyError{Status: st}
	}
	return f.counts(), nil
}

// poll waits settle, then reads the status until the busy bit clears. It
// reads at most opts.PollAttempts times, PollInterval apart.
func (s *sequencer) poll(op string, sl Sleeper, settle time.Duration) (Status, error) {
	sl.Sleep(settle)
	for attempt := 1; ; attempt++ {
		st, err := s.status()
		if err != nil {
			return 0, err
		}
		if !st.Busy() {
			return st, nil
		}
		if attempt >= s.opts.PollAttempts {
			return st, &BusyTimeoutError{Op: op, Attempts: attempt, Status: st}
		}
		sl.Sleep(s.opts.PollInterval)
	}
}
