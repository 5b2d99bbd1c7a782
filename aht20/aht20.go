// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the fixed I²C address of the AHT20.
const DefaultAddress i2c.Addr = 0x38

// Opts holds the configuration options for the device.
//
// The delays come from the datasheet, the poll ceiling was tuned against real
// sensors. A zero field takes the value from DefaultOpts.
type Opts struct {
	// ResetDelay is the wait after a soft reset. Default is 20ms.
	ResetDelay time.Duration
	// MeasurementDelay is the wait between triggering a measurement and the
	// first status read. Default is 80ms.
	MeasurementDelay time.Duration
	// PollInterval is the wait between two status reads, and before the first
	// status read after the initialization command. Default is 10ms.
	PollInterval time.Duration
	// PollAttempts is the maximum number of status reads before giving up
	// with a *BusyTimeoutError. Default is 100, about one second.
	PollAttempts int
	// Sleeper is used when a nil Sleeper is passed, and by Sense and
	// SenseContinuous. Default is StdSleeper.
	Sleeper Sleeper
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	ResetDelay:       20 * time.Millisecond,
	MeasurementDelay: 80 * time.Millisecond,
	PollInterval:     10 * time.Millisecond,
	PollAttempts:     100,
	Sleeper:          StdSleeper,
}

func (o *Opts) withDefaults() Opts {
	r := DefaultOpts
	if o == nil {
		return r
	}
	if o.ResetDelay > 0 {
		r.ResetDelay = o.ResetDelay
	}
	if o.MeasurementDelay > 0 {
		r.MeasurementDelay = o.MeasurementDelay
	}
	if o.PollInterval > 0 {
		r.PollInterval = o.PollInterval
	}
	if o.PollAttempts > 0 {
		r.PollAttempts = o.PollAttempts
	}
	if o.Sleeper != nil {
		r.Sleeper = o.Sleeper
	}
	return r
}

// Dev is an AHT20 that was not calibrated yet. Call Init to get an
// *Initialized.
type Dev struct {
	seq *sequencer
}

// New returns an object that communicates over I²C to an AHT20 at addr. It
// does no I/O. The Opts can be nil.
func New(b i2c.Bus, addr i2c.Addr, opts *Opts) *Dev {
	return &Dev{seq: &sequencer{d: &i2c.Dev{Bus: b, Addr: uint16(addr)}, opts: opts.withDefaults()}}
}

// Init soft resets the sensor, starts its calibration and waits until it
// reports idle and calibrated.
//
// d is consumed: any later call on it returns ErrReleased, even when Init
// failed. The sensor is then in an unknown state; start over with New.
//
// s can be nil to use Opts.Sleeper.
func (d *Dev) Init(s Sleeper) (*Initialized, error) {
	seq := d.seq
	if seq == nil {
		return nil, ErrReleased
	}
	d.seq = nil
	if err := seq.reset(s); err != nil {
		return nil, err
	}
	if err := seq.calibrate(s); err != nil {
		return nil, err
	}
	return &Initialized{seq: seq}, nil
}

// Reset soft resets the sensor. d stays uninitialized.
func (d *Dev) Reset(s Sleeper) error {
	if d.seq == nil {
		return ErrReleased
	}
	return d.seq.reset(s)
}

// Status reads the status byte.
func (d *Dev) Status() (Status, error) {
	if d.seq == nil {
		return 0, ErrReleased
	}
	return d.seq.status()
}

func (d *Dev) String() string {
	if d.seq == nil {
		return "AHT20(released)"
	}
	return "AHT20{" + d.seq.d.String() + "}"
}

// Halt implements conn.Resource. It is a no-op.
func (d *Dev) Halt() error {
	return nil
}

// Initialized is a calibrated AHT20. It is returned by Dev.Init.
type Initialized struct {
	mu   sync.Mutex
	seq  *sequencer
	stop chan struct{}
	wg   sync.WaitGroup
}

// Measure triggers a measurement and returns it converted to %RH and °C.
//
// It takes at least Opts.MeasurementDelay. If the sensor stays busy, a
// *BusyTimeoutError is returned. If the data is corrupt, a *ChecksumError is
// returned. s can be nil to use Opts.Sleeper.
func (d *Initialized) Measure(s Sleeper) (Measurement, error) {
	r, err := d.MeasureRaw(s)
	if err != nil {
		return Measurement{}, err
	}
	return r.Float(), nil
}

// MeasureNoFP is like Measure but converts with integer arithmetic only. The
// values are rounded to whole units.
func (d *Initialized) MeasureNoFP(s Sleeper) (MeasurementNoFP, error) {
	r, err := d.MeasureRaw(s)
	if err != nil {
		return MeasurementNoFP{}, err
	}
	return r.Int(), nil
}

// MeasureRaw is like Measure but returns the CRC checked counts.
func (d *Initialized) MeasureRaw(s Sleeper) (RawMeasurement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == nil {
		return RawMeasurement{}, ErrReleased
	}
	return d.seq.measure(s)
}

// Status reads the status byte.
func (d *Initialized) Status() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == nil {
		return 0, ErrReleased
	}
	return d.seq.status()
}

// Reset soft resets the sensor, which drops its calibration. d is consumed
// and an uninitialized *Dev is returned; call Init on it before measuring
// again. The returned *Dev is usable even when err is not nil.
//
// A running SenseContinuous is halted first.
func (d *Initialized) Reset(s Sleeper) (*Dev, error) {
	seq, err := d.release()
	if err != nil {
		return nil, err
	}
	return &Dev{seq: seq}, seq.reset(s)
}

// Release halts d and returns its bus connection. d is consumed.
func (d *Initialized) Release() (*i2c.Dev, error) {
	seq, err := d.release()
	if err != nil {
		return nil, err
	}
	return seq.d, nil
}

func (d *Initialized) release() (*sequencer, error) {
	_ = d.Halt()
	d.mu.Lock()
	defer d.mu.Unlock()
	seq := d.seq
	if seq == nil {
		return nil, ErrReleased
	}
	d.seq = nil
	return seq, nil
}

func (d *Initialized) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == nil {
		return "AHT20(released)"
	}
	return "AHT20{" + d.seq.d.String() + "}"
}

var _ conn.Resource = &Dev{}
