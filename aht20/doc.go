// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aht20 controls an AHT20 device over I²C.
//
// The sensor is a temperature and humidity sensor with a typical accuracy of
// ±2% RH and ±0.3°C.
//
// # Lifecycle
//
// New returns an uninitialized *Dev. It performs no I/O. Dev.Init soft resets
// the sensor, starts its calibration and polls the status byte until the
// sensor reports itself idle and calibrated. Only then an *Initialized is
// returned, which is the only type able to measure. Init consumes the *Dev
// whether it succeeds or not; on failure start over with New.
//
// Every blocking wait goes through a Sleeper. Status polling is bounded by
// Opts.PollAttempts so a sensor stuck in the busy state yields a
// *BusyTimeoutError instead of hanging the caller.
//
// # Measurements
//
// Initialized.Measure returns float32 values. Initialized.MeasureNoFP returns
// whole °C and %RH computed with integer arithmetic only, for targets without
// an FPU. The *Initialized type also implements physic.SenseEnv; the
// physic.Env measurement results contain a temperature and a humidity, the
// pressure is left untouched.
//
// A frame is only decoded after its CRC8 matched. A corrupt frame yields a
// *ChecksumError and no value. A frame whose own status byte still reports
// busy yields a *NotReadyError.
//
// # Datasheet
//
// http://www.aosong.com/userfiles/files/media/Data%20Sheet%20AHT20.pdf
package aht20
