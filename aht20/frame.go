// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"github.com/GermanBionicSystems/aht20/common"
	"periph.io/x/conn/v3/physic"
)

const (
	// frameSize is status + 5 data bytes + crc.
	frameSize = 7

	countBits = 20
	countMax  = 1 << countBits
	countMask = countMax - 1
	countHalf = countMax / 2
)

// frame is the raw answer to a measurement read.
//
//	0: status
//	1: humidity[19:12]
//	2: humidity[11:4]
//	3: humidity[3:0] | temperature[19:16]
//	4: temperature[15:8]
//	5: temperature[7:0]
//	6: crc8 of bytes 0 to 5
type frame [frameSize]byte

func (f *frame) valid() bool {
	return common.CRC8Valid(f[:frameSize-1], f[frameSize-1])
}

func (f *frame) counts() RawMeasurement {
	return RawMeasurement{
		Humidity:    (uint32(f[1])<<12 | uint32(f[2])<<4 | uint32(f[3])>>4) & countMask,
		Temperature: ((uint32(f[3])&0xF)<<16 | uint32(f[4])<<8 | uint32(f[5])) & countMask,
	}
}

// RawMeasurement holds the 20 bits sensor counts of one measurement.
type RawMeasurement struct {
	Humidity    uint32
	Temperature uint32
}

// Measurement is a measurement converted with floating point arithmetic.
type Measurement struct {
	// Humidity in %RH, in [0, 100].
	Humidity float32
	// Temperature in °C, in [-50, 150).
	Temperature float32
}

// MeasurementNoFP is a measurement converted with integer arithmetic only.
// Both values are rounded to the nearest whole unit, halves up. Use
// Measurement when sub-degree or sub-percent precision matters.
type MeasurementNoFP struct {
	// Humidity in %RH.
	Humidity int32
	// Temperature in °C.
	Temperature int32
}

// Float converts the counts to %RH and °C.
func (r RawMeasurement) Float() Measurement {
	return Measurement{
		Humidity:    float32(r.Humidity&countMask) / countMax * 100,
		Temperature: float32(r.Temperature&countMask)/countMax*200 - 50,
	}
}

// Int converts the counts to whole %RH and °C without using the FPU.
func (r RawMeasurement) Int() MeasurementNoFP {
	// count*200 < 2^28, no overflow.
	return MeasurementNoFP{
		Humidity:    int32(((r.Humidity&countMask)*100 + countHalf) >> countBits),
		Temperature: int32(((r.Temperature&countMask)*200+countHalf)>>countBits) - 50,
	}
}

// Env fills the temperature and humidity of e. The pressure is not touched.
func (r RawMeasurement) Env(e *physic.Env) {
	humidityRH := float64(r.Humidity&countMask) / countMax * 100.0
	temperatureC := float64(r.Temperature&countMask)/countMax*200 - 50.0

	e.Humidity = physic.RelativeHumidity(humidityRH * float64(physic.PercentRH))
	e.Temperature = physic.Temperature(temperatureC*float64(physic.Kelvin)) + physic.ZeroCelsius
}
