// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: []byte{}, result: 0xff},
		{bytes: []byte{0x00}, result: 0xac},
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
		// AHT20 frame captured from a live sensor.
		{bytes: []byte{0x18, 0x75, 0x52, 0x05, 0x8e, 0x40}, result: 0x7f},
		{bytes: []byte{0x1c, 0x65, 0xb4, 0x25, 0xcd, 0x26}, result: 0xc6},
	}
	for _, test := range tests {
		if res := CRC8(test.bytes); res != test.result {
			t.Errorf("CRC8(%#v)!=0x%02x received 0x%02x", test.bytes, test.result, res)
		}
	}
}

func TestCRC8Stable(t *testing.T) {
	frame := []byte{0x1c, 0x80, 0x00, 0x08, 0x00, 0x00}
	if a, b := CRC8(frame), CRC8(frame); a != b {
		t.Fatalf("CRC8 not deterministic: 0x%02x != 0x%02x", a, b)
	}
}

func TestCRC8ValidBitFlip(t *testing.T) {
	frames := [][]byte{
		{0x18, 0x75, 0x52, 0x05, 0x8e, 0x40},
		{0x1c, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0x08, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for _, f := range frames {
		sum := CRC8(f)
		if !CRC8Valid(f, sum) {
			t.Fatalf("CRC8Valid(%#v, 0x%02x) = false", f, sum)
		}
		for i := range f {
			for bit := range 8 {
				f[i] ^= 1 << bit
				if CRC8Valid(f, sum) {
					t.Errorf("flipping bit %d of byte %d of %#v went undetected", bit, i, f)
				}
				f[i] ^= 1 << bit
			}
		}
		for bit := range 8 {
			if CRC8Valid(f, sum^(1<<bit)) {
				t.Errorf("flipping bit %d of the checksum of %#v went undetected", bit, f)
			}
		}
	}
}
