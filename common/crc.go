// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the CRC8 used by Aosong and Sensirion sensors.
package common

// crc8Polynomial is p(x) = x^8 + x^5 + x^4 + 1, x^8 omitted.
const crc8Polynomial byte = 0x31

const crc8Init byte = 0xff

// CRC8 calculates the 8-bit CRC of the byte slice parameter and returns the
// calculated value.
//
// The register starts at 0xFF and is shifted MSB first, without reflection
// and without a final XOR. This matches the checksum the AHT20 appends to
// its measurement frame.
func CRC8(bytes []byte) byte {
	crc := crc8Init
	for _, val := range bytes {
		crc ^= val
		for range 8 {
			if crc&0x80 == 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ crc8Polynomial
			}
		}
	}
	return crc
}

// CRC8Valid returns true if sum is the CRC8 of bytes.
func CRC8Valid(bytes []byte, sum byte) bool {
	return CRC8(bytes) == sum
}
