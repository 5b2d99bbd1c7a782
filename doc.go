// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aht20 is a container for the AHT20 temperature and humidity
// driver and its front ends.
//
// The driver itself lives in the aht20 subdirectory. tinysensor exposes it
// to TinyGo programs, envterm and envimage display its readings and
// cmd/aht20 reads a sensor from the command line.
package aht20
