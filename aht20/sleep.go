// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import "time"

// Sleeper blocks for at least d.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function to a Sleeper.
type SleepFunc func(d time.Duration)

// Sleep implements Sleeper.
func (f SleepFunc) Sleep(d time.Duration) {
	f(d)
}

// StdSleeper sleeps with time.Sleep.
var StdSleeper Sleeper = SleepFunc(time.Sleep)
