// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/aht20/aht20"
	"github.com/GermanBionicSystems/aht20/aht20/aht20test"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	// Calibrate the AHT20. nil for default options or &aht20.DefaultOpts.
	d, err := aht20.New(b, aht20.DefaultAddress, nil).Init(aht20.StdSleeper)
	if err != nil {
		log.Fatalf("failed to initialize AHT20: %v", err)
	}

	// Read temperature and humidity from the sensor
	e := physic.Env{}
	if err := d.Sense(&e); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8s %9s\n", e.Temperature, e.Humidity)
}

func ExampleInitialized_Measure() {
	sim := aht20test.New(21.5, 48)
	skip := aht20.SleepFunc(func(time.Duration) {})

	d, err := aht20.New(sim, aht20.DefaultAddress, nil).Init(skip)
	if err != nil {
		log.Fatal(err)
	}
	m, err := d.Measure(skip)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.1f°C %.1f%%RH\n", m.Temperature, m.Humidity)
	n, err := d.MeasureNoFP(skip)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d°C %d%%RH\n", n.Temperature, n.Humidity)
	// Output:
	// 21.5°C 48.0%RH
	// 22°C 48%RH
}

func ExampleBusyTimeoutError() {
	sim := aht20test.New(21.5, 48)
	sim.Stuck = true

	_, err := aht20.New(sim, aht20.DefaultAddress, &aht20.Opts{PollAttempts: 5}).Init(aht20.SleepFunc(func(time.Duration) {}))
	var e *aht20.BusyTimeoutError
	if errors.As(err, &e) {
		fmt.Println(e)
	}
	// Output:
	// aht20: initialize: sensor still busy after 5 status reads
}
