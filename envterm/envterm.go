// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envterm prints temperature and humidity readings as a coloured
// gauge line on a terminal using ANSI color codes.
//
// Each call to Write rewrites the current line.
package envterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for this gauge.
type Opts struct {
	// Width is the number of cells of each bar. Default is 20.
	Width int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a terminal gauge for physic.Env readings.
type Dev struct {
	w       io.Writer
	width   int
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	width := opts.Width
	if width <= 0 {
		width = 20
	}
	return &Dev{w: w, width: width, palette: *p}
}

func (d *Dev) String() string {
	return "EnvTerm"
}

// Halt implements conn.Resource.
//
// It resets the colors and ends the line so the terminal is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write draws e. Temperatures are scaled over the -50°C to 150°C sensor
// range, humidity over 0 to 100%RH.
func (d *Dev) Write(e physic.Env) error {
	c := e.Temperature.Celsius()
	rh := float64(e.Humidity) / float64(physic.PercentRH)

	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	_, _ = fmt.Fprintf(&d.buf, "%7.2f°C ", c)
	d.bar((c+50)/200, temperatureColor)
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %6.2f%%RH ", rh)
	d.bar(rh/100, humidityColor)
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

// bar appends width cells, the first ratio*width lit with their color.
func (d *Dev) bar(ratio float64, lit func(x float64) color.NRGBA) {
	n := int(ratio*float64(d.width) + 0.5)
	for i := 0; i < d.width; i++ {
		c := color.NRGBA{32, 32, 32, 255}
		if i < n {
			c = lit(float64(i) / float64(d.width))
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
}

// temperatureColor goes from blue to red.
func temperatureColor(x float64) color.NRGBA {
	return color.NRGBA{byte(255 * x), 0, byte(255 * (1 - x)), 255}
}

// humidityColor goes from white to blue.
func humidityColor(x float64) color.NRGBA {
	v := byte(255 * (1 - x))
	return color.NRGBA{v, v, 255, 255}
}

var _ fmt.Stringer = &Dev{}
