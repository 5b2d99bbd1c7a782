// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envimage renders a temperature and humidity reading as an image,
// for example to show it on an e-paper or OLED display.
package envimage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
)

// Opts holds the rendering options.
type Opts struct {
	// Width and Height of the image. Default is 250x122, the size of a
	// 2.13" e-paper.
	Width  int
	Height int
	// Foreground defaults to black, Background to white.
	Foreground color.Color
	Background color.Color
}

// Render draws e on a new image: the temperature on the first line, the
// humidity on the second.
func Render(e physic.Env, opts *Opts) (image.Image, error) {
	o := Opts{Width: 250, Height: 122, Foreground: color.Black, Background: color.White}
	if opts != nil {
		if opts.Width > 0 && opts.Height > 0 {
			o.Width, o.Height = opts.Width, opts.Height
		}
		if opts.Foreground != nil {
			o.Foreground = opts.Foreground
		}
		if opts.Background != nil {
			o.Background = opts.Background
		}
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("envimage: %w", err)
	}
	w, h := float64(o.Width), float64(o.Height)
	dc := gg.NewContext(o.Width, o.Height)
	dc.SetColor(o.Background)
	dc.Clear()
	dc.SetColor(o.Foreground)

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: h * 0.35}))
	dc.DrawStringAnchored(fmt.Sprintf("%.1f°C", e.Temperature.Celsius()), w/2, h*0.3, 0.5, 0.5)

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: h * 0.22}))
	dc.DrawStringAnchored(fmt.Sprintf("%.1f%%RH", float64(e.Humidity)/float64(physic.PercentRH)), w/2, h*0.75, 0.5, 0.5)
	return dc.Image(), nil
}

// Draw renders e at the size of dst and draws it.
func Draw(dst display.Drawer, e physic.Env, opts *Opts) error {
	r := dst.Bounds()
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	o.Width, o.Height = r.Dx(), r.Dy()
	img, err := Render(e, &o)
	if err != nil {
		return err
	}
	return dst.Draw(r, img, image.Point{})
}
