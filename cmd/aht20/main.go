// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// aht20 reads an AHT20 temperature and humidity sensor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/aht20/aht20"
	"github.com/GermanBionicSystems/aht20/envimage"
	"github.com/GermanBionicSystems/aht20/envterm"
	"github.com/GermanBionicSystems/aht20/internal/exporter"
	"github.com/fogleman/gg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	i2cID := flag.String("i2c", "", "I²C bus to use")
	addr := aht20.DefaultAddress
	flag.Var(&addr, "addr", "I²C address of the sensor")
	n := flag.Int("n", 1, "number of measurements, 0 to run until interrupted")
	interval := flag.Duration("interval", time.Second, "time between measurements")
	useInt := flag.Bool("int", false, "use integer math only")
	pollInterval := flag.Duration("poll-interval", aht20.DefaultOpts.PollInterval, "time between two busy status reads")
	pollAttempts := flag.Int("poll-attempts", aht20.DefaultOpts.PollAttempts, "maximum number of status reads before giving up")
	listen := flag.String("listen", "", "serve prometheus metrics on this address, e.g. :8080")
	png := flag.String("png", "", "save the last measurement as a PNG image")
	useColor := flag.Bool("color", false, "draw a colored gauge on the terminal")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *n < 0 {
		return errors.New("-n must be positive or 0")
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*i2cID)
	if err != nil {
		return err
	}
	defer bus.Close()

	opts := aht20.DefaultOpts
	opts.PollInterval = *pollInterval
	opts.PollAttempts = *pollAttempts
	d, err := aht20.New(bus, addr, &opts).Init(nil)
	if err != nil {
		return err
	}
	defer d.Release()
	log.Debugf("initialized %s", d)

	exp, err := exporter.New(d, nil, prometheus.DefaultRegisterer, log.StandardLogger())
	if err != nil {
		return err
	}
	if *listen != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{EnableOpenMetrics: true},
			))
			log.Panic(http.ListenAndServe(*listen, nil))
		}()
	}

	var term *envterm.Dev
	if *useColor {
		term = envterm.New(nil)
		defer term.Halt()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rd := reader{exp: exp, useInt: *useInt, term: term, w: os.Stdout}
	for i := 0; *n == 0 || i < *n; i++ {
		if i != 0 {
			select {
			case <-ctx.Done():
				return savePNG(*png, rd.last)
			case <-time.After(*interval):
			}
		}
		// With -n 0 failed reads are skipped; the exporter logged and counted them.
		if err := rd.read(); err != nil && *n != 0 {
			return err
		}
	}
	return savePNG(*png, rd.last)
}

// reader prints each sample taken by the exporter.
type reader struct {
	exp    *exporter.Exporter
	useInt bool
	term   *envterm.Dev
	w      io.Writer
	last   physic.Env
}

func (r *reader) read() error {
	raw, err := r.exp.Sample()
	if err != nil {
		return err
	}
	raw.Env(&r.last)
	switch {
	case r.term != nil:
		return r.term.Write(r.last)
	case r.useInt:
		m := raw.Int()
		_, err = fmt.Fprintf(r.w, "%d°C %d%%RH\n", m.Temperature, m.Humidity)
	default:
		m := raw.Float()
		_, err = fmt.Fprintf(r.w, "%.2f°C %.2f%%RH\n", m.Temperature, m.Humidity)
	}
	return err
}

func savePNG(path string, e physic.Env) error {
	if path == "" {
		return nil
	}
	img, err := envimage.Render(e, nil)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "aht20: %s.\n", err)
		os.Exit(1)
	}
}
