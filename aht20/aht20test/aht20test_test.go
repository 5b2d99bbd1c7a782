// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20test

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrame(t *testing.T) {
	got := Frame(0x18, 0x75520, 0x58E40)
	want := []byte{0x18, 0x75, 0x52, 0x05, 0x8E, 0x40, 0x7F}
	if !bytes.Equal(got, want) {
		t.Fatalf("Frame() = %#v, expected %#v", got, want)
	}
}

func TestCounts(t *testing.T) {
	var tests = []struct {
		celsius, rh float64
		h, t        uint32
	}{
		{-50, 0, 0, 0},
		{50, 50, 0x80000, 0x80000},
		{25, 100, 0xFFFFF, 393216},
		{-80, -5, 0, 0},
		{200, 150, 0xFFFFF, 0xFFFFF},
	}
	for _, test := range tests {
		h, tc := Counts(test.celsius, test.rh)
		if h != test.h || tc != test.t {
			t.Errorf("Counts(%g, %g) = %d, %d; expected %d, %d", test.celsius, test.rh, h, tc, test.h, test.t)
		}
	}
}

func TestSim(t *testing.T) {
	s := New(25, 50)
	s.BusyPolls = 2
	r := make([]byte, 1)
	if err := s.Tx(Address, cmdSoftReset, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Tx(Address, cmdInitialize, nil); err != nil {
		t.Fatal(err)
	}
	for i, want := range []byte{0x98, 0x98, 0x18, 0x18} {
		if err := s.Tx(Address, cmdStatus, r); err != nil {
			t.Fatal(err)
		}
		if r[0] != want {
			t.Errorf("status read %d: 0x%02x, expected 0x%02x", i, r[0], want)
		}
	}
	f := make([]byte, 7)
	if err := s.Tx(Address, nil, f); err != nil {
		t.Fatal(err)
	}
	if want := Frame(0x18, 0x80000, 393216); !bytes.Equal(f, want) {
		t.Errorf("frame %#v, expected %#v", f, want)
	}
	if s.Resets != 1 || s.Inits != 1 || s.StatusReads != 4 || s.FrameReads != 1 {
		t.Errorf("counters %+v", s)
	}
	if err := s.Tx(Address, []byte{0x42}, nil); err == nil {
		t.Error("expected error for an unknown command")
	}
	if err := s.Tx(0x10, cmdStatus, r); !errors.Is(err, ErrNoAck) {
		t.Errorf("expected ErrNoAck, got %v", err)
	}
}
