// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcrx

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestGaussianPeaksAtChi(tst *testing.T) {
	chk.PrintTitle("GaussianPeaksAtChi")
	w := &Gaussian{Amp: 1, Freq: 1e9}
	chi := 1 / w.Freq
	peak := w.Value(chi)
	if math.Abs(peak-1) > 1e-12 {
		tst.Fatalf("expected Gaussian to peak at amplitude 1 when t=chi, got %v", peak)
	}
	if w.Value(chi+10/w.Freq) > 1e-6 {
		tst.Fatalf("expected Gaussian to have decayed far from chi")
	}
}

func TestSineZeroAfterOneCycle(tst *testing.T) {
	chk.PrintTitle("SineZeroAfterOneCycle")
	w := &Sine{Amp: 1, Freq: 1e9}
	if v := w.Value(2 / w.Freq); v != 0 {
		tst.Fatalf("expected Sine to be zero after one cycle, got %v", v)
	}
}

func TestUserWaveformLooksUpNearestSample(tst *testing.T) {
	chk.PrintTitle("UserWaveformLooksUpNearestSample")
	w := &User{Values: []float64{0, 1, 2, 3}, Dt: 1e-12}
	if v := w.Value(2e-12); v != 2 {
		tst.Fatalf("expected sample 2 at t=2*dt, got %v", v)
	}
	if v := w.Value(100e-12); v != 0 {
		tst.Fatalf("expected 0 outside the tabulated range, got %v", v)
	}
}

func TestNewWaveformUnknownKind(tst *testing.T) {
	chk.PrintTitle("NewWaveformUnknownKind")
	if _, err := NewWaveform("not-a-kind"); err == nil {
		tst.Fatal("expected an error for an unregistered waveform kind")
	}
}

func TestAllRegisteredWaveformsConstructible(tst *testing.T) {
	chk.PrintTitle("AllRegisteredWaveformsConstructible")
	for _, name := range RegisteredWaveforms() {
		if _, err := NewWaveform(name); err != nil {
			tst.Fatalf("registered waveform %q failed to construct: %v", name, err)
		}
	}
}
