// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package srcrx implements the source and receiver kernel: waveform
// evaluation, the four source kinds (voltage source, Hertzian dipole,
// magnetic dipole, transmission line) and receiver sampling, integrated
// into the per-step schedule at the slots spec.md §4.4 and §4.6 name.
package srcrx

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gofdtd/grid"
)

// Waveform evaluates a source's time-domain excitation at electric or
// magnetic sub-step time t (seconds from model start).
type Waveform interface {
	Value(t float64) float64
}

// Parameterised is implemented by every waveform kind; User's SetParams
// applies only its sample spacing, since its Values table is not a scalar
// parameter. SetParams applies a tagged parameter list to the zero-value struct
// NewWaveform allocates, following the same "range over p.N/p.V, assign
// the ones this receiver recognises" idiom msolid's model Init(prms
// fun.Prms) methods use for their own tagged-variant parameters.
type Parameterised interface {
	SetParams(prms fun.Prms) error
}

// waveformAllocators holds one zero-value constructor per named waveform
// kind, following the msolid.GetModel registry pattern: callers allocate
// by name, then set the returned struct's exported fields directly.
var waveformAllocators = map[string]func() Waveform{
	"gaussian":       func() Waveform { return &Gaussian{} },
	"gaussiandot":    func() Waveform { return &GaussianDot{} },
	"gaussiandotdot": func() Waveform { return &GaussianDotDot{} },
	"ricker":         func() Waveform { return &Ricker{} },
	"sine":           func() Waveform { return &Sine{} },
	"contsine":       func() Waveform { return &ContSine{} },
	"impulse":        func() Waveform { return &Impulse{} },
	"user":           func() Waveform { return &User{} },
}

// NewWaveform allocates the zero-value waveform registered under kind.
func NewWaveform(kind string) (Waveform, error) {
	allocator, ok := waveformAllocators[kind]
	if !ok {
		return nil, grid.Errf(grid.InvalidInput, "unknown waveform kind %q", kind)
	}
	return allocator(), nil
}

// RegisteredWaveforms lists the known waveform kind names, for validating
// input records before a run starts.
func RegisteredWaveforms() []string {
	names := make([]string, 0, len(waveformAllocators))
	for name := range waveformAllocators {
		names = append(names, name)
	}
	return names
}

// Gaussian is a single Gaussian pulse centred at t=chi=1/Freq.
type Gaussian struct {
	Amp, Freq float64
}

func (w *Gaussian) Value(t float64) float64 {
	chi := 1 / w.Freq
	zeta := 2 * math.Pi * math.Pi * w.Freq * w.Freq
	return w.Amp * math.Exp(-zeta*(t-chi)*(t-chi))
}

func (w *Gaussian) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// GaussianDot is the first time-derivative of Gaussian.
type GaussianDot struct {
	Amp, Freq float64
}

func (w *GaussianDot) Value(t float64) float64 {
	chi := 1 / w.Freq
	zeta := 2 * math.Pi * math.Pi * w.Freq * w.Freq
	return -w.Amp * 2 * zeta * (t - chi) * math.Exp(-zeta*(t-chi)*(t-chi))
}

func (w *GaussianDot) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// GaussianDotDot is the second time-derivative of Gaussian.
type GaussianDotDot struct {
	Amp, Freq float64
}

func (w *GaussianDotDot) Value(t float64) float64 {
	chi := 1 / w.Freq
	zeta := 2 * math.Pi * math.Pi * w.Freq * w.Freq
	d := t - chi
	return w.Amp * 2 * zeta * (2*zeta*d*d - 1) * math.Exp(-zeta*d*d)
}

func (w *GaussianDotDot) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// Ricker is the "Mexican hat" wavelet, the normalised second derivative of
// a Gaussian commonly used for GPR sources.
type Ricker struct {
	Amp, Freq float64
}

func (w *Ricker) Value(t float64) float64 {
	chi := 1 / w.Freq
	zeta := math.Pi * math.Pi * w.Freq * w.Freq
	d := t - chi
	return w.Amp * (1 - 2*zeta*d*d) * math.Exp(-zeta*d*d)
}

func (w *Ricker) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// Sine is a single sinusoidal cycle of length 1/Freq, zero thereafter.
type Sine struct {
	Amp, Freq float64
}

func (w *Sine) Value(t float64) float64 {
	if t > 1/w.Freq {
		return 0
	}
	return w.Amp * math.Sin(2*math.Pi*w.Freq*t)
}

func (w *Sine) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// ContSine is a continuous sinusoid, linearly ramped over its first cycle
// to avoid exciting a step discontinuity.
type ContSine struct {
	Amp, Freq float64
}

func (w *ContSine) Value(t float64) float64 {
	ramp := 1.0
	if t < 1/w.Freq {
		ramp = t * w.Freq
	}
	return w.Amp * ramp * math.Sin(2*math.Pi*w.Freq*t)
}

func (w *ContSine) SetParams(prms fun.Prms) error {
	setAmpFreq(&w.Amp, &w.Freq, prms)
	return nil
}

// Impulse is nonzero only at t==0, a one-step Dirac-like excitation.
type Impulse struct {
	Amp float64
}

func (w *Impulse) Value(t float64) float64 {
	if t == 0 {
		return w.Amp
	}
	return 0
}

func (w *Impulse) SetParams(prms fun.Prms) error {
	for _, p := range prms {
		if p.N == "amp" {
			w.Amp = p.V
		}
	}
	if w.Amp == 0 {
		w.Amp = 1
	}
	return nil
}

// User holds a pre-tabulated waveform sampled at the model's own timestep;
// Values[n] is the excitation at t = n*Dt.
type User struct {
	Values []float64
	Dt     float64
}

func (w *User) Value(t float64) float64 {
	if w.Dt <= 0 || len(w.Values) == 0 {
		return 0
	}
	n := int(math.Round(t / w.Dt))
	if n < 0 || n >= len(w.Values) {
		return 0
	}
	return w.Values[n]
}

// SetParams applies the sample spacing only; Values itself is a table, not
// a scalar parameter, so the caller assigns it directly.
func (w *User) SetParams(prms fun.Prms) error {
	for _, p := range prms {
		if p.N == "dt" {
			w.Dt = p.V
		}
	}
	return nil
}

// setAmpFreq applies the common amp/freq pair every sinusoidal-family
// waveform recognises, defaulting Amp to 1 when the caller omits it.
func setAmpFreq(amp, freq *float64, prms fun.Prms) {
	for _, p := range prms {
		switch p.N {
		case "amp":
			*amp = p.V
		case "freq":
			*freq = p.V
		}
	}
	if *amp == 0 {
		*amp = 1
	}
}
