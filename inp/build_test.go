// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/grid"
)

// TestBuildGridSmoothedBoundaryAndVoltageSource exercises the two build
// steps that must run before the catalogue closes: a multi-material
// boundary forcing yeebuild's dielectric smoothing to append a new
// catalogue entry, and a resistive voltage source baking its own derived
// material. Both call Catalogue.Add, which hard-errors once closed, so
// this is also the regression test for BuildGrid's material-catalogue
// lifecycle ordering.
func TestBuildGridSmoothedBoundaryAndVoltageSource(tst *testing.T) {
	chk.PrintTitle("BuildGridSmoothedBoundaryAndVoltageSource")

	dx := 1e-3
	dt := 0.99 * grid.CourantLimit(dx, dx, dx)

	// a 2x1x1-cell domain split along x: cell i=0 is soil, cell i=1 (and
	// the node-indexed padding plane i=2) is rock, so the Ey/Ez edges on the
	// i=1 plane gather two distinct Average materials.
	names := make([]string, 12)
	for idx := range names {
		if idx < 4 {
			names[idx] = "soil"
		} else {
			names[idx] = "rock"
		}
	}

	p := Parsed{
		Title:      "smoothed boundary + voltage source",
		Domain:     Domain{Nx: 2, Ny: 1, Nz: 1, Dx: dx, Dy: dx, Dz: dx},
		TimeWindow: TimeWindow{Dt: dt, Iterations: 5},
		Materials: []MaterialCmd{
			{Name: "soil", Er: 9, Sigma: 0.01, Mr: 1, Average: true},
			{Name: "rock", Er: 6, Sigma: 0.02, Mr: 1, Average: true},
		},
		Waveforms: []WaveformCmd{
			{Name: "pulse", Kind: "gaussian", Amp: 1, Freq: 1e9},
		},
		VoltageSources: []VoltageSourceCmd{
			{Position: point{X: dx, Y: dx, Z: dx}, Polarisation: "x", Resistance: 50, Waveform: "pulse"},
		},
		SolidMaterial: names,
	}

	model, err := BuildGrid(p)
	if err != nil {
		tst.Fatalf("BuildGrid failed: %v", err)
	}

	if !model.Grid.Mats.Closed() {
		tst.Fatalf("expected the catalogue to be closed by the time BuildGrid returns")
	}

	foundSmoothed := false
	foundVoltageMaterial := false
	for _, m := range model.Grid.Mats.Materials {
		switch {
		case m.Average && m.Name != "soil" && m.Name != "rock" && m.Name != "free_space":
			foundSmoothed = true
		case !m.Average && m.Name != "free_space" && m.Name != "soil" && m.Name != "rock":
			foundVoltageMaterial = true
		}
	}
	if !foundSmoothed {
		tst.Fatalf("expected yeebuild to have appended a smoothed material at the soil/rock boundary")
	}
	if !foundVoltageMaterial {
		tst.Fatalf("expected the voltage source to have baked its own derived material")
	}

	if len(model.Sources.Voltage) != 1 {
		tst.Fatalf("expected 1 voltage source, got %d", len(model.Sources.Voltage))
	}
	if model.Grid.Mats.UpdateCoeffsE == nil {
		tst.Fatalf("expected DeriveCoefficients to have run after the catalogue closed")
	}
}
