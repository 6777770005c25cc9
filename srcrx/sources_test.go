// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcrx

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/yeebuild"
)

func newTestGrid(tst *testing.T) *grid.Grid {
	dx := 1e-3
	dt := 0.99 * grid.CourantLimit(dx, dx, dx)
	g, err := grid.New(8, 8, 8, dx, dx, dx, dt, 5)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	g.Mats.Close()
	if err := g.Mats.DeriveCoefficients(dt, dx, dx, dx); err != nil {
		tst.Fatalf("DeriveCoefficients failed: %v", err)
	}
	if err := yeebuild.Build(g, 1); err != nil {
		tst.Fatalf("yeebuild.Build failed: %v", err)
	}
	return g
}

func TestVoltageSourcePerturbsField(tst *testing.T) {
	chk.PrintTitle("VoltageSourcePerturbsField")
	g := newTestGrid(tst)
	src := &VoltageSource{I: 4, J: 4, K: 4, Polarisation: grid.AxisX, Waveform: &Gaussian{Amp: 1, Freq: 1e9}}
	before := g.Ex.At(4, 4, 4)
	if err := src.UpdateE(g, 1/1e9); err != nil {
		tst.Fatalf("UpdateE failed: %v", err)
	}
	after := g.Ex.At(4, 4, 4)
	if before == after {
		tst.Fatalf("expected voltage source to perturb Ex at its cell")
	}
}

func TestHertzianDipolePerturbsField(tst *testing.T) {
	chk.PrintTitle("HertzianDipolePerturbsField")
	g := newTestGrid(tst)
	src := &HertzianDipole{I: 4, J: 4, K: 4, Polarisation: grid.AxisZ, Waveform: &Ricker{Amp: 1, Freq: 1e9}}
	if err := src.UpdateE(g, 1/1e9); err != nil {
		tst.Fatalf("UpdateE failed: %v", err)
	}
	if g.Ez.At(4, 4, 4) == 0 {
		tst.Fatalf("expected Hertzian dipole to perturb Ez at its cell")
	}
}

func TestReceiverSamplesFieldHistory(tst *testing.T) {
	chk.PrintTitle("ReceiverSamplesFieldHistory")
	g := newTestGrid(tst)
	rx := &Receiver{Name: "rx0", I: 4, J: 4, K: 4, Outputs: []Output{OutEx, OutIx}}
	rx.Sample(g)
	g.Ex.Set(4, 4, 4, 42)
	rx.Sample(g)
	hist := rx.History(0)
	if len(hist) != 2 || hist[1] != 42 {
		tst.Fatalf("expected 2 samples with the 2nd equal to 42, got %v", hist)
	}
}

func TestCurrentIsZeroAtBoundary(tst *testing.T) {
	chk.PrintTitle("CurrentIsZeroAtBoundary")
	g := newTestGrid(tst)
	if v := currentX(g, 0, 4, 4); v != 0 {
		tst.Fatalf("expected zero current at x=0 boundary regardless of field values, got %v", v)
	}
	if v := currentY(g, 4, 0, 4); v != 0 {
		tst.Fatalf("expected zero current at y=0 boundary, got %v", v)
	}
	if v := currentZ(g, 4, 4, 0); v != 0 {
		tst.Fatalf("expected zero current at z=0 boundary, got %v", v)
	}
}
