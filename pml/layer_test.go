// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pml

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/grid"
)

func newTestGrid(tst *testing.T) *grid.Grid {
	dx := 1e-3
	dt := 0.99 * grid.CourantLimit(dx, dx, dx)
	g, err := grid.New(20, 20, 20, dx, dx, dx, dt, 5)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	g.Mats.Close()
	if err := g.Mats.DeriveCoefficients(dt, dx, dx, dx); err != nil {
		tst.Fatalf("DeriveCoefficients failed: %v", err)
	}
	return g
}

func TestBuildAllSixFaces(tst *testing.T) {
	chk.PrintTitle("BuildAllSixFaces")
	g := newTestGrid(tst)
	var params [6]FaceParams
	for i := range params {
		params[i] = DefaultFaceParams()
	}
	layers, err := Build(g, params)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	for i, l := range layers {
		if l == nil {
			tst.Fatalf("face %d: nil layer", i)
		}
		if l.Thickness != 10 {
			tst.Fatalf("face %d: expected thickness 10, got %d", i, l.Thickness)
		}
	}
}

func TestGradeCoeffsMonotonic(tst *testing.T) {
	chk.PrintTitle("GradeCoeffsMonotonic")
	p := FaceParams{Thickness: 10, SigmaMax: 1e4, AlphaMax: 0.05, KappaMax: 5, M: 3}
	b, c := gradeCoeffs(10, 1e-12, p, 0.5)
	for d := 0; d < len(b); d++ {
		if b[d] <= 0 || b[d] >= 1 {
			tst.Fatalf("b[%d]=%v should be in (0,1) for a lossy recursion coefficient", d, b[d])
		}
	}
	// sigma grows toward the outer face (increasing d index moves inward,
	// so the recursion coefficient c should shrink in magnitude as d grows)
	if c[0] == 0 {
		tst.Fatalf("expected nonzero c[0] with SigmaMax>0")
	}
	for d := 1; d < len(c); d++ {
		if absf(c[d]) > absf(c[d-1]) {
			tst.Fatalf("c should grade monotonically toward the face: c[%d]=%v > c[%d]=%v", d, c[d], d-1, c[d-1])
		}
	}
}

func TestZeroThicknessFaceSkipped(tst *testing.T) {
	chk.PrintTitle("ZeroThicknessFaceSkipped")
	g := newTestGrid(tst)
	var params [6]FaceParams
	for i := range params {
		params[i] = DefaultFaceParams()
	}
	params[0] = FaceParams{Thickness: 0}
	layers, err := Build(g, params)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	if err := UpdateElectric(g, layers); err != nil {
		tst.Fatalf("UpdateElectric failed: %v", err)
	}
	if err := UpdateMagnetic(g, layers); err != nil {
		tst.Fatalf("UpdateMagnetic failed: %v", err)
	}
	// a zero-thickness x0 face must not have touched any field value, since
	// the grid starts at zero and carries no sources in this test
	for _, f := range []*grid.Field3D{g.Ex, g.Ey, g.Ez, g.Hx, g.Hy, g.Hz} {
		for _, v := range f.Data {
			if v != 0 {
				tst.Fatalf("expected all-zero fields with no sources, got %v", v)
			}
		}
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
