// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yeebuild

import (
	"testing"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/mat"
	"github.com/cpmech/gosl/chk"
)

func newTestGrid(tst *testing.T) *grid.Grid {
	dx := 1e-3
	dt := 0.99 * grid.CourantLimit(dx, dx, dx)
	g, err := grid.New(4, 4, 4, dx, dx, dx, dt, 10)
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func TestBuildUniformGridUsesSingleMaterial(tst *testing.T) {
	chk.PrintTitle("BuildUniformGridUsesSingleMaterial")
	g := newTestGrid(tst)
	if err := Build(g, 2); err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	for _, comp := range []grid.Component{grid.CompEx, grid.CompEy, grid.CompEz, grid.CompHx, grid.CompHy, grid.CompHz} {
		f := g.ID[comp]
		for i := 0; i < f.Nx; i++ {
			for j := 0; j < f.Ny; j++ {
				for k := 0; k < f.Nz; k++ {
					if id := f.At(i, j, k); id != 0 {
						tst.Fatalf("%v: expected free_space (0) everywhere, got %d at (%d,%d,%d)", comp, id, i, j, k)
					}
				}
			}
		}
	}
}

func TestBuildSmoothsAveragableBoundary(tst *testing.T) {
	chk.PrintTitle("BuildSmoothsAveragableBoundary")
	g := newTestGrid(tst)
	dielectricID, err := g.Mats.Add(&mat.Material{Name: "dielectric", Er: 2, Mr: 1, Average: true})
	if err != nil {
		tst.Fatalf("add material failed: %v", err)
	}
	// split the domain in half along x: cells with i>=2 become the dielectric
	for i := 2; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				g.Solid.Set(i, j, k, uint32(dielectricID))
			}
		}
	}
	if err := Build(g, 1); err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	// the Ey edge straddling the material boundary (i=2) must be smoothed,
	// not equal to either contributing material's own id
	id := g.ID[grid.CompEy].At(2, 1, 1)
	if id == 0 || id == uint32(dielectricID) {
		tst.Fatalf("expected a smoothed material id at the boundary, got %d", id)
	}
	m, err := g.Mats.Get(id)
	if err != nil {
		tst.Fatalf("unexpected error fetching smoothed material: %v", err)
	}
	if m.Er <= 1 || m.Er >= 2 {
		tst.Fatalf("expected smoothed Er strictly between 1 and 2, got %v", m.Er)
	}
}

func TestBuildRigidEdgeFallsBackToLexicographicNeighbour(tst *testing.T) {
	chk.PrintTitle("BuildRigidEdgeFallsBackToLexicographicNeighbour")
	g := newTestGrid(tst)
	dielectricID, err := g.Mats.Add(&mat.Material{Name: "dielectric", Er: 2, Mr: 1, Average: true})
	if err != nil {
		tst.Fatalf("add material failed: %v", err)
	}
	for i := 2; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				g.Solid.Set(i, j, k, uint32(dielectricID))
			}
		}
	}
	// mark the whole Ey rigid mask as non-zero to forbid smoothing everywhere
	for idx := range g.RigidE[4].Data {
		g.RigidE[4].Data[idx] = 1
	}
	if err := Build(g, 1); err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	id := g.ID[grid.CompEy].At(2, 1, 1)
	// the edge's neighbours are (1,1,0), (1,1,1) [free_space] and (2,1,0), (2,1,1) [dielectric]; the lowest is (1,1,0)
	if id != 0 {
		tst.Fatalf("expected rigid edge to fall back to lexicographically-lowest neighbour (free_space), got %d", id)
	}
}
