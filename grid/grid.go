// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid owns the Yee-staggered field arrays, the spatial/temporal
// discretisation parameters, and the per-edge material identifiers that
// the rest of the core (material catalogue, Yee-cell builder, CPML
// boundary, source/receiver kernel and time-stepping scheduler) reads and
// mutates.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/mat"
)

// Axis names one of the three spatial axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Grid holds the discretisation parameters, the six Yee field arrays, the
// material-ID bookkeeping and the material catalogue for one model run.
// Its arrays are live for the run and discarded afterwards (spec.md §3
// "Lifecycles").
type Grid struct {

	// discretisation
	Nx, Ny, Nz int
	Dx, Dy, Dz float64
	Dt         float64
	Iterations int

	// Yee-staggered fields, sized per spec.md §3
	Ex, Ey, Ez *Field3D
	Hx, Hy, Hz *Field3D

	// material bookkeeping, node-indexed (nx+1, ny+1, nz+1)
	ID     [6]*IDField
	Solid  *IDField
	RigidE [12]*RigidMask
	RigidH [6]*RigidMask

	// Mats is the catalogue of materials referenced by ID and Solid.
	Mats *mat.Catalogue

	// Tx, Ty, Tz are the dispersive auxiliary differential equation's
	// per-pole polarisation state, shaped like Ex, Ey, Ez respectively with
	// an extra pole dimension. Allocated by AllocateDispersive once the
	// catalogue's MaxPoles is known; nil when no material is dispersive.
	Tx, Ty, Tz *ComplexField3D
}

// AllocateDispersive allocates Tx, Ty, Tz for the given number of poles,
// per spec.md §3's dispersive auxiliary-state lifecycle: called once after
// the material catalogue is closed and before the first step, and skipped
// entirely when poles is 0.
func (g *Grid) AllocateDispersive(poles int) {
	if poles <= 0 {
		return
	}
	g.Tx = NewComplexField3D(g.Ex.Nx, g.Ex.Ny, g.Ex.Nz, poles)
	g.Ty = NewComplexField3D(g.Ey.Nx, g.Ey.Ny, g.Ey.Nz, poles)
	g.Tz = NewComplexField3D(g.Ez.Nx, g.Ez.Ny, g.Ez.Nz, poles)
}

// New allocates a Grid with all field and ID arrays zeroed/free-space and
// validates the Courant condition.
//
//	dt <= 1 / (c * sqrt(1/dx^2 + 1/dy^2 + 1/dz^2))
func New(nx, ny, nz int, dx, dy, dz, dt float64, iterations int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, Errf(InvalidInput, "nx, ny, nz must be positive (got %d, %d, %d)", nx, ny, nz)
	}
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, Errf(InvalidInput, "dx, dy, dz must be positive (got %v, %v, %v)", dx, dy, dz)
	}
	if dt <= 0 {
		return nil, Errf(InvalidInput, "dt must be positive (got %v)", dt)
	}
	if iterations < 0 {
		return nil, Errf(InvalidInput, "iterations must be non-negative (got %d)", iterations)
	}
	limit := CourantLimit(dx, dy, dz)
	if dt > limit {
		return nil, Errf(CFLViolation, "dt=%v exceeds Courant limit %v for dx=%v, dy=%v, dz=%v", dt, limit, dx, dy, dz)
	}

	g := &Grid{Nx: nx, Ny: ny, Nz: nz, Dx: dx, Dy: dy, Dz: dz, Dt: dt, Iterations: iterations}

	g.Ex = NewField3D(nx, ny+1, nz+1)
	g.Ey = NewField3D(nx+1, ny, nz+1)
	g.Ez = NewField3D(nx+1, ny+1, nz)
	g.Hx = NewField3D(nx+1, ny, nz)
	g.Hy = NewField3D(nx, ny+1, nz)
	g.Hz = NewField3D(nx, ny, nz+1)

	for c := range g.ID {
		g.ID[c] = NewIDField(nx+1, ny+1, nz+1, 0)
	}
	g.Solid = NewIDField(nx+1, ny+1, nz+1, 0)
	for e := range g.RigidE {
		g.RigidE[e] = NewRigidMask(nx+1, ny+1, nz+1)
	}
	for h := range g.RigidH {
		g.RigidH[h] = NewRigidMask(nx+1, ny+1, nz+1)
	}

	g.Mats = mat.NewCatalogue()

	return g, nil
}

// CourantLimit returns the maximum stable dt for the given cell size.
func CourantLimit(dx, dy, dz float64) float64 {
	return 1.0 / (mat.C0 * math.Sqrt(1/(dx*dx)+1/(dy*dy)+1/(dz*dz)))
}

// spacing returns dα for the given axis.
func (g *Grid) spacing(axis Axis) float64 {
	switch axis {
	case AxisX:
		return g.Dx
	case AxisY:
		return g.Dy
	case AxisZ:
		return g.Dz
	}
	chk.Panic("invalid axis %v", axis)
	return 0
}

// extent returns nα (the number of cells) for the given axis.
func (g *Grid) extent(axis Axis) int {
	switch axis {
	case AxisX:
		return g.Nx
	case AxisY:
		return g.Ny
	case AxisZ:
		return g.Nz
	}
	chk.Panic("invalid axis %v", axis)
	return 0
}

// WithinBounds fails with OutOfBounds if co is not a valid node index
// along axis, i.e. co ∉ [0, nα].
func (g *Grid) WithinBounds(co int, axis Axis) error {
	n := g.extent(axis)
	if co < 0 || co > n {
		return Errf(OutOfBounds, "coordinate %d is outside [0, %d] along axis %v", co, n, axis)
	}
	return nil
}

// CoordToCell converts a metres-valued coordinate to an integer cell
// index using banker's rounding, per spec.md §4.5: co = round(val/dα).
func (g *Grid) CoordToCell(val float64, axis Axis) (int, error) {
	d := g.spacing(axis)
	co := int(math.RoundToEven(val / d))
	if err := g.WithinBounds(co, axis); err != nil {
		return 0, err
	}
	return co, nil
}

// CheckFinite scans all six field arrays for NaN/Inf and reports
// NumericalInstability if any is found, per spec.md §4.6 end-of-step check.
func (g *Grid) CheckFinite() error {
	for _, f := range []*Field3D{g.Ex, g.Ey, g.Ez, g.Hx, g.Hy, g.Hz} {
		for _, v := range f.Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Errf(NumericalInstability, "non-finite value encountered in field data")
			}
		}
	}
	return nil
}
