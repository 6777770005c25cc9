// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pml

import (
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/mat"
)

// UpdateElectric applies the electric PML correction in every non-empty
// face's slab, per spec.md §4.3 and §4.6 step 4. It runs single-threaded
// (spec.md §5: PML working set is O(surface), dwarfed by interior cost).
func UpdateElectric(g *grid.Grid, layers [6]*Layer) error {
	for _, layer := range layers {
		if layer == nil || layer.Thickness == 0 {
			continue
		}
		if err := correctElectric(g, layer, &layer.ch1); err != nil {
			return err
		}
		if err := correctElectric(g, layer, &layer.ch2); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMagnetic is UpdateElectric's dual, applied after the interior
// H-update and before magnetic sources (spec.md §4.6 step 9).
func UpdateMagnetic(g *grid.Grid, layers [6]*Layer) error {
	for _, layer := range layers {
		if layer == nil || layer.Thickness == 0 {
			continue
		}
		if err := correctMagnetic(g, layer, &layer.ch1); err != nil {
			return err
		}
		if err := correctMagnetic(g, layer, &layer.ch2); err != nil {
			return err
		}
	}
	return nil
}

func correctElectric(g *grid.Grid, layer *Layer, c *channel) error {
	axis := layer.geom.normal
	eField := fieldFor(g, c.eComp)
	hField := fieldFor(g, c.hComp)
	dn := spacing(g, axis)
	sizeA, sizeB := transverseSizes(eField, axis)
	nE := sizeAlong(eField, axis)

	for d := 0; d < layer.Thickness; d++ {
		i := d
		if !layer.geom.lowSide {
			i = nE - 1 - d
		}
		for a := 0; a < sizeA; a++ {
			for b := 0; b < sizeB; b++ {
				hi := sampleNormalClamped(hField, axis, i, a, b)
				hiMinus1 := sampleNormalClamped(hField, axis, i-1, a, b)
				diff := (hi - hiMinus1) / dn
				phi := c.be[d]*c.phiE.At(d, a, b) + c.ce[d]*diff
				c.phiE.Set(d, a, b, phi)

				gi, gj, gk := compose(axis, i, a, b)
				matID := g.ID[c.eComp].At(gi, gj, gk)
				coeffs, err := g.Mats.Get(matID)
				if err != nil {
					return grid.Errf(grid.CorruptGeometry, "pml electric correction: %v", err)
				}
				eField.Add(gi, gj, gk, axisCB(coeffs, axis)*phi)
			}
		}
	}
	return nil
}

func correctMagnetic(g *grid.Grid, layer *Layer, c *channel) error {
	axis := layer.geom.normal
	eField := fieldFor(g, c.eComp)
	hField := fieldFor(g, c.hComp)
	dn := spacing(g, axis)
	sizeA, sizeB := transverseSizes(hField, axis)
	nH := sizeAlong(hField, axis)

	for d := 0; d < layer.Thickness; d++ {
		i := d
		if !layer.geom.lowSide {
			i = nH - 1 - d
		}
		for a := 0; a < sizeA; a++ {
			for b := 0; b < sizeB; b++ {
				ei := sampleNormalClamped(eField, axis, i, a, b)
				eiPlus1 := sampleNormalClamped(eField, axis, i+1, a, b)
				diff := (eiPlus1 - ei) / dn
				phi := c.bh[d]*c.phiH.At(d, a, b) + c.ch[d]*diff
				c.phiH.Set(d, a, b, phi)

				gi, gj, gk := compose(axis, i, a, b)
				matID := g.ID[c.hComp].At(gi, gj, gk)
				coeffs, err := g.Mats.Get(matID)
				if err != nil {
					return grid.Errf(grid.CorruptGeometry, "pml magnetic correction: %v", err)
				}
				hField.Add(gi, gj, gk, -axisDB(coeffs, axis)*phi)
			}
		}
	}
	return nil
}

// fieldFor returns the Field3D backing a grid Component.
func fieldFor(g *grid.Grid, c grid.Component) *grid.Field3D {
	switch c {
	case grid.CompEx:
		return g.Ex
	case grid.CompEy:
		return g.Ey
	case grid.CompEz:
		return g.Ez
	case grid.CompHx:
		return g.Hx
	case grid.CompHy:
		return g.Hy
	case grid.CompHz:
		return g.Hz
	}
	return nil
}

// compose builds the (i,j,k) triple for a field indexed by (normal axis
// position, first transverse position, second transverse position), where
// the transverse axes are whichever of x,y,z are not the normal axis, in
// their natural order.
func compose(axis grid.Axis, normalPos, a, b int) (i, j, k int) {
	switch axis {
	case grid.AxisX:
		return normalPos, a, b
	case grid.AxisY:
		return a, normalPos, b
	case grid.AxisZ:
		return a, b, normalPos
	}
	return 0, 0, 0
}

// sizeAlong returns a field's own node/edge count along axis.
func sizeAlong(f *grid.Field3D, axis grid.Axis) int {
	switch axis {
	case grid.AxisX:
		return f.Nx
	case grid.AxisY:
		return f.Ny
	case grid.AxisZ:
		return f.Nz
	}
	return 0
}

// transverseSizes returns a field's extents along the two axes transverse
// to axis, in natural (x,y,z) order.
func transverseSizes(f *grid.Field3D, axis grid.Axis) (int, int) {
	switch axis {
	case grid.AxisX:
		return f.Ny, f.Nz
	case grid.AxisY:
		return f.Nx, f.Nz
	case grid.AxisZ:
		return f.Nx, f.Ny
	}
	return 0, 0
}

// sampleNormalClamped reads f at (normalPos,a,b) in the (axis, transverse)
// coordinate scheme, treating any out-of-range normalPos as zero: the
// tangential field just outside the domain is zero, per the slab's
// boundary clipping (spec.md §4.3 "with appropriate boundary clipping").
func sampleNormalClamped(f *grid.Field3D, axis grid.Axis, normalPos, a, b int) float64 {
	if normalPos < 0 || normalPos >= sizeAlong(f, axis) {
		return 0
	}
	i, j, k := compose(axis, normalPos, a, b)
	return f.At(i, j, k)
}

func axisCB(m *mat.Material, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return m.CBx
	case grid.AxisY:
		return m.CBy
	case grid.AxisZ:
		return m.CBz
	}
	return 0
}

func axisDB(m *mat.Material, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return m.DBx
	case grid.AxisY:
		return m.DBy
	case grid.AxisZ:
		return m.DBz
	}
	return 0
}
