// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yeebuild

import "github.com/cpmech/gofdtd/grid"

// primaryRigidE maps an E-component to the rigidE sub-mask that governs
// whether its edges may be dielectrically smoothed. rigidE carries 12
// sub-masks (4 per component) in spec.md §3; this port designates one
// sub-mask per component as the whole-edge forbid-smoothing flag and
// leaves the remaining slots available for finer per-direction policy a
// geometry builder may choose to set (see DESIGN.md Open Questions).
func primaryRigidE(c grid.Component) int {
	switch c {
	case grid.CompEx:
		return 0
	case grid.CompEy:
		return 4
	case grid.CompEz:
		return 8
	}
	return 0
}

// primaryRigidH is primaryRigidE's counterpart for the 6 rigidH sub-masks
// (2 per component).
func primaryRigidH(c grid.Component) int {
	switch c {
	case grid.CompHx:
		return 0
	case grid.CompHy:
		return 2
	case grid.CompHz:
		return 4
	}
	return 0
}

// gatherE collects the ≤4 solid cells surrounding an E-edge: the two axes
// transverse to the component's polarisation axis each contribute the
// cell below and/or above the node, clipped at the grid boundary.
func gatherE(g *grid.Grid, comp grid.Component, i, j, k int) ([]cellRef, error) {
	var as, bs []int
	switch comp {
	case grid.CompEx:
		as, bs = clip(j, g.Ny), clip(k, g.Nz)
	case grid.CompEy:
		as, bs = clip(i, g.Nx), clip(k, g.Nz)
	case grid.CompEz:
		as, bs = clip(i, g.Nx), clip(j, g.Ny)
	}
	var cells []cellRef
	for _, a := range as {
		for _, b := range bs {
			var ci, cj, ck int
			switch comp {
			case grid.CompEx:
				ci, cj, ck = i, a, b
			case grid.CompEy:
				ci, cj, ck = a, j, b
			case grid.CompEz:
				ci, cj, ck = a, b, k
			}
			id, err := solidAt(g, ci, cj, ck)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cellRef{i: ci, j: cj, k: ck, id: id})
		}
	}
	return cells, nil
}

// gatherH collects the ≤2 solid cells sharing an H-face: only the axis
// normal to the face (the component's own axis) varies.
func gatherH(g *grid.Grid, comp grid.Component, i, j, k int) ([]cellRef, error) {
	var as []int
	switch comp {
	case grid.CompHx:
		as = clip(i, g.Nx)
	case grid.CompHy:
		as = clip(j, g.Ny)
	case grid.CompHz:
		as = clip(k, g.Nz)
	}
	var cells []cellRef
	for _, a := range as {
		var ci, cj, ck int
		switch comp {
		case grid.CompHx:
			ci, cj, ck = a, j, k
		case grid.CompHy:
			ci, cj, ck = i, a, k
		case grid.CompHz:
			ci, cj, ck = i, j, a
		}
		id, err := solidAt(g, ci, cj, ck)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cellRef{i: ci, j: cj, k: ck, id: id})
	}
	return cells, nil
}

// buildE fills g.ID[comp] for one of the three electric components.
func buildE(g *grid.Grid, comp grid.Component, nthreads int) error {
	idField := g.ID[comp]
	mask := g.RigidE[primaryRigidE(comp)]
	nx, ny, nz := g.Nx+1, g.Ny+1, g.Nz+1
	return parallelRange(nx, nthreads, func(i int) error {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				cells, err := gatherE(g, comp, i, j, k)
				if err != nil {
					return err
				}
				id, err := resolveEdge(g, cells, mask.At(i, j, k), true)
				if err != nil {
					return err
				}
				idField.Set(i, j, k, id)
			}
		}
		return nil
	})
}

// buildH fills g.ID[comp] for one of the three magnetic components.
func buildH(g *grid.Grid, comp grid.Component, nthreads int) error {
	idField := g.ID[comp]
	mask := g.RigidH[primaryRigidH(comp)]
	nx, ny, nz := g.Nx+1, g.Ny+1, g.Nz+1
	return parallelRange(nx, nthreads, func(i int) error {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				cells, err := gatherH(g, comp, i, j, k)
				if err != nil {
					return err
				}
				id, err := resolveEdge(g, cells, mask.At(i, j, k), false)
				if err != nil {
					return err
				}
				idField.Set(i, j, k, id)
			}
		}
		return nil
	})
}
