// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yeebuild assigns a material identifier to every electric and
// magnetic edge of the Yee grid from the volumetric solid-material map,
// optionally averaging neighbouring materials for dielectric smoothing
// (spec.md §4.2).
package yeebuild

import (
	"sort"
	"sync"

	"github.com/cpmech/gofdtd/grid"
)

// cellRef names one of the ≤4 solid cells contributing to an edge, kept
// alongside its (i,j,k) so the tie-break can sort lexicographically.
type cellRef struct {
	i, j, k int
	id      uint32
}

// Build fills g.ID for all six components from g.Solid, g.RigidE and
// g.RigidH, per spec.md §4.2. nthreads parallelises each component's
// outer spatial loop (spec.md §5: geometry build is itself a spatial
// stencil, independently parallelisable per component).
func Build(g *grid.Grid, nthreads int) error {
	type job struct {
		comp grid.Component
		run  func() error
	}
	jobs := []job{
		{grid.CompEx, func() error { return buildE(g, grid.CompEx, nthreads) }},
		{grid.CompEy, func() error { return buildE(g, grid.CompEy, nthreads) }},
		{grid.CompEz, func() error { return buildE(g, grid.CompEz, nthreads) }},
		{grid.CompHx, func() error { return buildH(g, grid.CompHx, nthreads) }},
		{grid.CompHy, func() error { return buildH(g, grid.CompHy, nthreads) }},
		{grid.CompHz, func() error { return buildH(g, grid.CompHz, nthreads) }},
	}
	for _, j := range jobs {
		if err := j.run(); err != nil {
			return err
		}
	}
	return nil
}

// clip returns the cell indices along one axis that a node index co can
// touch: {co-1, co} intersected with the valid cell range [0, n-1].
func clip(co, n int) []int {
	var out []int
	if co-1 >= 0 && co-1 < n {
		out = append(out, co-1)
	}
	if co >= 0 && co < n {
		out = append(out, co)
	}
	return out
}

// solidAt fetches the material ID at a cell, erroring if it is out of the
// catalogue's bounds (spec.md §4.2 failure: CorruptGeometry).
func solidAt(g *grid.Grid, i, j, k int) (uint32, error) {
	id := g.Solid.At(i, j, k)
	if _, err := g.Mats.Get(id); err != nil {
		return 0, grid.Errf(grid.CorruptGeometry, "solid[%d,%d,%d]=%d: %v", i, j, k, id, err)
	}
	return id, nil
}

// resolveEdge decides the material ID for one edge given its contributing
// cells and the rigid-mask bit, per spec.md §4.2 steps 2-3.
func resolveEdge(g *grid.Grid, cells []cellRef, rigid int8, electric bool) (uint32, error) {
	if len(cells) == 0 {
		return 0, nil
	}
	allSame := true
	for _, c := range cells[1:] {
		if c.id != cells[0].id {
			allSame = false
			break
		}
	}
	if allSame {
		return cells[0].id, nil
	}

	canSmooth := rigid == 0
	if canSmooth {
		for _, c := range cells {
			m, err := g.Mats.Get(c.id)
			if err != nil {
				return 0, grid.Errf(grid.CorruptGeometry, "%v", err)
			}
			if !m.Average {
				canSmooth = false
				break
			}
		}
	}

	if canSmooth {
		ids := make([]uint32, len(cells))
		for i, c := range cells {
			ids[i] = c.id
		}
		numID, err := g.Mats.FindOrCreateSmoothed(ids, electric)
		if err != nil {
			return 0, err
		}
		return uint32(numID), nil
	}

	// fallback: lowest-index neighbour in lexicographic (i,j,k) order
	sorted := append([]cellRef(nil), cells...)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].i != sorted[b].i {
			return sorted[a].i < sorted[b].i
		}
		if sorted[a].j != sorted[b].j {
			return sorted[a].j < sorted[b].j
		}
		return sorted[a].k < sorted[b].k
	})
	return sorted[0].id, nil
}

// parallelRange partitions [0,n) across nthreads goroutines and calls fn
// for each index, collecting the first error encountered.
func parallelRange(n, nthreads int, fn func(i int) error) error {
	if nthreads < 1 {
		nthreads = 1
	}
	if nthreads > n {
		nthreads = n
	}
	if nthreads <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	chunk := (n + nthreads - 1) / nthreads
	var wg sync.WaitGroup
	errs := make([]error, nthreads)
	for w := 0; w < nthreads; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
