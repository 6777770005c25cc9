// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcrx

import "github.com/cpmech/gofdtd/grid"

// Output names one quantity a Receiver samples each step.
type Output int

const (
	OutEx Output = iota
	OutEy
	OutEz
	OutHx
	OutHy
	OutHz
	OutIx
	OutIy
	OutIz
)

func (o Output) String() string {
	switch o {
	case OutEx:
		return "Ex"
	case OutEy:
		return "Ey"
	case OutEz:
		return "Ez"
	case OutHx:
		return "Hx"
	case OutHy:
		return "Hy"
	case OutHz:
		return "Hz"
	case OutIx:
		return "Ix"
	case OutIy:
		return "Iy"
	case OutIz:
		return "Iz"
	}
	return "?"
}

// Receiver samples the requested Outputs at one grid position every step.
type Receiver struct {
	Name       string
	I, J, K    int
	Outputs    []Output
	sampleSets [][]float64 // sampleSets[o] grows by one value per step, outer index matches Outputs
}

// Sample records one step's values for all of the receiver's requested
// outputs, appending to its per-output history (spec.md §4.4 "Receivers").
func (r *Receiver) Sample(g *grid.Grid) {
	if r.sampleSets == nil {
		r.sampleSets = make([][]float64, len(r.Outputs))
	}
	for oi, out := range r.Outputs {
		r.sampleSets[oi] = append(r.sampleSets[oi], r.sampleOne(g, out))
	}
}

// History returns the accumulated samples for output index oi (matching
// r.Outputs[oi]'s position), one value per completed step.
func (r *Receiver) History(oi int) []float64 {
	if oi < 0 || oi >= len(r.sampleSets) {
		return nil
	}
	return r.sampleSets[oi]
}

func (r *Receiver) sampleOne(g *grid.Grid, out Output) float64 {
	switch out {
	case OutEx:
		return g.Ex.At(r.I, r.J, r.K)
	case OutEy:
		return g.Ey.At(r.I, r.J, r.K)
	case OutEz:
		return g.Ez.At(r.I, r.J, r.K)
	case OutHx:
		return g.Hx.At(r.I, r.J, r.K)
	case OutHy:
		return g.Hy.At(r.I, r.J, r.K)
	case OutHz:
		return g.Hz.At(r.I, r.J, r.K)
	case OutIx:
		return currentX(g, r.I, r.J, r.K)
	case OutIy:
		return currentY(g, r.I, r.J, r.K)
	case OutIz:
		return currentZ(g, r.I, r.J, r.K)
	}
	return 0
}

// currentX, currentY, currentZ compute the line-integral of the four H
// components surrounding a dual face, ported from the Ix/Iy/Iz helpers
// that accompany the Yee grid: current at a boundary position (any of x, y,
// z equal to 0) is defined as zero rather than extrapolated.
func currentX(g *grid.Grid, x, y, z int) float64 {
	if x == 0 || y == 0 || z == 0 {
		return 0
	}
	return g.Dy*(g.Hy.At(x, y, z-1)-g.Hy.At(x, y, z)) + g.Dz*(g.Hz.At(x, y, z)-g.Hz.At(x, y-1, z))
}

func currentY(g *grid.Grid, x, y, z int) float64 {
	if x == 0 || y == 0 || z == 0 {
		return 0
	}
	return g.Dx*(g.Hx.At(x, y, z)-g.Hx.At(x, y, z-1)) + g.Dz*(g.Hz.At(x-1, y, z)-g.Hz.At(x, y, z))
}

func currentZ(g *grid.Grid, x, y, z int) float64 {
	if x == 0 || y == 0 || z == 0 {
		return 0
	}
	return g.Dx*(g.Hx.At(x, y-1, z)-g.Hx.At(x, y, z)) + g.Dy*(g.Hy.At(x, y, z)-g.Hy.At(x-1, y, z))
}
