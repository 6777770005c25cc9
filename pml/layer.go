// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pml builds and applies the Convolutional Perfectly Matched Layer
// absorbing boundary on the six outer faces of the Yee grid (spec.md §4.3):
// a thin shell of cells bordering each face accumulates a convolutional
// memory term from the field component it borders and feeds a correction
// back into the interior update.
package pml

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/mat"
)

// Face names one of the six grid faces a Layer is built against.
type Face int

const (
	FaceX0 Face = iota
	FaceXMax
	FaceY0
	FaceYMax
	FaceZ0
	FaceZMax
)

func (f Face) String() string {
	switch f {
	case FaceX0:
		return "x0"
	case FaceXMax:
		return "xmax"
	case FaceY0:
		return "y0"
	case FaceYMax:
		return "ymax"
	case FaceZ0:
		return "z0"
	case FaceZMax:
		return "zmax"
	}
	return "?"
}

// FaceParams is the per-face grading configuration, spec.md §4.3. A
// Thickness of zero disables the face entirely (no absorption, as for a
// periodic or user-terminated boundary).
type FaceParams struct {
	Thickness int
	SigmaMax  float64 // 0 selects the "optimal" default 0.8(m+1)/(η·dα)
	AlphaMax  float64
	KappaMax  float64
	M         float64 // polynomial grading order
}

// DefaultFaceParams returns the conventional CPML defaults used when a
// caller does not override grading: 10-cell shell, m=3, κmax=1, a small
// alpha taper to hold low-frequency performance, and SigmaMax left at 0 so
// Build substitutes the optimal value for the face's own cell spacing.
func DefaultFaceParams() FaceParams {
	return FaceParams{Thickness: 10, SigmaMax: 0, AlphaMax: 0.05, KappaMax: 1, M: 3}
}

// normalAxis and transverse components p, q (cyclic order x→y→z→x) that
// each face corrects, per the channel derivation in DESIGN.md: electric
// component p is driven by ∂H_q/∂n and magnetic component q is driven by
// ∂E_p/∂n (channel 1); electric q and magnetic p form the dual channel 2.
type faceGeom struct {
	normal  grid.Axis
	lowSide bool
	p, q    grid.Component // electric components (p, q); the dual magnetic
	// components for channel 1/2 are hp, hq below
	hp, hq grid.Component
}

func geometry(f Face) faceGeom {
	switch f {
	case FaceX0, FaceXMax:
		return faceGeom{normal: grid.AxisX, lowSide: f == FaceX0, p: grid.CompEy, q: grid.CompEz, hp: grid.CompHz, hq: grid.CompHy}
	case FaceY0, FaceYMax:
		return faceGeom{normal: grid.AxisY, lowSide: f == FaceY0, p: grid.CompEz, q: grid.CompEx, hp: grid.CompHx, hq: grid.CompHz}
	case FaceZ0, FaceZMax:
		return faceGeom{normal: grid.AxisZ, lowSide: f == FaceZ0, p: grid.CompEx, q: grid.CompEy, hp: grid.CompHy, hq: grid.CompHx}
	}
	chk.Panic("invalid face %v", f)
	return faceGeom{}
}

// channel holds one (electric component, dual magnetic component) pair's
// graded coefficients and auxiliary memory arrays. PhiE accumulates the
// electric-correction convolution, shaped like the E component it corrects
// but clipped to the slab's thickness along the face normal. PhiH is its
// magnetic-side dual.
type channel struct {
	eComp, hComp grid.Component
	be, ce       []float64 // length Thickness, electric-side grading
	bh, ch       []float64 // length Thickness, magnetic-side grading
	phiE         *grid.Field3D
	phiH         *grid.Field3D
}

// Layer is one face's CPML shell: its geometry and the two correction
// channels (spec.md §4.3 names Ey/Hz as the worked example on x0 — that is
// channel 1 below).
type Layer struct {
	Face      Face
	Thickness int
	geom      faceGeom
	ch1, ch2  channel
}

// Build derives the six faces' grading coefficients and allocates their Φ
// auxiliary arrays, per spec.md §4.3. A face with Thickness 0 is built but
// never applies a correction (Update{Electric,Magnetic} skip it).
func Build(g *grid.Grid, params [6]FaceParams) ([6]*Layer, error) {
	var layers [6]*Layer
	faces := [6]Face{FaceX0, FaceXMax, FaceY0, FaceYMax, FaceZ0, FaceZMax}
	for i, f := range faces {
		p := params[i]
		if p.Thickness < 0 {
			return layers, grid.Errf(grid.InvalidInput, "pml face %v: negative thickness %d", f, p.Thickness)
		}
		layer, err := buildFace(g, f, p)
		if err != nil {
			return layers, err
		}
		layers[i] = layer
	}
	return layers, nil
}

func buildFace(g *grid.Grid, f Face, p FaceParams) (*Layer, error) {
	geo := geometry(f)
	dn := spacing(g, geo.normal)
	t := p.Thickness

	if p.SigmaMax == 0 {
		eta := math.Sqrt(mat.Mu0 / mat.Eps0)
		p.SigmaMax = 0.8 * (p.M + 1) / (eta * dn)
	}
	if p.KappaMax == 0 {
		p.KappaMax = 1
	}

	be, ce := gradeCoeffs(t, g.Dt, p, 0.5)
	bh, ch := gradeCoeffs(t, g.Dt, p, 1.0)

	transverse1, transverse2 := transverseExtents(g, geo.normal)

	mkChannel := func(eComp, hComp grid.Component) channel {
		return channel{
			eComp: eComp,
			hComp: hComp,
			be:    be, ce: ce, bh: bh, ch: ch,
			phiE: grid.NewField3D(t, transverse1, transverse2),
			phiH: grid.NewField3D(t, transverse1, transverse2),
		}
	}

	layer := &Layer{
		Face:      f,
		Thickness: t,
		geom:      geo,
		ch1:       mkChannel(geo.p, geo.hp),
		ch2:       mkChannel(geo.q, geo.hq),
	}
	return layer, nil
}

// gradeCoeffs computes the T-length CPML recursion coefficients (b, c) at
// depth offset `offset` cells into the slab (0.5 for the electric-side
// half-shifted sampling, 1.0 for the magnetic-side one cell further in),
// per the standard CFS-PML recursion:
//
//	ρ = (d+offset)/T
//	σ(d) = σmax·ρ^m,  α(d) = αmax·(1-ρ),  κ(d) = 1 + (κmax-1)·ρ^m
//	b(d) = exp(-(σ(d)/κ(d) + α(d))·dt/ε0)
//	c(d) = σ(d)·(b(d)-1) / (κ(d)·(σ(d) + κ(d)·α(d)))   (0 if σ(d)==0)
// sigmaOfRho is the polynomial conductivity grading profile, split out of
// gradeCoeffs so its derivative can be cross-checked numerically (see
// pml/grading_test.go) the way mreten's retention models cross-check Cc
// against num.DerivCentral.
func sigmaOfRho(rho, sigmaMax, m float64) float64 {
	return sigmaMax * math.Pow(rho, m)
}

func gradeCoeffs(t int, dt float64, p FaceParams, offset float64) ([]float64, []float64) {
	b := make([]float64, t)
	c := make([]float64, t)
	for d := 0; d < t; d++ {
		rho := (float64(d) + offset) / float64(t)
		sigma := sigmaOfRho(rho, p.SigmaMax, p.M)
		alpha := p.AlphaMax * (1 - rho)
		kappa := 1 + (p.KappaMax-1)*math.Pow(rho, p.M)
		b[d] = math.Exp(-(sigma/kappa + alpha) * dt / mat.Eps0)
		denom := kappa * (sigma + kappa*alpha)
		if sigma == 0 || denom == 0 {
			c[d] = 0
		} else {
			c[d] = sigma * (b[d] - 1) / denom
		}
	}
	return b, c
}

func spacing(g *grid.Grid, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return g.Dx
	case grid.AxisY:
		return g.Dy
	case grid.AxisZ:
		return g.Dz
	}
	chk.Panic("invalid axis %v", axis)
	return 0
}

// transverseExtents returns the Φ array's node-count along the two axes
// transverse to normal. Node-indexed (n+1) is always big enough for every
// component's field shape along a transverse axis; correction loops below
// clip to each component's own valid range.
func transverseExtents(g *grid.Grid, normal grid.Axis) (int, int) {
	switch normal {
	case grid.AxisX:
		return g.Ny + 1, g.Nz + 1
	case grid.AxisY:
		return g.Nx + 1, g.Nz + 1
	case grid.AxisZ:
		return g.Nx + 1, g.Ny + 1
	}
	chk.Panic("invalid axis %v", normal)
	return 0, 0
}
