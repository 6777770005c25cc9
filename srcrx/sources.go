// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcrx

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gofdtd/grid"
)

// axisSpacing returns dα for the source/receiver's polarisation axis.
func axisSpacing(g *grid.Grid, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return g.Dx
	case grid.AxisY:
		return g.Dy
	case grid.AxisZ:
		return g.Dz
	}
	return 0
}

// transverseSpacings returns (dβ, dγ), the spacings of the two axes
// transverse to axis, in cyclic (x→y→z→x) order.
func transverseSpacings(g *grid.Grid, axis grid.Axis) (float64, float64) {
	switch axis {
	case grid.AxisX:
		return g.Dy, g.Dz
	case grid.AxisY:
		return g.Dz, g.Dx
	case grid.AxisZ:
		return g.Dx, g.Dy
	}
	return 0, 0
}

// electricComponent returns the grid.Component for a polarisation axis on
// the electric side.
func electricComponent(axis grid.Axis) grid.Component {
	switch axis {
	case grid.AxisX:
		return grid.CompEx
	case grid.AxisY:
		return grid.CompEy
	case grid.AxisZ:
		return grid.CompEz
	}
	return grid.CompEx
}

func magneticComponent(axis grid.Axis) grid.Component {
	switch axis {
	case grid.AxisX:
		return grid.CompHx
	case grid.AxisY:
		return grid.CompHy
	case grid.AxisZ:
		return grid.CompHz
	}
	return grid.CompHx
}

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

func matAt(g *grid.Grid, comp grid.Component, i, j, k int) uint32 {
	return g.ID[comp].At(i, j, k)
}

// VoltageSource drives an electric field component at a single cell. A
// nonzero Resistance has already been baked into a dedicated material at
// (I,J,K) by mat.Catalogue.DeriveVoltageSourceMaterial (spec.md §3's
// invariant); UpdateE applies only the time-varying term, per spec.md §4.4.
type VoltageSource struct {
	I, J, K      int
	Polarisation grid.Axis
	Resistance   float64
	Waveform     Waveform
}

// UpdateE applies -srce[mat]*waveform(t)/dα at the source's edge, at the
// schedule slot spec.md §4.6 step 5 reserves for voltage sources (before
// Hertzian dipoles).
func (s *VoltageSource) UpdateE(g *grid.Grid, t float64) error {
	comp := electricComponent(s.Polarisation)
	matID := matAt(g, comp, s.I, s.J, s.K)
	m, err := g.Mats.Get(matID)
	if err != nil {
		return grid.Errf(grid.CorruptGeometry, "voltage source: %v", err)
	}
	dAlpha := axisSpacing(g, s.Polarisation)
	fieldFor(g, comp).Add(s.I, s.J, s.K, -m.Srce*s.Waveform.Value(t)/dAlpha)
	return nil
}

// HertzianDipole drives an electric field component through a point
// current moment, applied at the same schedule slot as VoltageSource but
// after it (spec.md §4.6 step 5).
type HertzianDipole struct {
	I, J, K      int
	Polarisation grid.Axis
	Waveform     Waveform
}

func (s *HertzianDipole) UpdateE(g *grid.Grid, t float64) error {
	comp := electricComponent(s.Polarisation)
	matID := matAt(g, comp, s.I, s.J, s.K)
	m, err := g.Mats.Get(matID)
	if err != nil {
		return grid.Errf(grid.CorruptGeometry, "hertzian dipole: %v", err)
	}
	dBeta, dGamma := transverseSpacings(g, s.Polarisation)
	fieldFor(g, comp).Add(s.I, s.J, s.K, -m.Srce*s.Waveform.Value(t)/(dBeta*dGamma))
	return nil
}

// MagneticDipole is HertzianDipole's magnetic dual, applied after the
// interior H-update and after the H-PML correction (spec.md §4.6 step 10 — note
// §4.4 says "after interior H-update and before H-PML" while the §4.6
// numbered schedule places magnetic sources after PML; magnetic dipoles
// follow the numbered schedule, since it is the more specific of the two).
type MagneticDipole struct {
	I, J, K      int
	Polarisation grid.Axis
	Waveform     Waveform
}

func (s *MagneticDipole) UpdateH(g *grid.Grid, t float64) error {
	comp := magneticComponent(s.Polarisation)
	matID := matAt(g, comp, s.I, s.J, s.K)
	m, err := g.Mats.Get(matID)
	if err != nil {
		return grid.Errf(grid.CorruptGeometry, "magnetic dipole: %v", err)
	}
	dBeta, dGamma := transverseSpacings(g, s.Polarisation)
	fieldFor(g, comp).Add(s.I, s.J, s.K, -m.Srcm*s.Waveform.Value(t)/(dBeta*dGamma))
	return nil
}

// TransmissionLine maintains a 1D auxiliary grid with its own leapfrog
// update, coupling a single component of the main grid at one cell
// (spec.md §4.4). Resistance is the line's characteristic impedance; NCells
// is the number of 1D segments kept as history beyond the coupling point,
// long enough that reflections from the line's far end do not return
// within the run (an absorbing far-end termination is not modelled here).
type TransmissionLine struct {
	I, J, K      int
	Polarisation grid.Axis
	Resistance   float64
	Waveform     Waveform
	NCells       int

	voltage []float64 // 1D auxiliary voltage samples
	current []float64 // 1D auxiliary current samples, offset by half a cell
	dl      float64   // auxiliary line's own cell size
	dt      float64

	// diffV and diffC are the fixed bidiagonal finite-difference operators
	// of the line's two update equations, applied each step with
	// la.MatVecMul the way gofem's fem/e_beam.go applies its (also small
	// and fixed) element stiffness matrix; dV/dC are their scratch outputs.
	diffV [][]float64
	diffC [][]float64
	dV    []float64
	dC    []float64
}

// Init allocates the auxiliary line's state. It must be called once after
// construction and before the first UpdateE/UpdateH call.
func (s *TransmissionLine) Init(g *grid.Grid) {
	if s.NCells <= 0 {
		s.NCells = 100
	}
	s.voltage = make([]float64, s.NCells+1)
	s.current = make([]float64, s.NCells)
	s.dl = axisSpacing(g, s.Polarisation)
	s.dt = g.Dt

	// diffV*voltage = voltage[i+1]-voltage[i], i=0..NCells-1
	s.diffV = make([][]float64, s.NCells)
	for i := range s.diffV {
		row := make([]float64, s.NCells+1)
		row[i] = -1
		row[i+1] = 1
		s.diffV[i] = row
	}
	// diffC*current = current[i]-current[(i+1)%NCells], i=0..NCells-1
	s.diffC = make([][]float64, s.NCells)
	for i := range s.diffC {
		row := make([]float64, s.NCells)
		row[i] = 1
		row[(i+1)%s.NCells] = -1
		s.diffC[i] = row
	}
	s.dV = make([]float64, s.NCells)
	s.dC = make([]float64, s.NCells)
}

// stepAuxiliary advances the 1D line by one leapfrog step, injecting the
// waveform at its source end (index 0); UpdateE then couples its far end
// (index NCells) into the main grid's field component.
func (s *TransmissionLine) stepAuxiliary(t float64) {
	// update current from voltage gradient
	la.MatVecMul(s.dV, 1, s.diffV, s.voltage)
	coefA := s.dt / (s.Resistance * s.dl)
	for i := range s.current {
		s.current[i] -= coefA * s.dV[i]
	}
	// update voltage from current gradient, injecting the source at i=0
	s.voltage[0] = s.Waveform.Value(t)
	la.MatVecMul(s.dC, 1, s.diffC, s.current)
	coefB := s.dt * s.Resistance / s.dl
	for i := 0; i < s.NCells; i++ {
		s.voltage[i+1] -= coefB * s.dC[i]
	}
}

// UpdateE advances the line and couples its last voltage sample into the
// main grid's electric field component at (I,J,K).
func (s *TransmissionLine) UpdateE(g *grid.Grid, t float64) error {
	if s.voltage == nil {
		s.Init(g)
	}
	s.stepAuxiliary(t)
	comp := electricComponent(s.Polarisation)
	dAlpha := axisSpacing(g, s.Polarisation)
	fieldFor(g, comp).Add(s.I, s.J, s.K, s.voltage[len(s.voltage)-1]/dAlpha)
	return nil
}

// UpdateH couples the line's terminal current into the main grid's
// magnetic field component along the polarisation axis.
func (s *TransmissionLine) UpdateH(g *grid.Grid) error {
	comp := magneticComponent(s.Polarisation)
	dBeta, dGamma := transverseSpacings(g, s.Polarisation)
	fieldFor(g, comp).Add(s.I, s.J, s.K, s.current[len(s.current)-1]/(dBeta*dGamma))
	return nil
}
