// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mat implements the material catalogue: physical material
// records keyed by a numeric ID, and the derivation of the dimensionless
// update coefficients the stencil uses (spec.md §4.1).
package mat

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Physical constants (SI units), matching gofem's convention of naming
// constants at package scope rather than threading them through prms.
const (
	Eps0 = 8.8541878128e-12 // vacuum permittivity, F/m
	Mu0  = 1.25663706212e-6 // vacuum permeability, H/m
)

// C0 is the speed of light in vacuum, derived from Eps0 and Mu0.
var C0 = 1 / math.Sqrt(Eps0*Mu0)

// PoleKind tags the relaxation mechanism a Pole models.
type PoleKind int

const (
	PoleDebye PoleKind = iota
	PoleLorentz
	PoleDrude
)

// Pole holds the relaxation-constant parameters of one dispersive pole.
// Debye poles use DeltaEr and Tau; Lorentz and Drude poles use DeltaEr and
// Delta, and derivePole treats them as a Debye pole with τ = 1/Delta.
// Omega is stored but not read by the coefficient derivation.
type Pole struct {
	Kind    PoleKind
	DeltaEr float64 // Δεr (Debye, Lorentz) or ωp² contribution (Drude)
	Tau     float64 // relaxation time, s (Debye only)
	Omega   float64 // resonant/pole frequency, rad/s (Lorentz, Drude)
	Delta   float64 // damping coefficient, rad/s (Lorentz, Drude)
}

// Material is a catalogue record keyed by NumID.
type Material struct {
	NumID int
	Name  string

	Er        float64 // relative permittivity εr >= 1
	Sigma     float64 // electric conductivity σ >= 0, S/m
	Mr        float64 // relative permeability μr >= 1
	SigmaStar float64 // magnetic loss σ* >= 0, Ω/m
	Average   bool    // whether this material may be dielectrically smoothed
	Poles     []Pole

	// cached update coefficients, populated by Catalogue.DeriveCoefficients
	CA, CBx, CBy, CBz float64
	DA, DBx, DBy, DBz float64
	Srce, Srcm        float64

	// per-pole ADE coefficients, length len(Poles); populated alongside CA/DA
	EqT2, EqT, Zt []complex128
}

// Catalogue is the append-only database of materials for a single model
// run. It freezes (Close) before coefficient derivation, per spec.md §3.
type Catalogue struct {
	Materials []*Material
	MaxPoles  int

	UpdateCoeffsE          [][5]float64     // per material: CA,CBx,CBy,CBz,srce
	UpdateCoeffsH          [][5]float64     // per material: DA,DBx,DBy,DBz,srcm
	UpdateCoeffsDispersive [][]complex128   // per material: [3*MaxPoles] (e0*eqt2, eqt, zt) per pole

	byName      map[string]int
	smoothedKey map[string]int
	closed      bool
}

// DuplicateMaterialError is returned by Add when a material name clashes
// with one already in the catalogue.
type DuplicateMaterialError struct{ Name string }

func (e *DuplicateMaterialError) Error() string {
	return io.Sf("material %q already exists in catalogue", e.Name)
}

// NewCatalogue returns a catalogue seeded with the mandatory free-space
// material at index 0 (spec.md §3 invariant: "catalogue index 0 is free
// space").
func NewCatalogue() *Catalogue {
	c := &Catalogue{byName: map[string]int{}, smoothedKey: map[string]int{}}
	_, err := c.Add(&Material{Name: "free_space", Er: 1, Mr: 1, Average: true})
	if err != nil {
		chk.Panic("unreachable: failed to seed free_space material: %v", err)
	}
	return c
}

// Add appends m to the catalogue and assigns its NumID.
func (c *Catalogue) Add(m *Material) (int, error) {
	if c.closed {
		return 0, chk.Err("cannot add material %q: catalogue is already closed", m.Name)
	}
	if _, ok := c.byName[m.Name]; ok {
		return 0, &DuplicateMaterialError{Name: m.Name}
	}
	if m.Er < 1 || m.Mr < 1 || m.Sigma < 0 || m.SigmaStar < 0 {
		return 0, chk.Err("material %q has invalid parameters: er=%v sigma=%v mr=%v sigmastar=%v", m.Name, m.Er, m.Sigma, m.Mr, m.SigmaStar)
	}
	m.NumID = len(c.Materials)
	c.Materials = append(c.Materials, m)
	c.byName[m.Name] = m.NumID
	if len(m.Poles) > c.MaxPoles {
		c.MaxPoles = len(m.Poles)
	}
	return m.NumID, nil
}

// Close freezes the catalogue; no further materials may be added.
func (c *Catalogue) Close() { c.closed = true }

// Closed reports whether the catalogue has been frozen.
func (c *Catalogue) Closed() bool { return c.closed }

// Get returns the material with the given NumID.
func (c *Catalogue) Get(numID uint32) (*Material, error) {
	if int(numID) >= len(c.Materials) {
		return nil, chk.Err("material id %d is out of catalogue bounds (have %d materials)", numID, len(c.Materials))
	}
	return c.Materials[numID], nil
}

// ByName returns the material registered under name, if any.
func (c *Catalogue) ByName(name string) (*Material, bool) {
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.Materials[id], true
}

// FindOrCreateSmoothed returns the numID of the smoothed material for the
// given (possibly repeated) contributing material IDs, creating one if it
// does not already exist, per spec.md §4.2. electric selects whether the
// arithmetic/geometric means are taken over (εr, σ) or (μr, σ*).
func (c *Catalogue) FindOrCreateSmoothed(ids []uint32, electric bool) (int, error) {
	key := smoothKey(ids, electric)
	if numID, ok := c.smoothedKey[key]; ok {
		return numID, nil
	}

	n := float64(len(ids))
	var sumA float64
	prodSigA := 1.0
	anyZeroA := false
	for _, id := range ids {
		m, err := c.Get(id)
		if err != nil {
			return 0, err
		}
		if electric {
			sumA += m.Er
			if m.Sigma == 0 {
				anyZeroA = true
			} else {
				prodSigA *= m.Sigma
			}
		} else {
			sumA += m.Mr
			if m.SigmaStar == 0 {
				anyZeroA = true
			} else {
				prodSigA *= m.SigmaStar
			}
		}
	}

	meanA := sumA / n
	sigA := 0.0
	if !anyZeroA {
		sigA = math.Pow(prodSigA, 1/n)
	}

	name := io.Sf("smoothed_%s", key)
	var m *Material
	if electric {
		m = &Material{Name: name, Er: meanA, Sigma: sigA, Mr: 1, SigmaStar: 0, Average: true}
	} else {
		m = &Material{Name: name, Er: 1, Sigma: 0, Mr: meanA, SigmaStar: sigA, Average: true}
	}
	numID, err := c.Add(m)
	if err != nil {
		return 0, err
	}
	c.smoothedKey[key] = numID
	return numID, nil
}

// smoothKey builds a deterministic cache key from the sorted tuple of
// contributing material IDs (duplicates preserved, since different
// multiplicities yield a different average).
func smoothKey(ids []uint32, electric bool) string {
	sorted := append([]uint32(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	kind := "H"
	if electric {
		kind = "E"
	}
	s := kind
	for _, id := range sorted {
		s += io.Sf("_%d", id)
	}
	return s
}
