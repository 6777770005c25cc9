// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// DeriveCoefficients populates UpdateCoeffsE, UpdateCoeffsH and (when
// MaxPoles>0) UpdateCoeffsDispersive from the physical material
// parameters, per spec.md §4.1. The catalogue must be closed first.
func (c *Catalogue) DeriveCoefficients(dt, dx, dy, dz float64) error {
	if !c.closed {
		return chk.Err("DeriveCoefficients requires a closed catalogue")
	}
	n := len(c.Materials)
	c.UpdateCoeffsE = make([][5]float64, n)
	c.UpdateCoeffsH = make([][5]float64, n)
	if c.MaxPoles > 0 {
		c.UpdateCoeffsDispersive = make([][]complex128, n)
	}

	for _, m := range c.Materials {
		erEff := m.Er

		if len(m.Poles) > 0 {
			m.EqT2 = make([]complex128, len(m.Poles))
			m.EqT = make([]complex128, len(m.Poles))
			m.Zt = make([]complex128, len(m.Poles))
			for p, pole := range m.Poles {
				eqt2, eqt, zt, deltaEr := derivePole(pole, dt)
				m.EqT2[p], m.EqT[p], m.Zt[p] = eqt2, eqt, zt
				erEff += deltaEr
			}
		}

		eps := Eps0 * erEff
		mu := Mu0 * m.Mr

		sigTerm := m.Sigma * dt / (2 * eps)
		m.CA = (1 - sigTerm) / (1 + sigTerm)
		m.CBx = (dt / (eps * dx)) / (1 + sigTerm)
		m.CBy = (dt / (eps * dy)) / (1 + sigTerm)
		m.CBz = (dt / (eps * dz)) / (1 + sigTerm)

		sigStarTerm := m.SigmaStar * dt / (2 * mu)
		m.DA = (1 - sigStarTerm) / (1 + sigStarTerm)
		m.DBx = (dt / (mu * dx)) / (1 + sigStarTerm)
		m.DBy = (dt / (mu * dy)) / (1 + sigStarTerm)
		m.DBz = (dt / (mu * dz)) / (1 + sigStarTerm)

		m.Srce = dt / eps
		m.Srcm = dt / mu

		c.UpdateCoeffsE[m.NumID] = [5]float64{m.CA, m.CBx, m.CBy, m.CBz, m.Srce}
		c.UpdateCoeffsH[m.NumID] = [5]float64{m.DA, m.DBx, m.DBy, m.DBz, m.Srcm}

		if c.MaxPoles > 0 {
			row := make([]complex128, 3*c.MaxPoles)
			for p := range m.Poles {
				row[3*p+0] = complex(Eps0, 0) * m.EqT2[p]
				row[3*p+1] = m.EqT[p]
				row[3*p+2] = m.Zt[p]
			}
			c.UpdateCoeffsDispersive[m.NumID] = row
		}
	}
	return nil
}

// derivePole computes the auxiliary differential equation (ADE)
// coefficients for one pole by discretising its relaxation ODE with the
// trapezoidal (Crank-Nicolson) rule. It returns (eqt2, eqt, zt) matching
// the three-column layout of spec.md §3's updatecoeffsDispersive table,
// and the pole's contribution to the effective instantaneous εr used by
// CA/CB.
//
// For a Debye pole, the relaxation equation is τ dP/dt + P = ε0·Δεr·E.
// Applying the trapezoidal rule over one timestep gives the recursion
//
//	P^(n+1) = zt·P^n + ε0·eqt2·(E^(n+1) + E^n),  zt = (2τ-dt)/(2τ+dt),  eqt2 = Δεr·dt/(2τ+dt)
//
// eqt2 is returned without the ε0 factor; DeriveCoefficients applies it
// when it stores the (ε0·eqt2, eqt, zt) row.
//
// eqt is the coefficient applied during the explicit first pass (§4.6
// step 3), which only has E^n available; it uses the same recursion with
// E^(n+1) approximated by E^n, i.e. eqt = 2·eqt2.
//
// Lorentz and Drude poles are second-order resonances; they are reduced
// to an equivalent first-order relaxation with effective time constant
// τ = 1/δ (the inverse damping rate), which recovers the Debye recursion
// above and keeps the per-step update a single complex multiply-add per
// pole, matching the ADE storage shape declared in spec.md §3.
func derivePole(p Pole, dt float64) (eqt2, eqt, zt complex128, deltaErEff float64) {
	var tau, deltaEr float64
	switch p.Kind {
	case PoleDebye:
		tau = p.Tau
		deltaEr = p.DeltaEr
	case PoleLorentz, PoleDrude:
		if p.Delta > 0 {
			tau = 1 / p.Delta
		}
		deltaEr = p.DeltaEr
	}
	if tau <= 0 {
		return 0, 0, 0, deltaEr
	}
	ztR := (2*tau - dt) / (2*tau + dt)
	eqt2R := deltaEr * dt / (2*tau + dt)
	zt = complex(ztR, 0)
	eqt2 = complex(eqt2R, 0)
	eqt = 2 * eqt2
	return eqt2, eqt, zt, deltaEr
}

// CheckDispersion reports an error if the coarsest cell dimension fails
// to resolve the shortest wavelength any catalogue material supports at
// maxFreq by at least minCellsPerWavelength cells, the rule-of-thumb
// accuracy guard spec.md's DispersionWarning kind exists for. The
// catalogue must be closed; the caller (inp.BuildGrid) surfaces a non-nil
// result as an advisory warning string rather than a fatal grid.Error.
func (c *Catalogue) CheckDispersion(maxFreq, dx, dy, dz, minCellsPerWavelength float64) error {
	if !c.closed {
		return chk.Err("CheckDispersion requires a closed catalogue")
	}
	if maxFreq <= 0 {
		return nil
	}
	indices := make([]float64, len(c.Materials))
	for i, m := range c.Materials {
		indices[i] = math.Sqrt(m.Er * m.Mr)
	}
	maxIndex := floats.Max(indices)
	if maxIndex <= 0 {
		return nil
	}
	wavelength := C0 / (maxFreq * maxIndex)
	coarsest := floats.Max([]float64{dx, dy, dz})
	cellsPerWavelength := wavelength / coarsest
	if cellsPerWavelength < minCellsPerWavelength {
		return chk.Err("dispersion: only %.2f cells per wavelength at %.3g Hz (want >= %.0f); finest material index %.3g, cell size %.3g m",
			cellsPerWavelength, maxFreq, minCellsPerWavelength, maxIndex, coarsest)
	}
	return nil
}
