// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// TestDebyePoleMatchesODE checks the closed-form trapezoidal ADE
// recursion derived in derivePole against a direct RK4 integration of the
// Debye relaxation equation τ dP/dt + P = ε0·Δεr·E for a constant E, since
// that is the regime where both schemes must agree: the ADE recursion
// should relax to the same steady-state polarisation the ODE converges to.
func TestDebyePoleMatchesODE(tst *testing.T) {
	chk.PrintTitle("DebyePoleMatchesODE")

	tau := 2e-9
	deltaEr := 3.0
	E := 1.0e3
	dt := 1e-12
	steps := 20000

	// ADE recursion, with eqt2 scaled by ε0 as DeriveCoefficients stores it
	pole := Pole{Kind: PoleDebye, DeltaEr: deltaEr, Tau: tau}
	eqt2, _, zt, _ := derivePole(pole, dt)
	var P complex128
	for i := 0; i < steps; i++ {
		P = zt*P + complex(Eps0, 0)*eqt2*complex(2*E, 0)
	}
	gotADE := real(P)

	// independent reference integration of the same ODE, using gosl/ode
	// the same way ana.ColumnFluidPressure drives its numerical solution:
	// a zero-value ode.ODE, Init with a closure fcn, Distr disabled, Solve
	// over a fixed step.
	var sol ode.ODE
	silent := true
	sol.Init("Dopri5", 1, func(f []float64, dT, T float64, y []float64, args ...interface{}) error {
		f[0] = (Eps0*deltaEr*E - y[0]) / tau
		return nil
	}, nil, nil, nil, silent)
	sol.Distr = false
	tFinal := float64(steps) * dt
	y := []float64{0}
	if err := sol.Solve(y, 0, tFinal, dt, true); err != nil {
		tst.Fatalf("ode solve failed: %v", err)
	}
	gotODE := y[0]

	wantSteady := Eps0 * deltaEr * E
	tol := wantSteady * 0.02
	if math.Abs(gotADE-wantSteady) > tol {
		tst.Fatalf("ADE recursion did not converge to steady state: got %v want %v", gotADE, wantSteady)
	}
	if math.Abs(gotODE-wantSteady) > tol {
		tst.Fatalf("ODE reference did not converge to steady state: got %v want %v", gotODE, wantSteady)
	}
	if math.Abs(gotADE-gotODE) > tol {
		tst.Fatalf("ADE recursion diverges from ODE reference: ade=%v ode=%v", gotADE, gotODE)
	}
}

// TestDerivePoleZeroWhenNoTau checks that a pole with no time constant
// (malformed input) contributes only to the effective εr, not to the ADE
// recursion, so it degrades gracefully instead of dividing by zero.
func TestDerivePoleZeroWhenNoTau(tst *testing.T) {
	chk.PrintTitle("DerivePoleZeroWhenNoTau")
	pole := Pole{Kind: PoleDebye, DeltaEr: 1, Tau: 0}
	eqt2, eqt, zt, deltaErEff := derivePole(pole, 1e-12)
	if eqt2 != 0 || eqt != 0 || zt != 0 {
		tst.Fatalf("expected zero ADE coefficients, got eqt2=%v eqt=%v zt=%v", eqt2, eqt, zt)
	}
	if deltaErEff != 1 {
		tst.Fatalf("expected deltaErEff=1, got %v", deltaErEff)
	}
}
