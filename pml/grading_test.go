// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pml

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

// TestSigmaGradingDerivativeMatchesNumeric cross-checks dσ/dρ = σmax·m·ρ^(m-1)
// against a central-difference estimate, the same way mreten's retention
// models cross-check their analytical derivatives against num.DerivCentral.
func TestSigmaGradingDerivativeMatchesNumeric(tst *testing.T) {
	chk.PrintTitle("SigmaGradingDerivativeMatchesNumeric")

	sigmaMax := 1.2e4
	m := 3.0
	tol := 1e-2

	for _, rho := range []float64{0.1, 0.35, 0.6, 0.9} {
		ana := sigmaMax * m * math.Pow(rho, m-1)
		gotNum, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
			return sigmaOfRho(x, sigmaMax, m)
		}, rho, 1e-3)
		if err != nil {
			tst.Fatalf("DerivCentral failed: %v", err)
		}
		utl.CheckAnaNum(tst, utl.Sf("dσ/dρ @ %.2f", rho), tol, ana, gotNum, chk.Verbose)
	}
}
