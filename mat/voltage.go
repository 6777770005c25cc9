// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import "github.com/cpmech/gosl/io"

// DeriveVoltageSourceMaterial synthesises the material a resistive
// voltage source needs at its cell, per spec.md §3's invariant:
//
//	σ += dPar / (R · dPerp1 · dPerp2)
//
// base is the material already occupying the source's edge; the returned
// material is a copy with conductivity augmented and Average forced off
// (a resistive source must never be smoothed away). It is appended to the
// catalogue here; the caller then rewrites the ID array at the source
// cell to reference it, immediately after Build and before
// DeriveCoefficients (spec.md §3 "Lifecycles").
func (c *Catalogue) DeriveVoltageSourceMaterial(base *Material, resistance, dPar, dPerp1, dPerp2 float64) (*Material, error) {
	derived := *base
	derived.Name = io.Sf("%s|VoltageSource_%v", base.Name, resistance)
	derived.Sigma = base.Sigma + dPar/(resistance*dPerp1*dPerp2)
	derived.Average = false
	derived.Poles = append([]Pole(nil), base.Poles...)
	_, err := c.Add(&derived)
	if err != nil {
		return nil, err
	}
	return &derived, nil
}
