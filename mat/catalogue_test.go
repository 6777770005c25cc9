// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestFreeSpaceSeeded(tst *testing.T) {
	chk.PrintTitle("FreeSpaceSeeded")
	c := NewCatalogue()
	if len(c.Materials) != 1 {
		tst.Fatalf("expected 1 seeded material, got %d", len(c.Materials))
	}
	fs := c.Materials[0]
	if fs.NumID != 0 || fs.Er != 1 || fs.Mr != 1 || fs.Sigma != 0 || fs.SigmaStar != 0 {
		tst.Fatalf("free_space material has wrong defaults: %+v", fs)
	}
}

func TestAddDuplicateName(tst *testing.T) {
	chk.PrintTitle("AddDuplicateName")
	c := NewCatalogue()
	if _, err := c.Add(&Material{Name: "copper", Er: 1, Mr: 1, Sigma: 5.8e7}); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	_, err := c.Add(&Material{Name: "copper", Er: 2, Mr: 1})
	if err == nil {
		tst.Fatal("expected duplicate material error")
	}
	if _, ok := err.(*DuplicateMaterialError); !ok {
		tst.Fatalf("expected *DuplicateMaterialError, got %T", err)
	}
}

func TestCloseRejectsFurtherAdds(tst *testing.T) {
	chk.PrintTitle("CloseRejectsFurtherAdds")
	c := NewCatalogue()
	c.Close()
	if _, err := c.Add(&Material{Name: "late", Er: 1, Mr: 1}); err == nil {
		tst.Fatal("expected error adding to closed catalogue")
	}
}

func TestDeriveCoefficientsFreeSpace(tst *testing.T) {
	chk.PrintTitle("DeriveCoefficientsFreeSpace")
	c := NewCatalogue()
	c.Close()
	dt := 1e-12
	dx, dy, dz := 1e-3, 1e-3, 1e-3
	if err := c.DeriveCoefficients(dt, dx, dy, dz); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	fs := c.Materials[0]
	if fs.CA != 1 {
		tst.Fatalf("free space CA should be 1 (no loss), got %v", fs.CA)
	}
	expectedCBx := dt / (Eps0 * dx)
	if diff := abs(fs.CBx - expectedCBx); diff > 1e-20 {
		tst.Fatalf("CBx mismatch: got %v want %v", fs.CBx, expectedCBx)
	}
	if fs.DA != 1 {
		tst.Fatalf("free space DA should be 1 (no loss), got %v", fs.DA)
	}
}

func TestDeriveCoefficientsLossyMaterial(tst *testing.T) {
	chk.PrintTitle("DeriveCoefficientsLossyMaterial")
	c := NewCatalogue()
	_, err := c.Add(&Material{Name: "lossy", Er: 4, Sigma: 0.01, Mr: 1, SigmaStar: 0})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	c.Close()
	if err := c.DeriveCoefficients(1e-12, 1e-3, 1e-3, 1e-3); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	m := c.Materials[1]
	if m.CA <= 0 || m.CA >= 1 {
		tst.Fatalf("lossy CA should be strictly between 0 and 1, got %v", m.CA)
	}
}

func TestFindOrCreateSmoothedDeterministic(tst *testing.T) {
	chk.PrintTitle("FindOrCreateSmoothedDeterministic")
	c := NewCatalogue()
	a, _ := c.Add(&Material{Name: "a", Er: 2, Sigma: 0.1, Mr: 1, Average: true})
	b, _ := c.Add(&Material{Name: "b", Er: 4, Sigma: 0.4, Mr: 1, Average: true})
	ids := []uint32{uint32(a), uint32(b)}
	id1, err := c.FindOrCreateSmoothed(ids, true)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	id2, err := c.FindOrCreateSmoothed(ids, true)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if id1 != id2 {
		tst.Fatalf("expected cached smoothed material, got distinct ids %d, %d", id1, id2)
	}
	smoothed := c.Materials[id1]
	if smoothed.Er != 3 {
		tst.Fatalf("expected arithmetic mean Er=3, got %v", smoothed.Er)
	}
	expectedSigma := 0.2 // sqrt(0.1*0.4)
	if diff := abs(smoothed.Sigma - expectedSigma); diff > 1e-12 {
		tst.Fatalf("expected geometric mean sigma=%v, got %v", expectedSigma, smoothed.Sigma)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
