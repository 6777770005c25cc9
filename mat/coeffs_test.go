// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestCheckDispersionPassesWithFineGrid(tst *testing.T) {
	chk.PrintTitle("CheckDispersionPassesWithFineGrid")
	c := NewCatalogue()
	c.Close()
	dx := 0.001 // 1 mm cells easily resolve 1 GHz in free space
	if err := c.CheckDispersion(1e9, dx, dx, dx, 10); err != nil {
		tst.Fatalf("unexpected dispersion error: %v", err)
	}
}

func TestCheckDispersionFlagsCoarseGrid(tst *testing.T) {
	chk.PrintTitle("CheckDispersionFlagsCoarseGrid")
	c := NewCatalogue()
	if _, err := c.Add(&Material{Name: "soil", Er: 9, Mr: 1}); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	c.Close()
	dx := 0.1 // 10 cm cells cannot resolve 1 GHz in er=9 soil at 10 cells/wavelength
	if err := c.CheckDispersion(1e9, dx, dx, dx, 10); err == nil {
		tst.Fatalf("expected a dispersion error for a coarse grid")
	}
}

func TestCheckDispersionSkippedWhenNoMaxFrequency(tst *testing.T) {
	chk.PrintTitle("CheckDispersionSkippedWhenNoMaxFrequency")
	c := NewCatalogue()
	c.Close()
	if err := c.CheckDispersion(0, 1, 1, 1, 10); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
}
