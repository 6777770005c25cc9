// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/srcrx"
)

func newTestGrid(tst *testing.T) *grid.Grid {
	g, err := grid.New(4, 4, 4, 0.01, 0.01, 0.01, 1e-12, 3)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	g.Mats.Close()
	if err := g.Mats.DeriveCoefficients(g.Dt, g.Dx, g.Dy, g.Dz); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestHandleWritesRootAttributesAndReceivers(tst *testing.T) {
	chk.PrintTitle("HandleWritesRootAttributesAndReceivers")
	g := newTestGrid(tst)
	rx := &srcrx.Receiver{Name: "rx0", I: 1, J: 1, K: 1, Outputs: []srcrx.Output{srcrx.OutEz}}
	for n := 0; n < 3; n++ {
		rx.Sample(g)
	}
	path := filepath.Join(tst.TempDir(), "model.h5")
	h := NewHandle(path, "test model", g, []SourceRecord{{Kind: "hertzian_dipole", I: 1, J: 1, K: 1, Polarisation: "z", Waveform: "ricker"}})
	if err := h.CloseWithReceivers([]*srcrx.Receiver{rx}); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteSnapshotAndGeometry(tst *testing.T) {
	chk.PrintTitle("WriteSnapshotAndGeometry")
	g := newTestGrid(tst)
	dir := tst.TempDir()
	if err := WriteSnapshot(filepath.Join(dir, "snap1.h5"), 1, g); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := WriteGeometry(filepath.Join(dir, "geom.h5"), g); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
}
