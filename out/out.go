// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out persists one model run's results: the HDF5-style output
// file, snapshot files and geometry files of spec.md §6. Output encoding
// is out of scope for the core itself (spec.md §1); this package is the
// external collaborator fdtd.Run writes through, via the
// github.com/cpmech/gosl/io/h5 binding gofem's own result-file tooling
// is built on.
package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/io/h5"

	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/srcrx"
)

// Version is the value stamped into every output file's gprMax_version
// attribute, for readers expecting that exact key (spec.md §6).
const Version = "gofdtd-1.0"

// SourceRecord describes one source for the per-source output group:
// its position, kind, polarisation and waveform name. The waveform's
// parameters themselves are not recorded.
type SourceRecord struct {
	Kind         string
	I, J, K      int
	Polarisation string
	Waveform     string
}

// Handle is the persisted-output-file writer, implementing
// fdtd.OutputWriter. Every receiver sample is already retained by
// srcrx.Receiver's own History, so Handle buffers nothing itself: it
// holds just enough to write the root attributes and source groups, and
// flushes everything once at Close (a run that aborts early with
// NumericalInstability, per spec.md §7, never produces a truncated file).
type Handle struct {
	path    string
	title   string
	g       *grid.Grid
	sources []SourceRecord
}

// NewHandle opens path for the grid's eventual output.
func NewHandle(path, title string, g *grid.Grid, sources []SourceRecord) *Handle {
	return &Handle{path: path, title: title, g: g, sources: sources}
}

// WriteStep is a no-op per-model-step hook: receiver history accumulates
// in srcrx.Receiver itself and is flushed wholesale at Close.
func (h *Handle) WriteStep(step int, g *grid.Grid, receivers []*srcrx.Receiver) error {
	return nil
}

// Close writes the root attributes, one group per receiver (one dataset
// per requested output, shape (iterations,)) and one group per source
// (position, type, polarisation, waveform name). The
// scheduler does not thread receivers through Close itself (fdtd.Run only
// knows the OutputWriter interface); call CloseWithReceivers directly
// once Run returns, passing the same receiver slice Run was given.
func (h *Handle) Close() error {
	return h.flush(nil)
}

// CloseWithReceivers flushes the file with the given receivers' History
// as the per-receiver datasets.
func (h *Handle) CloseWithReceivers(receivers []*srcrx.Receiver) error {
	return h.flush(receivers)
}

func (h *Handle) flush(receivers []*srcrx.Receiver) error {
	f, err := h5.Create(h.path)
	if err != nil {
		return grid.Errf(grid.IOFailure, "cannot create output file %q: %v", h.path, err)
	}
	defer f.Close()

	f.PutString("/Title", h.title)
	f.PutInt("/nx", h.g.Nx)
	f.PutInt("/ny", h.g.Ny)
	f.PutInt("/nz", h.g.Nz)
	f.PutFloat64("/dx", h.g.Dx)
	f.PutFloat64("/dy", h.g.Dy)
	f.PutFloat64("/dz", h.g.Dz)
	f.PutFloat64("/dt", h.g.Dt)
	f.PutInt("/iterations", h.g.Iterations)
	f.PutString("/gprMax_version", Version)
	f.PutInt("/nrx", len(receivers))
	f.PutInt("/nsrc", len(h.sources))

	for _, rx := range receivers {
		group := "/rxs/" + rx.Name
		for oi, o := range rx.Outputs {
			f.PutArray(group+"/"+o.String(), rx.History(oi))
		}
	}

	for i, s := range h.sources {
		group := io.Sf("/srcs/src%d", i)
		f.PutString(group+"/type", s.Kind)
		f.PutInt(group+"/i", s.I)
		f.PutInt(group+"/j", s.J)
		f.PutInt(group+"/k", s.K)
		f.PutString(group+"/polarisation", s.Polarisation)
		f.PutString(group+"/waveform", s.Waveform)
	}
	return nil
}

// WriteSnapshot persists one self-contained snapshot file (six field
// arrays plus spatial metadata), per spec.md §6.
func WriteSnapshot(path string, step int, g *grid.Grid) error {
	f, err := h5.Create(path)
	if err != nil {
		return grid.Errf(grid.IOFailure, "cannot create snapshot file %q: %v", path, err)
	}
	defer f.Close()

	f.PutInt("/nx", g.Nx)
	f.PutInt("/ny", g.Ny)
	f.PutInt("/nz", g.Nz)
	f.PutFloat64("/dx", g.Dx)
	f.PutFloat64("/dy", g.Dy)
	f.PutFloat64("/dz", g.Dz)
	f.PutInt("/step", step)

	f.PutArray("/Ex", g.Ex.Data)
	f.PutArray("/Ey", g.Ey.Data)
	f.PutArray("/Ez", g.Ez.Data)
	f.PutArray("/Hx", g.Hx.Data)
	f.PutArray("/Hy", g.Hy.Data)
	f.PutArray("/Hz", g.Hz.Data)
	return nil
}

// WriteGeometry persists per-edge material IDs for every component plus
// the volumetric solid map, used by --geometry-only runs and geometry
// views (spec.md §6).
func WriteGeometry(path string, g *grid.Grid) error {
	f, err := h5.Create(path)
	if err != nil {
		return grid.Errf(grid.IOFailure, "cannot create geometry file %q: %v", path, err)
	}
	defer f.Close()

	names := [6]string{"Ex", "Ey", "Ez", "Hx", "Hy", "Hz"}
	for c, idf := range g.ID {
		f.PutArrayUint32("/ID/"+names[c], idf.Data)
	}
	f.PutArrayUint32("/Solid", g.Solid.Data)
	return nil
}
