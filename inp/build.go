// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gofdtd/fdtd"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/mat"
	"github.com/cpmech/gofdtd/pml"
	"github.com/cpmech/gofdtd/srcrx"
	"github.com/cpmech/gofdtd/yeebuild"
)

// Model is everything fdtd.Run needs besides Options: the built grid, its
// CPML shell and its sources/receivers.
type Model struct {
	Grid      *grid.Grid
	Layers    [6]*pml.Layer
	Sources   *fdtd.Sources
	Receivers []*srcrx.Receiver
	Options   fdtd.Options

	// Warning holds the dispersion check's message when the coarsest
	// cell dimension under-resolves the model's stated MaxFrequency; the
	// run still proceeds (spec.md's DispersionWarning is advisory, unlike
	// the hard CFLViolation grid.New already enforces).
	Warning string
}

// BuildGrid consumes a Parsed command set and produces the fully-wired
// Model the scheduler runs, per spec.md §6's build_grid(parsed_commands)
// contract: materials are registered, the volumetric solid map is
// rasterised from SolidMaterial, the Yee-cell builder runs, voltage
// sources bake their derived material, the catalogue is closed and its
// coefficients derived, dispersive auxiliary state is allocated, and the
// CPML shell is built.
func BuildGrid(p Parsed) (*Model, error) {
	g, err := grid.New(p.Domain.Nx, p.Domain.Ny, p.Domain.Nz,
		p.Domain.Dx, p.Domain.Dy, p.Domain.Dz, p.TimeWindow.Dt, p.TimeWindow.Iterations)
	if err != nil {
		return nil, err
	}

	byName, err := registerMaterials(g.Mats, p.Materials)
	if err != nil {
		return nil, err
	}

	if err := rasteriseSolid(g, p.SolidMaterial, byName); err != nil {
		return nil, err
	}

	// yeebuild's dielectric smoothing and a resistive voltage source's
	// baked material (below) both append new entries to the catalogue via
	// Catalogue.Add, which hard-errors once closed; spec.md requires
	// derived voltage-source materials to exist before coefficient
	// derivation, so the catalogue must stay open until just before
	// DeriveCoefficients runs.
	if err := yeebuild.Build(g, p.NThreads); err != nil {
		return nil, err
	}

	waveforms, err := registerWaveforms(p.Waveforms)
	if err != nil {
		return nil, err
	}

	srcs, err := buildSources(g, p, waveforms)
	if err != nil {
		return nil, err
	}

	g.Mats.Close()

	if err := g.Mats.DeriveCoefficients(g.Dt, g.Dx, g.Dy, g.Dz); err != nil {
		return nil, err
	}
	g.AllocateDispersive(g.Mats.MaxPoles)

	receivers, err := buildReceivers(g, p.Receivers)
	if err != nil {
		return nil, err
	}

	fp, err := faceParams(p.PML)
	if err != nil {
		return nil, err
	}
	layers, err := pml.Build(g, fp)
	if err != nil {
		return nil, err
	}

	opts := fdtd.Options{
		NThreads:        p.NThreads,
		ModelRun:        p.ModelRun,
		NumberModelRuns: p.NumberModelRuns,
		Snapshots:       snapshotSteps(p.Snapshots),
	}
	if p.SrcSteps != nil {
		opts.SrcStepX, opts.SrcStepY, opts.SrcStepZ = p.SrcSteps.X, p.SrcSteps.Y, p.SrcSteps.Z
	}
	if p.RxSteps != nil {
		opts.RxStepX, opts.RxStepY, opts.RxStepZ = p.RxSteps.X, p.RxSteps.Y, p.RxSteps.Z
	}

	warning := ""
	if err := g.Mats.CheckDispersion(p.TimeWindow.MaxFrequency, g.Dx, g.Dy, g.Dz, 10); err != nil {
		warning = err.Error()
	}

	return &Model{Grid: g, Layers: layers, Sources: srcs, Receivers: receivers, Options: opts, Warning: warning}, nil
}

func snapshotSteps(cmds []SnapshotCmd) []int {
	steps := make([]int, len(cmds))
	for i, c := range cmds {
		steps[i] = c.Step
	}
	return steps
}

func registerMaterials(cat *mat.Catalogue, cmds []MaterialCmd) (map[string]uint32, error) {
	byName := make(map[string]uint32, len(cmds))
	for _, mc := range cmds {
		m := &mat.Material{
			Name:      mc.Name,
			Er:        mc.Er,
			Sigma:     mc.Sigma,
			Mr:        mc.Mr,
			SigmaStar: mc.SigmaStar,
			Average:   mc.Average,
			Poles:     make([]mat.Pole, len(mc.Poles)),
		}
		for i, pc := range mc.Poles {
			kind, err := poleKind(pc.Kind)
			if err != nil {
				return nil, err
			}
			m.Poles[i] = mat.Pole{Kind: kind, DeltaEr: pc.DeltaEr, Tau: pc.Tau, Omega: pc.Omega, Delta: pc.Delta}
		}
		id, err := cat.Add(m)
		if err != nil {
			return nil, err
		}
		byName[mc.Name] = uint32(id)
	}
	return byName, nil
}

func poleKind(name string) (mat.PoleKind, error) {
	switch name {
	case "debye":
		return mat.PoleDebye, nil
	case "lorentz":
		return mat.PoleLorentz, nil
	case "drude":
		return mat.PoleDrude, nil
	}
	return 0, grid.Errf(grid.InvalidInput, "unknown dispersive pole kind %q", name)
}

// rasteriseSolid fills g.Solid from the already-rasterised per-cell
// material names (geometry rasterisation itself, per spec.md §1, is an
// external collaborator's job); an empty list leaves every cell at
// material 0, free space.
func rasteriseSolid(g *grid.Grid, names []string, byName map[string]uint32) error {
	if len(names) == 0 {
		return nil
	}
	nx, ny, nz := g.Nx+1, g.Ny+1, g.Nz+1
	if len(names) != nx*ny*nz {
		return grid.Errf(grid.InvalidInput, "solid_material has %d entries, want %d (=%d*%d*%d)", len(names), nx*ny*nz, nx, ny, nz)
	}
	idx := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				name := names[idx]
				idx++
				id, ok := byName[name]
				if !ok {
					return grid.Errf(grid.InvalidInput, "solid_material references unknown material %q", name)
				}
				g.Solid.Set(i, j, k, id)
			}
		}
	}
	return nil
}

// registerWaveforms allocates each named waveform by kind and applies its
// command parameters via the fun.Prms tagged-parameter convention
// (srcrx.Parameterised.SetParams); User is the one kind whose configuration
// is a sampled table rather than scalar parameters, so its Values are
// assigned directly.
func registerWaveforms(cmds []WaveformCmd) (map[string]srcrx.Waveform, error) {
	out := make(map[string]srcrx.Waveform, len(cmds))
	for _, wc := range cmds {
		w, err := srcrx.NewWaveform(wc.Kind)
		if err != nil {
			return nil, err
		}
		if p, ok := w.(srcrx.Parameterised); ok {
			if err := p.SetParams(waveformParams(wc)); err != nil {
				return nil, err
			}
		}
		if u, ok := w.(*srcrx.User); ok {
			u.Values = wc.Values
		}
		out[wc.Name] = w
	}
	return out, nil
}

func waveformParams(wc WaveformCmd) fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "amp", V: wc.Amp},
		&fun.Prm{N: "freq", V: wc.Freq},
		&fun.Prm{N: "dt", V: wc.SampleDt},
	}
}

func axis(name string) (grid.Axis, error) {
	switch name {
	case "x":
		return grid.AxisX, nil
	case "y":
		return grid.AxisY, nil
	case "z":
		return grid.AxisZ, nil
	}
	return 0, grid.Errf(grid.InvalidInput, "unknown polarisation %q", name)
}

func cellOf(g *grid.Grid, p point) (i, j, k int, err error) {
	i, err = g.CoordToCell(p.X, grid.AxisX)
	if err != nil {
		return
	}
	j, err = g.CoordToCell(p.Y, grid.AxisY)
	if err != nil {
		return
	}
	k, err = g.CoordToCell(p.Z, grid.AxisZ)
	return
}

func buildSources(g *grid.Grid, p Parsed, waveforms map[string]srcrx.Waveform) (*fdtd.Sources, error) {
	srcs := &fdtd.Sources{}
	for _, c := range p.VoltageSources {
		pol, err := axis(c.Polarisation)
		if err != nil {
			return nil, err
		}
		i, j, k, err := cellOf(g, c.Position)
		if err != nil {
			return nil, err
		}
		if c.Resistance > 0 {
			if err := bakeVoltageMaterial(g, i, j, k, pol, c.Resistance); err != nil {
				return nil, err
			}
		}
		w, ok := waveforms[c.Waveform]
		if !ok {
			return nil, grid.Errf(grid.InvalidInput, "voltage source references unknown waveform %q", c.Waveform)
		}
		srcs.Voltage = append(srcs.Voltage, &srcrx.VoltageSource{I: i, J: j, K: k, Polarisation: pol, Resistance: c.Resistance, Waveform: w})
	}
	for _, c := range p.HertzianDipoles {
		pol, err := axis(c.Polarisation)
		if err != nil {
			return nil, err
		}
		i, j, k, err := cellOf(g, c.Position)
		if err != nil {
			return nil, err
		}
		w, ok := waveforms[c.Waveform]
		if !ok {
			return nil, grid.Errf(grid.InvalidInput, "hertzian dipole references unknown waveform %q", c.Waveform)
		}
		srcs.Hertzian = append(srcs.Hertzian, &srcrx.HertzianDipole{I: i, J: j, K: k, Polarisation: pol, Waveform: w})
	}
	for _, c := range p.MagneticDipoles {
		pol, err := axis(c.Polarisation)
		if err != nil {
			return nil, err
		}
		i, j, k, err := cellOf(g, c.Position)
		if err != nil {
			return nil, err
		}
		w, ok := waveforms[c.Waveform]
		if !ok {
			return nil, grid.Errf(grid.InvalidInput, "magnetic dipole references unknown waveform %q", c.Waveform)
		}
		srcs.Magnetic = append(srcs.Magnetic, &srcrx.MagneticDipole{I: i, J: j, K: k, Polarisation: pol, Waveform: w})
	}
	for _, c := range p.TransmissionLines {
		pol, err := axis(c.Polarisation)
		if err != nil {
			return nil, err
		}
		i, j, k, err := cellOf(g, c.Position)
		if err != nil {
			return nil, err
		}
		w, ok := waveforms[c.Waveform]
		if !ok {
			return nil, grid.Errf(grid.InvalidInput, "transmission line references unknown waveform %q", c.Waveform)
		}
		srcs.TxLines = append(srcs.TxLines, &srcrx.TransmissionLine{I: i, J: j, K: k, Polarisation: pol, Resistance: c.Resistance, Waveform: w, NCells: c.NCells})
	}
	return srcs, nil
}

// bakeVoltageMaterial synthesises and installs the resistive material a
// voltage source needs at its own edge, per spec.md §3's invariant,
// rewriting the ID array immediately (before DeriveCoefficients runs).
func bakeVoltageMaterial(g *grid.Grid, i, j, k int, pol grid.Axis, resistance float64) error {
	comp := electricComponentFor(pol)
	matID := g.ID[comp].At(i, j, k)
	base, err := g.Mats.Get(matID)
	if err != nil {
		return grid.Errf(grid.CorruptGeometry, "voltage source base material: %v", err)
	}
	dPar := axisSpacingFor(g, pol)
	dPerp1, dPerp2 := transverseSpacingsFor(g, pol)
	derived, err := g.Mats.DeriveVoltageSourceMaterial(base, resistance, dPar, dPerp1, dPerp2)
	if err != nil {
		return err
	}
	g.ID[comp].Set(i, j, k, uint32(derived.NumID))
	return nil
}

func electricComponentFor(pol grid.Axis) grid.Component {
	switch pol {
	case grid.AxisX:
		return grid.CompEx
	case grid.AxisY:
		return grid.CompEy
	}
	return grid.CompEz
}

func axisSpacingFor(g *grid.Grid, pol grid.Axis) float64 {
	switch pol {
	case grid.AxisX:
		return g.Dx
	case grid.AxisY:
		return g.Dy
	}
	return g.Dz
}

func transverseSpacingsFor(g *grid.Grid, pol grid.Axis) (float64, float64) {
	switch pol {
	case grid.AxisX:
		return g.Dy, g.Dz
	case grid.AxisY:
		return g.Dz, g.Dx
	}
	return g.Dx, g.Dy
}

func buildReceivers(g *grid.Grid, cmds []ReceiverCmd) ([]*srcrx.Receiver, error) {
	out := make([]*srcrx.Receiver, 0, len(cmds))
	for _, c := range cmds {
		i, err := g.CoordToCell(c.Position.X, grid.AxisX)
		if err != nil {
			return nil, err
		}
		j, err := g.CoordToCell(c.Position.Y, grid.AxisY)
		if err != nil {
			return nil, err
		}
		k, err := g.CoordToCell(c.Position.Z, grid.AxisZ)
		if err != nil {
			return nil, err
		}
		outs := make([]srcrx.Output, len(c.Outputs))
		for oi, name := range c.Outputs {
			o, err := outputByName(name)
			if err != nil {
				return nil, err
			}
			outs[oi] = o
		}
		out = append(out, &srcrx.Receiver{Name: c.Name, I: i, J: j, K: k, Outputs: outs})
	}
	return out, nil
}

func outputByName(name string) (srcrx.Output, error) {
	switch name {
	case "ex":
		return srcrx.OutEx, nil
	case "ey":
		return srcrx.OutEy, nil
	case "ez":
		return srcrx.OutEz, nil
	case "hx":
		return srcrx.OutHx, nil
	case "hy":
		return srcrx.OutHy, nil
	case "hz":
		return srcrx.OutHz, nil
	case "ix":
		return srcrx.OutIx, nil
	case "iy":
		return srcrx.OutIy, nil
	case "iz":
		return srcrx.OutIz, nil
	}
	return 0, grid.Errf(grid.InvalidInput, "unknown receiver output %q", name)
}

func faceParams(cmds []PMLCmd) ([6]pml.FaceParams, error) {
	var out [6]pml.FaceParams
	for i := range out {
		out[i] = pml.DefaultFaceParams()
	}
	for _, c := range cmds {
		i, err := faceIndex(c.Face)
		if err != nil {
			return out, err
		}
		p := pml.DefaultFaceParams()
		if c.Thickness > 0 {
			p.Thickness = c.Thickness
		}
		if c.SigmaMax > 0 {
			p.SigmaMax = c.SigmaMax
		}
		if c.AlphaMax > 0 {
			p.AlphaMax = c.AlphaMax
		}
		if c.KappaMax > 0 {
			p.KappaMax = c.KappaMax
		}
		if c.M > 0 {
			p.M = c.M
		}
		out[i] = p
	}
	return out, nil
}

func faceIndex(name string) (int, error) {
	switch name {
	case "x0":
		return 0, nil
	case "xmax":
		return 1, nil
	case "y0":
		return 2, nil
	case "ymax":
		return 3, nil
	case "z0":
		return 4, nil
	case "zmax":
		return 5, nil
	}
	return 0, grid.Errf(grid.InvalidInput, "unknown pml face %q", name)
}
