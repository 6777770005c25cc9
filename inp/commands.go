// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp holds the already-tokenised command records the core
// consumes: the text-file parser and geometry rasteriser that would
// produce these records are out of scope (spec.md §1), but the record
// types themselves are the core's stable input contract, decoded here the
// way inp/mat.go's ReadMat and inp/sim.go's Data decode a gofem .sim/.mat
// JSON pair.
package inp

// Domain is the single-use command naming the grid's extent and cell
// size (spec.md §3).
type Domain struct {
	Nx int     `json:"nx"`
	Ny int     `json:"ny"`
	Nz int     `json:"nz"`
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
	Dz float64 `json:"dz"`
}

// TimeWindow is the single-use command naming the timestep and run
// length.
type TimeWindow struct {
	Dt         float64 `json:"dt"`
	Iterations int     `json:"iterations"`

	// MaxFrequency, if set, is the highest frequency of interest used for
	// the post-build dispersion check (spec.md's DispersionWarning kind);
	// 0 skips the check.
	MaxFrequency float64 `json:"max_frequency"`
}

// PoleCmd names one dispersive relaxation pole, decoded into a
// mat.Pole by BuildGrid's material registration (registerMaterials).
type PoleCmd struct {
	Kind    string  `json:"kind"` // "debye", "lorentz", "drude"
	DeltaEr float64 `json:"delta_er"`
	Tau     float64 `json:"tau"`   // debye only, seconds
	Omega   float64 `json:"omega"` // lorentz/drude, rad/s
	Delta   float64 `json:"delta"` // lorentz/drude, rad/s
}

// MaterialCmd is a multi-use command declaring one catalogue entry
// (spec.md §3, §4.1).
type MaterialCmd struct {
	Name      string    `json:"name"`
	Er        float64   `json:"er"`
	Sigma     float64   `json:"sigma"`
	Mr        float64   `json:"mr"`
	SigmaStar float64   `json:"sigma_star"`
	Average   bool      `json:"average"`
	Poles     []PoleCmd `json:"poles"`
}

// PMLCmd sets one face's CPML grading, by face name ("x0", "xmax", "y0",
// "ymax", "z0", "zmax"); a face absent from the command list keeps
// DefaultFaceParams().
type PMLCmd struct {
	Face      string  `json:"face"`
	Thickness int     `json:"thickness"`
	SigmaMax  float64 `json:"sigma_max"` // 0 => derive from spec.md §4.3's default formula
	AlphaMax  float64 `json:"alpha_max"`
	KappaMax  float64 `json:"kappa_max"`
	M         float64 `json:"m"`
}

// WaveformCmd declares one named excitation waveform (spec.md §4.4).
type WaveformCmd struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"` // one of srcrx.RegisteredWaveforms()
	Amp  float64 `json:"amp"`
	Freq float64 `json:"freq"`

	// User waveform only: uniformly-sampled values and their spacing.
	Values []float64 `json:"values"`
	SampleDt float64  `json:"sample_dt"`
}

// point is the common (x,y,z) metres position shared by every
// source/receiver command.
type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// VoltageSourceCmd places a resistive voltage source (spec.md §3, §4.4).
type VoltageSourceCmd struct {
	Position     point   `json:"position"`
	Polarisation string  `json:"polarisation"` // "x", "y", "z"
	Resistance   float64 `json:"resistance"`
	Waveform     string  `json:"waveform"`
}

// HertzianDipoleCmd places a Hertzian dipole.
type HertzianDipoleCmd struct {
	Position     point  `json:"position"`
	Polarisation string `json:"polarisation"`
	Waveform     string `json:"waveform"`
}

// MagneticDipoleCmd places a magnetic dipole.
type MagneticDipoleCmd struct {
	Position     point  `json:"position"`
	Polarisation string `json:"polarisation"`
	Waveform     string `json:"waveform"`
}

// TransmissionLineCmd places a transmission-line source.
type TransmissionLineCmd struct {
	Position     point   `json:"position"`
	Polarisation string  `json:"polarisation"`
	Resistance   float64 `json:"resistance"`
	Waveform     string  `json:"waveform"`
	NCells       int     `json:"ncells"`
}

// ReceiverCmd places a receiver sampling the named outputs every step.
type ReceiverCmd struct {
	Name     string   `json:"name"`
	Position point    `json:"position"`
	Outputs  []string `json:"outputs"` // e.g. "ex", "hz", "ix"
}

// SrcStepsCmd and RxStepsCmd are the per-run displacement commands
// driving a B-scan sweep (spec.md §4.4's step displacement, applied by
// fdtd.Run before the step loop).
type SrcStepsCmd struct{ X, Y, Z float64 }
type RxStepsCmd struct{ X, Y, Z float64 }

// SnapshotCmd schedules one full-field snapshot at the given 1-based
// step.
type SnapshotCmd struct {
	Step int    `json:"step"`
	Name string `json:"name"`
}

// Parsed is the full set of already-tokenised commands for one model,
// grouped by spec.md §6's single-use / multi-use / geometry categories.
// It is what an external parser (out of scope per spec.md §1) would hand
// to BuildGrid.
type Parsed struct {
	Title string `json:"title"`

	// single-use
	Domain     Domain     `json:"domain"`
	TimeWindow TimeWindow `json:"time_window"`

	// multi-use
	Materials          []MaterialCmd         `json:"materials"`
	Waveforms          []WaveformCmd         `json:"waveforms"`
	PML                []PMLCmd              `json:"pml"`
	VoltageSources     []VoltageSourceCmd    `json:"voltage_sources"`
	HertzianDipoles    []HertzianDipoleCmd   `json:"hertzian_dipoles"`
	MagneticDipoles    []MagneticDipoleCmd   `json:"magnetic_dipoles"`
	TransmissionLines  []TransmissionLineCmd `json:"transmission_lines"`
	Receivers          []ReceiverCmd         `json:"receivers"`
	Snapshots          []SnapshotCmd         `json:"snapshots"`
	SrcSteps           *SrcStepsCmd          `json:"src_steps"`
	RxSteps            *RxStepsCmd           `json:"rx_steps"`

	// geometry: already-rasterised per-cell material names, row-major
	// (i*(ny+1)+j)*(nz+1)+k over the node-indexed solid array
	// ((nx+1)*(ny+1)*(nz+1) long); empty leaves the whole domain at
	// material 0, free space (spec.md §3's solid array default).
	SolidMaterial []string `json:"solid_material"`

	NThreads        int `json:"nthreads"`
	ModelRun        int `json:"modelrun"`         // 1-based
	NumberModelRuns int `json:"number_model_runs"` // for B-scan sweeps
}
