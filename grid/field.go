// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// Field3D is a flat, row-major 3D array of float64 samples. k is the
// fastest-varying index so the innermost stencil loop walks contiguous
// memory, matching the intra-step parallelism contract: a worker owns a
// disjoint range of the outer (i) index and scans j,k sequentially.
type Field3D struct {
	Nx, Ny, Nz int
	Data       []float64
}

// NewField3D allocates a zeroed field of the given shape.
func NewField3D(nx, ny, nz int) *Field3D {
	return &Field3D{Nx: nx, Ny: ny, Nz: nz, Data: make([]float64, nx*ny*nz)}
}

// Idx returns the flat offset of node (i,j,k).
func (f *Field3D) Idx(i, j, k int) int { return (i*f.Ny+j)*f.Nz + k }

// At returns the value at (i,j,k).
func (f *Field3D) At(i, j, k int) float64 { return f.Data[f.Idx(i, j, k)] }

// Set stores v at (i,j,k).
func (f *Field3D) Set(i, j, k int, v float64) { f.Data[f.Idx(i, j, k)] = v }

// Add accumulates v into (i,j,k).
func (f *Field3D) Add(i, j, k int, v float64) { f.Data[f.Idx(i, j, k)] += v }

// IDField is a flat 3D array of material-catalogue indices.
type IDField struct {
	Nx, Ny, Nz int
	Data       []uint32
}

// NewIDField allocates an array initialised to fill (material 0, free
// space, unless the caller overrides it).
func NewIDField(nx, ny, nz int, fill uint32) *IDField {
	f := &IDField{Nx: nx, Ny: ny, Nz: nz, Data: make([]uint32, nx*ny*nz)}
	if fill != 0 {
		for i := range f.Data {
			f.Data[i] = fill
		}
	}
	return f
}

// Idx returns the flat offset of node (i,j,k).
func (f *IDField) Idx(i, j, k int) int { return (i*f.Ny+j)*f.Nz + k }

// At returns the material ID at (i,j,k).
func (f *IDField) At(i, j, k int) uint32 { return f.Data[f.Idx(i, j, k)] }

// Set stores a material ID at (i,j,k).
func (f *IDField) Set(i, j, k int, v uint32) { f.Data[f.Idx(i, j, k)] = v }

// RigidMask is a flat 3D array of rigid-edge flags; non-zero forbids
// dielectric averaging on that edge.
type RigidMask struct {
	Nx, Ny, Nz int
	Data       []int8
}

// NewRigidMask allocates a zeroed mask (averaging permitted everywhere).
func NewRigidMask(nx, ny, nz int) *RigidMask {
	return &RigidMask{Nx: nx, Ny: ny, Nz: nz, Data: make([]int8, nx*ny*nz)}
}

// Idx returns the flat offset of node (i,j,k).
func (f *RigidMask) Idx(i, j, k int) int { return (i*f.Ny+j)*f.Nz + k }

// At returns the mask value at (i,j,k).
func (f *RigidMask) At(i, j, k int) int8 { return f.Data[f.Idx(i, j, k)] }

// Set stores a mask value at (i,j,k).
func (f *RigidMask) Set(i, j, k int, v int8) { f.Data[f.Idx(i, j, k)] = v }

// ComplexField3D is a flat 3D array of per-pole complex auxiliary state
// (the dispersive ADE's T arrays), one complex128 per (node, pole) pair.
type ComplexField3D struct {
	Nx, Ny, Nz, Poles int
	Data              []complex128
}

// NewComplexField3D allocates a zeroed array of the given shape and pole
// count.
func NewComplexField3D(nx, ny, nz, poles int) *ComplexField3D {
	return &ComplexField3D{Nx: nx, Ny: ny, Nz: nz, Poles: poles, Data: make([]complex128, nx*ny*nz*poles)}
}

// Idx returns the flat offset of pole p at node (i,j,k).
func (f *ComplexField3D) Idx(i, j, k, p int) int { return ((i*f.Ny+j)*f.Nz+k)*f.Poles + p }

// At returns the value of pole p at (i,j,k).
func (f *ComplexField3D) At(i, j, k, p int) complex128 { return f.Data[f.Idx(i, j, k, p)] }

// Set stores the value of pole p at (i,j,k).
func (f *ComplexField3D) Set(i, j, k, p int, v complex128) { f.Data[f.Idx(i, j, k, p)] = v }

// Component indexes the six Yee field components within ID, RigidE and
// RigidH, matching the component ordering of spec.md §3.
type Component int

const (
	CompEx Component = iota
	CompEy
	CompEz
	CompHx
	CompHy
	CompHz
)

// IsElectric reports whether c names an E-component.
func (c Component) IsElectric() bool { return c == CompEx || c == CompEy || c == CompEz }

// String names a Component for logging and material naming.
func (c Component) String() string {
	switch c {
	case CompEx:
		return "Ex"
	case CompEy:
		return "Ey"
	case CompEz:
		return "Ez"
	case CompHx:
		return "Hx"
	case CompHy:
		return "Hy"
	case CompHz:
		return "Hz"
	}
	return "?"
}
