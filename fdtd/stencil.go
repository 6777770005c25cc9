// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import "github.com/cpmech/gofdtd/grid"

// atOrZero reads f at (i,j,k), treating any index outside the array's own
// shape as zero: tangential field components just beyond a truncated
// boundary are absent, not extrapolated (mirrors the PML's own boundary
// clipping in pml.sampleNormalClamped).
func atOrZero(f *grid.Field3D, i, j, k int) float64 {
	if i < 0 || i >= f.Nx || j < 0 || j >= f.Ny || k < 0 || k >= f.Nz {
		return 0
	}
	return f.At(i, j, k)
}

// UpdateElectricPassA computes the interior Yee stencil for Ex, Ey, Ez
// (spec.md §4.6 step 3's non-dispersive branch, and the first half of the
// dispersive branches): standard CA·E + CB·(∂H) update, followed by
// subtracting each material's dispersive correction evaluated from the
// auxiliary state left over from the previous step (the "A" pass can only
// use already-known T, since the new E it is about to produce is what pass
// B will use to finalise T).
func UpdateElectricPassA(g *grid.Grid, nthreads int) error {
	poles := g.Mats.MaxPoles
	if err := parallelRange(g.Ex.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Ex.Ny; j++ {
			for k := 0; k < g.Ex.Nz; k++ {
				matID := g.ID[grid.CompEx].At(i, j, k)
				c := g.Mats.UpdateCoeffsE[matID]
				curl := c[2]*(atOrZero(g.Hz, i, j, k)-atOrZero(g.Hz, i, j-1, k)) -
					c[3]*(atOrZero(g.Hy, i, j, k)-atOrZero(g.Hy, i, j, k-1))
				e := c[0]*g.Ex.At(i, j, k) + curl
				if poles > 0 {
					e -= dispersiveCorrection(g.Mats.UpdateCoeffsDispersive[matID], g.Tx, i, j, k, poles)
				}
				g.Ex.Set(i, j, k, e)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if err := parallelRange(g.Ey.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Ey.Ny; j++ {
			for k := 0; k < g.Ey.Nz; k++ {
				matID := g.ID[grid.CompEy].At(i, j, k)
				c := g.Mats.UpdateCoeffsE[matID]
				curl := c[3]*(atOrZero(g.Hx, i, j, k)-atOrZero(g.Hx, i, j, k-1)) -
					c[1]*(atOrZero(g.Hz, i, j, k)-atOrZero(g.Hz, i-1, j, k))
				e := c[0]*g.Ey.At(i, j, k) + curl
				if poles > 0 {
					e -= dispersiveCorrection(g.Mats.UpdateCoeffsDispersive[matID], g.Ty, i, j, k, poles)
				}
				g.Ey.Set(i, j, k, e)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return parallelRange(g.Ez.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Ez.Ny; j++ {
			for k := 0; k < g.Ez.Nz; k++ {
				matID := g.ID[grid.CompEz].At(i, j, k)
				c := g.Mats.UpdateCoeffsE[matID]
				curl := c[1]*(atOrZero(g.Hy, i, j, k)-atOrZero(g.Hy, i-1, j, k)) -
					c[2]*(atOrZero(g.Hx, i, j, k)-atOrZero(g.Hx, i, j-1, k))
				e := c[0]*g.Ez.At(i, j, k) + curl
				if poles > 0 {
					e -= dispersiveCorrection(g.Mats.UpdateCoeffsDispersive[matID], g.Tz, i, j, k, poles)
				}
				g.Ez.Set(i, j, k, e)
			}
		}
		return nil
	})
}

// dispersiveCorrection returns Σ_p Re(eqt_p · T_p) for one node, the
// pass-A correction subtracted from the base CA/CB estimate (mat's
// derivePole documents the ADE derivation this implements).
func dispersiveCorrection(row []complex128, t *grid.ComplexField3D, i, j, k, poles int) float64 {
	var sum float64
	for p := 0; p < poles; p++ {
		eqt := row[3*p+1]
		sum += real(eqt * t.At(i, j, k, p))
	}
	return sum
}

// UpdateElectricPassB finalises the dispersive auxiliary state T using the
// now-complete E (after PML and electric sources), per spec.md §4.6 step 6.
// A no-op when no material is dispersive.
func UpdateElectricPassB(g *grid.Grid, nthreads int) error {
	poles := g.Mats.MaxPoles
	if poles == 0 {
		return nil
	}
	if err := finalizeT(g, g.Tx, g.Ex, grid.CompEx, nthreads); err != nil {
		return err
	}
	if err := finalizeT(g, g.Ty, g.Ey, grid.CompEy, nthreads); err != nil {
		return err
	}
	return finalizeT(g, g.Tz, g.Ez, grid.CompEz, nthreads)
}

func finalizeT(g *grid.Grid, t *grid.ComplexField3D, e *grid.Field3D, comp grid.Component, nthreads int) error {
	poles := g.Mats.MaxPoles
	return parallelRange(e.Nx, nthreads, func(i int) error {
		for j := 0; j < e.Ny; j++ {
			for k := 0; k < e.Nz; k++ {
				matID := g.ID[comp].At(i, j, k)
				row := g.Mats.UpdateCoeffsDispersive[matID]
				eVal := complex(e.At(i, j, k), 0)
				for p := 0; p < poles; p++ {
					e0eqt2 := row[3*p+0] // Eps0·eqt2, per the layout mat.DeriveCoefficients stores
					zt := row[3*p+2]
					told := t.At(i, j, k, p)
					t.Set(i, j, k, p, zt*told+e0eqt2*2*eVal)
				}
			}
		}
		return nil
	})
}

// UpdateMagnetic computes the interior Yee stencil for Hx, Hy, Hz
// (spec.md §4.6 step 8).
func UpdateMagnetic(g *grid.Grid, nthreads int) error {
	if err := parallelRange(g.Hx.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Hx.Ny; j++ {
			for k := 0; k < g.Hx.Nz; k++ {
				matID := g.ID[grid.CompHx].At(i, j, k)
				c := g.Mats.UpdateCoeffsH[matID]
				curl := -c[2]*(atOrZero(g.Ez, i, j+1, k)-atOrZero(g.Ez, i, j, k)) +
					c[3]*(atOrZero(g.Ey, i, j, k+1)-atOrZero(g.Ey, i, j, k))
				g.Hx.Set(i, j, k, c[0]*g.Hx.At(i, j, k)+curl)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if err := parallelRange(g.Hy.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Hy.Ny; j++ {
			for k := 0; k < g.Hy.Nz; k++ {
				matID := g.ID[grid.CompHy].At(i, j, k)
				c := g.Mats.UpdateCoeffsH[matID]
				curl := -c[3]*(atOrZero(g.Ex, i, j, k+1)-atOrZero(g.Ex, i, j, k)) +
					c[1]*(atOrZero(g.Ez, i+1, j, k)-atOrZero(g.Ez, i, j, k))
				g.Hy.Set(i, j, k, c[0]*g.Hy.At(i, j, k)+curl)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return parallelRange(g.Hz.Nx, nthreads, func(i int) error {
		for j := 0; j < g.Hz.Ny; j++ {
			for k := 0; k < g.Hz.Nz; k++ {
				matID := g.ID[grid.CompHz].At(i, j, k)
				c := g.Mats.UpdateCoeffsH[matID]
				curl := -c[1]*(atOrZero(g.Ey, i+1, j, k)-atOrZero(g.Ey, i, j, k)) +
					c[2]*(atOrZero(g.Ex, i, j+1, k)-atOrZero(g.Ex, i, j, k))
				g.Hz.Set(i, j, k, c[0]*g.Hz.At(i, j, k)+curl)
			}
		}
		return nil
	})
}
