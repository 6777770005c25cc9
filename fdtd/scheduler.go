// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fdtd

import (
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/pml"
	"github.com/cpmech/gofdtd/srcrx"
)

// Options configures one model run, per spec.md §6.
type Options struct {
	GeometryOnly    bool
	NThreads        int
	ModelRun        int // 1-based, per spec.md §4.4's per-run displacement
	NumberModelRuns int

	SrcStepX, SrcStepY, SrcStepZ float64
	RxStepX, RxStepY, RxStepZ    float64

	// Snapshots names the steps (1-based, matching spec.md §4.6 step 2's
	// "scheduled for step n+1") at which SnapshotWriter.WriteSnapshot is
	// invoked.
	Snapshots []int
}

// OutputWriter receives per-step field and receiver samples, implemented
// by the out package's HDF5-style container (spec.md §6).
type OutputWriter interface {
	WriteStep(step int, g *grid.Grid, receivers []*srcrx.Receiver) error
	Close() error
}

// SnapshotWriter persists one full field snapshot, implemented by the out
// package.
type SnapshotWriter interface {
	WriteSnapshot(step int, g *grid.Grid) error
}

// Sources groups every source kind present in one model, in the order
// spec.md §4.6 applies them.
type Sources struct {
	Voltage  []*srcrx.VoltageSource
	Hertzian []*srcrx.HertzianDipole
	Magnetic []*srcrx.MagneticDipole
	TxLines  []*srcrx.TransmissionLine
}

// displace shifts every source and receiver's position by (modelrun-1)
// steps along each axis, per spec.md §4.4's "Per-run source/receiver
// stepping" (B-scan sweep support). Called once before the step loop.
func displace(srcs *Sources, receivers []*srcrx.Receiver, opts Options) {
	n := opts.ModelRun - 1
	if n <= 0 {
		return
	}
	shiftSrc := func(i, j, k *int) {
		*i += n * int(opts.SrcStepX)
		*j += n * int(opts.SrcStepY)
		*k += n * int(opts.SrcStepZ)
	}
	for _, s := range srcs.Voltage {
		shiftSrc(&s.I, &s.J, &s.K)
	}
	for _, s := range srcs.Hertzian {
		shiftSrc(&s.I, &s.J, &s.K)
	}
	for _, s := range srcs.Magnetic {
		shiftSrc(&s.I, &s.J, &s.K)
	}
	for _, s := range srcs.TxLines {
		shiftSrc(&s.I, &s.J, &s.K)
	}
	if opts.RxStepX > 0 || opts.RxStepY > 0 || opts.RxStepZ > 0 {
		for _, r := range receivers {
			r.I += n * int(opts.RxStepX)
			r.J += n * int(opts.RxStepY)
			r.K += n * int(opts.RxStepZ)
		}
	}
}

// Run executes g.Iterations steps of the schedule in spec.md §4.6,
// returning once complete or on the first error (a corrupt-geometry
// lookup, a failed output or snapshot write, or a NumericalInstability
// detected at a step's end).
func Run(g *grid.Grid, layers [6]*pml.Layer, srcs *Sources, receivers []*srcrx.Receiver, out OutputWriter, snap SnapshotWriter, opts Options) error {
	if opts.NThreads < 1 {
		opts.NThreads = 1
	}
	displace(srcs, receivers, opts)

	snapshotAt := make(map[int]bool, len(opts.Snapshots))
	for _, s := range opts.Snapshots {
		snapshotAt[s] = true
	}

	abstime := 0.0
	for n := 0; n < g.Iterations; n++ {
		// 1. output samples for this step
		for _, r := range receivers {
			r.Sample(g)
		}
		if out != nil {
			if err := out.WriteStep(n, g, receivers); err != nil {
				return err
			}
		}

		// 2. snapshots scheduled for step n+1
		if snap != nil && snapshotAt[n+1] {
			if err := snap.WriteSnapshot(n+1, g); err != nil {
				return err
			}
		}

		// 3. E-update pass A (dispersive-aware)
		if err := UpdateElectricPassA(g, opts.NThreads); err != nil {
			return err
		}

		// 4. PML electric correction
		if err := pml.UpdateElectric(g, layers); err != nil {
			return err
		}

		// 5. electric sources: voltage sources first, then Hertzian dipoles
		tElectric := abstime
		for _, s := range srcs.Voltage {
			if err := s.UpdateE(g, tElectric); err != nil {
				return err
			}
		}
		for _, s := range srcs.Hertzian {
			if err := s.UpdateE(g, tElectric); err != nil {
				return err
			}
		}
		for _, s := range srcs.TxLines {
			if err := s.UpdateE(g, tElectric); err != nil {
				return err
			}
		}

		// 6. E-update pass B (dispersive only)
		if err := UpdateElectricPassB(g, opts.NThreads); err != nil {
			return err
		}

		// 7. abstime += dt/2
		abstime += g.Dt / 2

		// 8. H-update
		if err := UpdateMagnetic(g, opts.NThreads); err != nil {
			return err
		}

		// 9. PML magnetic correction
		if err := pml.UpdateMagnetic(g, layers); err != nil {
			return err
		}

		// 10. magnetic sources
		tMagnetic := abstime
		for _, s := range srcs.Magnetic {
			if err := s.UpdateH(g, tMagnetic); err != nil {
				return err
			}
		}
		for _, s := range srcs.TxLines {
			if err := s.UpdateH(g); err != nil {
				return err
			}
		}

		// 11. abstime += dt/2
		abstime += g.Dt / 2

		if err := g.CheckFinite(); err != nil {
			return err
		}
	}
	return nil
}
