// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fdtd implements the time-stepping scheduler: the fixed 11-step
// per-iteration schedule of spec.md §4.6, tying together the interior Yee
// stencil, the CPML boundary correction and the source/receiver kernel.
package fdtd

import "sync"

// parallelRange partitions [0,n) across nthreads goroutines and calls fn
// for each index, collecting the first error encountered. Each of the six
// stencil updates forks over its own outer spatial index and joins before
// the next schedule step begins (spec.md §5).
func parallelRange(n, nthreads int, fn func(i int) error) error {
	if nthreads < 1 {
		nthreads = 1
	}
	if nthreads > n {
		nthreads = n
	}
	if nthreads <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	chunk := (n + nthreads - 1) / nthreads
	var wg sync.WaitGroup
	errs := make([]error, nthreads)
	for w := 0; w < nthreads; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
