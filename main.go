// Copyright 2016 The Gofdtd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofdtd/fdtd"
	"github.com/cpmech/gofdtd/grid"
	"github.com/cpmech/gofdtd/inp"
	"github.com/cpmech/gofdtd/out"
)

// Exit codes, per spec.md §6: 0 success, 1 input error, 2 numerical
// instability, 3 I/O error.
const (
	exitOK                   = 0
	exitInputError           = 1
	exitNumericalInstability = 2
	exitIOFailure            = 3
)

func main() {

	geometryOnly := flag.Bool("geometry-only", false, "build the grid and write geometry files, then stop")
	nthreads := flag.Int("n", 1, "number of worker goroutines for the spatial stencils")
	useMPI := flag.Bool("mpi", false, "run under MPI task-farming (delegated to the external driver; unused here)")
	writePython := flag.Bool("write-python", false, "write an equivalent input script (delegated to the external parser; unused here)")
	optTaguchi := flag.Bool("opt-taguchi", false, "run a Taguchi parameter sweep (delegated to the external driver; unused here)")
	flag.Parse()

	_ = useMPI
	_ = writePython
	_ = optTaguchi

	if len(flag.Args()) < 1 {
		io.Pfred("ERROR: please provide an input commands file, e.g. model.json\n")
		os.Exit(exitInputError)
	}
	fnamepath := flag.Arg(0)

	io.Pf("gofdtd -- 3D FDTD electromagnetic simulator core\n")

	// the text-file parser itself is out of scope (spec.md §1); this
	// entry point reads a JSON sidecar holding the already-tokenised
	// command records an external parser would otherwise produce.
	parsed, err := readParsed(fnamepath)
	if err != nil {
		io.Pfred("ERROR reading %q: %v\n", fnamepath, err)
		os.Exit(exitInputError)
	}

	model, err := inp.BuildGrid(parsed)
	if err != nil {
		os.Exit(exitCode(err))
	}
	if model.Warning != "" {
		io.Pfyel("WARNING: %v\n", model.Warning)
	}
	model.Options.GeometryOnly = *geometryOnly
	if model.Options.NThreads == 0 {
		model.Options.NThreads = *nthreads
	}

	outDir := io.Sf("%s.out", fnamepath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		io.Pfred("ERROR creating output directory %q: %v\n", outDir, err)
		os.Exit(exitIOFailure)
	}

	if model.Options.GeometryOnly {
		if err := out.WriteGeometry(io.Sf("%s/geometry.h5", outDir), model.Grid); err != nil {
			os.Exit(exitCode(err))
		}
		io.Pfgreen("geometry written to %s\n", outDir)
		os.Exit(exitOK)
	}

	handle := out.NewHandle(io.Sf("%s/model.h5", outDir), parsed.Title, model.Grid, nil)
	if err := fdtd.Run(model.Grid, model.Layers, model.Sources, model.Receivers, handle, nil, model.Options); err != nil {
		chk.Verbose = true
		io.Pfred("ERROR: %v\n", err)
		os.Exit(exitCode(err))
	}
	if err := handle.CloseWithReceivers(model.Receivers); err != nil {
		os.Exit(exitCode(err))
	}

	io.Pfgreen("run complete: %d iterations written to %s\n", model.Grid.Iterations, outDir)
	os.Exit(exitOK)
}

func readParsed(fnamepath string) (inp.Parsed, error) {
	var p inp.Parsed
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(b, &p)
	return p, err
}

func exitCode(err error) int {
	if grid.Is(err, grid.NumericalInstability) {
		return exitNumericalInstability
	}
	if grid.Is(err, grid.IOFailure) {
		return exitIOFailure
	}
	return exitInputError
}
