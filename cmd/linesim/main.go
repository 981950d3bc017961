// linesim drives the line-collision pipeline over a fixed number of
// frames, selecting between the quadtree and brute-force detection paths.
// Flag handling follows kortschak/ins's cmd/ins/main.go (d126955e): stdlib
// flag with a flag.Usage override, no cobra/pflag.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/segcollide/sim/bruteforce"
	"github.com/segcollide/sim/events"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/lineio"
	"github.com/segcollide/sim/physics"
	"github.com/segcollide/sim/quadtree"
)

func main() {
	frames := flag.Int("frames", 1, "number of simulation frames to run")
	in := flag.String("in", "", "input line file (required)")
	mode := flag.String("mode", "quadtree", "detection path: quadtree or bruteforce")
	dt := flag.Float64("dt", 1.0/60.0, "step duration")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  %[1]s -in <lines.txt> [-frames N] [-mode quadtree|bruteforce] [-dt seconds]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	lineCollisions, wallCollisions, err := run(*in, *mode, *frames, *dt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Printf("Line-Line Collisions: %d\n", lineCollisions)
	fmt.Printf("Line-Wall Collisions: %d\n", wallCollisions)
}

func run(path, mode string, frames int, dt float64) (lineCollisions, wallCollisions int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	lines, err := lineio.ReadLines(f)
	if err != nil {
		return 0, 0, err
	}

	byID := make(map[uint32]*geom.Line, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}

	for frame := 0; frame < frames; frame++ {
		view := events.NewView()

		switch mode {
		case "quadtree":
			ix, buildErr := quadtree.Build(lines, dt, quadtree.DefaultConfig(), nil)
			if buildErr != nil {
				return 0, 0, buildErr
			}
			if queryErr := ix.Query(dt, view); queryErr != nil {
				return 0, 0, queryErr
			}
		case "bruteforce":
			bruteforce.Query(lines, dt, view)
		default:
			return 0, 0, fmt.Errorf("unknown mode %q", mode)
		}

		lineCollisions += view.Count()
		physics.Resolve(byID, view.Events())
		physics.Advance(lines, dt)
		wallCollisions += int64(physics.BounceWalls(lines))

		log.Printf("frame %d: %d line events, running wall hits %d", frame, view.Len(), wallCollisions)
	}

	return lineCollisions, wallCollisions, nil
}
