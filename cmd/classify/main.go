// Command classify loads a trajectory file once and answers neighbor queries
// read from standard input.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jengzang/trajectory-classifier/internal/classification"
	"github.com/jengzang/trajectory-classifier/internal/loader"
)

const helpMenu = `
    -h : show help menu
    --filename <path> : specify the path of the loaded file
    --showClassifications : debug command to show the classifications
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, helpMenu+"\n")
		return 0
	}

	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filename := fs.String("filename", "", "path of the trajectory file")
	showClassifications := fs.Bool("showClassifications", false, "print every retention array after each query")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 || *filename == "" {
		fmt.Fprint(stdout, helpMenu+"\n")
		return 0
	}

	set, err := loader.ReadFile(*filename)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	engine, err := classification.Load(set)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if engine.Len() == 0 {
		fmt.Fprint(stdout, "No trajectories loaded.\n")
		return 0
	}

	queryLoop(engine, stdin, stdout, *showClassifications)
	return 0
}

// queryLoop prompts for a trajectory index and a metric code until stdin ends
func queryLoop(engine *classification.Engine, stdin io.Reader, stdout io.Writer, showClassifications bool) {
	sc := bufio.NewScanner(stdin)
	sc.Split(bufio.ScanWords)

	for {
		fmt.Fprint(stdout, "Please select trajectory and metric.\n")
		fmt.Fprintf(stdout, "  Trajectories [ 0 - %d ] : ", engine.Len()-1)
		if !sc.Scan() {
			fmt.Fprintln(stdout)
			return
		}
		index, indexErr := strconv.Atoi(sc.Text())

		fmt.Fprint(stdout, "  Metrics ( Length: 1, Speed: 2 ) : ")
		if !sc.Scan() {
			fmt.Fprintln(stdout)
			return
		}
		metric, metricErr := classification.ParseMetric(sc.Text())

		var ids []int
		err := errors.Join(indexErr, metricErr)
		if err == nil {
			ids, err = engine.Query(index, metric)
		}
		if err != nil {
			fmt.Fprint(stdout, "Trajectory or Metric have bad values\n")
			continue
		}

		fmt.Fprintf(stdout, "Closest trajectories from trajectory %d based on %s \n", index, metric)
		for _, id := range ids {
			fmt.Fprintf(stdout, "%d ", id)
		}
		fmt.Fprintln(stdout)

		if showClassifications {
			printClassifications(engine, stdout)
		}
	}
}

func printClassifications(engine *classification.Engine, stdout io.Writer) {
	dump := engine.Dump()
	for _, m := range classification.Metrics {
		fmt.Fprintf(stdout, "%s :\n", m)
		for _, c := range dump {
			fmt.Fprintf(stdout, "traj[%d] : ", c.Index)
			for _, s := range c.Slots[m.String()] {
				fmt.Fprintf(stdout, "%g (%d), ", s.Score, s.NeighborID)
			}
			fmt.Fprintln(stdout)
		}
	}
}
