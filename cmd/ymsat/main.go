// Command ymsat reads a DIMACS CNF instance and reports its satisfiability.
// It follows the SAT-competition exit-code convention: 10 for Sat, 20 for
// Unsat, 0 for Unknown (timeout or stop), and a nonzero non-10/20 code for
// usage or I/O errors. Adapted from the teacher's root main.go (flag
// parsing, optional CPU/memory profiling) onto this module's dimacs/sat
// packages.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/mna/ymsat/dimacs"
	"github.com/mna/ymsat/lbool"
	"github.com/mna/ymsat/sat"
)

var (
	flagConfig     = flag.String("config", "", "path to a JSON solver configuration file (default: discovered per YMSAT_CONF/YMSAT_CONFDIR/./ymsat.json)")
	flagGzip       = flag.Bool("gz", false, "treat the instance file as gzip-compressed")
	flagTimeLimit  = flag.Duration("time-limit", 0, "abort the search after this duration and exit 0 (0 means no limit)")
	flagVerbose    = flag.Bool("verbose", false, "print periodic search statistics to stdout")
	flagCPUProfile = flag.String("cpuprofile", "", "write a pprof CPU profile to this file")
	flagMemProfile = flag.String("memprofile", "", "write a pprof heap profile to this file")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ymsat [flags] <instance.cnf>")
		os.Exit(64)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	code, err := run(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ymsat:", err)
		if code == 0 {
			code = 1
		}
	}

	if *flagMemProfile != "" {
		f, err := os.Create(*flagMemProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	os.Exit(code)
}

func run(path string) (int, error) {
	cfg := sat.DiscoverConfig()
	if *flagConfig != "" {
		var err error
		cfg, err = sat.FromJSONFile(*flagConfig)
		if err != nil {
			return 1, err
		}
	}
	if *flagVerbose {
		cfg.Verbose = true
	}

	s, err := sat.NewSolver(cfg)
	if err != nil {
		return 1, err
	}

	f, err := openInstance(path, *flagGzip)
	if err != nil {
		return 1, err
	}
	defer f.Close()

	diags, err := dimacs.LoadSolver(f, s)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, "c", d)
	}
	if err != nil {
		return 1, err
	}

	fmt.Printf("c variables: %d\n", s.NumVariables())
	fmt.Printf("c clauses:   %d\n", s.NumConstraints())

	start := time.Now()
	status := s.Solve(nil, *flagTimeLimit)
	elapsed := time.Since(start)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d\n", s.TotalConflicts)
	fmt.Printf("c status:     %s\n", status)

	switch status {
	case sat.Sat:
		printModel(s)
		return 10, nil
	case sat.Unsat:
		return 20, nil
	default:
		return 0, nil
	}
}

func printModel(s *sat.Solver) {
	fmt.Print("v")
	model := s.Model()
	for v, val := range model {
		switch val {
		case lbool.True:
			fmt.Print(" ", v+1)
		case lbool.False:
			fmt.Print(" -", v+1)
		}
	}
	fmt.Println(" 0")
}

func openInstance(path string, gzipped bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gzipped {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, f}, nil
}
