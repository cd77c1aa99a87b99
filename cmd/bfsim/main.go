// Command bfsim runs a tape machine program from a source file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/verify"
	"github.com/tebeka/atexit"
)

const usage = "usage: bfsim [flags] <file>"

type options struct {
	configPath string
	engine     string
	freqMHz    float64
	noOpt      bool
	trace      bool
	stats      bool
	dump       bool
	monitor    bool
	lint       bool
	report     bool
	reportOut  string
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("bfsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "YAML run profile")
	fs.StringVar(&opts.engine, "engine", string(config.EngineDirect), "execution engine: direct or sim")
	fs.Float64Var(&opts.freqMHz, "freq", 1000, "core frequency in MHz for the sim engine")
	fs.BoolVar(&opts.noOpt, "no-opt", false, "disable the optimizer")
	fs.BoolVar(&opts.trace, "trace", false, "log every executed instruction")
	fs.BoolVar(&opts.stats, "stats", false, "print executed instruction counts")
	fs.BoolVar(&opts.dump, "dump", false, "print the touched tape cells after the run")
	fs.BoolVar(&opts.monitor, "monitor", false, "serve the akita monitor (sim engine only)")
	fs.BoolVar(&opts.lint, "lint", false, "only run static checks")
	fs.BoolVar(&opts.report, "report", false, "only print a program report")
	fs.StringVar(&opts.reportOut, "report-out", "", "with -report, write the report to this file")

	return fs
}

// profile builds the run profile: the file given by -config, overridden by
// the flags set on the command line.
func profile(fs *flag.FlagSet, opts *options) (config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engine":
			cfg.Engine = config.EngineKind(opts.engine)
		case "freq":
			cfg.FreqMHz = opts.freqMHz
		case "no-opt":
			cfg.Optimize = !opts.noOpt
		case "trace":
			cfg.Trace = opts.trace
		case "stats":
			cfg.Stats = opts.stats
		case "dump":
			cfg.DumpTape = opts.dump
		case "monitor":
			cfg.Monitor = opts.monitor
		}
	})

	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	cfg, err := profile(fs, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	core.SetupLogger(stderr, cfg.Trace)

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "cannot open file: %v\n", err)
		return 1
	}

	switch {
	case opts.lint:
		return lint(string(src), stdout)
	case opts.report:
		return report(string(src), cfg, opts.reportOut, stdout, stderr)
	}

	return execute(string(src), cfg, stdin, stdout, stderr)
}

func lint(src string, stdout io.Writer) int {
	issues := verify.RunLint(src)
	for _, issue := range issues {
		fmt.Fprintln(stdout, issue)
	}

	if verify.HasStructIssues(issues) {
		return 1
	}

	return 0
}

func report(src string, cfg config.Config, out string, stdout, stderr io.Writer) int {
	r := verify.GenerateReport(src, programOptions(cfg))

	if out == "" {
		r.WriteReport(stdout)
	} else if err := r.SaveReportToFile(out); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if !r.CompileOK() {
		return 1
	}

	return 0
}

func execute(
	src string,
	cfg config.Config,
	stdin io.Reader,
	stdout, stderr io.Writer,
) int {
	out, in, flush := bufferedIO(cfg.BufferOutput, stdin, stdout)
	atexit.Register(func() { _ = flush() })

	driver := api.DriverBuilder{}.
		WithConfig(cfg).
		WithInput(in).
		WithOutput(out).
		Build("Driver")

	if err := driver.MapProgram(src); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	runErr := driver.Run()
	if err := flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	if cfg.Stats {
		writeStats(stderr, driver, cfg)
	}

	if cfg.DumpTape {
		m := driver.Machine()
		core.WriteTape(stderr, m.Tape(), m.Pos())
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}

	return 0
}

func writeStats(w io.Writer, driver api.Driver, cfg config.Config) {
	driver.Counter().WriteTable(w)

	fmt.Fprintf(w, "steps: %d\n", driver.Machine().Steps())
	if cfg.Engine == config.EngineSim {
		fmt.Fprintf(w, "simulated time: %.9fs\n", float64(driver.SimTime()))
	}
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
