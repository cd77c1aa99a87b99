package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/tebeka/atexit"
)

//go:embed hello.b
var helloProgram string

func main() {
	core.SetupLogger(os.Stderr, false)

	engine := sim.NewSerialEngine()

	cfg := config.Default()
	cfg.Engine = config.EngineSim

	driver := api.DriverBuilder{}.
		WithConfig(cfg).
		WithEngine(engine).
		WithOutput(os.Stdout).
		Build("Driver")

	if err := driver.MapProgram(helloProgram); err != nil {
		panic(err)
	}

	if err := driver.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	fmt.Printf("finished at %.9fs\n", float64(engine.CurrentTime()))
	atexit.Exit(0)
}
