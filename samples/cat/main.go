package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/core"
	"github.com/tebeka/atexit"
)

// Copies stdin to stdout. The cell is cleared before each read, so the loop
// ends when input runs out.
//
//go:embed cat.b
var catProgram string

func cat(driver api.Driver) error {
	if err := driver.MapProgram(catProgram); err != nil {
		return err
	}

	return driver.Run()
}

func main() {
	core.SetupLogger(os.Stderr, false)

	driver := api.DriverBuilder{}.
		WithInput(os.Stdin).
		WithOutput(os.Stdout).
		Build("Driver")

	if err := cat(driver); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
