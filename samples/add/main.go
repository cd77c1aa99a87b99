package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/tebeka/atexit"
)

//go:embed add.b
var addProgram string

func add(driver api.Driver) {
	if err := driver.MapProgram(addProgram); err != nil {
		panic(err)
	}

	if err := driver.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	fmt.Println()
	driver.Counter().WriteTable(os.Stdout)
}

func main() {
	core.SetupLogger(os.Stderr, false)

	cfg := config.Default()
	cfg.Stats = true

	driver := api.DriverBuilder{}.
		WithConfig(cfg).
		WithInput(strings.NewReader("34")).
		WithOutput(os.Stdout).
		Build("Driver")

	add(driver)
	atexit.Exit(0)
}
