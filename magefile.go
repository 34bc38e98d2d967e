//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildDorothea)
	mg.Deps(BuildPmapStats)
	fmt.Println("Compilation finished")
	return nil
}

func BuildDorothea() error {
	return buildCommand("dorothea")
}

func BuildPmapStats() error {
	return buildCommand("pmapstats")
}

// buildCommand compiles one command with cgo enabled, the HDF5 bindings
// need the flags from the environment.
func buildCommand(name string) error {
	fmt.Printf("Building %s executable...\n", name)
	cmd := exec.Command("go", "build", "-o", "./bin/"+name, "./"+name)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", os.Getenv("CGO_LDFLAGS")),
		fmt.Sprintf("CGO_CFLAGS=%s", os.Getenv("CGO_CFLAGS")))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
