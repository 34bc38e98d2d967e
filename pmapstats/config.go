package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	dorothea "github.com/next-exp/dorothea_go/pkg"
)

// LoadConfiguration reads the same configuration files as the selection
// run, but only requires the fields the survey uses.
func LoadConfiguration(filename string) (dorothea.Configuration, error) {
	var config dorothea.Configuration

	// Set default values
	config.Compression = dorothea.DefaultCompression
	config.Verbosity = 0
	config.S1EThr = 0
	config.S2EThr = 0
	config.S1EMax = math.Inf(1)
	config.S1LMax = math.Inf(1)
	config.S1HMax = math.Inf(1)
	config.S2EMax = math.Inf(1)
	config.S2LMax = math.Inf(1)
	config.S2HMax = math.Inf(1)
	config.S2NSipmMax = math.MaxInt32
	config.NumWorkers = 1

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	if config.FilesIn == "" {
		return config, errors.New("files_in is not set")
	}
	if config.NumWorkers < 1 {
		return config, fmt.Errorf("num_workers must be at least 1, got %d", config.NumWorkers)
	}
	if err := config.ValidateCriteria(); err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config dorothea.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Files in: %s", config.FilesIn), "config")
	logger.Info(fmt.Sprintf("S1 threshold: %g", config.S1EThr), "config")
	logger.Info(fmt.Sprintf("S2 threshold: %g", config.S2EThr), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
