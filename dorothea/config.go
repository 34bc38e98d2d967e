package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	dorothea "github.com/next-exp/dorothea_go/pkg"
)

func LoadConfiguration(filename string) (dorothea.Configuration, error) {
	var config dorothea.Configuration

	// Set default values
	config.RunNumber = 0
	config.Compression = dorothea.DefaultCompression
	config.NPrint = 10000
	config.NEvents = 0
	config.RunAll = false
	config.Verbosity = 0
	config.DriftV = 1.0
	config.S1EMin = 0
	config.S1EMax = math.Inf(1)
	config.S1LMin = 0
	config.S1LMax = math.Inf(1)
	config.S1HMin = 0
	config.S1HMax = math.Inf(1)
	config.S1EThr = 0
	config.S2NMax = 1
	config.S2EMin = 0
	config.S2EMax = math.Inf(1)
	config.S2LMin = 0
	config.S2LMax = math.Inf(1)
	config.S2HMin = 0
	config.S2HMax = math.Inf(1)
	config.S2NSipmMin = 1
	config.S2NSipmMax = math.MaxInt32
	config.S2EThr = 0
	config.NoDB = false
	config.Host = "next.ific.uv.es"
	config.User = "nextreader"
	config.Passwd = "readonly"
	config.DBName = "NEXT100"
	config.NumWorkers = 1

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config dorothea.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Files in: %s", config.FilesIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Compression: %s", config.Compression), "config")
	logger.Info(fmt.Sprintf("NPrint: %d", config.NPrint), "config")
	logger.Info(fmt.Sprintf("Events: %d", config.NEvents), "config")
	logger.Info(fmt.Sprintf("Run all: %t", config.RunAll), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Drift velocity: %g", config.DriftV), "config")
	logger.Info(fmt.Sprintf("S1 energy: [%g, %g]", config.S1EMin, config.S1EMax), "config")
	logger.Info(fmt.Sprintf("S1 width: [%g, %g]", config.S1LMin, config.S1LMax), "config")
	logger.Info(fmt.Sprintf("S1 height: [%g, %g]", config.S1HMin, config.S1HMax), "config")
	logger.Info(fmt.Sprintf("S1 threshold: %g", config.S1EThr), "config")
	logger.Info(fmt.Sprintf("S2 peaks kept: %d", config.S2NMax), "config")
	logger.Info(fmt.Sprintf("S2 energy: [%g, %g]", config.S2EMin, config.S2EMax), "config")
	logger.Info(fmt.Sprintf("S2 width: [%g, %g]", config.S2LMin, config.S2LMax), "config")
	logger.Info(fmt.Sprintf("S2 height: [%g, %g]", config.S2HMin, config.S2HMax), "config")
	logger.Info(fmt.Sprintf("S2 threshold: %g", config.S2EThr), "config")
	logger.Info(fmt.Sprintf("S2 SiPMs: [%d, %d]", config.S2NSipmMin, config.S2NSipmMax), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB file: %s", config.DBFile), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}
