package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	dorothea "github.com/next-exp/dorothea_go/pkg"
)

var dbConn *sqlx.DB
var configuration dorothea.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	dorothea.SetConfiguration(configuration)
	dorothea.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	files, err := filepath.Glob(configuration.FilesIn)
	if err != nil {
		message := fmt.Errorf("Error expanding input pattern: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if len(files) == 0 {
		message := fmt.Sprintf("No input files match %s", configuration.FilesIn)
		logger.Error(message)
		os.Exit(1)
	}
	sort.Strings(files)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of input files: %d", len(files))
		logger.Info(message, "main")
	}

	var positions map[int]dorothea.XY
	if !configuration.NoDB {
		dbConn, err = connectToDatabase()
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		positions, err = dorothea.GetSiPMPositions(dbConn, configuration.RunNumber)
		if err != nil {
			message := fmt.Errorf("Error reading SiPM positions: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
	}

	selector := dorothea.NewEventSelector(configuration, positions)
	writer := dorothea.NewWriter(configuration.FileOut, configuration.RunNumber)
	loop := dorothea.NewEventLoop(selector, dorothea.PMapReader{}, writer,
		configuration.MaxEvents(), configuration.NPrint)

	start := time.Now()
	summary, runErr := loop.Run(files)
	duration := time.Since(start)

	if err := writer.Close(); err != nil {
		message := fmt.Errorf("Error closing output file: %w", err)
		logger.Error(message.Error())
	}

	printSummary(summary, duration)

	if runErr != nil {
		logger.Error(runErr.Error())
		os.Exit(1)
	}
}

func connectToDatabase() (*sqlx.DB, error) {
	if configuration.DBFile != "" {
		return dorothea.ConnectToLocalDatabase(configuration.DBFile)
	}
	return dorothea.ConnectToDatabase(configuration.User, configuration.Passwd,
		configuration.Host, configuration.DBName)
}

func printSummary(summary dorothea.RunSummary, duration time.Duration) {
	logger.Info(fmt.Sprintf("Number of events in : %d", summary.EventsIn), "main")
	logger.Info(fmt.Sprintf("Number of events out: %d", summary.EventsOut), "main")
	if ratio, ok := summary.Ratio(); ok {
		logger.Info(fmt.Sprintf("Ratio               : %g", ratio), "main")
	} else {
		logger.Info("Ratio               : undefined (no input events)", "main")
	}
	seconds := duration.Seconds()
	if summary.EventsIn > 0 {
		message := fmt.Sprintf("run %d evts in %g s, time/event = %g s",
			summary.EventsIn, seconds, seconds/float64(summary.EventsIn))
		logger.Info(message, "main")
	}
}
