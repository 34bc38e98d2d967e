package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	dorothea "github.com/next-exp/dorothea_go/pkg"
)

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

// pmapstats surveys PMap files and prints the observed ranges of every
// quantity the selection cuts on. The output is the starting point for
// choosing the bounds of a selection run.
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

	jobs := make(chan string, len(files))
	results := make(chan WorkerResult, len(files))

	loader := &lockedLoader{loader: dorothea.PMapReader{}}
	for w := 1; w <= configuration.NumWorkers; w++ {
		go worker(w, loader, jobs, results)
	}
	for _, filename := range files {
		jobs <- filename
	}
	close(jobs)

	total := FileStats{}
	empties, failures := 0, 0
	for range files {
		result := <-results
		switch {
		case result.Err != nil:
			failures++
			logger.Error(result.Err.Error())
		case result.Empty:
			empties++
			message := fmt.Sprintf("No PMap data in %s", result.Filename)
			logger.Info(message, "main")
		default:
			total.merge(result.Stats)
		}
	}

	printStats(total, len(files), empties, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func printStats(total FileStats, nFiles int, empties int, failures int) {
	message := fmt.Sprintf("Files surveyed: %d (%d empty, %d failed)", nFiles, empties, failures)
	logger.Info(message, "main")
	logger.Info(fmt.Sprintf("Events: %d", total.Events), "main")
	printClass("S1", total.S1, false)
	printClass("S2", total.S2, true)
}

func printClass(name string, stats ClassStats, withSipms bool) {
	printQuantity(name+" peaks/event", stats.Peaks)
	printQuantity(name+" energy", stats.Energy)
	printQuantity(name+" width", stats.Width)
	printQuantity(name+" height", stats.Height)
	if withSipms {
		printQuantity(name+" sipms/peak", stats.Sipms)
	}
}

func printQuantity(name string, stats QuantityStats) {
	message := fmt.Sprintf("%-15s min %g, max %g, mean %.3f", name, stats.Min, stats.Max, stats.Mean())
	logger.Info(message, "main")
}
