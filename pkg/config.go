package dorothea

import (
	"errors"
	"fmt"
	"math"
)

// Configuration mirrors the run configuration file. The commands set the
// documented defaults before unmarshalling, so absent keys keep them.
type Configuration struct {
	RunNumber   int         `json:"run_number"`
	FilesIn     string      `json:"files_in"`
	FileOut     string      `json:"file_out"`
	Compression Compression `json:"compression"`
	NPrint      int         `json:"nprint"`
	NEvents     int         `json:"nevents"`
	RunAll      bool        `json:"run_all"`
	Verbosity   int         `json:"verbosity"`

	DriftV float64 `json:"drift_v"`

	S1EMin float64 `json:"s1_emin"`
	S1EMax float64 `json:"s1_emax"`
	S1LMin float64 `json:"s1_lmin"`
	S1LMax float64 `json:"s1_lmax"`
	S1HMin float64 `json:"s1_hmin"`
	S1HMax float64 `json:"s1_hmax"`
	S1EThr float64 `json:"s1_ethr"`

	S2NMax     int     `json:"s2_nmax"`
	S2EMin     float64 `json:"s2_emin"`
	S2EMax     float64 `json:"s2_emax"`
	S2LMin     float64 `json:"s2_lmin"`
	S2LMax     float64 `json:"s2_lmax"`
	S2HMin     float64 `json:"s2_hmin"`
	S2HMax     float64 `json:"s2_hmax"`
	S2NSipmMin int     `json:"s2_nsipmmin"`
	S2NSipmMax int     `json:"s2_nsipmmax"`
	S2EThr     float64 `json:"s2_ethr"`

	NoDB   bool   `json:"no_db"`
	DBFile string `json:"db_file"`
	Host   string `json:"host"`
	User   string `json:"user"`
	Passwd string `json:"pass"`
	DBName string `json:"dbname"`

	NumWorkers int `json:"num_workers"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// MaxEvents returns the input-event cap for the run. Negative means
// unbounded.
func (c Configuration) MaxEvents() int {
	if c.RunAll {
		return -1
	}
	return c.NEvents
}

// Validate checks the full selection-run configuration. All problems are
// reported at once.
func (c Configuration) Validate() error {
	var errs []error
	if c.FilesIn == "" {
		errs = append(errs, errors.New("files_in is not set"))
	}
	if c.FileOut == "" {
		errs = append(errs, errors.New("file_out is not set"))
	}
	if c.RunNumber < 0 {
		errs = append(errs, fmt.Errorf("run_number must not be negative, got %d", c.RunNumber))
	}
	if c.NPrint < 1 {
		errs = append(errs, fmt.Errorf("nprint must be at least 1, got %d", c.NPrint))
	}
	if !c.RunAll && c.NEvents < 1 {
		errs = append(errs, errors.New("nevents must be at least 1 unless run_all is set"))
	}
	if c.DriftV <= 0 {
		errs = append(errs, fmt.Errorf("drift_v must be positive, got %v", c.DriftV))
	}
	if c.S2NMax < 1 {
		errs = append(errs, fmt.Errorf("s2_nmax must be at least 1, got %d", c.S2NMax))
	}
	errs = append(errs, c.criteriaErrors()...)
	return errors.Join(errs...)
}

// ValidateCriteria checks only the peak bounds. pmapstats accepts a
// configuration without the output settings.
func (c Configuration) ValidateCriteria() error {
	return errors.Join(c.criteriaErrors()...)
}

func (c Configuration) criteriaErrors() []error {
	var errs []error
	checkBounds := func(name string, min, max float64) {
		if math.IsNaN(min) || math.IsNaN(max) || min > max {
			errs = append(errs, fmt.Errorf("invalid %s bounds [%v, %v]", name, min, max))
		}
	}
	checkBounds("s1 energy", c.S1EMin, c.S1EMax)
	checkBounds("s1 width", c.S1LMin, c.S1LMax)
	checkBounds("s1 height", c.S1HMin, c.S1HMax)
	checkBounds("s2 energy", c.S2EMin, c.S2EMax)
	checkBounds("s2 width", c.S2LMin, c.S2LMax)
	checkBounds("s2 height", c.S2HMin, c.S2HMax)
	if c.S1EThr < 0 {
		errs = append(errs, fmt.Errorf("s1_ethr must not be negative, got %v", c.S1EThr))
	}
	if c.S2EThr < 0 {
		errs = append(errs, fmt.Errorf("s2_ethr must not be negative, got %v", c.S2EThr))
	}
	if c.S2NSipmMin < 0 || c.S2NSipmMin > c.S2NSipmMax {
		errs = append(errs, fmt.Errorf("invalid s2 nsipm bounds [%d, %d]", c.S2NSipmMin, c.S2NSipmMax))
	}
	return errs
}
