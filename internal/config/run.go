package config

import (
	"errors"
	"fmt"
)

var ErrInvalidRun = errors.New("invalid run settings")

// Parameter keys that size a run.
const (
	KeyPopulationSize = "population_size"
	KeyNumTimeSteps   = "num_time_steps"
)

const DefaultTrackedBacteria = "streptococcus_pneumoniae"

type RunSettings struct {
	PopulationSize  int
	NumTimeSteps    int
	TrackedBacteria string
	SampleIndex     int
	Seed            int64
	Workers         int
	Clamp           bool
}

// runBlock is the run: section as written. Sizing fields are pointers so
// an explicit 0 is told apart from an omitted key.
type runBlock struct {
	PopulationSize  *int   `yaml:"population_size"`
	NumTimeSteps    *int   `yaml:"num_time_steps"`
	TrackedBacteria string `yaml:"tracked_bacteria"`
	SampleIndex     int    `yaml:"sample_index"`
	Seed            int64  `yaml:"seed"`
	Workers         int    `yaml:"workers"`
	Clamp           bool   `yaml:"clamp"`
}

func (b runBlock) settings(p *Parameters) (*RunSettings, error) {
	r := &RunSettings{
		TrackedBacteria: b.TrackedBacteria,
		SampleIndex:     b.SampleIndex,
		Seed:            b.Seed,
		Workers:         b.Workers,
		Clamp:           b.Clamp,
	}
	if b.PopulationSize != nil {
		r.PopulationSize = *b.PopulationSize
	} else if v, ok, err := p.integer(KeyPopulationSize); err != nil {
		return nil, err
	} else if ok {
		r.PopulationSize = v
	}
	if b.NumTimeSteps != nil {
		r.NumTimeSteps = *b.NumTimeSteps
	} else if v, ok, err := p.integer(KeyNumTimeSteps); err != nil {
		return nil, err
	} else if ok {
		r.NumTimeSteps = v
	}
	if r.TrackedBacteria == "" {
		r.TrackedBacteria = DefaultTrackedBacteria
	}
	return r, nil
}

// Validate checks sizing only. The tracked bacteria name is checked by the
// driver, where a miss is reported but not fatal.
func (r *RunSettings) Validate() error {
	if r.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidRun, r.PopulationSize)
	}
	if r.NumTimeSteps < 0 {
		return fmt.Errorf("%w: time steps must be non-negative, got %d", ErrInvalidRun, r.NumTimeSteps)
	}
	if r.SampleIndex < 0 || r.SampleIndex >= r.PopulationSize {
		return fmt.Errorf("%w: sample index %d outside population of %d", ErrInvalidRun, r.SampleIndex, r.PopulationSize)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidRun, r.Workers)
	}
	return nil
}
