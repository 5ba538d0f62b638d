// Package sim runs the time-stepped loop: a parallel update phase over the
// population, a barrier, then a read-only aggregation of the new state.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"amrsim/internal/catalog"
	"amrsim/internal/population"
	"amrsim/internal/rules"
	"amrsim/internal/util"
)

var ErrInvalidSteps = errors.New("invalid step count")

type Options struct {
	Seed            int64
	Workers         int // 0 means runtime.NumCPU()
	TrackedBacteria string
	SampleIndex     int
	Logger          *zap.Logger
	Reporter        *Reporter
}

type StepReport struct {
	Step      int      `json:"step"`
	Bacteria  string   `json:"bacteria,omitempty"`
	Tracked   bool     `json:"tracked"`
	Infected  int      `json:"infected"`
	Septic    int      `json:"septic"`
	MeanLevel float64  `json:"mean_level"`
	OnDrugs   int      `json:"on_drugs"`
	Sample    Snapshot `json:"sample"`
}

type Result struct {
	Seed            int64        `json:"seed"`
	Population      int          `json:"population"`
	Workers         int          `json:"workers"`
	TrackedBacteria string       `json:"tracked_bacteria"`
	Tracked         bool         `json:"tracked"`
	StepsRequested  int          `json:"steps_requested"`
	StepsCompleted  int          `json:"steps_completed"`
	Stopped         bool         `json:"stopped"`
	Duration        float64      `json:"duration_sec"`
	Steps           []StepReport `json:"steps"`
}

// Driver owns a population for the length of a run. Each step fans the
// rule engine out over contiguous spans of slots; a worker is the only
// writer of its span until the barrier.
type Driver struct {
	pop     *population.Population
	engine  *rules.Engine
	opts    Options
	log     *zap.Logger
	spans   []span
	tracked int // catalog index, -1 when the name is unknown
	day     int
	stop    atomic.Bool
}

func NewDriver(pop *population.Population, engine *rules.Engine, opts Options) (*Driver, error) {
	if opts.SampleIndex < 0 || opts.SampleIndex >= pop.Len() {
		return nil, fmt.Errorf("sample index %d outside population of %d", opts.SampleIndex, pop.Len())
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{
		pop:     pop,
		engine:  engine,
		opts:    opts,
		log:     log,
		spans:   partition(pop.Len(), opts.Workers),
		tracked: -1,
	}
	if b, ok := catalog.BacteriaIndex(opts.TrackedBacteria); ok {
		d.tracked = b
	} else {
		log.Warn("tracked bacteria not in catalog, infected counts will be skipped",
			zap.String("bacteria", opts.TrackedBacteria))
	}
	return d, nil
}

// Stop asks the driver to end the run once the current step completes.
func (d *Driver) Stop() { d.stop.Store(true) }

// Day is the number of steps applied so far across all Run calls.
func (d *Driver) Day() int { return d.day }

func (d *Driver) Tracked() bool { return d.tracked >= 0 }

// Run applies numSteps sequential steps. Cancelling ctx or calling Stop
// ends the run between steps, never inside one.
func (d *Driver) Run(ctx context.Context, numSteps int) (*Result, error) {
	if numSteps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSteps, numSteps)
	}
	start := time.Now()
	res := &Result{
		Seed:            d.opts.Seed,
		Population:      d.pop.Len(),
		Workers:         len(d.spans),
		TrackedBacteria: d.opts.TrackedBacteria,
		Tracked:         d.Tracked(),
		StepsRequested:  numSteps,
		Steps:           make([]StepReport, 0, numSteps),
	}
	d.log.Info("run started",
		zap.Int("population", d.pop.Len()),
		zap.Int("steps", numSteps),
		zap.Int("workers", len(d.spans)),
		zap.Int64("seed", d.opts.Seed))

	for i := 0; i < numSteps; i++ {
		if ctx.Err() != nil || d.stop.Load() {
			res.Stopped = true
			break
		}
		rep := d.Step()
		res.Steps = append(res.Steps, rep)
		res.StepsCompleted++
		if d.opts.Reporter != nil && !d.opts.Reporter.Publish(rep) {
			d.log.Debug("report dropped", zap.Int("step", rep.Step))
		}
	}
	res.Duration = time.Since(start).Seconds()
	d.log.Info("run finished",
		zap.Int("steps_completed", res.StepsCompleted),
		zap.Bool("stopped", res.Stopped),
		zap.Float64("duration_sec", res.Duration))
	return res, nil
}

// Step runs one update phase and one aggregation phase.
func (d *Driver) Step() StepReport {
	step := d.day
	t0 := time.Now()
	d.update(step)
	d.day++

	tally := aggregateSpans(d.pop.Individuals(), d.tracked, d.spans)
	rep := StepReport{
		Step:      step,
		Tracked:   d.Tracked(),
		Infected:  tally.Infected,
		Septic:    tally.Septic,
		MeanLevel: tally.MeanLevel(),
		OnDrugs:   tally.OnDrugs,
		Sample:    takeSnapshot(d.pop.At(d.opts.SampleIndex), d.tracked),
	}
	if d.Tracked() {
		rep.Bacteria = catalog.BacteriaName(d.tracked)
	}
	d.log.Debug("step complete",
		zap.Int("step", step),
		zap.Int("infected", rep.Infected),
		zap.Duration("elapsed", time.Since(t0)))
	return rep
}

func (d *Driver) update(step int) {
	inds := d.pop.Individuals()
	var g errgroup.Group
	for _, sp := range d.spans {
		g.Go(func() error {
			for i := sp.lo; i < sp.hi; i++ {
				ind := &inds[i]
				d.engine.ApplyStep(ind, step, util.Stream(d.opts.Seed, step, ind.ID))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func MarshalPretty(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
