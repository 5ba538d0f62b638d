// Package rules implements the per-step stochastic transition applied to
// each individual. The transition is a placeholder random walk: every field
// takes an independent perturbation each day.
package rules

import (
	"fmt"
	"math/rand/v2"

	"amrsim/internal/config"
	"amrsim/internal/population"
)

// Parameter keys the engine reads.
const (
	KeyMinResistance = "min_resistance_level"
	KeyMaxResistance = "max_resistance_level"
)

const (
	septicFlipProb   = 0.1
	vaccineFlipProb  = 0.1
	drugStartProb    = 0.1
	careFlagFlipProb = 0.1
)

type Options struct {
	// Clamp enables the Bounds policy after each step. Off by default,
	// which leaves every field an unbounded walk.
	Clamp bool
}

// Engine holds only read-only settings; ApplyStep touches nothing but the
// individual it is given, so any number of goroutines may share one Engine.
type Engine struct {
	bounds Bounds
}

// NewEngine checks that every parameter the engine reads is present. A
// missing key is a startup error, never a per-step one.
func NewEngine(params *config.Parameters, opts Options) (*Engine, error) {
	if err := params.Require(KeyMinResistance, KeyMaxResistance); err != nil {
		return nil, fmt.Errorf("rule engine: %w", err)
	}
	lo, _ := params.Get(KeyMinResistance)
	hi, _ := params.Get(KeyMaxResistance)
	if hi < lo {
		return nil, fmt.Errorf("rule engine: %s %.2f below %s %.2f", KeyMaxResistance, hi, KeyMinResistance, lo)
	}
	return &Engine{bounds: Bounds{Enabled: opts.Clamp, MinResistance: lo, MaxResistance: hi}}, nil
}

func (e *Engine) Bounds() Bounds { return e.bounds }

// ApplyStep advances ind by one day using draws from r only. The base rule
// does not depend on step; it is passed so richer rules can.
func (e *Engine) ApplyStep(ind *population.Individual, step int, r *rand.Rand) {
	ind.Age++

	for b := range ind.Bact {
		bs := &ind.Bact[b]
		bs.DaysSinceInfection += r.IntN(3) - 1
		bs.InfectiousSyndrome += delta(r)
		bs.Level += delta(r)
		bs.ImmuneResponse += delta(r)
		bs.Septic = flip(r, bs.Septic, septicFlipProb)
		bs.Microbiome += delta(r)
	}

	for v := range ind.Vacc {
		ind.Vacc[v] = flip(r, ind.Vacc[v], vaccineFlipProb)
	}

	for d := range ind.Drug {
		ds := &ind.Drug[d]
		ds.InUse = resample(r, drugStartProb)
		ds.Level += delta(r)
	}

	x := &ind.Exp
	x.InfectionDeathRisk += delta(r)
	x.BackgroundMortality += delta(r)
	x.SexualContact += delta(r)
	x.AirborneContactAdult += delta(r)
	x.AirborneContactChild += delta(r)
	x.OralExposure += delta(r)
	x.MosquitoExposure += delta(r)
	x.UnderCare = flip(r, x.UnderCare, careFlagFlipProb)
	x.HospitalAcquired = flip(r, x.HospitalAcquired, careFlagFlipProb)
	x.Toxicity += delta(r)
	x.ToxicityMortalityRisk += delta(r)

	for b := range ind.Res {
		for d := range ind.Res[b] {
			cell := &ind.Res[b][d]
			for k := range cell {
				cell[k] += delta(r)
			}
		}
	}

	if e.bounds.Enabled {
		e.bounds.Apply(ind)
	}
}

// delta draws an additive perturbation in [-1, 1).
func delta(r *rand.Rand) float64 {
	return r.Float64()*2 - 1
}

// flip negates cur with probability p.
func flip(r *rand.Rand, cur bool, p float64) bool {
	if r.Float64() < p {
		return !cur
	}
	return cur
}

// resample draws a fresh Bernoulli(p), ignoring the previous value.
func resample(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
