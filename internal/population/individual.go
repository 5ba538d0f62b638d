package population

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"amrsim/internal/catalog"
	"amrsim/internal/util"
)

var ErrInvalidIndividual = errors.New("invalid individual")

// NewIndividual builds an individual with every catalog field drawn
// independently from its initial distribution.
func NewIndividual(id, age int, sex Sex, r *rand.Rand) Individual {
	ind := Individual{ID: id, Age: age, Sex: sex}
	initIndividual(&ind, r)
	return ind
}

// initIndividual fills ind in place so the population can build straight
// into its backing slice.
func initIndividual(ind *Individual, r *rand.Rand) {
	for b := range ind.Bact {
		ind.Bact[b] = BacteriaState{
			DaysSinceInfection: r.IntN(365),
			InfectiousSyndrome: r.Float64(),
			Level:              util.Uniform(r, 0, 1000),
			ImmuneResponse:     r.Float64(),
			Septic:             util.Bernoulli(r, 0.1),
			Microbiome:         r.Float64(),
		}
		for d := range ind.Res[b] {
			cell := &ind.Res[b][d]
			cell[MicrobiomeR] = r.Float64()
			cell[TestR] = r.Float64()
			cell[ActivityR] = r.Float64()
			cell[EvolvedR] = float64(r.IntN(11))
			cell[ColonizingR] = float64(r.IntN(11))
		}
	}
	for v := range ind.Vacc {
		ind.Vacc[v] = util.Bernoulli(r, 0.5)
	}
	for d := range ind.Drug {
		inUse := util.Bernoulli(r, 0.05)
		level := 0.0
		if inUse {
			level = util.Uniform(r, 0.1, 1.0)
		}
		ind.Drug[d] = DrugState{InUse: inUse, Level: level}
	}
	ind.Exp = Exposure{
		InfectionDeathRisk:    util.Uniform(r, 0, 0.001),
		BackgroundMortality:   util.Uniform(r, 0, 0.0001),
		SexualContact:         util.Uniform(r, 0, 10),
		AirborneContactAdult:  util.Uniform(r, 0, 20),
		AirborneContactChild:  util.Uniform(r, 0, 20),
		OralExposure:          r.Float64(),
		MosquitoExposure:      r.Float64(),
		UnderCare:             util.Bernoulli(r, 0.05),
		HospitalAcquired:      util.Bernoulli(r, 0.01),
		Toxicity:              r.Float64(),
		ToxicityMortalityRisk: util.Uniform(r, 0, 0.001),
	}
}

func (ind *Individual) Bacteria(name string) (BacteriaState, bool) {
	b, ok := catalog.BacteriaIndex(name)
	if !ok {
		return BacteriaState{}, false
	}
	return ind.Bact[b], true
}

func (ind *Individual) DrugState(name string) (DrugState, bool) {
	d, ok := catalog.DrugIndex(name)
	if !ok {
		return DrugState{}, false
	}
	return ind.Drug[d], true
}

// Vaccinated reports the vaccination flag for name; the second result is
// false when name is not a catalog vaccine.
func (ind *Individual) Vaccinated(name string) (bool, bool) {
	v, ok := catalog.VaccineIndex(name)
	if !ok {
		return false, false
	}
	return ind.Vacc[v], true
}

// DrugsInUse counts drugs currently in use.
func (ind *Individual) DrugsInUse() int {
	n := 0
	for _, d := range ind.Drug {
		if d.InUse {
			n++
		}
	}
	return n
}

// Validate checks the invariants the array layout cannot express.
func (ind *Individual) Validate() error {
	if ind.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidIndividual, ind.ID)
	}
	if ind.Age < 0 {
		return fmt.Errorf("%w: individual %d has negative age %d", ErrInvalidIndividual, ind.ID, ind.Age)
	}
	if ind.Sex != Male && ind.Sex != Female {
		return fmt.Errorf("%w: individual %d has sex %d", ErrInvalidIndividual, ind.ID, ind.Sex)
	}
	return nil
}
