package rules

import "amrsim/internal/population"

// Bounds is the explicit clamping policy. When Enabled, fields with a
// natural domain are pulled back into it after each step:
//
//	bacterial level, syndrome, microbiome, days since infection  >= 0
//	immune response                                                [0, 1]
//	drug level, exposure and risk scalars                         >= 0
//	every resistance dimension                      [MinResistance, MaxResistance]
type Bounds struct {
	Enabled       bool
	MinResistance float64
	MaxResistance float64
}

func (b Bounds) Apply(ind *population.Individual) {
	for i := range ind.Bact {
		bs := &ind.Bact[i]
		if bs.DaysSinceInfection < 0 {
			bs.DaysSinceInfection = 0
		}
		bs.InfectiousSyndrome = atLeastZero(bs.InfectiousSyndrome)
		bs.Level = atLeastZero(bs.Level)
		bs.ImmuneResponse = clamp(bs.ImmuneResponse, 0, 1)
		bs.Microbiome = atLeastZero(bs.Microbiome)
	}
	for d := range ind.Drug {
		ind.Drug[d].Level = atLeastZero(ind.Drug[d].Level)
	}
	x := &ind.Exp
	for _, f := range []*float64{
		&x.InfectionDeathRisk, &x.BackgroundMortality, &x.SexualContact,
		&x.AirborneContactAdult, &x.AirborneContactChild, &x.OralExposure,
		&x.MosquitoExposure, &x.Toxicity, &x.ToxicityMortalityRisk,
	} {
		*f = atLeastZero(*f)
	}
	for i := range ind.Res {
		for d := range ind.Res[i] {
			cell := &ind.Res[i][d]
			for k := range cell {
				cell[k] = clamp(cell[k], b.MinResistance, b.MaxResistance)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func atLeastZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
