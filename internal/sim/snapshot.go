package sim

import (
	"amrsim/internal/catalog"
	"amrsim/internal/population"
)

// Snapshot is a copy of the sample individual's state after a step. It
// shares no memory with the population.
type Snapshot struct {
	ID              int                       `json:"id"`
	Age             int                       `json:"age"`
	Sex             string                    `json:"sex"`
	Bacteria        string                    `json:"bacteria,omitempty"`
	State           *population.BacteriaState `json:"state,omitempty"`
	MeanEvolvedR    float64                   `json:"mean_e_r,omitempty"`
	MeanColonizingR float64                   `json:"mean_c_r,omitempty"`
	DrugsInUse      int                       `json:"drugs_in_use"`
	Vaccinated      map[string]bool           `json:"vaccinated"`
	Exposure        population.Exposure       `json:"exposure"`
}

func takeSnapshot(ind *population.Individual, bacteria int) Snapshot {
	s := Snapshot{
		ID:         ind.ID,
		Age:        ind.Age,
		Sex:        ind.Sex.String(),
		DrugsInUse: ind.DrugsInUse(),
		Vaccinated: make(map[string]bool, catalog.NumVaccines),
		Exposure:   ind.Exp,
	}
	for v, on := range ind.Vacc {
		s.Vaccinated[catalog.VaccineName(v)] = on
	}
	if bacteria >= 0 {
		st := ind.Bact[bacteria]
		s.Bacteria = catalog.BacteriaName(bacteria)
		s.State = &st
		s.MeanEvolvedR = ind.MeanResistance(bacteria, population.EvolvedR)
		s.MeanColonizingR = ind.MeanResistance(bacteria, population.ColonizingR)
	}
	return s
}
