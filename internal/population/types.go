// Package population holds the per-individual state record and the
// fixed-size population container the driver updates in place.
package population

import "amrsim/internal/catalog"

type Sex uint8

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return "unknown"
}

// BacteriaState is the six per-bacteria fields of one individual.
type BacteriaState struct {
	DaysSinceInfection int     `json:"days_since_infection"`
	InfectiousSyndrome float64 `json:"infectious_syndrome"`
	Level              float64 `json:"level"`
	ImmuneResponse     float64 `json:"immune_response"`
	Septic             bool    `json:"septic"`
	Microbiome         float64 `json:"microbiome"`
}

type DrugState struct {
	InUse bool    `json:"in_use"`
	Level float64 `json:"level"`
}

// Exposure groups the scalar risk and exposure fields.
type Exposure struct {
	InfectionDeathRisk    float64 `json:"infection_death_risk"`
	BackgroundMortality   float64 `json:"background_mortality"`
	SexualContact         float64 `json:"sexual_contact"`
	AirborneContactAdult  float64 `json:"airborne_contact_adult"`
	AirborneContactChild  float64 `json:"airborne_contact_child"`
	OralExposure          float64 `json:"oral_exposure"`
	MosquitoExposure      float64 `json:"mosquito_exposure"`
	UnderCare             bool    `json:"under_care"`
	HospitalAcquired      bool    `json:"hospital_acquired"`
	Toxicity              float64 `json:"toxicity"`
	ToxicityMortalityRisk float64 `json:"toxicity_mortality_risk"`
}

// Individual is one simulated person. All catalog-keyed state lives in
// fixed-size arrays, so an Individual always holds exactly one entry per
// catalog name.
type Individual struct {
	ID   int
	Sex  Sex
	Age  int // days
	Bact [catalog.NumBacteria]BacteriaState
	Res  [catalog.NumBacteria][catalog.NumDrugs]ResistanceCell
	Vacc [catalog.NumVaccines]bool
	Drug [catalog.NumDrugs]DrugState
	Exp  Exposure
}
