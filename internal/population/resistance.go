package population

import "amrsim/internal/catalog"

// Dimension selects one of the five resistance axes of a cell.
type Dimension int

const (
	MicrobiomeR Dimension = iota
	TestR
	ActivityR
	EvolvedR
	ColonizingR
	NumDimensions
)

var dimensionTags = [NumDimensions]string{"microbiome_r", "test_r", "activity_r", "e_r", "c_r"}

func (d Dimension) String() string {
	if d < 0 || d >= NumDimensions {
		return "unknown"
	}
	return dimensionTags[d]
}

func ParseDimension(tag string) (Dimension, bool) {
	for i, t := range dimensionTags {
		if t == tag {
			return Dimension(i), true
		}
	}
	return 0, false
}

// ResistanceCell holds the resistance of one bacteria to one drug,
// indexed by Dimension.
type ResistanceCell [NumDimensions]float64

// ResistanceOf looks a resistance value up by catalog names and dimension
// tag. It reports false for any unknown name or tag.
func ResistanceOf(ind *Individual, bacteria, drug, dimension string) (float64, bool) {
	b, ok := catalog.BacteriaIndex(bacteria)
	if !ok {
		return 0, false
	}
	d, ok := catalog.DrugIndex(drug)
	if !ok {
		return 0, false
	}
	dim, ok := ParseDimension(dimension)
	if !ok {
		return 0, false
	}
	return ind.Res[b][d][dim], true
}

// MeanResistance averages one dimension over every drug for bacteria b.
func (ind *Individual) MeanResistance(b int, dim Dimension) float64 {
	sum := 0.0
	for d := range ind.Res[b] {
		sum += ind.Res[b][d][dim]
	}
	return sum / float64(catalog.NumDrugs)
}
