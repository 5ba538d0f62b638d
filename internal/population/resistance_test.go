package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amrsim/internal/catalog"
	"amrsim/internal/util"
)

func TestResistanceOf(t *testing.T) {
	ind := NewIndividual(0, 10, Male, util.New(2))
	b, _ := catalog.BacteriaIndex("klebsiella_pneumoniae")
	d, _ := catalog.DrugIndex("meropenem")
	ind.Res[b][d][ColonizingR] = 7

	v, ok := ResistanceOf(&ind, "klebsiella_pneumoniae", "meropenem", "c_r")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	tests := []struct {
		name                   string
		bacteria, drug, dimTag string
	}{
		{"unknown bacteria", "not_a_bug", "meropenem", "c_r"},
		{"unknown drug", "klebsiella_pneumoniae", "aspirin", "c_r"},
		{"unknown dimension", "klebsiella_pneumoniae", "meropenem", "x_r"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ResistanceOf(&ind, tt.bacteria, tt.drug, tt.dimTag)
			assert.False(t, ok)
		})
	}
}

func TestResistanceOfEveryValidTriple(t *testing.T) {
	ind := NewIndividual(0, 10, Female, util.New(4))
	before := ind
	for _, b := range catalog.Bacteria() {
		for _, d := range catalog.Drugs() {
			for dim := Dimension(0); dim < NumDimensions; dim++ {
				_, ok := ResistanceOf(&ind, b, d, dim.String())
				require.True(t, ok, "%s/%s/%s", b, d, dim)
			}
		}
	}
	assert.Equal(t, before, ind, "lookup must not mutate")
}

func TestParseDimension(t *testing.T) {
	for dim := Dimension(0); dim < NumDimensions; dim++ {
		got, ok := ParseDimension(dim.String())
		require.True(t, ok)
		assert.Equal(t, dim, got)
	}
	_, ok := ParseDimension("evolved")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Dimension(-1).String())
}

func TestMeanResistance(t *testing.T) {
	var ind Individual
	for d := range ind.Res[3] {
		ind.Res[3][d][EvolvedR] = 2
	}
	assert.InDelta(t, 2.0, ind.MeanResistance(3, EvolvedR), 1e-12)
	assert.Zero(t, ind.MeanResistance(4, EvolvedR))
}
