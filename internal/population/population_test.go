package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amrsim/internal/catalog"
	"amrsim/internal/util"
)

func TestNewPopulation(t *testing.T) {
	p, err := New(200, util.New(1))
	require.NoError(t, err)
	require.Equal(t, 200, p.Len())

	males := 0
	for i := 0; i < p.Len(); i++ {
		ind := p.At(i)
		assert.Equal(t, i, ind.ID)
		assert.GreaterOrEqual(t, ind.Age, 0)
		assert.Less(t, ind.Age, MaxAge)
		if ind.Sex == Male {
			males++
		}
	}
	assert.Greater(t, males, 0)
	assert.Less(t, males, 200)
}

func TestNewPopulationRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := New(n, util.New(1))
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestEveryCatalogEntryPopulated(t *testing.T) {
	p, err := New(20, util.New(9))
	require.NoError(t, err)
	for i := 0; i < p.Len(); i++ {
		ind := p.At(i)
		for _, name := range catalog.Bacteria() {
			_, ok := ind.Bacteria(name)
			assert.True(t, ok, name)
		}
		cells := 0
		for b := range ind.Res {
			cells += len(ind.Res[b])
		}
		assert.Equal(t, 21*41, cells)
	}
}

func TestInitialDistributions(t *testing.T) {
	r := util.New(3)
	for n := 0; n < 50; n++ {
		ind := NewIndividual(n, 30, Female, r)
		for _, b := range ind.Bact {
			assert.GreaterOrEqual(t, b.Level, 0.0)
			assert.Less(t, b.Level, 1000.0)
			assert.GreaterOrEqual(t, b.ImmuneResponse, 0.0)
			assert.Less(t, b.ImmuneResponse, 1.0)
			assert.Less(t, b.InfectiousSyndrome, 1.0)
			assert.Less(t, b.Microbiome, 1.0)
		}
		for _, d := range ind.Drug {
			if d.InUse {
				assert.GreaterOrEqual(t, d.Level, 0.1)
				assert.Less(t, d.Level, 1.0)
			} else {
				assert.Zero(t, d.Level)
			}
		}
		for b := range ind.Res {
			for d := range ind.Res[b] {
				c := ind.Res[b][d]
				assert.GreaterOrEqual(t, c[ColonizingR], 0.0)
				assert.LessOrEqual(t, c[ColonizingR], 10.0)
				assert.LessOrEqual(t, c[EvolvedR], 10.0)
			}
		}
	}
}

func TestNewIndividualKeepsIdentity(t *testing.T) {
	ind := NewIndividual(7, 42, Female, util.New(5))
	assert.Equal(t, 7, ind.ID)
	assert.Equal(t, 42, ind.Age)
	assert.Equal(t, Female, ind.Sex)
	assert.NoError(t, ind.Validate())
}

func TestValidate(t *testing.T) {
	ind := NewIndividual(1, 5, Male, util.New(5))
	ind.Age = -1
	assert.ErrorIs(t, ind.Validate(), ErrInvalidIndividual)

	ind.Age = 5
	ind.Sex = Sex(9)
	assert.ErrorIs(t, ind.Validate(), ErrInvalidIndividual)

	p, err := New(3, util.New(5))
	require.NoError(t, err)
	p.At(2).ID = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidIndividual)
}

func TestByNameAccessors(t *testing.T) {
	ind := NewIndividual(0, 1, Male, util.New(11))
	b, ok := ind.Bacteria("escherichia_coli")
	require.True(t, ok)
	idx, _ := catalog.BacteriaIndex("escherichia_coli")
	assert.Equal(t, ind.Bact[idx], b)

	_, ok = ind.Bacteria("not_a_bug")
	assert.False(t, ok)

	_, ok = ind.DrugState("vancomycin")
	assert.True(t, ok)
	_, ok = ind.DrugState("aspirin")
	assert.False(t, ok)

	_, ok = ind.Vaccinated("salmonella_typhi")
	assert.True(t, ok)
	_, ok = ind.Vaccinated("measles")
	assert.False(t, ok)
}

func TestSexString(t *testing.T) {
	assert.Equal(t, "male", Male.String())
	assert.Equal(t, "female", Female.String())
	assert.Equal(t, "unknown", Sex(5).String())
}
