package population

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"amrsim/internal/util"
)

var ErrInvalidSize = errors.New("invalid population size")

// MaxAge bounds the initial age draw (exclusive).
const MaxAge = 100

// Population is a closed, index-addressable set of individuals stored by
// value in one slice. Nothing is added or removed after New.
type Population struct {
	inds []Individual
}

// New creates n individuals with ids 0..n-1, age drawn from [0, MaxAge)
// and sex drawn with equal odds.
func New(n int, r *rand.Rand) (*Population, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	p := &Population{inds: make([]Individual, n)}
	for i := range p.inds {
		ind := &p.inds[i]
		ind.ID = i
		ind.Age = r.IntN(MaxAge)
		ind.Sex = Male
		if util.Bernoulli(r, 0.5) {
			ind.Sex = Female
		}
		initIndividual(ind, r)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Population) Len() int { return len(p.inds) }

// At returns the individual in slot i. Callers writing through the pointer
// must own the slot for the duration of the write.
func (p *Population) At(i int) *Individual { return &p.inds[i] }

// Individuals exposes the backing slice for in-place, slot-partitioned
// updates. The slice must not be resliced or appended to.
func (p *Population) Individuals() []Individual { return p.inds }

func (p *Population) Validate() error {
	for i := range p.inds {
		ind := &p.inds[i]
		if ind.ID != i {
			return fmt.Errorf("%w: slot %d holds id %d", ErrInvalidIndividual, i, ind.ID)
		}
		if err := ind.Validate(); err != nil {
			return err
		}
	}
	return nil
}
