package sim

import (
	"golang.org/x/sync/errgroup"

	"amrsim/internal/population"
)

// Tally is the read-only per-step reduction over the population. Counts
// are exact for any partitioning; LevelSum may differ in the last bits.
type Tally struct {
	Population int
	Infected   int
	Septic     int
	LevelSum   float64
	OnDrugs    int
}

func (t Tally) add(o Tally) Tally {
	return Tally{
		Population: t.Population + o.Population,
		Infected:   t.Infected + o.Infected,
		Septic:     t.Septic + o.Septic,
		LevelSum:   t.LevelSum + o.LevelSum,
		OnDrugs:    t.OnDrugs + o.OnDrugs,
	}
}

func (t Tally) MeanLevel() float64 {
	if t.Population == 0 {
		return 0
	}
	return t.LevelSum / float64(t.Population)
}

// Aggregate scans inds in parallel. bacteria is a catalog index, or -1 to
// skip the per-bacteria counts.
func Aggregate(inds []population.Individual, bacteria, workers int) Tally {
	return aggregateSpans(inds, bacteria, partition(len(inds), workers))
}

func aggregateSpans(inds []population.Individual, bacteria int, spans []span) Tally {
	parts := make([]Tally, len(spans))
	var g errgroup.Group
	for w, sp := range spans {
		g.Go(func() error {
			parts[w] = tallySpan(inds[sp.lo:sp.hi], bacteria)
			return nil
		})
	}
	_ = g.Wait()

	var total Tally
	for _, p := range parts {
		total = total.add(p)
	}
	return total
}

func tallySpan(inds []population.Individual, bacteria int) Tally {
	var t Tally
	for i := range inds {
		ind := &inds[i]
		t.Population++
		if ind.DrugsInUse() > 0 {
			t.OnDrugs++
		}
		if bacteria < 0 {
			continue
		}
		bs := &ind.Bact[bacteria]
		if bs.Level > 0 {
			t.Infected++
		}
		if bs.Septic {
			t.Septic++
		}
		t.LevelSum += bs.Level
	}
	return t
}
