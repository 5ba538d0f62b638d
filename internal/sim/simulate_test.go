package sim

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"amrsim/internal/catalog"
	"amrsim/internal/config"
	"amrsim/internal/population"
	"amrsim/internal/rules"
	"amrsim/internal/util"
)

func newEngine(t *testing.T) *rules.Engine {
	t.Helper()
	e, err := rules.NewEngine(config.NewParameters(map[string]float64{
		rules.KeyMinResistance: 0,
		rules.KeyMaxResistance: 10,
	}), rules.Options{})
	require.NoError(t, err)
	return e
}

func newPopulation(t *testing.T, n int, seed int64) *population.Population {
	t.Helper()
	p, err := population.New(n, util.New(seed))
	require.NoError(t, err)
	return p
}

func TestRunEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	pop := newPopulation(t, 100, 1)
	initial := make([]int, pop.Len())
	for i := range initial {
		initial[i] = pop.At(i).Age
	}

	d, err := NewDriver(pop, newEngine(t), Options{Seed: 5, Workers: 4, TrackedBacteria: "escherichia_coli"})
	require.NoError(t, err)
	res, err := d.Run(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, res.StepsCompleted)
	assert.False(t, res.Stopped)
	require.Len(t, res.Steps, 5)
	for i, rep := range res.Steps {
		assert.Equal(t, i, rep.Step)
		assert.True(t, rep.Tracked)
		assert.Equal(t, "escherichia_coli", rep.Bacteria)
		assert.LessOrEqual(t, rep.Infected, 100)
		assert.NotNil(t, rep.Sample.State)
	}

	for i := 0; i < pop.Len(); i++ {
		ind := pop.At(i)
		assert.Equal(t, initial[i]+5, ind.Age)
		cells := 0
		for b := range ind.Res {
			for dr := range ind.Res[b] {
				for _, v := range ind.Res[b][dr] {
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
					cells++
				}
			}
		}
		assert.Equal(t, catalog.NumBacteria*catalog.NumDrugs*5, cells)
	}
}

func TestWorkerCountDoesNotChangeOutcome(t *testing.T) {
	run := func(workers int) (*population.Population, *Result) {
		pop := newPopulation(t, 37, 2)
		d, err := NewDriver(pop, newEngine(t), Options{Seed: 9, Workers: workers, TrackedBacteria: "staphylococcus_aureus"})
		require.NoError(t, err)
		res, err := d.Run(context.Background(), 3)
		require.NoError(t, err)
		return pop, res
	}
	p1, r1 := run(1)
	p8, r8 := run(8)

	if diff := cmp.Diff(p1.Individuals(), p8.Individuals()); diff != "" {
		t.Fatalf("population depends on worker count (-1 +8):\n%s", diff)
	}
	for i := range r1.Steps {
		assert.Equal(t, r1.Steps[i].Infected, r8.Steps[i].Infected)
		assert.Equal(t, r1.Steps[i].Septic, r8.Steps[i].Septic)
		assert.Equal(t, r1.Steps[i].Sample, r8.Steps[i].Sample)
	}
}

func TestStepsComposeInOrder(t *testing.T) {
	pop := newPopulation(t, 10, 3)
	want := make([]population.Individual, pop.Len())
	copy(want, pop.Individuals())

	e := newEngine(t)
	for s := 0; s < 4; s++ {
		for i := range want {
			e.ApplyStep(&want[i], s, util.Stream(11, s, want[i].ID))
		}
	}

	d, err := NewDriver(pop, e, Options{Seed: 11, Workers: 3})
	require.NoError(t, err)
	_, err = d.Run(context.Background(), 2)
	require.NoError(t, err)
	_, err = d.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Day())

	if diff := cmp.Diff(want, pop.Individuals()); diff != "" {
		t.Fatalf("driver diverged from sequential composition (-want +got):\n%s", diff)
	}
}

func TestUnknownTrackedBacteriaIsNotFatal(t *testing.T) {
	d, err := NewDriver(newPopulation(t, 8, 4), newEngine(t), Options{TrackedBacteria: "not_a_bug"})
	require.NoError(t, err)
	assert.False(t, d.Tracked())

	res, err := d.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, res.Tracked)
	for _, rep := range res.Steps {
		assert.False(t, rep.Tracked)
		assert.Zero(t, rep.Infected)
		assert.Empty(t, rep.Bacteria)
		assert.Nil(t, rep.Sample.State)
	}
}

func TestRunStepCounts(t *testing.T) {
	d, err := NewDriver(newPopulation(t, 4, 5), newEngine(t), Options{})
	require.NoError(t, err)

	_, err = d.Run(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidSteps)

	res, err := d.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Steps)
	assert.Zero(t, d.Day())
}

func TestStopEndsRunBetweenSteps(t *testing.T) {
	d, err := NewDriver(newPopulation(t, 4, 6), newEngine(t), Options{})
	require.NoError(t, err)
	d.Stop()
	res, err := d.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Zero(t, res.StepsCompleted)
}

func TestCancelledContextEndsRun(t *testing.T) {
	d, err := NewDriver(newPopulation(t, 4, 6), newEngine(t), Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := d.Run(ctx, 5)
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Zero(t, d.Day())
}

func TestReporterReceivesEveryStep(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var seen []int
	rep := NewReporter(16, func(r StepReport) {
		mu.Lock()
		seen = append(seen, r.Step)
		mu.Unlock()
	})
	d, err := NewDriver(newPopulation(t, 6, 7), newEngine(t), Options{Reporter: rep, TrackedBacteria: "shigella_spp"})
	require.NoError(t, err)

	res, err := d.Run(context.Background(), 3)
	require.NoError(t, err)
	rep.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, res.StepsCompleted)
	assert.Zero(t, rep.Dropped())
}

func TestNewDriverRejectsBadSample(t *testing.T) {
	_, err := NewDriver(newPopulation(t, 4, 8), newEngine(t), Options{SampleIndex: 4})
	assert.Error(t, err)
}

func TestMarshalPretty(t *testing.T) {
	b, err := MarshalPretty(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))

	_, err = MarshalPretty(map[string]float64{"nan": math.NaN()})
	assert.Error(t, err)
}
