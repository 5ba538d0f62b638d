package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"amrsim/internal/config"
	"amrsim/internal/population"
	"amrsim/internal/rules"
	"amrsim/internal/sim"
	"amrsim/internal/store"
	"amrsim/internal/util"
)

type runFlags struct {
	cfgDir     string
	population int
	steps      int
	track      string
	seed       int64
	workers    int
	sample     int
	clamp      bool
	dbPath     string
	out        string
	quiet      bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, run, err := config.LoadAll(f.cfgDir)
			if err != nil {
				return err
			}
			f.override(cmd, run)
			if err := run.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulation(ctx, cmd.OutOrStdout(), params, run, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.cfgDir, "config", "assets", "config dir holding parameters.yaml")
	fl.IntVarP(&f.population, "population", "n", 0, "population size (overrides config)")
	fl.IntVar(&f.steps, "steps", 0, "number of daily steps (overrides config)")
	fl.StringVar(&f.track, "track", "", "bacteria to trace each step")
	fl.Int64Var(&f.seed, "seed", 0, "random seed")
	fl.IntVar(&f.workers, "workers", 0, "parallel workers (0 = all CPUs)")
	fl.IntVar(&f.sample, "sample", 0, "index of the individual to snapshot each step")
	fl.BoolVar(&f.clamp, "clamp", false, "clamp fields to their natural bounds after each step")
	fl.StringVar(&f.dbPath, "db", "", "SQLite file to persist step reports to")
	fl.StringVar(&f.out, "out", "", "write a JSON summary to this file")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "suppress per-step diagnostics")
	return cmd
}

func (f *runFlags) override(cmd *cobra.Command, run *config.RunSettings) {
	fl := cmd.Flags()
	if fl.Changed("population") {
		run.PopulationSize = f.population
	}
	if fl.Changed("steps") {
		run.NumTimeSteps = f.steps
	}
	if fl.Changed("track") {
		run.TrackedBacteria = f.track
	}
	if fl.Changed("seed") {
		run.Seed = f.seed
	}
	if fl.Changed("workers") {
		run.Workers = f.workers
	}
	if fl.Changed("sample") {
		run.SampleIndex = f.sample
	}
	if fl.Changed("clamp") {
		run.Clamp = f.clamp
	}
}

func runSimulation(ctx context.Context, out io.Writer, params *config.Parameters, run *config.RunSettings, f runFlags) error {
	engine, err := rules.NewEngine(params, rules.Options{Clamp: run.Clamp})
	if err != nil {
		return err
	}
	pop, err := population.New(run.PopulationSize, util.New(run.Seed))
	if err != nil {
		return fmt.Errorf("build population: %w", err)
	}
	logger.Info("population created", zap.Int("size", pop.Len()))

	var st *store.SQLiteStore
	var runID string
	if f.dbPath != "" {
		st, err = store.Open(ctx, f.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err = st.BeginRun(ctx, store.RunMeta{
			Seed:            run.Seed,
			Population:      run.PopulationSize,
			StepsRequested:  run.NumTimeSteps,
			Workers:         run.Workers,
			TrackedBacteria: run.TrackedBacteria,
			Clamp:           run.Clamp,
		})
		if err != nil {
			return err
		}
		logger.Info("persisting step reports", zap.String("db", f.dbPath), zap.String("run_id", runID))
	}

	// Console diagnostics may drop reports under load; the persisted record
	// is written from the result afterwards and is complete.
	var reporter *sim.Reporter
	if !f.quiet {
		reporter = sim.NewReporter(64, func(rep sim.StepReport) { printStep(out, rep, pop.Len()) })
	}

	d, err := sim.NewDriver(pop, engine, sim.Options{
		Seed:            run.Seed,
		Workers:         run.Workers,
		TrackedBacteria: run.TrackedBacteria,
		SampleIndex:     run.SampleIndex,
		Logger:          logger,
		Reporter:        reporter,
	})
	if err != nil {
		if reporter != nil {
			reporter.Close()
		}
		return err
	}
	if !d.Tracked() {
		fmt.Fprintf(out, "bacteria %q is not in the catalog; infected counts will not be reported\n", run.TrackedBacteria)
	}

	res, err := d.Run(ctx, run.NumTimeSteps)
	if reporter != nil {
		reporter.Close()
		if n := reporter.Dropped(); n > 0 {
			logger.Warn("console step reports dropped", zap.Int64("count", n))
		}
	}
	if err != nil {
		return err
	}

	if st != nil {
		// The run may have been cancelled; the steps it did complete are
		// still written.
		if err := st.SaveSteps(context.WithoutCancel(ctx), runID, res.Steps); err != nil {
			return err
		}
	}
	if f.out != "" {
		b, err := sim.MarshalPretty(res)
		if err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		if err := os.WriteFile(f.out, b, 0644); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Run finished: %d/%d steps in %.2fs", res.StepsCompleted, res.StepsRequested, res.Duration)
	if res.Stopped {
		fmt.Fprint(out, " (stopped early)")
	}
	if f.out != "" {
		fmt.Fprintf(out, " -> %s", f.out)
	}
	fmt.Fprintln(out)
	return nil
}

func printStep(out io.Writer, rep sim.StepReport, total int) {
	s := rep.Sample
	if rep.Tracked {
		fmt.Fprintf(out, "day %d: %s infected %d/%d, septic %d, mean level %.2f, on drugs %d\n",
			rep.Step, rep.Bacteria, rep.Infected, total, rep.Septic, rep.MeanLevel, rep.OnDrugs)
	}
	fmt.Fprintf(out, "  sample #%d: age %d days, %s, drugs in use %d", s.ID, s.Age, s.Sex, s.DrugsInUse)
	if s.State != nil {
		fmt.Fprintf(out, ", level %.2f, immune %.2f, septic %v, e_r %.2f, c_r %.2f",
			s.State.Level, s.State.ImmuneResponse, s.State.Septic, s.MeanEvolvedR, s.MeanColonizingR)
	}
	fmt.Fprintln(out)
}
