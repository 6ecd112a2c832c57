// Command epidemic runs the grid contagion simulation and reports the
// infected count after every step.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/talgya/contagion/internal/engine"
	"github.com/talgya/contagion/internal/entropy"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	// ── Configuration ────────────────────────────────────────────────
	p, jsonLogs, debug, err := parseParams(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// ── Logging ──────────────────────────────────────────────────────
	runID := uuid.NewString()
	logger := slog.New(newHandler(stdout, jsonLogs, debug)).With("run_id", runID)
	slog.SetDefault(logger)

	src := entropy.NewRand(p.Seed)
	slog.Info("contagion simulation",
		"grid", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"population_density", p.PopulationDensity,
		"transfer_rate", p.TransferRate,
		"initial_infection_rate", p.InitialInfectionRate,
		"death_rate", p.DeathRate, // Reported only; has no effect
		"clustering", p.Clustering,
		"spread_from_clean", p.SpreadFromClean,
		"steps", p.Steps,
		"seed", src.Seed(),
	)
	if p.SpreadFromClean {
		slog.Warn("spread_from_clean enabled: clean agents will transmit infection")
	}

	// ── Simulation ───────────────────────────────────────────────────
	sim, err := engine.NewSimulation(p, src)
	if err != nil {
		return err
	}

	rec := &engine.Recorder{}
	rep := engine.MultiReporter{engine.NewLogReporter(logger, p.Width*p.Height), rec}
	if err := engine.Run(sim, p.Steps, rep); err != nil {
		return err
	}

	st := sim.Stats()
	peakStep, peakInfected := rec.Peak()
	slog.Info("simulation finished",
		"step", sim.StepsCompleted(),
		"population", rec.PopulationCount,
		"infected", st.Infected,
		"clean", st.Clean,
		"infected_fraction", fmt.Sprintf("%.3f", st.InfectedFraction),
		"infected_series", fmt.Sprint(rec.InfectedSeries()),
		"peak_step", peakStep,
		"peak_infected", peakInfected,
	)
	return nil
}

// parseParams builds Params from flags. Each flag defaults to its EPIDEMIC_*
// environment variable, then to engine.DefaultParams.
func parseParams(args []string) (p engine.Params, jsonLogs, debug bool, err error) {
	d := engine.DefaultParams()
	fs := flag.NewFlagSet("epidemic", flag.ContinueOnError)

	fs.Float64Var(&p.PopulationDensity, "density", envFloatOrDefault("EPIDEMIC_DENSITY", d.PopulationDensity), "probability a cell hosts an agent")
	fs.Float64Var(&p.DeathRate, "death-rate", envFloatOrDefault("EPIDEMIC_DEATH_RATE", d.DeathRate), "death rate (accepted but has no effect)")
	fs.Float64Var(&p.TransferRate, "transfer-rate", envFloatOrDefault("EPIDEMIC_TRANSFER_RATE", d.TransferRate), "per-neighbor infection probability")
	fs.Float64Var(&p.InitialInfectionRate, "initial-infection", envFloatOrDefault("EPIDEMIC_INITIAL_INFECTION", d.InitialInfectionRate), "probability a new agent starts infected")
	fs.IntVar(&p.Width, "width", envIntOrDefault("EPIDEMIC_WIDTH", d.Width), "grid width")
	fs.IntVar(&p.Height, "height", envIntOrDefault("EPIDEMIC_HEIGHT", d.Height), "grid height")
	fs.IntVar(&p.Steps, "steps", envIntOrDefault("EPIDEMIC_STEPS", d.Steps), "number of steps to run")
	fs.Int64Var(&p.Seed, "seed", int64(envIntOrDefault("EPIDEMIC_SEED", int(d.Seed))), "random seed (0 = random)")
	fs.Float64Var(&p.Clustering, "clustering", envFloatOrDefault("EPIDEMIC_CLUSTERING", d.Clustering), "noise-driven clustering of the population (0 = uniform)")
	fs.BoolVar(&p.SpreadFromClean, "spread-from-clean", envBoolOrDefault("EPIDEMIC_SPREAD_FROM_CLEAN", d.SpreadFromClean), "let clean agents transmit (legacy behavior)")
	fs.BoolVar(&jsonLogs, "json", envBoolOrDefault("EPIDEMIC_JSON", false), "force JSON log output")
	fs.BoolVar(&debug, "debug", envBoolOrDefault("EPIDEMIC_DEBUG", false), "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return p, false, false, err
	}
	return p, jsonLogs, debug, p.Validate()
}

// newHandler writes text to terminals and JSON to anything else (pipes, log
// collectors). forceJSON selects JSON regardless.
func newHandler(w io.Writer, forceJSON, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if forceJSON || !isTerminal(w) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloatOrDefault(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envBoolOrDefault(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
