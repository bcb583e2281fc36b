// Command optimize tunes slime parameters with CMA-ES so that headless runs
// keep a mixed population alive and busy for as long as possible.
//
// Usage: go run ./cmd/optimize --output runs/opt1 [--config base.yaml]
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/slime/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 36000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	popSize := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *popSize); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks int64, seeds, maxEvals, popSize int) error {
	if outputDir == "" {
		return errMissingOutput
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	// Fail early on a bad base config; each run reloads its own copy
	if _, err := config.Load(configPath); err != nil {
		return err
	}

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, maxTicks, evalSeeds, configPath)

	prog, err := newProgress(filepath.Join(outputDir, "optimize_log.csv"), params, maxEvals)
	if err != nil {
		return err
	}
	defer prog.close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			prog.record(params.Clamp(raw), fitness, evaluator.LastQuality())
			return fitness
		},
	}

	dim := params.Dim()
	if popSize == 0 {
		// Standard CMA-ES default: 4 + floor(3 ln n)
		popSize = 4 + int(3*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{FuncEvaluations: maxEvals}

	slog.Info("starting CMA-ES",
		"params", dim,
		"population", popSize,
		"max_evals", maxEvals,
		"seeds", seeds,
		"max_ticks", maxTicks,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		// Hitting the evaluation budget is reported as an error too
		slog.Warn("optimization ended", "reason", err)
	}

	best := prog.bestParams
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		return errNoEvaluations
	}

	attrs := []any{"evals", prog.evals, "fitness", prog.bestFitness}
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Name, best[i])
	}
	slog.Info("best parameters", attrs...)

	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(bestCfg, best)
	outPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		return err
	}
	slog.Info("best config saved", "path", outPath)
	return nil
}
