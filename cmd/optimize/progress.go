package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// progress records every evaluation to optimize_log.csv and tracks the best
// point seen so far. CMA-ES may end on a worse mean than one it sampled.
type progress struct {
	params   *ParamVector
	maxEvals int

	file *os.File
	w    *csv.Writer

	evals       int
	bestFitness float64
	bestParams  []float64
	started     time.Time
}

func newProgress(path string, params *ParamVector, maxEvals int) (*progress, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create eval log: %w", err)
	}
	p := &progress{
		params:      params,
		maxEvals:    maxEvals,
		file:        f,
		w:           csv.NewWriter(f),
		bestFitness: 1e18,
		started:     time.Now(),
	}

	// Columns follow the param table, which only exists at runtime
	header := []string{"eval", "fitness", "survival_s", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := p.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write eval log header: %w", err)
	}
	return p, nil
}

// record logs one evaluation of the clamped parameter vector.
func (p *progress) record(clamped []float64, fitness, quality float64) {
	p.evals++
	if fitness < p.bestFitness {
		p.bestFitness = fitness
		p.bestParams = append(p.bestParams[:0], clamped...)
	}

	survival := survivalSeconds(fitness, quality)
	row := []string{
		strconv.Itoa(p.evals),
		strconv.FormatFloat(fitness, 'f', 3, 64),
		strconv.FormatFloat(survival, 'f', 1, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	}
	for _, v := range clamped {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := p.w.Write(row); err != nil {
		slog.Warn("eval log write failed", "error", err)
	}
	p.w.Flush()

	elapsed := time.Since(p.started)
	eta := time.Duration(p.maxEvals-p.evals) * (elapsed / time.Duration(p.evals))
	slog.Info("eval",
		"n", p.evals,
		"of", p.maxEvals,
		"survival_s", survival,
		"quality", quality,
		"best", p.bestFitness,
		"elapsed", elapsed.Round(time.Second).String(),
		"eta", eta.Round(time.Second).String(),
	)
}

func (p *progress) close() error {
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

// survivalSeconds inverts computeFitness for display, assuming 60 frames
// per second.
func survivalSeconds(fitness, quality float64) float64 {
	return -fitness / (1 + qualityBonus*quality) / 60
}
