// Package generator builds codebooks of mutually separated random markers.
//
// Markers are drawn at random and accepted when their Hamming distance to
// every rotation of every accepted marker, and to their own rotations, reaches
// a target separation tau. The target starts at a theoretical bound and is
// lowered to the best candidate seen whenever too many candidates in a row
// fall short, so generation always makes progress.
//
// See S. Garrido-Jurado, R. Muñoz-Salinas, F. J. Madrid-Cuevas, and M. J.
// Marín-Jiménez. 2014. "Automatic generation and detection of highly reliable
// fiducial markers under occlusion". Pattern Recogn. 47, 6 (June 2014),
// 2280-2292. DOI=10.1016/j.patcog.2014.01.005
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-markerbook/codebook"
	"github.com/forestrie/go-markerbook/codeword"
)

var (
	ErrBadTargetCount      = errors.New("generator: target count must not be negative")
	ErrBadPatience         = errors.New("generator: patience must be positive")
	ErrBadMinSeparation    = errors.New("generator: minimum separation must be positive")
	ErrMarkerSizeMismatch  = errors.New("generator: base codebook marker size differs")
	ErrSeparationCollapsed = errors.New("generator: separation fell below the minimum")
	ErrNilLogger           = errors.New("generator: logger is required")
	ErrNilRand             = errors.New("generator: random source is required")
)

// Result is a generated codebook together with how it was reached.
type Result struct {
	Codebook *codebook.Codebook

	// Tau is the separation in force when generation finished. Every pair of
	// codewords, and every codeword against its own rotations, is at least
	// Tau apart.
	Tau int

	// AcceptedTau[i] is the separation in force when row i was accepted. Rows
	// cloned from a base codebook carry the base codebook's separation.
	AcceptedTau []int

	// Forced counts acceptances that lowered Tau.
	Forced int

	// Iterations counts random candidates drawn.
	Iterations int
}

// Generator draws markers of one size from an explicit random source. A
// Generator is not safe for concurrent use.
type Generator struct {
	markerSize int
	log        logger.Logger
	rng        *rand.Rand
	opts       Options
}

// New returns a generator for markers of side markerSize drawing from rng.
func New(markerSize int, log logger.Logger, rng *rand.Rand, opts ...Option) (*Generator, error) {
	if err := codeword.CheckMarkerSize(markerSize); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNilLogger
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	g := &Generator{
		markerSize: markerSize,
		log:        log,
		rng:        rng,
		opts: Options{
			Patience:      DefaultPatience,
			MinSeparation: DefaultMinSeparation,
		},
	}
	for _, o := range opts {
		o(&g.opts)
	}
	if g.opts.Patience <= 0 {
		return nil, ErrBadPatience
	}
	if g.opts.MinSeparation <= 0 {
		return nil, ErrBadMinSeparation
	}
	return g, nil
}

// TheoreticalSeparation returns the initial target separation for markers of
// side markerSize:
//
//	C = floor(markerSize²/4)
//	tau0 = 2 * floor(4C/3)
func TheoreticalSeparation(markerSize int) int {
	c := codeword.CellCount(markerSize) / 4
	return 2 * (c * 4 / 3)
}

// MaxCorrectionBits returns the error budget a codebook of separation tau can
// correct: floor((tau-1)/2), never negative.
func MaxCorrectionBits(tau int) int {
	if tau < 1 {
		return 0
	}
	return (tau - 1) / 2
}

// Generate returns a codebook holding targetCount markers.
//
// When base is non-empty its codewords are kept, in order, as the first rows
// and the target separation starts from the separation the base actually
// achieves rather than the theoretical bound. A base that already holds
// targetCount or more markers is returned as is, with a recomputed error
// budget, even when its separation is below the minimum.
func (g *Generator) Generate(ctx context.Context, targetCount int, base *codebook.Codebook) (Result, error) {
	if targetCount < 0 {
		return Result{}, ErrBadTargetCount
	}

	tau := TheoreticalSeparation(g.markerSize)
	var rows []codeword.Codeword
	var acceptedTau []int
	if base != nil && base.Len() > 0 {
		if base.MarkerSize() != g.markerSize {
			return Result{}, fmt.Errorf("%w: %d != %d", ErrMarkerSizeMismatch, base.MarkerSize(), g.markerSize)
		}
		rows = base.Codewords()
		tau = base.MinSeparation()
		acceptedTau = make([]int, len(rows))
		for i := range acceptedTau {
			acceptedTau[i] = tau
		}
	}
	// A base that already reaches targetCount is returned whatever its
	// separation; the minimum only constrains markers still to be drawn.
	if len(rows) < targetCount && tau < g.opts.MinSeparation {
		return Result{}, fmt.Errorf(
			"%w: initial separation %d, minimum %d", ErrSeparationCollapsed, tau, g.opts.MinSeparation)
	}

	// best candidate seen since the last acceptance
	bestTau := 0
	var best codeword.Codeword

	unproductive := 0
	iterations := 0
	forced := 0

	for len(rows) < targetCount {
		if iterations%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		iterations++

		candidate := g.randomCodeword()
		selfDistance := codeword.SelfDistance(candidate)
		minDistance := selfDistance

		// A candidate whose self distance can not beat the best so far is
		// not worth the pairwise scan.
		if selfDistance >= bestTau {
			for _, row := range rows {
				d, _ := codeword.MinDistance(candidate, row, true)
				if d < minDistance {
					minDistance = d
				}
				if minDistance <= bestTau {
					break
				}
			}
		}

		if minDistance >= tau {
			rows = append(rows, candidate)
			acceptedTau = append(acceptedTau, tau)
			unproductive = 0
			bestTau = 0
			best = nil
			continue
		}

		unproductive++
		if minDistance > bestTau {
			bestTau = minDistance
			best = candidate
		}
		if unproductive < g.opts.Patience {
			continue
		}

		if bestTau < g.opts.MinSeparation {
			return Result{}, fmt.Errorf(
				"%w: best separation %d after %d candidates, minimum %d",
				ErrSeparationCollapsed, bestTau, unproductive, g.opts.MinSeparation)
		}
		g.log.Debugf("generator: forcing marker %d, separation %d -> %d", len(rows), tau, bestTau)
		tau = bestTau
		rows = append(rows, best)
		acceptedTau = append(acceptedTau, tau)
		forced++
		unproductive = 0
		bestTau = 0
		best = nil
	}

	cb, err := codebook.FromCodewords(g.markerSize, MaxCorrectionBits(tau), rows)
	if err != nil {
		return Result{}, err
	}
	g.log.Infof(
		"generator: %d markers of size %d, separation %d, %d forced, %d candidates",
		cb.Len(), g.markerSize, tau, forced, iterations)

	return Result{
		Codebook:    cb,
		Tau:         tau,
		AcceptedTau: acceptedTau,
		Forced:      forced,
		Iterations:  iterations,
	}, nil
}

func (g *Generator) randomCodeword() codeword.Codeword {
	// the marker size was checked by New
	m, _ := codeword.RandomBitMatrix(g.rng, g.markerSize)
	return codeword.Encode(m)
}
