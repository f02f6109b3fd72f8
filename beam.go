package accord

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Decoding defaults.
const (
	DefaultBeamWidth = 5
	DefaultMaxLength = 20
)

// ErrScoreLength is returned when the score vector does not line up with
// the vocabulary.
var ErrScoreLength = errors.New("scores and vocabulary must have the same length")

// Hypothesis is one beam entry: a partial word sequence and its cumulative
// score.
type Hypothesis struct {
	Words []string
	Score float64
}

// Text renders the hypothesis as a space-joined phrase.
func (h Hypothesis) Text() string {
	return joinWords(h.Words)
}

// DecodeInput describes one decoding request. Zero values for BeamWidth,
// MaxLength and Constraints take the package defaults (width 5, length 20,
// gender+number agreement).
type DecodeInput struct {
	Vocabulary  []string
	Scores      []float64
	BeamWidth   int
	MaxLength   int
	Constraints []Constraint
}

// Decoder runs constraint-filtered beam search over a scored vocabulary.
// At every step each surviving hypothesis is extended with every
// vocabulary word and the whole extension is re-analyzed from scratch; an
// extension survives only if the fresh analysis passes every requested
// constraint. Cost is beamWidth x len(vocabulary) x maxLength analyzer
// calls, so callers keep those small or supply a cheap analyzer.
type Decoder struct {
	analyzer Analyzer
	checker  *Checker
	toolkit  FSTToolkit
	log      *zap.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderLogger attaches a logger for per-step progress.
func WithDecoderLogger(log *zap.Logger) DecoderOption {
	return func(d *Decoder) {
		if log != nil {
			d.log = log
		}
	}
}

// WithFSTToolkit attaches an optional finite-state toolkit, enabling
// WFSTDecode. Without it WFSTDecode fails with ErrFSTUnavailable.
func WithFSTToolkit(tk FSTToolkit) DecoderOption {
	return func(d *Decoder) { d.toolkit = tk }
}

// NewDecoder builds a Decoder around an analyzer and a rule engine.
func NewDecoder(analyzer Analyzer, checker *Checker, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		analyzer: analyzer,
		checker:  checker,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode runs the beam search and returns the final beam, best hypothesis
// first. The search stops early as soon as a step leaves no survivor.
// Equal scores keep their enumeration order (beam-major, then vocabulary
// order) under the stable sort, so results are reproducible.
func (d *Decoder) Decode(in DecodeInput) ([]Hypothesis, error) {
	if len(in.Scores) != len(in.Vocabulary) {
		return nil, fmt.Errorf("%w: %d scores, %d words", ErrScoreLength, len(in.Scores), len(in.Vocabulary))
	}
	width := in.BeamWidth
	if width <= 0 {
		width = DefaultBeamWidth
	}
	maxLength := in.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	constraints := in.Constraints
	if len(constraints) == 0 {
		constraints = []Constraint{ConstraintGenderAgreement, ConstraintNumberAgreement}
	}

	beam := []Hypothesis{{}}

	for step := 0; step < maxLength; step++ {
		var candidates []Hypothesis
		for _, hyp := range beam {
			for vi, word := range in.Vocabulary {
				extended := make([]string, len(hyp.Words)+1)
				copy(extended, hyp.Words)
				extended[len(hyp.Words)] = word

				seq, err := d.analyzer.Analyze(joinWords(extended))
				if err != nil {
					return nil, fmt.Errorf("analyze extension: %w", err)
				}
				if !d.checker.CheckAll(constraints, seq) {
					continue
				}
				candidates = append(candidates, Hypothesis{
					Words: extended,
					Score: hyp.Score + in.Scores[vi],
				})
			}
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
		if len(candidates) > width {
			candidates = candidates[:width]
		}
		beam = candidates

		d.log.Debug("beam step done",
			zap.Int("step", step+1),
			zap.Int("beam", len(beam)))

		if len(beam) == 0 {
			break
		}
	}
	return beam, nil
}
