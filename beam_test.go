package accord

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer returns the same fixed sequence for every text and counts
// its calls.
type stubAnalyzer struct {
	seq   Sequence
	calls int
}

func (s *stubAnalyzer) Analyze(text string) (Sequence, error) {
	s.calls++
	return s.seq, nil
}

func (s *stubAnalyzer) AnalyzeBatch(texts []string) ([]Sequence, error) {
	out := make([]Sequence, len(texts))
	for i := range texts {
		s.calls++
		out[i] = s.seq
	}
	return out, nil
}

func TestDecodeStopsOnEmptyBeam(t *testing.T) {
	// Every analysis carries a gender clash, so every single-word
	// extension fails and the beam empties after step one.
	stub := &stubAnalyzer{seq: Sequence{
		tok(POSDet, Features{FeatGender: "fem"}),
		tok(POSNoun, Features{FeatGender: "masc"}),
	}}
	dec := NewDecoder(stub, NewDefaultChecker())

	beam, err := dec.Decode(DecodeInput{
		Vocabulary: []string{"a", "b"},
		Scores:     []float64{1, 1},
		BeamWidth:  2,
		MaxLength:  3,
	})
	require.NoError(t, err)
	assert.Empty(t, beam)
	// One analysis per vocabulary word in step one, then early stop
	// instead of running the remaining two steps.
	assert.Equal(t, 2, stub.calls)
}

func TestDecodeRanking(t *testing.T) {
	// An empty analysis passes every agreement constraint vacuously.
	stub := &stubAnalyzer{}
	dec := NewDecoder(stub, NewDefaultChecker())

	beam, err := dec.Decode(DecodeInput{
		Vocabulary: []string{"a", "b"},
		Scores:     []float64{1.0, 2.0},
		BeamWidth:  2,
		MaxLength:  1,
	})
	require.NoError(t, err)
	require.Len(t, beam, 2)
	assert.Equal(t, []string{"b"}, beam[0].Words)
	assert.InDelta(t, 2.0, beam[0].Score, 1e-9)
	assert.Equal(t, []string{"a"}, beam[1].Words)

	// Scores accumulate across steps.
	beam, err = dec.Decode(DecodeInput{
		Vocabulary: []string{"a", "b"},
		Scores:     []float64{1.0, 2.0},
		BeamWidth:  1,
		MaxLength:  2,
	})
	require.NoError(t, err)
	require.Len(t, beam, 1)
	assert.Equal(t, []string{"b", "b"}, beam[0].Words)
	assert.InDelta(t, 4.0, beam[0].Score, 1e-9)
}

func TestDecodeStableTieBreak(t *testing.T) {
	stub := &stubAnalyzer{}
	dec := NewDecoder(stub, NewDefaultChecker())

	beam, err := dec.Decode(DecodeInput{
		Vocabulary: []string{"a", "b", "c"},
		Scores:     []float64{1, 1, 1},
		BeamWidth:  2,
		MaxLength:  1,
	})
	require.NoError(t, err)
	require.Len(t, beam, 2)
	// Equal scores keep vocabulary enumeration order under the stable sort.
	assert.Equal(t, []string{"a"}, beam[0].Words)
	assert.Equal(t, []string{"b"}, beam[1].Words)
}

func TestDecodeScoreLengthMismatch(t *testing.T) {
	dec := NewDecoder(&stubAnalyzer{}, NewDefaultChecker())
	_, err := dec.Decode(DecodeInput{
		Vocabulary: []string{"a", "b"},
		Scores:     []float64{1},
	})
	assert.True(t, errors.Is(err, ErrScoreLength))
}

func TestDecodeWithDictionaryAnalyzer(t *testing.T) {
	dec := NewDecoder(demoAnalyzer(), NewDefaultChecker())

	beam, err := dec.Decode(DecodeInput{
		Vocabulary: []string{"Le", "chatte"},
		Scores:     []float64{0.5, 1.0},
		BeamWidth:  4,
		MaxLength:  2,
	})
	require.NoError(t, err)
	require.NotEmpty(t, beam)
	for _, hyp := range beam {
		assert.NotEqual(t, "Le chatte", hyp.Text(),
			"a masculine determiner with a feminine noun must not survive")
	}
}

func TestWFSTDecodeUnavailable(t *testing.T) {
	dec := NewDecoder(&stubAnalyzer{}, NewDefaultChecker())
	_, err := dec.WFSTDecode(nil, nil)
	assert.True(t, errors.Is(err, ErrFSTUnavailable))
}
