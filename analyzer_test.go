package accord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictAnalyzerAnalyze(t *testing.T) {
	a := NewDictAnalyzer(BuiltinDictionary())

	seq, err := a.Analyze("Le petit chat")
	require.NoError(t, err)
	require.Len(t, seq, 3)

	assert.Equal(t, "Le", seq[0].Text)
	assert.Equal(t, POSDet, seq[0].POS)
	assert.Equal(t, "le", seq[0].Lemma)
	assert.Equal(t, "masc", seq[0].Features.Get(FeatGender))

	assert.Equal(t, POSAdj, seq[1].POS)
	assert.Equal(t, POSNoun, seq[2].POS)
	assert.Equal(t, "sing", seq[2].Features.Get(FeatNumber))
}

func TestDictAnalyzerSubjectHeuristic(t *testing.T) {
	a := NewDictAnalyzer(BuiltinDictionary())

	seq, err := a.Analyze("Le chat mange")
	require.NoError(t, err)
	require.Len(t, seq, 3)

	// The nearest preceding noun becomes the verb's subject.
	assert.Equal(t, DepNsubj, seq[1].Dep)
	assert.Equal(t, 2, seq[1].Head)
	assert.Equal(t, HeadRoot, seq[0].Head)
	assert.Equal(t, HeadRoot, seq[2].Head)
}

func TestDictAnalyzerUnknownWord(t *testing.T) {
	a := NewDictAnalyzer(BuiltinDictionary())

	seq, err := a.Analyze("frobnicateur")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, "frobnicateur", seq[0].Text)
	assert.Empty(t, seq[0].POS, "unknown forms carry no tag and trigger no rule")
	assert.Empty(t, seq[0].Features.Get(FeatGender))
}

func TestDictAnalyzerBatchOrder(t *testing.T) {
	a := NewDictAnalyzer(BuiltinDictionary())

	texts := []string{"chat", "chatte", "", "mange"}
	seqs, err := a.AnalyzeBatch(texts)
	require.NoError(t, err)
	require.Len(t, seqs, len(texts), "one sequence per input, in input order")

	assert.Equal(t, "chat", seqs[0][0].Lemma)
	assert.Equal(t, "fem", seqs[1][0].Features.Get(FeatGender))
	assert.Empty(t, seqs[2])
	assert.Equal(t, POSVerb, seqs[3][0].POS)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"Le", "chat", "mange"}, Tokenize("Le chat mange."))
	assert.Equal(t, []string{"l'étrange", "bête"}, Tokenize("l'étrange bête !"))
	assert.Empty(t, Tokenize("…"))
}
